package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/luklinx/carsabeg-sub000/internal/domain"
	"github.com/luklinx/carsabeg-sub000/pkg/dbmetrics"
	"github.com/luklinx/carsabeg-sub000/pkg/pgerr"
	"github.com/luklinx/carsabeg-sub000/pkg/psqlbuilder"
)

const table = "inspection_bookings"

var columns = []string{
	"id",
	"car_id",
	"slot_id",
	"requester_name",
	"requester_phone",
	"requester_email",
	"message",
	"scheduled_time",
	"status",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// activeOnly условие "бронирование занимает место"
var activeOnly = squirrel.NotEq{"status": string(domain.StatusCancelled)}

// Repository репозиторий бронирований осмотра
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
//
// Для ad-hoc заявок уникальность (car_id, scheduled_time) среди активных гарантирует
// частичный уникальный индекс inspection_bookings_adhoc_uniq, нарушение возвращается как ErrDuplicateAdHoc
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"car_id",
			"slot_id",
			"requester_name",
			"requester_phone",
			"requester_email",
			"message",
			"scheduled_time",
			"status",
		).
		Values(
			b.ID,
			b.CarID,
			b.SlotID,
			b.Requester.Name,
			b.Requester.Phone,
			b.Requester.Email,
			b.Requester.Message,
			b.ScheduledTime.UTC(),
			string(b.Status),
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, ErrDuplicateAdHoc
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return b, nil
}

// CountActiveBySlotID считает активные бронирования слота.
// Внутри транзакции после GetByIDForUpdate значение актуально до коммита
func (r *Repository) CountActiveBySlotID(ctx context.Context, slotID uuid.UUID) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"slot_id": slotID.String()}).
		Where(activeOnly).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlotID - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlotID - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// CountActiveBySlotIDs считает активные бронирования для набора слотов одним запросом (GROUP BY).
// Слоты без бронирований в результат не попадают
func (r *Repository) CountActiveBySlotIDs(ctx context.Context, slotIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(slotIDs))
	if len(slotIDs) == 0 {
		return counts, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := countActiveBySlotIDsQuery(slotIDs).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveBySlotIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveBySlotIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			slotID uuid.UUID
			count  int
		)
		if err := rows.Scan(&slotID, &count); err != nil {
			return nil, fmt.Errorf("%w: CountActiveBySlotIDs - scan row: %w", ErrScanRow, err)
		}
		counts[slotID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountActiveBySlotIDs - rows error: %w", ErrScanRow, err)
	}

	return counts, nil
}

// ExistsActiveAdHoc проверяет, есть ли активная ad-hoc заявка на автомобиль в указанный момент
func (r *Repository) ExistsActiveAdHoc(ctx context.Context, carID int64, at time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	sub := psqlbuilder.Select("1").
		From(table).
		Where(squirrel.Eq{"car_id": carID, "slot_id": nil, "scheduled_time": at.UTC()}).
		Where(activeOnly)

	query, args, err := sub.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsActiveAdHoc - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsActiveAdHoc - scan: %w", ErrScanRow, err)
	}

	return exists, nil
}

// GetWithFilter получает бронирования слота и/или автомобиля, сначала ближайшие
//
// Примеры использования:
//
// 1. Активные бронирования слота:
//    filter := domain.BookingsFilter{SlotID: &slotID}
//
// 2. Вся история автомобиля, включая отмененные:
//    filter := domain.BookingsFilter{CarID: &carID, IncludeCancelled: true}
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := filterQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWithFilter - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

// Cancel переводит активное бронирование в cancelled.
// Возвращает false, если бронирование уже было отменено или не существует
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", string(domain.StatusCancelled)).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id.String()}).
		Where(activeOnly).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Cancel - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// CancelAllBySlotID отменяет все активные бронирования слота одним UPDATE.
// Возвращает количество отмененных; повторный вызов возвращает 0
func (r *Repository) CancelAllBySlotID(ctx context.Context, slotID uuid.UUID) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", string(domain.StatusCancelled)).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"slot_id": slotID.String()}).
		Where(activeOnly).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelAllBySlotID - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CancelAllBySlotID - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelAllBySlotID - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// countActiveBySlotIDsQuery один агрегирующий запрос на весь набор слотов
func countActiveBySlotIDsQuery(slotIDs []uuid.UUID) squirrel.SelectBuilder {
	ids := make([]string, len(slotIDs))
	for i, id := range slotIDs {
		ids[i] = id.String()
	}

	return psqlbuilder.Select("slot_id", "COUNT(*)").
		From(table).
		Where(squirrel.Eq{"slot_id": ids}).
		Where(activeOnly).
		GroupBy("slot_id")
}

func filterQuery(filter domain.BookingsFilter) squirrel.SelectBuilder {
	builder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("scheduled_time ASC", "created_at ASC")

	if filter.SlotID != nil {
		builder = builder.Where(squirrel.Eq{"slot_id": filter.SlotID.String()})
	}
	if filter.CarID != nil {
		builder = builder.Where(squirrel.Eq{"car_id": *filter.CarID})
	}
	if !filter.IncludeCancelled {
		builder = builder.Where(activeOnly)
	}

	return builder
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b      domain.Booking
		status string
	)

	if err := row.Scan(
		&b.ID,
		&b.CarID,
		&b.SlotID,
		&b.Requester.Name,
		&b.Requester.Phone,
		&b.Requester.Email,
		&b.Requester.Message,
		&b.ScheduledTime,
		&status,
		&b.CancelledAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return nil, err
	}

	b.Status = domain.BookingStatus(status)
	b.ScheduledTime = b.ScheduledTime.UTC()
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()
	if b.CancelledAt != nil {
		utc := b.CancelledAt.UTC()
		b.CancelledAt = &utc
	}

	return &b, nil
}
