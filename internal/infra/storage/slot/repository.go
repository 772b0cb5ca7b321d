package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/luklinx/carsabeg-sub000/internal/domain"
	"github.com/luklinx/carsabeg-sub000/pkg/dbmetrics"
	"github.com/luklinx/carsabeg-sub000/pkg/psqlbuilder"
)

const table = "inspection_slots"

var columns = []string{
	"id",
	"car_id",
	"start_at",
	"end_at",
	"capacity",
	"created_at",
	"updated_at",
	"deleted_at",
}

// Repository репозиторий слотов осмотра
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новый слот. ID генерируется вызывающей стороной
func (r *Repository) Create(ctx context.Context, s *domain.Slot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("id", "car_id", "start_at", "end_at", "capacity").
		Values(s.ID, s.CarID, s.StartAt.UTC(), s.EndAt.UTC(), s.Capacity).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()

	return s, nil
}

// GetByID получает неудаленный слот по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Slot, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate получает слот и блокирует его строку до конца транзакции (SELECT ... FOR UPDATE).
// Конкурентные транзакции, бронирующие тот же слот, ждут здесь, пока текущая не завершится.
// Ожидание ограничено lock_timeout транзакции
func (r *Repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Slot, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil, ErrNotInTransaction
	}
	return r.get(ctx, id, true)
}

func (r *Repository) get(ctx context.Context, id uuid.UUID, forUpdate bool) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id.String(), "deleted_at": nil})

	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %w", ErrScanRow, err)
	}

	return s, nil
}

// List получает неудаленные слоты по фильтру, отсортированные по времени начала
//
// Примеры:
//
// 1. Все слоты:
//    filter := domain.SlotFilter{}
//
// 2. Слоты автомобиля 42 и общие слоты:
//    filter := domain.SlotFilter{CarID: ptr.Ptr(int64(42)), IncludeGeneric: true}
func (r *Repository) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}

// SoftDelete помечает слот удаленным. Бронирования сохраняют ссылку на слот для истории
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := softDeleteQuery(id).ToSql()
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// listQuery общие слоты (car_id IS NULL) попадают в выборку только при IncludeGeneric
func listQuery(filter domain.SlotFilter) squirrel.SelectBuilder {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"deleted_at": nil}).
		OrderBy("start_at ASC", "id ASC")

	if filter.CarID != nil {
		if filter.IncludeGeneric {
			builder = builder.Where(squirrel.Or{
				squirrel.Eq{"car_id": *filter.CarID},
				squirrel.Eq{"car_id": nil},
			})
		} else {
			builder = builder.Where(squirrel.Eq{"car_id": *filter.CarID})
		}
	}
	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"start_at": filter.From.UTC()})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.Lt{"start_at": filter.To.UTC()})
	}

	return builder
}

func softDeleteQuery(id uuid.UUID) squirrel.UpdateBuilder {
	return psqlbuilder.Update(table).
		Set("deleted_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id.String(), "deleted_at": nil})
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var s domain.Slot

	if err := row.Scan(
		&s.ID,
		&s.CarID,
		&s.StartAt,
		&s.EndAt,
		&s.Capacity,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.DeletedAt,
	); err != nil {
		return nil, err
	}

	s.StartAt = s.StartAt.UTC()
	s.EndAt = s.EndAt.UTC()
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()

	return &s, nil
}
