package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/luklinx/carsabeg-sub000/internal/domain"
	bookingRepo "github.com/luklinx/carsabeg-sub000/internal/infra/storage/booking"
	slotRepo "github.com/luklinx/carsabeg-sub000/internal/infra/storage/slot"
	"github.com/luklinx/carsabeg-sub000/internal/service/bookings/models"
	"github.com/luklinx/carsabeg-sub000/pkg/pgerr"
)

// Service сервис жизненного цикла бронирований: чтение, отмена одного
// бронирования и массовая отмена по слоту
type Service struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID. Доступно только администратору
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, isAdmin bool) (*models.BookingResponse, error) {
	if !isAdmin {
		s.logger.Warn("GetByID: non-admin attempted to read booking id=%s", id)
		return nil, ErrAccessDenied
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// CancelOne отменяет одно бронирование.
// Идемпотентна: повторная отмена уже отмененного бронирования - успешный no-op
func (s *Service) CancelOne(ctx context.Context, id uuid.UUID, isAdmin bool) (*models.BookingResponse, error) {
	if !isAdmin {
		s.logger.Warn("CancelOne: non-admin attempted to cancel booking id=%s", id)
		return nil, ErrAccessDenied
	}

	changed, err := s.bookingRepo.Cancel(ctx, id)
	if err != nil {
		s.logger.Error("CancelOne: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: CancelOne - repository error: %v", ErrInternal, err)
	}

	// Отсутствие обновленной строки означает либо уже отмененное, либо несуществующее бронирование
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("CancelOne: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("CancelOne: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: CancelOne - repository error: %v", ErrInternal, err)
	}

	if changed {
		s.logger.Info("CancelOne: booking id=%s cancelled", id)
	} else {
		s.logger.Info("CancelOne: booking id=%s already cancelled", id)
	}

	return models.FromDomainBooking(booking), nil
}

// CancelAllForSlot отменяет все активные бронирования слота одной транзакцией и
// возвращает число отмененных. Строка слота блокируется, чтобы параллельные
// бронирования не попали в слот между отменой и коммитом
func (s *Service) CancelAllForSlot(ctx context.Context, slotID uuid.UUID, isAdmin bool) (*models.CancelAllResponse, error) {
	if !isAdmin {
		s.logger.Warn("CancelAllForSlot: non-admin attempted to cancel bookings of slot id=%s", slotID)
		return nil, ErrAccessDenied
	}

	var cancelled int64
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.slotRepo.GetByIDForUpdate(txCtx, slotID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return err
		}

		n, err := s.bookingRepo.CancelAllBySlotID(txCtx, slotID)
		if err != nil {
			return err
		}
		cancelled = n
		return nil
	})

	switch {
	case err == nil:
		s.logger.Info("CancelAllForSlot: cancelled %d bookings of slot id=%s", cancelled, slotID)
		return models.ToCancelAllResponse(slotID, cancelled), nil
	case errors.Is(err, ErrSlotNotFound):
		s.logger.Warn("CancelAllForSlot: slot id=%s not found", slotID)
		return nil, err
	case pgerr.IsContention(err):
		s.logger.Warn("CancelAllForSlot: slot id=%s is locked: %v", slotID, err)
		return nil, fmt.Errorf("%w: %v", ErrBusy, err)
	default:
		s.logger.Error("CancelAllForSlot: failed for slot id=%s: %v", slotID, err)
		return nil, fmt.Errorf("%w: CancelAllForSlot - %v", ErrInternal, err)
	}
}

// ListBySlot получает бронирования слота. Доступно только администратору
func (s *Service) ListBySlot(ctx context.Context, slotID uuid.UUID, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	if !req.IsAdmin {
		s.logger.Warn("ListBySlot: non-admin attempted to list bookings of slot id=%s", slotID)
		return nil, ErrAccessDenied
	}

	if _, err := s.slotRepo.GetByID(ctx, slotID); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("ListBySlot: slot id=%s not found", slotID)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("ListBySlot: repository error for slot id=%s: %v", slotID, err)
		return nil, fmt.Errorf("%w: ListBySlot - repository error: %v", ErrInternal, err)
	}

	return s.list(ctx, "ListBySlot", domain.BookingsFilter{SlotID: &slotID, IncludeCancelled: req.IncludeCancelled})
}

// ListByCar получает бронирования автомобиля (слотовые и ad-hoc). Доступно только администратору
func (s *Service) ListByCar(ctx context.Context, carID int64, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	if !req.IsAdmin {
		s.logger.Warn("ListByCar: non-admin attempted to list bookings of car id=%d", carID)
		return nil, ErrAccessDenied
	}
	if carID <= 0 {
		return nil, fmt.Errorf("%w: carId must be positive", ErrInvalidInput)
	}

	return s.list(ctx, "ListByCar", domain.BookingsFilter{CarID: &carID, IncludeCancelled: req.IncludeCancelled})
}

func (s *Service) list(ctx context.Context, op string, filter domain.BookingsFilter) (*models.BookingListResponse, error) {
	list, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: fetched %d bookings", op, len(list))
	return models.FromDomainBookingList(list), nil
}
