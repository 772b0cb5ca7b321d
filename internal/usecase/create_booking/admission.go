package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/luklinx/carsabeg-sub000/internal/domain"
	slotRepo "github.com/luklinx/carsabeg-sub000/internal/infra/storage/slot"
	"github.com/luklinx/carsabeg-sub000/pkg/pgerr"
)

// reserveInSlot занимает одно место в слоте.
//
// Строка слота блокируется (SELECT ... FOR UPDATE) до конца транзакции, поэтому
// подсчет активных бронирований и вставка для одного слота выполняются строго
// последовательно: count < capacity проверяется по уже закоммиченным бронированиям
// всех предыдущих владельцев блокировки. Ожидание блокировки ограничено lock_timeout
func (uc *UseCase) reserveInSlot(ctx context.Context, t domain.SlotTarget, requester domain.Requester) (*domain.Booking, error) {
	if t.CarID != nil {
		if err := uc.ensureCarExists(ctx, *t.CarID); err != nil {
			return nil, err
		}
	}

	now := uc.timeProvider.Now()

	var created *domain.Booking
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		slot, err := uc.slotRepo.GetByIDForUpdate(txCtx, t.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return err
		}

		if !slot.AcceptsCar(t.CarID) {
			return fmt.Errorf("%w: slot is reserved for another car", ErrInvalidInput)
		}

		if uc.rejectPast && !now.Before(slot.StartAt) {
			return ErrSlotStarted
		}

		active, err := uc.bookingRepo.CountActiveBySlotID(txCtx, slot.ID)
		if err != nil {
			return err
		}

		if active >= slot.Capacity {
			uc.logger.Warn("CreateBooking: slot id=%s is full, %d/%d spots taken", slot.ID, active, slot.Capacity)
			return ErrSlotFull
		}

		carID := t.CarID
		if carID == nil {
			carID = slot.CarID
		}

		// scheduled_time фиксируется на момент бронирования и дальше не меняется
		booking := &domain.Booking{
			ID:            uuid.New(),
			CarID:         carID,
			SlotID:        &slot.ID,
			Requester:     requester,
			ScheduledTime: slot.StartAt,
			Status:        domain.StatusPending,
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return err
		}

		uc.logger.Info("CreateBooking: slot id=%s admitted, %d/%d spots taken", slot.ID, active+1, slot.Capacity)
		return nil
	})

	if err != nil {
		return nil, uc.classify("reserveInSlot", err)
	}
	return created, nil
}

// classify приводит ошибки хранилища к таксономии use case
func (uc *UseCase) classify(op string, err error) error {
	switch {
	case errors.Is(err, ErrSlotNotFound),
		errors.Is(err, ErrSlotFull),
		errors.Is(err, ErrSlotStarted),
		errors.Is(err, ErrDuplicateBooking),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrCarNotFound):
		return err
	case pgerr.IsContention(err):
		uc.logger.Warn("CreateBooking: %s - lock not acquired in time: %v", op, err)
		return fmt.Errorf("%w: %v", ErrBusy, err)
	default:
		uc.logger.Error("CreateBooking: %s failed: %v", op, err)
		return fmt.Errorf("%w: %s - %v", ErrInternal, op, err)
	}
}
