package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/luklinx/carsabeg-sub000/internal/domain"
	bookingRepo "github.com/luklinx/carsabeg-sub000/internal/infra/storage/booking"
)

// reserveAdHoc создает бронирование на произвольное время осмотра автомобиля.
//
// Предварительная проверка дает понятную ошибку в обычном случае; гарантию
// уникальности (car_id, scheduled_time) среди активных ad-hoc бронирований
// обеспечивает частичный уникальный индекс, поэтому из двух одновременных
// одинаковых запросов ровно один получает ErrDuplicateBooking
func (uc *UseCase) reserveAdHoc(ctx context.Context, t domain.AdHocTarget, requester domain.Requester) (*domain.Booking, error) {
	at := domain.NormalizeInstant(t.ScheduledTime)

	if uc.rejectPast && !at.After(uc.timeProvider.Now()) {
		return nil, fmt.Errorf("%w: scheduledTime must be in the future", ErrInvalidInput)
	}

	if err := uc.ensureCarExists(ctx, t.CarID); err != nil {
		return nil, err
	}

	exists, err := uc.bookingRepo.ExistsActiveAdHoc(ctx, t.CarID, at)
	if err != nil {
		return nil, uc.classify("reserveAdHoc", err)
	}
	if exists {
		uc.logger.Warn("CreateBooking: car id=%d already has an inspection at %s", t.CarID, at.Format(domain.TimeFormat))
		return nil, ErrDuplicateBooking
	}

	carID := t.CarID
	booking := &domain.Booking{
		ID:            uuid.New(),
		CarID:         &carID,
		Requester:     requester,
		ScheduledTime: at,
		Status:        domain.StatusPending,
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrDuplicateAdHoc) {
			uc.logger.Warn("CreateBooking: concurrent duplicate for car id=%d at %s", t.CarID, at.Format(domain.TimeFormat))
			return nil, ErrDuplicateBooking
		}
		return nil, uc.classify("reserveAdHoc", err)
	}

	return created, nil
}
