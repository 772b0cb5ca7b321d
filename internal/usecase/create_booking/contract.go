package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/luklinx/carsabeg-sub000/internal/domain"
	"github.com/luklinx/carsabeg-sub000/internal/integrations/listingservice"
	"github.com/luklinx/carsabeg-sub000/internal/notification"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	CountActiveBySlotID(ctx context.Context, slotID uuid.UUID) (int, error)
	ExistsActiveAdHoc(ctx context.Context, carID int64, at time.Time) (bool, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Slot, error)
}

// ListingServiceClient интерфейс клиента для ListingService
type ListingServiceClient interface {
	GetCar(ctx context.Context, carID int64) (*listingservice.Car, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier асинхронная рассылка уведомлений о новом бронировании
type Notifier interface {
	Enqueue(b *domain.Booking) notification.EnqueueStatus
}

// Metrics счетчик исходов бронирования
type Metrics interface {
	RecordBookingOutcome(kind, outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
