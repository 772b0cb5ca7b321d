package slots

import (
	"context"

	"github.com/google/uuid"

	"github.com/luklinx/carsabeg-sub000/internal/domain"
	"github.com/luklinx/carsabeg-sub000/internal/integrations/listingservice"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, s *domain.Slot) (*domain.Slot, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Slot, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Slot, error)
	List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountActiveBySlotID(ctx context.Context, slotID uuid.UUID) (int, error)
}

// AvailabilityService агрегатор booked/available
type AvailabilityService interface {
	Annotate(ctx context.Context, slots []*domain.Slot) ([]*domain.SlotAvailability, error)
	AnnotateOne(ctx context.Context, slot *domain.Slot) (*domain.SlotAvailability, error)
}

// ListingServiceClient интерфейс клиента для ListingService
type ListingServiceClient interface {
	GetCar(ctx context.Context, carID int64) (*listingservice.Car, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
