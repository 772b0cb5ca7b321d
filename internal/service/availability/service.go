package availability

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/luklinx/carsabeg-sub000/internal/domain"
)

// Service дополняет слоты производными booked/available.
// Значения никогда не кэшируются, каждый вызов читает актуальные счетчики из БД
type Service struct {
	counter BookingCounter
}

// NewService создает агрегатор доступности
func NewService(counter BookingCounter) *Service {
	return &Service{counter: counter}
}

// Annotate считает активные бронирования для всех слотов одним запросом и
// возвращает слоты в исходном порядке
func (s *Service) Annotate(ctx context.Context, slots []*domain.Slot) ([]*domain.SlotAvailability, error) {
	result := make([]*domain.SlotAvailability, 0, len(slots))
	if len(slots) == 0 {
		return result, nil
	}

	ids := make([]uuid.UUID, len(slots))
	for i, slot := range slots {
		ids[i] = slot.ID
	}

	counts, err := s.counter.CountActiveBySlotIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: Annotate - count bookings: %v", ErrInternal, err)
	}

	for _, slot := range slots {
		result = append(result, &domain.SlotAvailability{
			Slot:   *slot,
			Booked: counts[slot.ID],
		})
	}

	return result, nil
}

// AnnotateOne вариант Annotate для одного слота
func (s *Service) AnnotateOne(ctx context.Context, slot *domain.Slot) (*domain.SlotAvailability, error) {
	annotated, err := s.Annotate(ctx, []*domain.Slot{slot})
	if err != nil {
		return nil, err
	}
	return annotated[0], nil
}
