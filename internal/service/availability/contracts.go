package availability

import (
	"context"

	"github.com/google/uuid"
)

// BookingCounter считает активные бронирования по слотам одним агрегирующим запросом
type BookingCounter interface {
	CountActiveBySlotIDs(ctx context.Context, slotIDs []uuid.UUID) (map[uuid.UUID]int, error)
}
