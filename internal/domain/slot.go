package domain

import (
	"time"

	"github.com/google/uuid"
)

// Slot represents an administrator-defined inspection window with bounded capacity
type Slot struct {
	ID       uuid.UUID
	CarID    *int64 // nil = generic slot, usable for any vehicle or walk-in
	StartAt  time.Time
	EndAt    time.Time
	Capacity int

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// IsGeneric returns true if the slot is not bound to a specific vehicle
func (s *Slot) IsGeneric() bool {
	return s.CarID == nil
}

// AcceptsCar returns true if a booking for carID may use this slot
func (s *Slot) AcceptsCar(carID *int64) bool {
	if s.CarID == nil || carID == nil {
		return true
	}
	return *s.CarID == *carID
}

// SlotAvailability is a slot enriched with its derived booking count.
// Booked is always recomputed from the bookings table and never stored
type SlotAvailability struct {
	Slot
	Booked int
}

// Remaining returns the number of units of capacity still free
func (s *SlotAvailability) Remaining() int {
	if s.Booked >= s.Capacity {
		return 0
	}
	return s.Capacity - s.Booked
}

// Available returns true while capacity - booked > 0
func (s *SlotAvailability) Available() bool {
	return s.Capacity-s.Booked > 0
}

// SlotFilter фильтр списка слотов
type SlotFilter struct {
	CarID          *int64     // Слоты конкретного автомобиля (опционально)
	IncludeGeneric bool       // Вместе с CarID вернуть также слоты без автомобиля
	From           *time.Time // Слоты, начинающиеся не раньше (опционально)
	To             *time.Time // Слоты, начинающиеся раньше (опционально)
}
