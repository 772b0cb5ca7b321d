package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of an inspection booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusCancelled BookingStatus = "cancelled"
)

// Valid returns true for known statuses
func (s BookingStatus) Valid() bool {
	return s == StatusPending || s == StatusCancelled
}

// Requester contact details of a prospective buyer
type Requester struct {
	Name    string
	Phone   string
	Email   *string
	Message *string
}

// Booking represents a single inspection reservation.
// SlotID == nil marks an ad-hoc booking
type Booking struct {
	ID            uuid.UUID
	CarID         *int64
	SlotID        *uuid.UUID
	Requester     Requester
	ScheduledTime time.Time // Для слотов - копия start_at на момент бронирования, не обновляется
	Status        BookingStatus

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the booking still holds capacity
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsAdHoc returns true if the booking is not tied to a slot
func (b *Booking) IsAdHoc() bool {
	return b.SlotID == nil
}

// Kind returns the booking kind label
func (b *Booking) Kind() BookingKind {
	if b.IsAdHoc() {
		return KindAdHoc
	}
	return KindSlot
}

// BookingKind distinguishes slot-bound and ad-hoc bookings
type BookingKind string

const (
	KindSlot  BookingKind = "slot"
	KindAdHoc BookingKind = "adhoc"
)

// BookingTarget is what a booking request reserves: either a unit of slot capacity
// or an arbitrary inspection time for a car. Implemented by SlotTarget and AdHocTarget only
type BookingTarget interface {
	Kind() BookingKind
	isBookingTarget()
}

// SlotTarget reserves one unit of the slot's capacity
type SlotTarget struct {
	SlotID uuid.UUID
	CarID  *int64
}

func (SlotTarget) Kind() BookingKind { return KindSlot }
func (SlotTarget) isBookingTarget()  {}

// AdHocTarget requests an inspection of a car at an arbitrary instant
type AdHocTarget struct {
	CarID         int64
	ScheduledTime time.Time
}

func (AdHocTarget) Kind() BookingKind { return KindAdHoc }
func (AdHocTarget) isBookingTarget()  {}

// NormalizeInstant приводит время к каноническому виду: UTC с точностью до секунды
func NormalizeInstant(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// BookingsFilter фильтр для получения бронирований слота или автомобиля
type BookingsFilter struct {
	SlotID           *uuid.UUID // Бронирования слота (опционально)
	CarID            *int64     // Бронирования автомобиля (опционально)
	IncludeCancelled bool       // Включать ли отмененные бронирования
}
