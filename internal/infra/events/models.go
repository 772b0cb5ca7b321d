package events

import (
	"time"

	"github.com/luklinx/carsabeg-sub000/internal/domain"
)

// TypeBookingCreated тип события о новом бронировании осмотра
const TypeBookingCreated = "inspection.booking.created"

// BookingCreated событие о новом бронировании осмотра
type BookingCreated struct {
	Type           string    `json:"type"`
	BookingID      string    `json:"bookingId"`
	Kind           string    `json:"kind"`
	SlotID         *string   `json:"slotId,omitempty"`
	CarID          *int64    `json:"carId,omitempty"`
	CarTitle       *string   `json:"carTitle,omitempty"`
	SellerID       *string   `json:"sellerId,omitempty"`
	RequesterName  string    `json:"requesterName"`
	RequesterPhone string    `json:"requesterPhone"`
	RequesterEmail *string   `json:"requesterEmail,omitempty"`
	ScheduledTime  time.Time `json:"scheduledTime"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// NewBookingCreated собирает событие из бронирования
func NewBookingCreated(b *domain.Booking, occurredAt time.Time) *BookingCreated {
	ev := &BookingCreated{
		Type:           TypeBookingCreated,
		BookingID:      b.ID.String(),
		Kind:           string(b.Kind()),
		CarID:          b.CarID,
		RequesterName:  b.Requester.Name,
		RequesterPhone: b.Requester.Phone,
		RequesterEmail: b.Requester.Email,
		ScheduledTime:  b.ScheduledTime,
		OccurredAt:     occurredAt.UTC(),
	}
	if b.SlotID != nil {
		slotID := b.SlotID.String()
		ev.SlotID = &slotID
	}
	return ev
}
