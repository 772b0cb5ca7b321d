package cancel_slot_bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/luklinx/carsabeg-sub000/internal/service/bookings/models"
)

type BookingService interface {
	CancelAllForSlot(ctx context.Context, slotID uuid.UUID, isAdmin bool) (*models.CancelAllResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
