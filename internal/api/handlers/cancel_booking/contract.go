package cancel_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/luklinx/carsabeg-sub000/internal/service/bookings/models"
)

// BookingService идемпотентная отмена одного бронирования
type BookingService interface {
	CancelOne(ctx context.Context, id uuid.UUID, isAdmin bool) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
