package get_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/luklinx/carsabeg-sub000/internal/service/bookings/models"
)

// BookingService чтение бронирования администратором
type BookingService interface {
	GetByID(ctx context.Context, id uuid.UUID, isAdmin bool) (*models.BookingResponse, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
