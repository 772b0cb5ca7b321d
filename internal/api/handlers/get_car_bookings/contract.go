package get_car_bookings

import (
	"context"

	"github.com/luklinx/carsabeg-sub000/internal/service/bookings/models"
)

type BookingService interface {
	ListByCar(ctx context.Context, carID int64, req *models.ListBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
