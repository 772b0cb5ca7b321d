package create_booking

import (
	"context"

	createBooking "github.com/luklinx/carsabeg-sub000/internal/usecase/create_booking"
)

// CreateBookingUseCase резервирует место в слоте или произвольное время осмотра
type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
