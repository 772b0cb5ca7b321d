package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/luklinx/carsabeg-sub000/internal/service/bookings/models"
	createBooking "github.com/luklinx/carsabeg-sub000/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model.
// slotId - бронь места в слоте; carId + scheduledTime без slotId - произвольное время осмотра
type CreateBookingRequest struct {
	SlotID        *string    `json:"slotId,omitempty" validate:"omitempty,uuid"`
	CarID         *int64     `json:"carId,omitempty" validate:"omitempty,gt=0"`
	ScheduledTime *time.Time `json:"scheduledTime,omitempty"`

	Name    string  `json:"name" validate:"required,max=120"`
	Phone   string  `json:"phone" validate:"required,max=32"`
	Email   *string `json:"email,omitempty" validate:"omitempty,max=254"`
	Message *string `json:"message,omitempty" validate:"omitempty,max=1000"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Booking      *models.BookingResponse `json:"booking"`
	Notification string                  `json:"notification"` // queued | dropped | disabled
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	req := &createBooking.Request{
		CarID:         r.CarID,
		ScheduledTime: r.ScheduledTime,
		Name:          r.Name,
		Phone:         r.Phone,
		Email:         r.Email,
		Message:       r.Message,
	}

	if r.SlotID != nil {
		slotID, err := uuid.Parse(*r.SlotID)
		if err != nil {
			return nil, err
		}
		req.SlotID = &slotID
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		Booking:      models.FromDomainBooking(resp.Booking),
		Notification: string(resp.Notification),
	}
}
