package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/luklinx/carsabeg-sub000/internal/domain"
)

// Request модели

// ListBookingsRequest запрос списка бронирований слота или автомобиля
type ListBookingsRequest struct {
	IsAdmin          bool
	IncludeCancelled bool
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID             string    `json:"id"`
	Kind           string    `json:"kind"` // "slot" | "adhoc"
	SlotID         *string   `json:"slotId,omitempty"`
	CarID          *int64    `json:"carId,omitempty"`
	RequesterName  string    `json:"requesterName"`
	RequesterPhone string    `json:"requesterPhone"`
	RequesterEmail *string   `json:"requesterEmail,omitempty"`
	Message        *string   `json:"message,omitempty"`
	ScheduledTime  time.Time `json:"scheduledTime"`
	Status         string    `json:"status"`

	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// CancelAllResponse результат массовой отмены
type CancelAllResponse struct {
	SlotID         string `json:"slotId"`
	CancelledCount int64  `json:"cancelledCount"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:             b.ID.String(),
		Kind:           string(b.Kind()),
		CarID:          b.CarID,
		RequesterName:  b.Requester.Name,
		RequesterPhone: b.Requester.Phone,
		RequesterEmail: b.Requester.Email,
		Message:        b.Requester.Message,
		ScheduledTime:  b.ScheduledTime,
		Status:         string(b.Status),
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}

	if b.SlotID != nil {
		slotID := b.SlotID.String()
		resp.SlotID = &slotID
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToCancelAllResponse собирает ответ массовой отмены
func ToCancelAllResponse(slotID uuid.UUID, count int64) *CancelAllResponse {
	return &CancelAllResponse{SlotID: slotID.String(), CancelledCount: count}
}
