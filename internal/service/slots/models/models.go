package models

import (
	"time"

	"github.com/luklinx/carsabeg-sub000/internal/domain"
)

// Request модели

// CreateSlotRequest запрос на создание слота
type CreateSlotRequest struct {
	IsAdmin  bool
	StartAt  time.Time
	EndAt    time.Time
	Capacity *int   // nil = domain.DefaultSlotCapacity
	CarID    *int64 // nil = общий слот
}

// ListSlotsRequest запрос списка слотов
type ListSlotsRequest struct {
	CarID          *int64
	IncludeGeneric bool
	From           *time.Time
	To             *time.Time
	OnlyAvailable  bool
}

// Response модели

// SlotResponse слот с производными booked/available
type SlotResponse struct {
	ID        string    `json:"id"`
	CarID     *int64    `json:"carId,omitempty"`
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
	Capacity  int       `json:"capacity"`
	Booked    int       `json:"booked"`
	Remaining int       `json:"remaining"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"createdAt"`
}

// SlotListResponse ответ со списком слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.SlotAvailability) *SlotResponse {
	if s == nil {
		return nil
	}

	return &SlotResponse{
		ID:        s.ID.String(),
		CarID:     s.CarID,
		StartAt:   s.StartAt,
		EndAt:     s.EndAt,
		Capacity:  s.Capacity,
		Booked:    s.Booked,
		Remaining: s.Remaining(),
		Available: s.Available(),
		CreatedAt: s.CreatedAt,
	}
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(slots []*domain.SlotAvailability) *SlotListResponse {
	resp := &SlotListResponse{
		Slots: make([]SlotResponse, 0, len(slots)),
	}

	for _, s := range slots {
		if slotResp := FromDomainSlot(s); slotResp != nil {
			resp.Slots = append(resp.Slots, *slotResp)
		}
	}

	return resp
}
