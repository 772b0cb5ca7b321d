package create_slot

import (
	"time"

	"github.com/luklinx/carsabeg-sub000/internal/service/slots/models"
)

// CreateSlotRequest HTTP request model
type CreateSlotRequest struct {
	StartAt  time.Time `json:"startAt" validate:"required"`
	EndAt    time.Time `json:"endAt" validate:"required"`
	Capacity *int      `json:"capacity,omitempty" validate:"omitempty,min=1"`
	CarID    *int64    `json:"carId,omitempty" validate:"omitempty,gt=0"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateSlotRequest) ToServiceRequest(isAdmin bool) *models.CreateSlotRequest {
	return &models.CreateSlotRequest{
		IsAdmin:  isAdmin,
		StartAt:  r.StartAt,
		EndAt:    r.EndAt,
		Capacity: r.Capacity,
		CarID:    r.CarID,
	}
}
