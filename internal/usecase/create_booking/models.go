package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/luklinx/carsabeg-sub000/internal/domain"
	"github.com/luklinx/carsabeg-sub000/internal/notification"
)

// Request модель запроса на создание бронирования.
// Либо SlotID (бронь места в слоте), либо CarID + ScheduledTime (ad-hoc)
type Request struct {
	SlotID        *uuid.UUID
	CarID         *int64
	ScheduledTime *time.Time

	Name    string
	Phone   string
	Email   *string
	Message *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking      *domain.Booking
	Notification notification.EnqueueStatus
}

// Исходы бронирования для метрик
const (
	outcomeAdmitted  = "admitted"
	outcomeSlotFull  = "slot_full"
	outcomeDuplicate = "duplicate"
	outcomeBusy      = "busy"
	outcomeNotFound  = "not_found"
	outcomeRejected  = "rejected"
	outcomeError     = "error"
)
