package get_slot

import (
	"context"

	"github.com/google/uuid"

	"github.com/luklinx/carsabeg-sub000/internal/service/slots/models"
)

type SlotService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
