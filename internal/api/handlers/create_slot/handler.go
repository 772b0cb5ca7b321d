package create_slot

import (
	"errors"
	"net/http"

	"github.com/luklinx/carsabeg-sub000/internal/api/handlers"
	"github.com/luklinx/carsabeg-sub000/internal/api/middleware"
	"github.com/luklinx/carsabeg-sub000/internal/service/slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgForbidden          = "доступ запрещен"
	msgCarNotFound        = "автомобиль не найден"
	msgInvalidSlot        = "некорректные параметры слота"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /slots - Validation failed: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	slot, err := h.service.Create(r.Context(), req.ToServiceRequest(middleware.IsAdmin(r.Context())))
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrAccessDenied):
			h.logger.Warn("POST /slots - Access denied")
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("POST /slots - Invalid slot: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, slots.ErrCarNotFound):
			h.logger.Warn("POST /slots - Car not found: car_id=%d", *req.CarID)
			handlers.RespondNotFound(w, msgCarNotFound)

		default:
			h.logger.Error("POST /slots - Failed to create slot: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots - Slot created successfully: slot_id=%s", slot.ID)
	handlers.RespondJSON(w, http.StatusCreated, slot)
}
