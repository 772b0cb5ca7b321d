package delete_slot

import (
	"errors"
	"net/http"

	"github.com/luklinx/carsabeg-sub000/internal/api/handlers"
	"github.com/luklinx/carsabeg-sub000/internal/api/middleware"
	"github.com/luklinx/carsabeg-sub000/internal/service/slots"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgNotFound           = "слот не найден"
	msgForbidden          = "доступ запрещен"
	msgHasActiveBookings  = "у слота есть активные бронирования, сначала отмените их"
	msgBusy               = "слот занят другой операцией, повторите запрос"
	retryAfterBusySeconds = 1
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

// Handle DELETE /api/v1/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := handlers.UUIDVar(r, "slotId")
	if err != nil {
		h.logger.Warn("DELETE /slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	err = h.service.Delete(r.Context(), slotID, middleware.IsAdmin(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrAccessDenied):
			h.logger.Warn("DELETE /slots/{id} - Access denied: slot_id=%s", slotID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("DELETE /slots/{id} - Slot not found: slot_id=%s", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, slots.ErrSlotHasActiveBookings):
			h.logger.Warn("DELETE /slots/{id} - Slot has active bookings: slot_id=%s", slotID)
			handlers.RespondConflict(w, msgHasActiveBookings)

		case errors.Is(err, slots.ErrBusy):
			h.logger.Warn("DELETE /slots/{id} - Slot busy: slot_id=%s", slotID)
			handlers.RespondServiceUnavailable(w, msgBusy, retryAfterBusySeconds)

		default:
			h.logger.Error("DELETE /slots/{id} - Failed to delete slot: slot_id=%s, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /slots/{id} - Slot deleted successfully: slot_id=%s", slotID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
