package cancel_slot_bookings

import (
	"errors"
	"net/http"

	"github.com/luklinx/carsabeg-sub000/internal/api/handlers"
	"github.com/luklinx/carsabeg-sub000/internal/api/middleware"
	"github.com/luklinx/carsabeg-sub000/internal/service/bookings"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgNotFound           = "слот не найден"
	msgForbidden          = "доступ запрещен"
	msgBusy               = "слот занят другой операцией, повторите запрос"
	retryAfterBusySeconds = 1
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/{slotId}/cancel-bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := handlers.UUIDVar(r, "slotId")
	if err != nil {
		h.logger.Warn("POST /slots/{id}/cancel-bookings - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	resp, err := h.service.CancelAllForSlot(r.Context(), slotID, middleware.IsAdmin(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("POST /slots/{id}/cancel-bookings - Access denied: slot_id=%s", slotID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrSlotNotFound):
			h.logger.Warn("POST /slots/{id}/cancel-bookings - Slot not found: slot_id=%s", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrBusy):
			h.logger.Warn("POST /slots/{id}/cancel-bookings - Slot busy: slot_id=%s", slotID)
			handlers.RespondServiceUnavailable(w, msgBusy, retryAfterBusySeconds)

		default:
			h.logger.Error("POST /slots/{id}/cancel-bookings - Failed to cancel bookings: slot_id=%s, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/{id}/cancel-bookings - Cancelled %d bookings: slot_id=%s", resp.CancelledCount, slotID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
