package get_slot_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/luklinx/carsabeg-sub000/internal/api/handlers"
	"github.com/luklinx/carsabeg-sub000/internal/api/middleware"
	"github.com/luklinx/carsabeg-sub000/internal/service/bookings"
	"github.com/luklinx/carsabeg-sub000/internal/service/bookings/models"
)

const (
	msgInvalidSlotID = "некорректный ID слота"
	msgInvalidQuery  = "некорректный параметр includeCancelled"
	msgNotFound      = "слот не найден"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/slots/{slotId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := handlers.UUIDVar(r, "slotId")
	if err != nil {
		h.logger.Warn("GET /slots/{id}/bookings - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	includeCancelled := false
	if v := r.URL.Query().Get("includeCancelled"); v != "" {
		if includeCancelled, err = strconv.ParseBool(v); err != nil {
			h.logger.Warn("GET /slots/{id}/bookings - Invalid includeCancelled: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
	}

	resp, err := h.service.ListBySlot(r.Context(), slotID, &models.ListBookingsRequest{
		IsAdmin:          middleware.IsAdmin(r.Context()),
		IncludeCancelled: includeCancelled,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /slots/{id}/bookings - Access denied: slot_id=%s", slotID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrSlotNotFound):
			h.logger.Warn("GET /slots/{id}/bookings - Slot not found: slot_id=%s", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /slots/{id}/bookings - Failed to list bookings: slot_id=%s, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots/{id}/bookings - Listed %d bookings: slot_id=%s", len(resp.Bookings), slotID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
