package get_car_bookings

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
	msgInvalidCarID = "некорректный ID автомобиля"
	msgInvalidQuery = "некорректный параметр includeCancelled"
	msgForbidden    = "доступ запрещен"
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

// Handle GET /api/v1/cars/{carId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	carID, err := handlers.Int64Var(r, "carId")
	if err != nil {
		h.logger.Warn("GET /cars/{id}/bookings - Invalid car ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCarID)
		return
	}

	includeCancelled := false
	if v := r.URL.Query().Get("includeCancelled"); v != "" {
		if includeCancelled, err = strconv.ParseBool(v); err != nil {
			h.logger.Warn("GET /cars/{id}/bookings - Invalid includeCancelled: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
	}

	resp, err := h.service.ListByCar(r.Context(), carID, &models.ListBookingsRequest{
		IsAdmin:          middleware.IsAdmin(r.Context()),
		IncludeCancelled: includeCancelled,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /cars/{id}/bookings - Access denied: car_id=%d", carID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /cars/{id}/bookings - Invalid input: car_id=%d", carID)
			handlers.RespondBadRequest(w, msgInvalidCarID)

		default:
			h.logger.Error("GET /cars/{id}/bookings - Failed to list bookings: car_id=%d, error=%v", carID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /cars/{id}/bookings - Listed %d bookings: car_id=%d", len(resp.Bookings), carID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
