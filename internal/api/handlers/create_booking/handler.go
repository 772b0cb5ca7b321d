package create_booking

import (
	"errors"
	"net/http"

	"github.com/luklinx/carsabeg-sub000/internal/api/handlers"
	createBooking "github.com/luklinx/carsabeg-sub000/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidInput       = "некорректные данные бронирования"
	msgSlotNotFound       = "слот не найден"
	msgCarNotFound        = "автомобиль не найден"
	msgSlotFull           = "в слоте не осталось свободных мест"
	msgSlotStarted        = "слот уже начался"
	msgDuplicateBooking   = "осмотр этого автомобиля на это время уже забронирован"
	msgBusy               = "слот занят другой операцией, повторите запрос"
	retryAfterBusySeconds = 1
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /bookings - Validation failed: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: %v", err)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrCarNotFound):
			h.logger.Warn("POST /bookings - Car not found: %v", err)
			handlers.RespondNotFound(w, msgCarNotFound)

		case errors.Is(err, createBooking.ErrSlotFull):
			h.logger.Info("POST /bookings - Slot full: %v", err)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, createBooking.ErrSlotStarted):
			h.logger.Warn("POST /bookings - Slot started: %v", err)
			handlers.RespondConflict(w, msgSlotStarted)

		case errors.Is(err, createBooking.ErrDuplicateBooking):
			h.logger.Warn("POST /bookings - Duplicate booking: %v", err)
			handlers.RespondConflict(w, msgDuplicateBooking)

		case errors.Is(err, createBooking.ErrBusy):
			h.logger.Warn("POST /bookings - Slot busy: %v", err)
			handlers.RespondServiceUnavailable(w, msgBusy, retryAfterBusySeconds)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, kind=%s, notification=%s",
		result.Booking.ID, result.Booking.Kind(), result.Notification)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
