package create_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/luklinx/carsabeg-sub000/internal/domain"
)

// validateRequester валидирует контактные данные и приводит их к каноническому виду
func validateRequester(req *Request) (domain.Requester, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)

	if name == "" {
		return domain.Requester{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxRequesterNameLen {
		return domain.Requester{}, fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxRequesterNameLen)
	}

	if phone == "" {
		return domain.Requester{}, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(phone) > domain.MaxRequesterPhoneLen {
		return domain.Requester{}, fmt.Errorf("%w: phone must be at most %d characters", ErrInvalidInput, domain.MaxRequesterPhoneLen)
	}

	r := domain.Requester{Name: name, Phone: phone}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if utf8.RuneCountInString(email) > domain.MaxRequesterEmailLen {
			return domain.Requester{}, fmt.Errorf("%w: email must be at most %d characters", ErrInvalidInput, domain.MaxRequesterEmailLen)
		}
		if email != "" {
			r.Email = &email
		}
	}

	if req.Message != nil {
		msg := strings.TrimSpace(*req.Message)
		if utf8.RuneCountInString(msg) > domain.MaxMessageLength {
			return domain.Requester{}, fmt.Errorf("%w: message must be at most %d characters", ErrInvalidInput, domain.MaxMessageLength)
		}
		if msg != "" {
			r.Message = &msg
		}
	}

	return r, nil
}

// resolveTarget определяет, что бронируется: место в слоте или произвольное время осмотра
func resolveTarget(req *Request) (domain.BookingTarget, error) {
	if req.CarID != nil && *req.CarID <= 0 {
		return nil, fmt.Errorf("%w: carId must be positive", ErrInvalidInput)
	}

	if req.SlotID != nil {
		if req.ScheduledTime != nil {
			return nil, fmt.Errorf("%w: scheduledTime cannot be combined with slotId", ErrInvalidInput)
		}
		return domain.SlotTarget{SlotID: *req.SlotID, CarID: req.CarID}, nil
	}

	if req.CarID == nil || req.ScheduledTime == nil {
		return nil, fmt.Errorf("%w: either slotId or carId with scheduledTime is required", ErrInvalidInput)
	}
	if req.ScheduledTime.IsZero() {
		return nil, fmt.Errorf("%w: scheduledTime is required", ErrInvalidInput)
	}

	return domain.AdHocTarget{CarID: *req.CarID, ScheduledTime: domain.NormalizeInstant(*req.ScheduledTime)}, nil
}
