package slots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot not found")

	// ErrCarNotFound возвращается, когда автомобиль не найден в ListingService
	ErrCarNotFound = errors.New("car not found")

	// ErrAccessDenied возвращается, когда операция требует прав администратора
	ErrAccessDenied = errors.New("access denied")

	// ErrSlotHasActiveBookings возвращается при попытке удалить слот с активными бронированиями
	ErrSlotHasActiveBookings = errors.New("slot has active bookings")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrBusy возвращается, когда блокировку слота не удалось получить вовремя
	ErrBusy = errors.New("slot is busy, retry later")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
