package create_booking

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден или удален
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrCarNotFound возвращается, когда автомобиль не найден в ListingService
	ErrCarNotFound = errors.New("create_booking: car not found")

	// ErrSlotFull возвращается, когда все места в слоте заняты
	ErrSlotFull = errors.New("create_booking: slot is full")

	// ErrSlotStarted возвращается при попытке забронировать уже начавшийся слот
	ErrSlotStarted = errors.New("create_booking: slot has already started")

	// ErrDuplicateBooking возвращается, когда на это время уже есть активное ad-hoc бронирование автомобиля
	ErrDuplicateBooking = errors.New("create_booking: inspection already booked for this car at this time")

	// ErrBusy возвращается, когда блокировку слота не удалось получить вовремя. Запрос можно повторить
	ErrBusy = errors.New("create_booking: slot is busy, retry later")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
