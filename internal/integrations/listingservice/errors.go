package listingservice

import "errors"

var (
	// ErrCarNotFound возвращается, когда объявление об автомобиле не найдено
	ErrCarNotFound = errors.New("listingservice client: car not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("listingservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("listingservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что ListingService недоступен и данные автомобиля следует опустить
	ErrServiceDegraded = errors.New("listingservice unavailable: graceful degradation applied")
)
