package emailservice

import "errors"

var (
	// ErrNotConfigured возвращается, когда email-провайдер не настроен
	ErrNotConfigured = errors.New("emailservice client: not configured")

	// ErrInvalidRecipient возвращается при пустом адресе получателя
	ErrInvalidRecipient = errors.New("emailservice client: invalid recipient")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("emailservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от провайдера
	ErrInvalidResponse = errors.New("emailservice client: invalid response")
)
