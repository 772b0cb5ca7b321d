package smsgateway

import "errors"

var (
	// ErrNotConfigured возвращается, когда SMS-шлюз не настроен
	ErrNotConfigured = errors.New("smsgateway client: not configured")

	// ErrInvalidRecipient возвращается при пустом номере получателя
	ErrInvalidRecipient = errors.New("smsgateway client: invalid recipient")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("smsgateway client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("smsgateway client: invalid response")
)
