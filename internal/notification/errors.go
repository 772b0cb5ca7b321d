package notification

import "errors"

var (
	// ErrNotConfigured канал не настроен, отправка не выполнялась
	ErrNotConfigured = errors.New("notification: channel not configured")

	// ErrNoRecipient у уведомления нет получателя для данного канала
	ErrNoRecipient = errors.New("notification: no recipient")

	// ErrDispatcherClosed диспетчер уже остановлен
	ErrDispatcherClosed = errors.New("notification: dispatcher closed")
)
