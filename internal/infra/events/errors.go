package events

import "errors"

var (
	// ErrNotConfigured возвращается, когда публикация событий выключена
	ErrNotConfigured = errors.New("events: publisher not configured")

	// ErrPublisherClosed возвращается при публикации после Close
	ErrPublisherClosed = errors.New("events: publisher closed")

	// ErrMarshal возвращается при ошибке сериализации события
	ErrMarshal = errors.New("events: failed to marshal event")

	// ErrPublish возвращается при ошибке записи в Kafka
	ErrPublish = errors.New("events: failed to publish event")
)
