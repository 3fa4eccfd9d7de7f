package events

import "errors"

var (
	// ErrConnect возвращается, когда не удалось подключиться к NATS
	ErrConnect = errors.New("events publisher: failed to connect")

	// ErrMarshal возвращается при ошибке сериализации события
	ErrMarshal = errors.New("events publisher: failed to marshal event")

	// ErrPublish возвращается при ошибке отправки события
	ErrPublish = errors.New("events publisher: failed to publish event")
)
