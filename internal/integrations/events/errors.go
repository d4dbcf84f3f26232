package events

import "errors"

var (
	// ErrEncodeEvent событие не удалось сериализовать
	ErrEncodeEvent = errors.New("events: failed to encode event")

	// ErrPublish брокер не принял сообщение
	ErrPublish = errors.New("events: failed to publish event")
)
