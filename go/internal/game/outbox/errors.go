package outbox

import "errors"

var (
	ErrEmptyPayload     = errors.New("event payload cannot be empty")
	ErrUnknownEventType = errors.New("unknown event type")
)
