package worker

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OutboxEvent is one unsent row of the game outbox.
type OutboxEvent struct {
	ID        uuid.UUID
	GameID    uuid.UUID
	EventType string
	Payload   []byte
	CreatedAt time.Time
}

// EventPublisher delivers an outbox event to the message bus.
type EventPublisher interface {
	Publish(ctx context.Context, event OutboxEvent) error
}

// EventSource is the slice of the outbox app the relay needs.
type EventSource interface {
	GetEventByID(ctx context.Context, eventID uuid.UUID) (*OutboxEvent, error)
	FetchUnsentEvents(ctx context.Context, limit int32) ([]OutboxEvent, error)
	MarkEventSent(ctx context.Context, eventID uuid.UUID) error
}
