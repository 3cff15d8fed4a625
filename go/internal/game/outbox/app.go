package outbox

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/scotty-olympics/olympics/go/internal/game/events"
	"github.com/scotty-olympics/olympics/go/internal/game/outbox/worker"
)

// OutboxRepository defines what the app layer needs from the repository
type OutboxRepository interface {
	InsertOutboxEvent(ctx context.Context, gameID uuid.UUID, eventType string, payload []byte) (uuid.UUID, error)
	FetchUnsentOutbox(ctx context.Context, limit int32) ([]worker.OutboxEvent, error)
	MarkOutboxSent(ctx context.Context, id uuid.UUID) error
	FetchOutboxByID(ctx context.Context, id uuid.UUID) (*worker.OutboxEvent, error)
}

// App handles outbox business logic
type App struct {
	repo OutboxRepository
}

// NewApp creates a new outbox App
func NewApp(repo OutboxRepository) *App {
	return &App{
		repo: repo,
	}
}

// InsertEvent records a game lifecycle event for the relay to publish.
func (a *App) InsertEvent(ctx context.Context, gameID uuid.UUID, eventType events.EventType, payload []byte) error {
	if !knownEventType(eventType) {
		return fmt.Errorf("%w: %q", ErrUnknownEventType, eventType)
	}
	if len(payload) == 0 {
		return fmt.Errorf("invalid %s payload: %w", eventType, ErrEmptyPayload)
	}

	id, err := a.repo.InsertOutboxEvent(ctx, gameID, string(eventType), payload)
	if err != nil {
		return fmt.Errorf("failed to insert %s event: %w", eventType, err)
	}

	log.Info().
		Str("game_id", gameID.String()).
		Str("event_id", id.String()).
		Str("event_type", string(eventType)).
		Msg("outbox event inserted")

	return nil
}

// FetchUnsentEvents fetches unsent outbox events
func (a *App) FetchUnsentEvents(ctx context.Context, limit int32) ([]worker.OutboxEvent, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0")
	}

	events, err := a.repo.FetchUnsentOutbox(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unsent events: %w", err)
	}

	if len(events) > 0 {
		log.Debug().
			Int("count", len(events)).
			Msg("fetched unsent outbox events")
	}

	return events, nil
}

// MarkEventSent marks an outbox event as sent
func (a *App) MarkEventSent(ctx context.Context, eventID uuid.UUID) error {
	if err := a.repo.MarkOutboxSent(ctx, eventID); err != nil {
		return fmt.Errorf("failed to mark event as sent: %w", err)
	}

	log.Debug().
		Str("event_id", eventID.String()).
		Msg("marked outbox event as sent")

	return nil
}

// GetEventByID fetches an unsent outbox event. It returns nil when the event
// does not exist or was already sent.
func (a *App) GetEventByID(ctx context.Context, eventID uuid.UUID) (*worker.OutboxEvent, error) {
	event, err := a.repo.FetchOutboxByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event by ID: %w", err)
	}
	return event, nil
}

func knownEventType(t events.EventType) bool {
	switch t {
	case events.GameCreated,
		events.ParticipantJoined,
		events.GameStarting,
		events.GameStarted,
		events.GameFinished,
		events.GameReconciled:
		return true
	default:
		return false
	}
}
