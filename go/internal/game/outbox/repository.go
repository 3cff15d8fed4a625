package outbox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/scotty-olympics/olympics/go/internal/game/outbox/db"
	"github.com/scotty-olympics/olympics/go/internal/game/outbox/worker"
)

type Repository struct {
	queries *db.Queries
}

func NewRepository(database *sql.DB) *Repository {
	return &Repository{
		queries: db.New(database),
	}
}

func (r *Repository) InsertOutboxEvent(ctx context.Context, gameID uuid.UUID, eventType string, payload []byte) (uuid.UUID, error) {
	id := uuid.New()
	err := r.queries.InsertOutboxEvent(ctx, db.InsertOutboxEventParams{
		ID:        id,
		GameID:    gameID,
		EventType: eventType,
		Payload:   payload,
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert %s outbox event: %w", eventType, err)
	}
	return id, nil
}

func (r *Repository) FetchUnsentOutbox(ctx context.Context, limit int32) ([]worker.OutboxEvent, error) {
	rows, err := r.queries.FetchUnsentOutbox(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unsent outbox events: %w", err)
	}

	events := make([]worker.OutboxEvent, len(rows))
	for i, row := range rows {
		events[i] = dbOutboxToEvent(row)
	}
	return events, nil
}

func (r *Repository) MarkOutboxSent(ctx context.Context, id uuid.UUID) error {
	if err := r.queries.MarkOutboxSent(ctx, id); err != nil {
		return fmt.Errorf("failed to mark outbox event as sent: %w", err)
	}
	return nil
}

func (r *Repository) FetchOutboxByID(ctx context.Context, id uuid.UUID) (*worker.OutboxEvent, error) {
	row, err := r.queries.FetchOutboxByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch outbox event by ID: %w", err)
	}

	event := dbOutboxToEvent(row)
	return &event, nil
}

func dbOutboxToEvent(row db.GameOutbox) worker.OutboxEvent {
	return worker.OutboxEvent{
		ID:        row.ID,
		GameID:    row.GameID,
		EventType: row.EventType,
		Payload:   []byte(row.Payload),
		CreatedAt: row.CreatedAt,
	}
}
