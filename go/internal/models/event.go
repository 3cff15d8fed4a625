package models

import (
	"time"

	"github.com/google/uuid"
)

// Event is a competition that participants earn points in.
type Event struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	DisplayOrder *int      `json:"display_order,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Score is the cumulative ledger row for one participant in one event.
// Points accumulate across results; Rank keeps the best (lowest) rank seen.
type Score struct {
	ID            uuid.UUID `json:"id"`
	ParticipantID uuid.UUID `json:"participant_id"`
	EventID       uuid.UUID `json:"event_id"`
	Rank          *int      `json:"rank,omitempty"`
	Points        int       `json:"points"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Standing is one row of a ranked leaderboard.
type Standing struct {
	ParticipantID uuid.UUID `json:"participant_id"`
	Name          string    `json:"name"`
	AvatarKey     *string   `json:"avatar_key,omitempty"`
	Points        int       `json:"points"`
	Rank          int       `json:"rank"`
	// BestRank is the participant's best recorded rank within the event, when scoped to one.
	BestRank *int `json:"best_rank,omitempty"`
}
