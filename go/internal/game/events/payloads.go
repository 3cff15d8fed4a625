package events

import (
	"time"
)

// EventType names a game lifecycle event. It is also the last token of the
// JetStream subject the event is published on.
type EventType string

const (
	GameCreated       EventType = "GameCreated"
	ParticipantJoined EventType = "ParticipantJoined"
	GameStarting      EventType = "GameStarting"
	GameStarted       EventType = "GameStarted"
	GameFinished      EventType = "GameFinished"
	GameReconciled    EventType = "GameReconciled"
)

// Event payload types that are shared between the game app, the relay and the gateway

// GameCreatedPayload is the payload for a GameCreated event
type GameCreatedPayload struct {
	GameID    string    `json:"game_id"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// ParticipantJoinedPayload is the payload for a ParticipantJoined event
type ParticipantJoinedPayload struct {
	GameID        string    `json:"game_id"`
	ParticipantID string    `json:"participant_id"`
	JoinedAt      time.Time `json:"joined_at"`
}

// GameStartingPayload is the payload for a GameStarting event.
// StartsAt is when play begins, after the countdown.
type GameStartingPayload struct {
	GameID       string    `json:"game_id"`
	StartedBy    string    `json:"started_by"`
	StartsAt     time.Time `json:"starts_at"`
	CountdownSec int       `json:"countdown_sec"`
}

// GameStartedPayload is the payload for a GameStarted event
type GameStartedPayload struct {
	GameID    string    `json:"game_id"`
	StartedAt time.Time `json:"started_at"`
	EndsAt    time.Time `json:"ends_at"`
}

// GameFinishedPayload is the payload for a GameFinished event
type GameFinishedPayload struct {
	GameID     string    `json:"game_id"`
	FinishedAt time.Time `json:"finished_at"`
}

// GameResultPayload is one placement within a GameReconciled event
type GameResultPayload struct {
	ParticipantID string `json:"participant_id"`
	Name          string `json:"name"`
	TapCount      int    `json:"tap_count"`
	Rank          int    `json:"rank"`
	ScoreAwarded  int    `json:"score_awarded"`
}

// GameReconciledPayload is the payload for a GameReconciled event
type GameReconciledPayload struct {
	GameID       string              `json:"game_id"`
	EventID      string              `json:"event_id"`
	ReconciledAt time.Time           `json:"reconciled_at"`
	Results      []GameResultPayload `json:"results"`
}
