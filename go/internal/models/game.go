package models

import (
	"time"

	"github.com/google/uuid"
)

// GameStatus defines the lifecycle state of a tap game.
type GameStatus string

const (
	GameStatusWaiting    GameStatus = "waiting"
	GameStatusStarting   GameStatus = "starting"
	GameStatusInProgress GameStatus = "in_progress"
	GameStatusFinished   GameStatus = "finished"
)

// Game is one session of the tap-race minigame.
type Game struct {
	ID        uuid.UUID  `json:"id"`
	Status    GameStatus `json:"status"`
	CreatedBy uuid.UUID  `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
	// StartedAt is the moment play begins, i.e. the end of the countdown.
	StartedAt        *time.Time   `json:"started_at,omitempty"`
	FinishedAt       *time.Time   `json:"finished_at,omitempty"`
	NextTransitionAt *time.Time   `json:"next_transition_at,omitempty"`
	ReconciledAt     *time.Time   `json:"reconciled_at,omitempty"`
	Version          int          `json:"version"`
	Results          []GameResult `json:"results,omitempty"`
}

// IsReconciled reports whether ranks and points were already written for the game.
func (g *Game) IsReconciled() bool {
	return g.ReconciledAt != nil
}

// GameParticipant is a participant's membership and tap count in one game.
type GameParticipant struct {
	ID            uuid.UUID `json:"id"`
	GameID        uuid.UUID `json:"game_id"`
	ParticipantID uuid.UUID `json:"participant_id"`
	TapCount      int       `json:"tap_count"`
	Rank          *int      `json:"rank,omitempty"`
	ScoreAwarded  *int      `json:"score_awarded,omitempty"`
	JoinedAt      time.Time `json:"joined_at"`

	// Denormalized participant fields for display.
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	AvatarKey *string `json:"avatar_key,omitempty"`
}

// GameResult is one row of the final standings snapshot stored on a finished game.
type GameResult struct {
	ParticipantID uuid.UUID `json:"participant_id"`
	Name          string    `json:"name"`
	TapCount      int       `json:"tap_count"`
	Rank          int       `json:"rank"`
	ScoreAwarded  int       `json:"score_awarded"`
}

// GameWithParticipants is the read model returned to clients.
type GameWithParticipants struct {
	Game
	Participants []GameParticipant `json:"participants"`
}

// HasParticipant reports whether participantID is a member of the game.
func (g *GameWithParticipants) HasParticipant(participantID uuid.UUID) bool {
	for _, p := range g.Participants {
		if p.ParticipantID == participantID {
			return true
		}
	}
	return false
}
