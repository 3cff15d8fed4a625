package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/scotty-olympics/olympics/go/internal/config"
)

// AwardPolicy decides which rank-1 players receive the winner bonus.
type AwardPolicy string

const (
	// AwardShared gives the bonus to every player tied for first.
	AwardShared AwardPolicy = config.AwardPolicyShared
	// AwardOutright gives the bonus only to a sole winner.
	AwardOutright AwardPolicy = config.AwardPolicyOutright
)

// WinnerBonusPoints is awarded to winners of games with more than one player.
const WinnerBonusPoints = 1

// Config holds the game rules the app enforces.
type Config struct {
	Countdown        time.Duration
	PlayDuration     time.Duration
	EventName        string
	EventDescription string
	AwardPolicy      AwardPolicy
}

// ConfigFromRules builds a Config from the loaded game.yaml rules.
func ConfigFromRules(r config.GameRules) Config {
	return Config{
		Countdown:        r.Countdown,
		PlayDuration:     r.PlayDuration,
		EventName:        r.EventName,
		EventDescription: r.EventDescription,
		AwardPolicy:      AwardPolicy(r.AwardPolicy),
	}
}

func DefaultConfig() Config {
	return ConfigFromRules(config.DefaultGameRules())
}

// Placement is one participant's final standing in a game.
type Placement struct {
	ParticipantID uuid.UUID
	Name          string
	TapCount      int
	Rank          int
	ScoreAwarded  int
}

// ApplyResultsParams is everything the reconciliation transaction writes.
type ApplyResultsParams struct {
	GameID           uuid.UUID
	EventName        string
	EventDescription string
	Placements       []Placement
	ReconciledAt     time.Time
}

// ApplyResultsOutcome reports what the reconciliation transaction did.
// Applied is false when another caller already reconciled the game.
type ApplyResultsOutcome struct {
	Applied bool
	EventID uuid.UUID
}

// NextTransition is the earliest pending deadline across all games.
type NextTransition struct {
	GameID uuid.UUID
	DueAt  time.Time
}

func (p AwardPolicy) validate() error {
	switch p {
	case AwardShared, AwardOutright:
		return nil
	default:
		return fmt.Errorf("unknown award policy %q", p)
	}
}
