package leaderboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/scotty-olympics/olympics/go/internal/models"
	"github.com/scotty-olympics/olympics/go/internal/ranking"
)

// LeaderboardRepository defines what the app layer needs from the repository
type LeaderboardRepository interface {
	ListEvents(ctx context.Context) ([]*models.Event, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error)
	CreateEvent(ctx context.Context, name string, description *string, displayOrder *int) (*models.Event, error)
	EnsureEvent(ctx context.Context, name string, description *string) (*models.Event, error)
	UpsertScore(ctx context.Context, participantID, eventID uuid.UUID, rank *int, points int) (*models.Score, error)
	ListEventStandings(ctx context.Context, eventID uuid.UUID) ([]models.Standing, error)
	ListOverallStandings(ctx context.Context) ([]models.Standing, error)
}

// App manages the event catalogue and the cumulative score ledger
type App struct {
	repo LeaderboardRepository
}

// NewApp creates a new leaderboard App
func NewApp(repo LeaderboardRepository) *App {
	return &App{
		repo: repo,
	}
}

// CreateEventRequest carries the fields of a new event
type CreateEventRequest struct {
	Name         string
	Description  *string
	DisplayOrder *int
}

// RecordScoreRequest carries a manually entered result
type RecordScoreRequest struct {
	ParticipantID uuid.UUID
	EventID       uuid.UUID
	// Rank is optional; nil leaves the best rank untouched.
	Rank   *int
	Points int
}

// EventStandings is an event together with its ranked standings
type EventStandings struct {
	Event     *models.Event
	Standings []models.Standing
}

func (a *App) ListEvents(ctx context.Context) ([]*models.Event, error) {
	events, err := a.repo.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (a *App) CreateEvent(ctx context.Context, req CreateEventRequest) (*models.Event, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalidEventName
	}

	event, err := a.repo.CreateEvent(ctx, name, req.Description, req.DisplayOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	log.Info().Str("event_id", event.ID.String()).Str("name", event.Name).Msg("event created")
	return event, nil
}

// EnsureEvent returns the event called name, creating it when missing.
func (a *App) EnsureEvent(ctx context.Context, name, description string) (*models.Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidEventName
	}

	var desc *string
	if description != "" {
		desc = &description
	}
	event, err := a.repo.EnsureEvent(ctx, name, desc)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure event %q: %w", name, err)
	}
	return event, nil
}

// RecordScore adds points to a participant's ledger row for an event.
// Points accumulate and the stored rank keeps the best one seen.
func (a *App) RecordScore(ctx context.Context, req RecordScoreRequest) (*models.Score, error) {
	if req.Rank != nil && *req.Rank < 1 {
		return nil, ErrInvalidRank
	}
	if _, err := a.repo.GetEvent(ctx, req.EventID); err != nil {
		return nil, fmt.Errorf("failed to record score: %w", err)
	}

	score, err := a.repo.UpsertScore(ctx, req.ParticipantID, req.EventID, req.Rank, req.Points)
	if err != nil {
		return nil, fmt.Errorf("failed to record score: %w", err)
	}

	log.Info().
		Str("participant_id", req.ParticipantID.String()).
		Str("event_id", req.EventID.String()).
		Int("points", req.Points).
		Int("total", score.Points).
		Msg("score recorded")
	return score, nil
}

func (a *App) GetEventStandings(ctx context.Context, eventID uuid.UUID) (*EventStandings, error) {
	event, err := a.repo.GetEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event standings: %w", err)
	}

	standings, err := a.repo.ListEventStandings(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event standings: %w", err)
	}
	rankStandings(standings)

	return &EventStandings{Event: event, Standings: standings}, nil
}

func (a *App) GetOverallStandings(ctx context.Context) ([]models.Standing, error) {
	standings, err := a.repo.ListOverallStandings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get overall standings: %w", err)
	}
	rankStandings(standings)
	return standings, nil
}

// rankStandings assigns competition ranks to standings sorted by points descending.
func rankStandings(standings []models.Standing) {
	ranks := ranking.Competition(len(standings), func(i, j int) bool {
		return standings[i].Points == standings[j].Points
	})
	for i := range standings {
		standings[i].Rank = ranks[i]
	}
}
