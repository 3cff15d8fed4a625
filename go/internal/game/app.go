package game

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/scotty-olympics/olympics/go/internal/game/events"
	"github.com/scotty-olympics/olympics/go/internal/models"
)

// maxAdvanceSteps bounds AdvanceGame: starting -> in_progress -> finished -> reconciled.
const maxAdvanceSteps = 4

// GameRepository defines what the app layer needs from the repository
type GameRepository interface {
	CreateGame(ctx context.Context, creatorID uuid.UUID, now time.Time) (*models.Game, error)
	AddParticipant(ctx context.Context, gameID, participantID uuid.UUID, now time.Time) (bool, error)
	GetGame(ctx context.Context, id uuid.UUID) (*models.Game, error)
	ListParticipants(ctx context.Context, gameID uuid.UUID) ([]models.GameParticipant, error)
	ListGamesByStatus(ctx context.Context, statuses ...models.GameStatus) ([]*models.Game, error)
	TransitionStatus(ctx context.Context, req TransitionRequest) (*models.Game, bool, error)
	UpdateTapCount(ctx context.Context, gameID, participantID uuid.UUID, tapCount int) (*models.GameParticipant, error)
	ApplyGameResults(ctx context.Context, params ApplyResultsParams) (ApplyResultsOutcome, error)
	FetchNextTransition(ctx context.Context) (*NextTransition, error)
	FetchGamesDueForTransition(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)
}

// OutboxApp defines what the game app needs from the outbox app
type OutboxApp interface {
	InsertEvent(ctx context.Context, gameID uuid.UUID, eventType events.EventType, payload []byte) error
}

// Scheduler is notified of new transition deadlines so it can arm a timer.
type Scheduler interface {
	Schedule(gameID uuid.UUID, at time.Time)
}

// App runs the tap-race game lifecycle
type App struct {
	repo      GameRepository
	outbox    OutboxApp
	clock     clockwork.Clock
	cfg       Config
	scheduler Scheduler
}

// NewApp creates a new game App. outbox may be nil.
func NewApp(repo GameRepository, outbox OutboxApp, clock clockwork.Clock, cfg Config) (*App, error) {
	if cfg.AwardPolicy == "" {
		cfg.AwardPolicy = AwardShared
	}
	if err := cfg.AwardPolicy.validate(); err != nil {
		return nil, err
	}
	if cfg.PlayDuration <= 0 {
		return nil, fmt.Errorf("play duration must be positive")
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &App{
		repo:   repo,
		outbox: outbox,
		clock:  clock,
		cfg:    cfg,
	}, nil
}

// SetScheduler wires the orchestrator after construction; the orchestrator
// itself depends on the App.
func (a *App) SetScheduler(s Scheduler) {
	a.scheduler = s
}

// CreateGame opens a new lobby with the caller as its first participant.
func (a *App) CreateGame(ctx context.Context, callerID uuid.UUID) (*models.GameWithParticipants, error) {
	now := a.clock.Now()
	game, err := a.repo.CreateGame(ctx, callerID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	log.Info().
		Str("game_id", game.ID.String()).
		Str("created_by", callerID.String()).
		Msg("game created")

	a.emit(ctx, game.ID, events.GameCreated, events.GameCreatedPayload{
		GameID:    game.ID.String(),
		CreatedBy: callerID.String(),
		CreatedAt: now,
	})

	return a.loadGame(ctx, game.ID)
}

// JoinGame adds the caller to a waiting game. Joining twice is a no-op.
func (a *App) JoinGame(ctx context.Context, callerID, gameID uuid.UUID) (*models.GameWithParticipants, error) {
	game, err := a.repo.GetGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to join game: %w", err)
	}
	if game.Status != models.GameStatusWaiting {
		return nil, ErrGameNotWaiting
	}

	now := a.clock.Now()
	added, err := a.repo.AddParticipant(ctx, gameID, callerID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to join game: %w", err)
	}
	if !added {
		// Either a repeat join or a start that committed after the check above.
		game, err = a.repo.GetGame(ctx, gameID)
		if err != nil {
			return nil, fmt.Errorf("failed to join game: %w", err)
		}
		if game.Status != models.GameStatusWaiting {
			return nil, ErrGameNotWaiting
		}
		return a.loadGame(ctx, gameID)
	}

	log.Info().
		Str("game_id", gameID.String()).
		Str("participant_id", callerID.String()).
		Msg("participant joined game")

	a.emit(ctx, gameID, events.ParticipantJoined, events.ParticipantJoinedPayload{
		GameID:        gameID.String(),
		ParticipantID: callerID.String(),
		JoinedAt:      now,
	})

	return a.loadGame(ctx, gameID)
}

// GetGame returns a game with its participants.
func (a *App) GetGame(ctx context.Context, gameID uuid.UUID) (*models.GameWithParticipants, error) {
	return a.loadGame(ctx, gameID)
}

// GetActiveGames lists joinable games, newest first. includeRunning adds games
// that are counting down or in play.
func (a *App) GetActiveGames(ctx context.Context, includeRunning bool) ([]*models.GameWithParticipants, error) {
	statuses := []models.GameStatus{models.GameStatusWaiting}
	if includeRunning {
		statuses = append(statuses, models.GameStatusStarting, models.GameStatusInProgress)
	}

	games, err := a.repo.ListGamesByStatus(ctx, statuses...)
	if err != nil {
		return nil, fmt.Errorf("failed to list active games: %w", err)
	}

	out := make([]*models.GameWithParticipants, len(games))
	for i, g := range games {
		participants, err := a.repo.ListParticipants(ctx, g.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list active games: %w", err)
		}
		out[i] = &models.GameWithParticipants{Game: *g, Participants: participants}
	}
	return out, nil
}

// StartGame begins the countdown. Play starts once the countdown elapses and
// the game finishes PlayDuration later; both transitions are persisted as
// next_transition_at and driven by the orchestrator.
func (a *App) StartGame(ctx context.Context, callerID, gameID uuid.UUID) (*models.GameWithParticipants, error) {
	game, err := a.loadGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}
	if !game.HasParticipant(callerID) {
		return nil, ErrNotGameParticipant
	}
	if game.Status != models.GameStatusWaiting {
		return nil, ErrGameNotWaiting
	}

	startsAt := a.clock.Now().Add(a.cfg.Countdown)
	_, applied, err := a.repo.TransitionStatus(ctx, TransitionRequest{
		GameID:           gameID,
		From:             models.GameStatusWaiting,
		To:               models.GameStatusStarting,
		StartedAt:        &startsAt,
		NextTransitionAt: &startsAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}
	if !applied {
		return nil, ErrGameAlreadyStarted
	}

	log.Info().
		Str("game_id", gameID.String()).
		Str("started_by", callerID.String()).
		Time("starts_at", startsAt).
		Msg("game countdown started")

	a.emit(ctx, gameID, events.GameStarting, events.GameStartingPayload{
		GameID:       gameID.String(),
		StartedBy:    callerID.String(),
		StartsAt:     startsAt,
		CountdownSec: int(a.cfg.Countdown / time.Second),
	})
	a.schedule(gameID, startsAt)

	return a.loadGame(ctx, gameID)
}

// UpdateTapCount overwrites the caller's running tap total. Last write wins.
func (a *App) UpdateTapCount(ctx context.Context, callerID, gameID uuid.UUID, tapCount int) (*models.GameParticipant, error) {
	if tapCount < 0 {
		return nil, ErrInvalidTapCount
	}

	p, err := a.repo.UpdateTapCount(ctx, gameID, callerID, tapCount)
	if err != nil {
		return nil, fmt.Errorf("failed to update tap count: %w", err)
	}
	if p != nil {
		return p, nil
	}

	// Nothing matched: work out why.
	game, err := a.repo.GetGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to update tap count: %w", err)
	}
	if game.Status != models.GameStatusInProgress {
		return nil, ErrGameNotInProgress
	}
	return nil, ErrNotGameParticipant
}

// FinishGame returns the final standings of a finished game, reconciling
// scores first if that has not happened yet. A game whose play deadline has
// passed is finished on the spot. Calling it again never re-awards points.
func (a *App) FinishGame(ctx context.Context, callerID, gameID uuid.UUID) (*models.GameWithParticipants, error) {
	game, err := a.loadGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to finish game: %w", err)
	}
	if !game.HasParticipant(callerID) {
		return nil, ErrNotGameParticipant
	}

	if game.Status != models.GameStatusFinished || !game.IsReconciled() {
		if err := a.AdvanceGame(ctx, gameID); err != nil {
			return nil, fmt.Errorf("failed to finish game: %w", err)
		}
		if game, err = a.loadGame(ctx, gameID); err != nil {
			return nil, fmt.Errorf("failed to finish game: %w", err)
		}
	}

	if game.Status != models.GameStatusFinished {
		return nil, ErrGameNotFinished
	}
	return game, nil
}

// AdvanceGame performs every transition of gameID that is due now, and
// reconciles the game once it is finished. Losing a compare-and-swap to a
// concurrent writer is not an error.
func (a *App) AdvanceGame(ctx context.Context, gameID uuid.UUID) error {
	for step := 0; step < maxAdvanceSteps; step++ {
		game, err := a.repo.GetGame(ctx, gameID)
		if err != nil {
			return fmt.Errorf("failed to advance game: %w", err)
		}
		now := a.clock.Now()

		switch game.Status {
		case models.GameStatusWaiting:
			return nil

		case models.GameStatusStarting, models.GameStatusInProgress:
			if !isDue(game, now) {
				if game.NextTransitionAt != nil {
					a.schedule(gameID, *game.NextTransitionAt)
				}
				return nil
			}
			if err := a.transition(ctx, game, now); err != nil {
				return err
			}

		case models.GameStatusFinished:
			if game.IsReconciled() {
				return nil
			}
			return a.reconcile(ctx, game)

		default:
			return fmt.Errorf("game %s has unknown status %q", gameID, game.Status)
		}
	}
	return nil
}

// transition moves a due game one step forward.
func (a *App) transition(ctx context.Context, game *models.Game, now time.Time) error {
	req := TransitionRequest{GameID: game.ID, From: game.Status}
	switch game.Status {
	case models.GameStatusStarting:
		startedAt := now
		if game.StartedAt != nil {
			startedAt = *game.StartedAt
		}
		endsAt := startedAt.Add(a.cfg.PlayDuration)
		req.To = models.GameStatusInProgress
		req.StartedAt = &startedAt
		req.NextTransitionAt = &endsAt
	case models.GameStatusInProgress:
		// next_transition_at on a finished game marks reconciliation as pending.
		req.To = models.GameStatusFinished
		req.FinishedAt = &now
		req.NextTransitionAt = &now
	}

	updated, applied, err := a.repo.TransitionStatus(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to advance game: %w", err)
	}
	if !applied {
		log.Info().
			Str("game_id", game.ID.String()).
			Str("from", string(req.From)).
			Str("to", string(req.To)).
			Msg("transition already applied by another writer")
		return nil
	}

	log.Info().
		Str("game_id", game.ID.String()).
		Str("status", string(updated.Status)).
		Int("version", updated.Version).
		Msg("game advanced")

	switch updated.Status {
	case models.GameStatusInProgress:
		a.emit(ctx, game.ID, events.GameStarted, events.GameStartedPayload{
			GameID:    game.ID.String(),
			StartedAt: *req.StartedAt,
			EndsAt:    *req.NextTransitionAt,
		})
		a.schedule(game.ID, *req.NextTransitionAt)
	case models.GameStatusFinished:
		a.emit(ctx, game.ID, events.GameFinished, events.GameFinishedPayload{
			GameID:     game.ID.String(),
			FinishedAt: now,
		})
	}
	return nil
}

// reconcile ranks a finished game and writes the results exactly once.
func (a *App) reconcile(ctx context.Context, game *models.Game) error {
	participants, err := a.repo.ListParticipants(ctx, game.ID)
	if err != nil {
		return fmt.Errorf("failed to reconcile game: %w", err)
	}
	placements := RankParticipants(participants, a.cfg.AwardPolicy)

	now := a.clock.Now()
	outcome, err := a.repo.ApplyGameResults(ctx, ApplyResultsParams{
		GameID:           game.ID,
		EventName:        a.cfg.EventName,
		EventDescription: a.cfg.EventDescription,
		Placements:       placements,
		ReconciledAt:     now,
	})
	if err != nil {
		return fmt.Errorf("failed to reconcile game: %w", err)
	}
	if !outcome.Applied {
		log.Info().Str("game_id", game.ID.String()).Msg("game already reconciled")
		return nil
	}

	log.Info().
		Str("game_id", game.ID.String()).
		Str("event_id", outcome.EventID.String()).
		Int("participants", len(placements)).
		Msg("game reconciled")

	results := make([]events.GameResultPayload, len(placements))
	for i, p := range placements {
		results[i] = events.GameResultPayload{
			ParticipantID: p.ParticipantID.String(),
			Name:          p.Name,
			TapCount:      p.TapCount,
			Rank:          p.Rank,
			ScoreAwarded:  p.ScoreAwarded,
		}
	}
	a.emit(ctx, game.ID, events.GameReconciled, events.GameReconciledPayload{
		GameID:       game.ID.String(),
		EventID:      outcome.EventID.String(),
		ReconciledAt: now,
		Results:      results,
	})
	return nil
}

// FetchNextTransition returns the earliest pending deadline, or nil when no
// game is waiting on one.
func (a *App) FetchNextTransition(ctx context.Context) (*NextTransition, error) {
	next, err := a.repo.FetchNextTransition(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch next transition: %w", err)
	}
	return next, nil
}

// FetchGamesDueForTransition returns up to limit games whose deadline has passed.
func (a *App) FetchGamesDueForTransition(ctx context.Context, limit int) ([]uuid.UUID, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0")
	}
	ids, err := a.repo.FetchGamesDueForTransition(ctx, a.clock.Now(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch due games: %w", err)
	}
	return ids, nil
}

func (a *App) loadGame(ctx context.Context, gameID uuid.UUID) (*models.GameWithParticipants, error) {
	game, err := a.repo.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	participants, err := a.repo.ListParticipants(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return &models.GameWithParticipants{Game: *game, Participants: participants}, nil
}

func (a *App) schedule(gameID uuid.UUID, at time.Time) {
	if a.scheduler != nil {
		a.scheduler.Schedule(gameID, at)
	}
}

// emit records a lifecycle event in the outbox. Failures are logged only.
func (a *App) emit(ctx context.Context, gameID uuid.UUID, eventType events.EventType, payload any) {
	if a.outbox == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("game_id", gameID.String()).Str("event_type", string(eventType)).Msg("failed to marshal event payload")
		return
	}
	if err := a.outbox.InsertEvent(ctx, gameID, eventType, data); err != nil {
		log.Error().Err(err).Str("game_id", gameID.String()).Str("event_type", string(eventType)).Msg("failed to insert outbox event")
	}
}

func isDue(g *models.Game, now time.Time) bool {
	return g.NextTransitionAt != nil && !now.Before(*g.NextTransitionAt)
}
