package game

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	"github.com/scotty-olympics/olympics/go/internal/game/db"
	"github.com/scotty-olympics/olympics/go/internal/models"
	"github.com/scotty-olympics/olympics/go/internal/sqlutil"
)

// Repository implements game persistence on Postgres
type Repository struct {
	db      *sql.DB
	queries *db.Queries
}

// NewRepository creates a new game repository
func NewRepository(database *sql.DB) *Repository {
	return &Repository{
		db:      database,
		queries: db.New(database),
	}
}

// TransitionRequest describes a compare-and-swap status change.
// Nil StartedAt/FinishedAt keep the stored values; NextTransitionAt is always written.
type TransitionRequest struct {
	GameID           uuid.UUID
	From             models.GameStatus
	To               models.GameStatus
	StartedAt        *time.Time
	FinishedAt       *time.Time
	NextTransitionAt *time.Time
}

func (r *Repository) CreateGame(ctx context.Context, creatorID uuid.UUID, now time.Time) (*models.Game, error) {
	var game db.Game
	err := sqlutil.Run(ctx, r.db, r.queries.WithTx, func(q *db.Queries) error {
		var err error
		game, err = q.CreateGame(ctx, db.CreateGameParams{
			ID:        uuid.New(),
			CreatedBy: creatorID,
			CreatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("insert game: %w", err)
		}
		if _, err := q.AddGameParticipant(ctx, db.AddGameParticipantParams{
			ID:            uuid.New(),
			GameID:        game.ID,
			ParticipantID: creatorID,
			JoinedAt:      now,
		}); err != nil {
			return fmt.Errorf("insert creator: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	return dbGameToModel(game)
}

// AddParticipant inserts a membership row while the game is waiting. It
// reports false when the participant had already joined or the game has left
// the waiting state.
func (r *Repository) AddParticipant(ctx context.Context, gameID, participantID uuid.UUID, now time.Time) (bool, error) {
	n, err := r.queries.AddGameParticipant(ctx, db.AddGameParticipantParams{
		ID:            uuid.New(),
		GameID:        gameID,
		ParticipantID: participantID,
		JoinedAt:      now,
	})
	if err != nil {
		return false, fmt.Errorf("failed to add game participant: %w", err)
	}
	return n > 0, nil
}

func (r *Repository) GetGame(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	row, err := r.queries.GetGame(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return dbGameToModel(row)
}

func (r *Repository) ListParticipants(ctx context.Context, gameID uuid.UUID) ([]models.GameParticipant, error) {
	rows, err := r.queries.ListGameParticipants(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list game participants: %w", err)
	}
	out := make([]models.GameParticipant, len(rows))
	for i, row := range rows {
		out[i] = dbParticipantToModel(db.UpdateTapCountRow(row))
	}
	return out, nil
}

func (r *Repository) ListGamesByStatus(ctx context.Context, statuses ...models.GameStatus) ([]*models.Game, error) {
	dbStatuses := make([]db.GameStatus, len(statuses))
	for i, s := range statuses {
		dbStatuses[i] = db.GameStatus(s)
	}

	rows, err := r.queries.ListGamesByStatuses(ctx, dbStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	out := make([]*models.Game, 0, len(rows))
	for _, row := range rows {
		g, err := dbGameToModel(row)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

// TransitionStatus applies req only if the game is still in req.From.
// It returns the updated game and true, or (nil, false) when the swap lost.
func (r *Repository) TransitionStatus(ctx context.Context, req TransitionRequest) (*models.Game, bool, error) {
	row, err := r.queries.TransitionGameStatus(ctx, db.TransitionGameStatusParams{
		ToStatus:         db.GameStatus(req.To),
		StartedAt:        sqlutil.ToSqlTime(req.StartedAt),
		FinishedAt:       sqlutil.ToSqlTime(req.FinishedAt),
		NextTransitionAt: sqlutil.ToSqlTime(req.NextTransitionAt),
		ID:               req.GameID,
		FromStatus:       db.GameStatus(req.From),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to transition game %s -> %s: %w", req.From, req.To, err)
	}
	g, err := dbGameToModel(row)
	if err != nil {
		return nil, false, err
	}
	return g, true, nil
}

// UpdateTapCount overwrites the participant's tap count while the game is in progress.
// It returns (nil, nil) when no row matched.
func (r *Repository) UpdateTapCount(ctx context.Context, gameID, participantID uuid.UUID, tapCount int) (*models.GameParticipant, error) {
	row, err := r.queries.UpdateTapCount(ctx, db.UpdateTapCountParams{
		TapCount:      int32(tapCount),
		GameID:        gameID,
		ParticipantID: participantID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update tap count: %w", err)
	}
	p := dbParticipantToModel(row)
	return &p, nil
}

// ApplyGameResults writes ranks, awards scores and marks the game reconciled in
// one transaction under a row lock on the game.
func (r *Repository) ApplyGameResults(ctx context.Context, params ApplyResultsParams) (ApplyResultsOutcome, error) {
	var outcome ApplyResultsOutcome

	results := make([]models.GameResult, len(params.Placements))
	for i, p := range params.Placements {
		results[i] = models.GameResult{
			ParticipantID: p.ParticipantID,
			Name:          p.Name,
			TapCount:      p.TapCount,
			Rank:          p.Rank,
			ScoreAwarded:  p.ScoreAwarded,
		}
	}
	snapshot, err := json.Marshal(results)
	if err != nil {
		return outcome, fmt.Errorf("failed to marshal game results: %w", err)
	}

	err = sqlutil.Run(ctx, r.db, r.queries.WithTx, func(q *db.Queries) error {
		game, err := q.GetGameForUpdate(ctx, params.GameID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrGameNotFound
			}
			return fmt.Errorf("lock game: %w", err)
		}
		if game.Status != db.GameStatusFinished {
			return ErrGameNotFinished
		}
		if game.ReconciledAt.Valid {
			return nil
		}

		var desc *string
		if params.EventDescription != "" {
			desc = &params.EventDescription
		}
		event, err := q.EnsureEvent(ctx, db.EnsureEventParams{
			ID:          uuid.New(),
			Name:        params.EventName,
			Description: sqlutil.ToSqlString(desc),
		})
		if err != nil {
			return fmt.Errorf("ensure event: %w", err)
		}
		outcome.EventID = event.ID

		for _, p := range params.Placements {
			if err := q.SetGameParticipantResult(ctx, db.SetGameParticipantResultParams{
				GameID:        params.GameID,
				ParticipantID: p.ParticipantID,
				Rank:          sqlutil.ToSqlInt32Direct(p.Rank),
				ScoreAwarded:  sqlutil.ToSqlInt32Direct(p.ScoreAwarded),
			}); err != nil {
				return fmt.Errorf("set result for %s: %w", p.ParticipantID, err)
			}
			if err := q.AwardScore(ctx, db.AwardScoreParams{
				ID:            uuid.New(),
				ParticipantID: p.ParticipantID,
				EventID:       event.ID,
				Rank:          sqlutil.ToSqlInt32Direct(p.Rank),
				Points:        int32(p.ScoreAwarded),
			}); err != nil {
				return fmt.Errorf("award score to %s: %w", p.ParticipantID, err)
			}
		}

		n, err := q.MarkGameReconciled(ctx, db.MarkGameReconciledParams{
			ID:           params.GameID,
			ReconciledAt: sqlutil.ToSqlTimeDirect(params.ReconciledAt),
			Results:      pqtype.NullRawMessage{RawMessage: snapshot, Valid: true},
		})
		if err != nil {
			return fmt.Errorf("mark reconciled: %w", err)
		}
		outcome.Applied = n > 0
		return nil
	})
	if err != nil {
		return ApplyResultsOutcome{}, fmt.Errorf("failed to apply game results: %w", err)
	}
	return outcome, nil
}

func (r *Repository) FetchNextTransition(ctx context.Context) (*NextTransition, error) {
	row, err := r.queries.FetchNextTransition(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch next transition: %w", err)
	}
	if !row.NextTransitionAt.Valid {
		return nil, nil
	}
	return &NextTransition{GameID: row.ID, DueAt: row.NextTransitionAt.Time}, nil
}

func (r *Repository) FetchGamesDueForTransition(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	ids, err := r.queries.FetchGamesDueForTransition(ctx, db.FetchGamesDueForTransitionParams{
		NextTransitionAt: sqlutil.ToSqlTimeDirect(now),
		Limit:            int32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch due games: %w", err)
	}
	return ids, nil
}

func dbGameToModel(g db.Game) (*models.Game, error) {
	out := &models.Game{
		ID:               g.ID,
		Status:           models.GameStatus(g.Status),
		CreatedBy:        g.CreatedBy,
		CreatedAt:        g.CreatedAt,
		StartedAt:        sqlutil.FromSqlTime(g.StartedAt),
		FinishedAt:       sqlutil.FromSqlTime(g.FinishedAt),
		NextTransitionAt: sqlutil.FromSqlTime(g.NextTransitionAt),
		ReconciledAt:     sqlutil.FromSqlTime(g.ReconciledAt),
		Version:          int(g.Version),
	}
	if g.Results.Valid {
		if err := json.Unmarshal(g.Results.RawMessage, &out.Results); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game results: %w", err)
		}
	}
	return out, nil
}

func dbParticipantToModel(p db.UpdateTapCountRow) models.GameParticipant {
	return models.GameParticipant{
		ID:            p.ID,
		GameID:        p.GameID,
		ParticipantID: p.ParticipantID,
		TapCount:      int(p.TapCount),
		Rank:          sqlutil.FromSqlInt32(p.Rank),
		ScoreAwarded:  sqlutil.FromSqlInt32(p.ScoreAwarded),
		JoinedAt:      p.JoinedAt,
		Name:          p.Name,
		Email:         p.Email,
		AvatarKey:     sqlutil.FromSqlStringPtr(p.AvatarKey),
	}
}
