package leaderboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/scotty-olympics/olympics/go/internal/leaderboard/db"
	"github.com/scotty-olympics/olympics/go/internal/models"
	"github.com/scotty-olympics/olympics/go/internal/sqlutil"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	ListEvents(ctx context.Context) ([]db.Event, error)
	GetEvent(ctx context.Context, id uuid.UUID) (db.Event, error)
	CreateEvent(ctx context.Context, arg db.CreateEventParams) (db.Event, error)
	EnsureEvent(ctx context.Context, arg db.EnsureEventParams) (db.Event, error)
	UpsertScore(ctx context.Context, arg db.UpsertScoreParams) (db.Score, error)
	ListEventStandings(ctx context.Context, eventID uuid.UUID) ([]db.ListEventStandingsRow, error)
	ListOverallStandings(ctx context.Context) ([]db.ListOverallStandingsRow, error)
}

// Repository implements event and score ledger data access
type Repository struct {
	queries Querier
}

// NewRepository creates a new leaderboard repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

func (r *Repository) ListEvents(ctx context.Context) ([]*models.Event, error) {
	rows, err := r.queries.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	out := make([]*models.Event, len(rows))
	for i, row := range rows {
		out[i] = dbEventToModel(row)
	}
	return out, nil
}

func (r *Repository) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	row, err := r.queries.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return dbEventToModel(row), nil
}

func (r *Repository) CreateEvent(ctx context.Context, name string, description *string, displayOrder *int) (*models.Event, error) {
	row, err := r.queries.CreateEvent(ctx, db.CreateEventParams{
		ID:           uuid.New(),
		Name:         name,
		Description:  sqlutil.ToSqlString(description),
		DisplayOrder: sqlutil.ToSqlInt32(displayOrder),
	})
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return nil, ErrEventAlreadyExists
		}
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return dbEventToModel(row), nil
}

func (r *Repository) EnsureEvent(ctx context.Context, name string, description *string) (*models.Event, error) {
	row, err := r.queries.EnsureEvent(ctx, db.EnsureEventParams{
		ID:          uuid.New(),
		Name:        name,
		Description: sqlutil.ToSqlString(description),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to ensure event: %w", err)
	}
	return dbEventToModel(row), nil
}

func (r *Repository) UpsertScore(ctx context.Context, participantID, eventID uuid.UUID, rank *int, points int) (*models.Score, error) {
	row, err := r.queries.UpsertScore(ctx, db.UpsertScoreParams{
		ID:            uuid.New(),
		ParticipantID: participantID,
		EventID:       eventID,
		Rank:          sqlutil.ToSqlInt32(rank),
		Points:        int32(points),
	})
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to upsert score: %w", err)
	}
	return &models.Score{
		ID:            row.ID,
		ParticipantID: row.ParticipantID,
		EventID:       row.EventID,
		Rank:          sqlutil.FromSqlInt32(row.Rank),
		Points:        int(row.Points),
		UpdatedAt:     row.UpdatedAt,
	}, nil
}

// ListEventStandings returns unranked standings ordered by points descending.
func (r *Repository) ListEventStandings(ctx context.Context, eventID uuid.UUID) ([]models.Standing, error) {
	rows, err := r.queries.ListEventStandings(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list event standings: %w", err)
	}

	out := make([]models.Standing, len(rows))
	for i, row := range rows {
		out[i] = models.Standing{
			ParticipantID: row.ParticipantID,
			Name:          row.Name,
			AvatarKey:     sqlutil.FromSqlStringPtr(row.AvatarKey),
			Points:        int(row.Points),
			BestRank:      sqlutil.FromSqlInt32(row.Rank),
		}
	}
	return out, nil
}

// ListOverallStandings returns unranked totals ordered by points descending.
func (r *Repository) ListOverallStandings(ctx context.Context) ([]models.Standing, error) {
	rows, err := r.queries.ListOverallStandings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list overall standings: %w", err)
	}

	out := make([]models.Standing, len(rows))
	for i, row := range rows {
		out[i] = models.Standing{
			ParticipantID: row.ParticipantID,
			Name:          row.Name,
			AvatarKey:     sqlutil.FromSqlStringPtr(row.AvatarKey),
			Points:        int(row.Points),
		}
	}
	return out, nil
}

func dbEventToModel(e db.Event) *models.Event {
	return &models.Event{
		ID:           e.ID,
		Name:         e.Name,
		Description:  sqlutil.FromSqlStringPtr(e.Description),
		DisplayOrder: sqlutil.FromSqlInt32(e.DisplayOrder),
		CreatedAt:    e.CreatedAt,
	}
}

func pgErrorCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}
