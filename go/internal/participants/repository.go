package participants

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/scotty-olympics/olympics/go/internal/models"
	"github.com/scotty-olympics/olympics/go/internal/participants/db"
	"github.com/scotty-olympics/olympics/go/internal/sqlutil"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	GetParticipant(ctx context.Context, id uuid.UUID) (db.Participant, error)
	GetParticipantByAuthUserID(ctx context.Context, authUserID uuid.NullUUID) (db.Participant, error)
	ListParticipants(ctx context.Context) ([]db.Participant, error)
}

// Repository implements participant data access operations
type Repository struct {
	queries Querier
}

// NewRepository creates a new participants repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

func (r *Repository) GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error) {
	row, err := r.queries.GetParticipant(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return dbParticipantToModel(row), nil
}

func (r *Repository) GetParticipantByAuthUserID(ctx context.Context, authUserID uuid.UUID) (*models.Participant, error) {
	row, err := r.queries.GetParticipantByAuthUserID(ctx, sqlutil.ToNullUUID(&authUserID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant by auth user: %w", err)
	}
	return dbParticipantToModel(row), nil
}

func (r *Repository) ListParticipants(ctx context.Context) ([]*models.Participant, error) {
	rows, err := r.queries.ListParticipants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	out := make([]*models.Participant, len(rows))
	for i, row := range rows {
		out[i] = dbParticipantToModel(row)
	}
	return out, nil
}

func dbParticipantToModel(p db.Participant) *models.Participant {
	return &models.Participant{
		ID:         p.ID,
		AuthUserID: sqlutil.FromNullUUID(p.AuthUserID),
		Name:       p.Name,
		Email:      p.Email,
		AvatarKey:  sqlutil.FromSqlStringPtr(p.AvatarKey),
		IsAdmin:    p.IsAdmin,
		CreatedAt:  p.CreatedAt,
	}
}
