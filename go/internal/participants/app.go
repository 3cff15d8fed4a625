package participants

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/scotty-olympics/olympics/go/internal/models"
)

// ParticipantsRepository defines what the app layer needs from the repository
type ParticipantsRepository interface {
	GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error)
	GetParticipantByAuthUserID(ctx context.Context, authUserID uuid.UUID) (*models.Participant, error)
	ListParticipants(ctx context.Context) ([]*models.Participant, error)
}

// App handles participant lookups
type App struct {
	repo ParticipantsRepository
}

// NewApp creates a new participants App
func NewApp(repo ParticipantsRepository) *App {
	return &App{
		repo: repo,
	}
}

// GetParticipant retrieves a participant by ID
func (a *App) GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error) {
	p, err := a.repo.GetParticipant(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return p, nil
}

// ResolveParticipant maps an auth user to its participant profile.
// A user without a profile yields (nil, nil).
func (a *App) ResolveParticipant(ctx context.Context, authUserID uuid.UUID) (*models.Participant, error) {
	p, err := a.repo.GetParticipantByAuthUserID(ctx, authUserID)
	if err != nil {
		if errors.Is(err, ErrParticipantNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve participant: %w", err)
	}
	return p, nil
}

// ListParticipants returns every participant ordered by name
func (a *App) ListParticipants(ctx context.Context) ([]*models.Participant, error) {
	list, err := a.repo.ListParticipants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return list, nil
}
