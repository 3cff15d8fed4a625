package participants

import (
	"context"
	"errors"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/scotty-olympics/olympics/go/internal/auth"
	"github.com/scotty-olympics/olympics/go/internal/models"
	participantv1 "github.com/scotty-olympics/olympics/go/internal/rpc/participantv1"
	"github.com/scotty-olympics/olympics/go/internal/rpc/participantv1/participantv1connect"
	"github.com/scotty-olympics/olympics/go/internal/storage"
)

// ParticipantsApp defines what the service layer needs from the participants application
type ParticipantsApp interface {
	GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error)
	ListParticipants(ctx context.Context) ([]*models.Participant, error)
}

// Service implements the ParticipantService connect interface
type Service struct {
	app     ParticipantsApp
	avatars storage.AvatarResolver
}

// NewService creates a new participants service. avatars may be nil.
func NewService(app ParticipantsApp, avatars storage.AvatarResolver) *Service {
	return &Service{
		app:     app,
		avatars: avatars,
	}
}

var _ participantv1connect.ParticipantServiceHandler = (*Service)(nil)

// GetMe returns the caller's participant profile
func (s *Service) GetMe(ctx context.Context, _ *connect.Request[participantv1.GetMeRequest]) (*connect.Response[participantv1.GetMeResponse], error) {
	caller, err := auth.RequireParticipant(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}

	p, err := s.app.GetParticipant(ctx, caller.ParticipantID)
	if err != nil {
		if errors.Is(err, ErrParticipantNotFound) {
			return nil, connect.NewError(connect.CodeNotFound, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&participantv1.GetMeResponse{
		Participant: s.participantToProto(ctx, p),
	}), nil
}

// ListParticipants returns every participant
func (s *Service) ListParticipants(ctx context.Context, _ *connect.Request[participantv1.ListParticipantsRequest]) (*connect.Response[participantv1.ListParticipantsResponse], error) {
	list, err := s.app.ListParticipants(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	out := make([]*participantv1.Participant, len(list))
	for i, p := range list {
		out[i] = s.participantToProto(ctx, p)
	}
	return connect.NewResponse(&participantv1.ListParticipantsResponse{Participants: out}), nil
}

func (s *Service) participantToProto(ctx context.Context, p *models.Participant) *participantv1.Participant {
	out := &participantv1.Participant{
		Id:        p.ID.String(),
		Name:      p.Name,
		Email:     p.Email,
		AvatarUrl: storage.ResolveAvatarURL(ctx, s.avatars, p.AvatarKey),
		IsAdmin:   p.IsAdmin,
	}
	if p.AvatarKey != nil {
		out.AvatarKey = *p.AvatarKey
	}
	return out
}
