package leaderboard

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/scotty-olympics/olympics/go/internal/auth"
	"github.com/scotty-olympics/olympics/go/internal/models"
	leaderboardv1 "github.com/scotty-olympics/olympics/go/internal/rpc/leaderboardv1"
	"github.com/scotty-olympics/olympics/go/internal/rpc/leaderboardv1/leaderboardv1connect"
	"github.com/scotty-olympics/olympics/go/internal/storage"
)

// LeaderboardApp defines what the service layer needs from the leaderboard application
type LeaderboardApp interface {
	ListEvents(ctx context.Context) ([]*models.Event, error)
	CreateEvent(ctx context.Context, req CreateEventRequest) (*models.Event, error)
	RecordScore(ctx context.Context, req RecordScoreRequest) (*models.Score, error)
	GetEventStandings(ctx context.Context, eventID uuid.UUID) (*EventStandings, error)
	GetOverallStandings(ctx context.Context) ([]models.Standing, error)
}

// Service implements the LeaderboardService connect interface
type Service struct {
	app     LeaderboardApp
	avatars storage.AvatarResolver
}

// NewService creates a new leaderboard service. avatars may be nil.
func NewService(app LeaderboardApp, avatars storage.AvatarResolver) *Service {
	return &Service{
		app:     app,
		avatars: avatars,
	}
}

var _ leaderboardv1connect.LeaderboardServiceHandler = (*Service)(nil)

func (s *Service) ListEvents(ctx context.Context, _ *connect.Request[leaderboardv1.ListEventsRequest]) (*connect.Response[leaderboardv1.ListEventsResponse], error) {
	events, err := s.app.ListEvents(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	out := make([]*leaderboardv1.Event, len(events))
	for i, e := range events {
		out[i] = eventToProto(e)
	}
	return connect.NewResponse(&leaderboardv1.ListEventsResponse{Events: out}), nil
}

func (s *Service) CreateEvent(ctx context.Context, req *connect.Request[leaderboardv1.CreateEventRequest]) (*connect.Response[leaderboardv1.CreateEventResponse], error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return nil, authError(err)
	}

	appReq := CreateEventRequest{Name: req.Msg.Name}
	if req.Msg.Description != "" {
		desc := req.Msg.Description
		appReq.Description = &desc
	}
	if req.Msg.DisplayOrder != nil {
		order := int(*req.Msg.DisplayOrder)
		appReq.DisplayOrder = &order
	}

	event, err := s.app.CreateEvent(ctx, appReq)
	if err != nil {
		return nil, mapError(err)
	}
	return connect.NewResponse(&leaderboardv1.CreateEventResponse{Event: eventToProto(event)}), nil
}

func (s *Service) RecordScore(ctx context.Context, req *connect.Request[leaderboardv1.RecordScoreRequest]) (*connect.Response[leaderboardv1.RecordScoreResponse], error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return nil, authError(err)
	}

	participantID, err := uuid.Parse(req.Msg.ParticipantId)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("invalid participant ID: %w", err))
	}
	eventID, err := uuid.Parse(req.Msg.EventId)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("invalid event ID: %w", err))
	}

	appReq := RecordScoreRequest{
		ParticipantID: participantID,
		EventID:       eventID,
		Points:        int(req.Msg.Points),
	}
	if req.Msg.Rank != 0 {
		rank := int(req.Msg.Rank)
		appReq.Rank = &rank
	}

	score, err := s.app.RecordScore(ctx, appReq)
	if err != nil {
		return nil, mapError(err)
	}

	out := &leaderboardv1.Score{
		Id:            score.ID.String(),
		ParticipantId: score.ParticipantID.String(),
		EventId:       score.EventID.String(),
		Points:        int32(score.Points),
		UpdatedAt:     score.UpdatedAt,
	}
	if score.Rank != nil {
		r := int32(*score.Rank)
		out.Rank = &r
	}
	return connect.NewResponse(&leaderboardv1.RecordScoreResponse{Score: out}), nil
}

func (s *Service) GetEventStandings(ctx context.Context, req *connect.Request[leaderboardv1.GetEventStandingsRequest]) (*connect.Response[leaderboardv1.GetEventStandingsResponse], error) {
	eventID, err := uuid.Parse(req.Msg.EventId)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("invalid event ID: %w", err))
	}

	result, err := s.app.GetEventStandings(ctx, eventID)
	if err != nil {
		return nil, mapError(err)
	}
	return connect.NewResponse(&leaderboardv1.GetEventStandingsResponse{
		Event:     eventToProto(result.Event),
		Standings: s.standingsToProto(ctx, result.Standings),
	}), nil
}

func (s *Service) GetOverallStandings(ctx context.Context, _ *connect.Request[leaderboardv1.GetOverallStandingsRequest]) (*connect.Response[leaderboardv1.GetOverallStandingsResponse], error) {
	standings, err := s.app.GetOverallStandings(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&leaderboardv1.GetOverallStandingsResponse{
		Standings: s.standingsToProto(ctx, standings),
	}), nil
}

func (s *Service) standingsToProto(ctx context.Context, standings []models.Standing) []*leaderboardv1.Standing {
	out := make([]*leaderboardv1.Standing, len(standings))
	for i, st := range standings {
		out[i] = &leaderboardv1.Standing{
			ParticipantId: st.ParticipantID.String(),
			Name:          st.Name,
			AvatarUrl:     storage.ResolveAvatarURL(ctx, s.avatars, st.AvatarKey),
			Points:        int32(st.Points),
			Rank:          int32(st.Rank),
		}
		if st.BestRank != nil {
			r := int32(*st.BestRank)
			out[i].BestRank = &r
		}
	}
	return out
}

func eventToProto(e *models.Event) *leaderboardv1.Event {
	out := &leaderboardv1.Event{
		Id:   e.ID.String(),
		Name: e.Name,
	}
	if e.Description != nil {
		out.Description = *e.Description
	}
	if e.DisplayOrder != nil {
		order := int32(*e.DisplayOrder)
		out.DisplayOrder = &order
	}
	return out
}

func authError(err error) *connect.Error {
	if errors.Is(err, auth.ErrForbidden) {
		return connect.NewError(connect.CodePermissionDenied, err)
	}
	return connect.NewError(connect.CodeUnauthenticated, err)
}

func mapError(err error) *connect.Error {
	switch {
	case errors.Is(err, ErrEventNotFound), errors.Is(err, ErrParticipantNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, ErrEventAlreadyExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, ErrInvalidEventName), errors.Is(err, ErrInvalidRank):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
