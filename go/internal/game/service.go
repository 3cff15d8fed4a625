package game

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/scotty-olympics/olympics/go/internal/auth"
	"github.com/scotty-olympics/olympics/go/internal/models"
	gamev1 "github.com/scotty-olympics/olympics/go/internal/rpc/gamev1"
	"github.com/scotty-olympics/olympics/go/internal/rpc/gamev1/gamev1connect"
	"github.com/scotty-olympics/olympics/go/internal/storage"
)

// GameApp defines what the service layer needs from the game application
type GameApp interface {
	CreateGame(ctx context.Context, callerID uuid.UUID) (*models.GameWithParticipants, error)
	JoinGame(ctx context.Context, callerID, gameID uuid.UUID) (*models.GameWithParticipants, error)
	GetGame(ctx context.Context, gameID uuid.UUID) (*models.GameWithParticipants, error)
	GetActiveGames(ctx context.Context, includeRunning bool) ([]*models.GameWithParticipants, error)
	StartGame(ctx context.Context, callerID, gameID uuid.UUID) (*models.GameWithParticipants, error)
	UpdateTapCount(ctx context.Context, callerID, gameID uuid.UUID, tapCount int) (*models.GameParticipant, error)
	FinishGame(ctx context.Context, callerID, gameID uuid.UUID) (*models.GameWithParticipants, error)
}

// Service implements the GameService connect interface
type Service struct {
	app     GameApp
	avatars storage.AvatarResolver
}

// NewService creates a new game service. avatars may be nil.
func NewService(app GameApp, avatars storage.AvatarResolver) *Service {
	return &Service{
		app:     app,
		avatars: avatars,
	}
}

var _ gamev1connect.GameServiceHandler = (*Service)(nil)

func (s *Service) CreateGame(ctx context.Context, _ *connect.Request[gamev1.CreateGameRequest]) (*connect.Response[gamev1.CreateGameResponse], error) {
	caller, err := auth.RequireParticipant(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}

	game, err := s.app.CreateGame(ctx, caller.ParticipantID)
	if err != nil {
		return nil, mapError(err)
	}
	return connect.NewResponse(&gamev1.CreateGameResponse{Game: s.gameToProto(ctx, game)}), nil
}

func (s *Service) JoinGame(ctx context.Context, req *connect.Request[gamev1.JoinGameRequest]) (*connect.Response[gamev1.JoinGameResponse], error) {
	caller, err := auth.RequireParticipant(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	gameID, err := parseGameID(req.Msg.GameId)
	if err != nil {
		return nil, err
	}

	game, err := s.app.JoinGame(ctx, caller.ParticipantID, gameID)
	if err != nil {
		return nil, mapError(err)
	}
	return connect.NewResponse(&gamev1.JoinGameResponse{Game: s.gameToProto(ctx, game)}), nil
}

func (s *Service) GetGame(ctx context.Context, req *connect.Request[gamev1.GetGameRequest]) (*connect.Response[gamev1.GetGameResponse], error) {
	gameID, err := parseGameID(req.Msg.GameId)
	if err != nil {
		return nil, err
	}

	game, err := s.app.GetGame(ctx, gameID)
	if err != nil {
		return nil, mapError(err)
	}
	return connect.NewResponse(&gamev1.GetGameResponse{Game: s.gameToProto(ctx, game)}), nil
}

func (s *Service) GetActiveGames(ctx context.Context, req *connect.Request[gamev1.GetActiveGamesRequest]) (*connect.Response[gamev1.GetActiveGamesResponse], error) {
	games, err := s.app.GetActiveGames(ctx, req.Msg.IncludeRunning)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	out := make([]*gamev1.Game, len(games))
	for i, g := range games {
		out[i] = s.gameToProto(ctx, g)
	}
	return connect.NewResponse(&gamev1.GetActiveGamesResponse{Games: out}), nil
}

func (s *Service) StartGame(ctx context.Context, req *connect.Request[gamev1.StartGameRequest]) (*connect.Response[gamev1.StartGameResponse], error) {
	caller, err := auth.RequireParticipant(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	gameID, err := parseGameID(req.Msg.GameId)
	if err != nil {
		return nil, err
	}

	game, err := s.app.StartGame(ctx, caller.ParticipantID, gameID)
	if err != nil {
		return nil, mapError(err)
	}
	return connect.NewResponse(&gamev1.StartGameResponse{Game: s.gameToProto(ctx, game)}), nil
}

func (s *Service) UpdateTapCount(ctx context.Context, req *connect.Request[gamev1.UpdateTapCountRequest]) (*connect.Response[gamev1.UpdateTapCountResponse], error) {
	caller, err := auth.RequireParticipant(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	gameID, err := parseGameID(req.Msg.GameId)
	if err != nil {
		return nil, err
	}

	p, err := s.app.UpdateTapCount(ctx, caller.ParticipantID, gameID, int(req.Msg.TapCount))
	if err != nil {
		return nil, mapError(err)
	}
	return connect.NewResponse(&gamev1.UpdateTapCountResponse{Participant: s.participantToProto(ctx, p)}), nil
}

func (s *Service) FinishGame(ctx context.Context, req *connect.Request[gamev1.FinishGameRequest]) (*connect.Response[gamev1.FinishGameResponse], error) {
	caller, err := auth.RequireParticipant(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	gameID, err := parseGameID(req.Msg.GameId)
	if err != nil {
		return nil, err
	}

	game, err := s.app.FinishGame(ctx, caller.ParticipantID, gameID)
	if err != nil {
		return nil, mapError(err)
	}
	return connect.NewResponse(&gamev1.FinishGameResponse{Game: s.gameToProto(ctx, game)}), nil
}

func (s *Service) gameToProto(ctx context.Context, g *models.GameWithParticipants) *gamev1.Game {
	out := &gamev1.Game{
		Id:               g.ID.String(),
		Status:           gamev1.GameStatus(g.Status),
		CreatedBy:        g.CreatedBy.String(),
		CreatedAt:        g.CreatedAt,
		StartedAt:        g.StartedAt,
		FinishedAt:       g.FinishedAt,
		NextTransitionAt: g.NextTransitionAt,
		Reconciled:       g.IsReconciled(),
		Version:          int32(g.Version),
		Participants:     make([]*gamev1.GameParticipant, len(g.Participants)),
	}
	for i := range g.Participants {
		out.Participants[i] = s.participantToProto(ctx, &g.Participants[i])
	}
	return out
}

func (s *Service) participantToProto(ctx context.Context, p *models.GameParticipant) *gamev1.GameParticipant {
	out := &gamev1.GameParticipant{
		ParticipantId: p.ParticipantID.String(),
		Name:          p.Name,
		Email:         p.Email,
		AvatarUrl:     storage.ResolveAvatarURL(ctx, s.avatars, p.AvatarKey),
		TapCount:      int32(p.TapCount),
		JoinedAt:      p.JoinedAt,
	}
	if p.AvatarKey != nil {
		out.AvatarKey = *p.AvatarKey
	}
	if p.Rank != nil {
		r := int32(*p.Rank)
		out.Rank = &r
	}
	if p.ScoreAwarded != nil {
		sc := int32(*p.ScoreAwarded)
		out.ScoreAwarded = &sc
	}
	return out
}

func parseGameID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("invalid game ID: %w", err))
	}
	return id, nil
}

func mapError(err error) *connect.Error {
	switch {
	case errors.Is(err, ErrGameNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, ErrNotGameParticipant):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, ErrGameNotWaiting),
		errors.Is(err, ErrGameAlreadyStarted),
		errors.Is(err, ErrGameNotInProgress),
		errors.Is(err, ErrGameNotFinished):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, ErrInvalidTapCount):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
