package gateway

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	gamev1 "github.com/scotty-olympics/olympics/go/internal/rpc/gamev1"
	"github.com/scotty-olympics/olympics/go/internal/rpc/gamev1/gamev1connect"
)

// ErrGameNotFound is returned by a StateProvider for unknown games.
var ErrGameNotFound = errors.New("game not found")

// StateProvider loads the current state of a game for new subscribers.
type StateProvider interface {
	GetGameState(ctx context.Context, gameID uuid.UUID) (*gamev1.Game, error)
}

// GameStateProvider implements StateProvider with the game service client
type GameStateProvider struct {
	gameService gamev1connect.GameServiceClient
}

// NewGameStateProvider creates a new game state provider
func NewGameStateProvider(gameService gamev1connect.GameServiceClient) *GameStateProvider {
	return &GameStateProvider{gameService: gameService}
}

func (p *GameStateProvider) GetGameState(ctx context.Context, gameID uuid.UUID) (*gamev1.Game, error) {
	resp, err := p.gameService.GetGame(ctx, connect.NewRequest(&gamev1.GetGameRequest{GameId: gameID.String()}))
	if err != nil {
		if connect.CodeOf(err) == connect.CodeNotFound {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return resp.Msg.Game, nil
}
