package gamev1connect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/scotty-olympics/olympics/go/internal/rpc"
	gamev1 "github.com/scotty-olympics/olympics/go/internal/rpc/gamev1"
)

// GameServiceName is the fully-qualified name of the GameService.
const GameServiceName = "olympics.game.v1.GameService"

const (
	GameServiceCreateGameProcedure     = "/olympics.game.v1.GameService/CreateGame"
	GameServiceJoinGameProcedure       = "/olympics.game.v1.GameService/JoinGame"
	GameServiceGetGameProcedure        = "/olympics.game.v1.GameService/GetGame"
	GameServiceGetActiveGamesProcedure = "/olympics.game.v1.GameService/GetActiveGames"
	GameServiceStartGameProcedure      = "/olympics.game.v1.GameService/StartGame"
	GameServiceUpdateTapCountProcedure = "/olympics.game.v1.GameService/UpdateTapCount"
	GameServiceFinishGameProcedure     = "/olympics.game.v1.GameService/FinishGame"
)

// GameServiceClient is a client for the olympics.game.v1.GameService service.
type GameServiceClient interface {
	CreateGame(context.Context, *connect.Request[gamev1.CreateGameRequest]) (*connect.Response[gamev1.CreateGameResponse], error)
	JoinGame(context.Context, *connect.Request[gamev1.JoinGameRequest]) (*connect.Response[gamev1.JoinGameResponse], error)
	GetGame(context.Context, *connect.Request[gamev1.GetGameRequest]) (*connect.Response[gamev1.GetGameResponse], error)
	GetActiveGames(context.Context, *connect.Request[gamev1.GetActiveGamesRequest]) (*connect.Response[gamev1.GetActiveGamesResponse], error)
	StartGame(context.Context, *connect.Request[gamev1.StartGameRequest]) (*connect.Response[gamev1.StartGameResponse], error)
	UpdateTapCount(context.Context, *connect.Request[gamev1.UpdateTapCountRequest]) (*connect.Response[gamev1.UpdateTapCountResponse], error)
	FinishGame(context.Context, *connect.Request[gamev1.FinishGameRequest]) (*connect.Response[gamev1.FinishGameResponse], error)
}

// NewGameServiceClient constructs a client for the GameService. The baseURL
// should include the scheme and host, e.g. http://localhost:8080.
func NewGameServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GameServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = rpc.ClientOptions(opts...)
	return &gameServiceClient{
		createGame: connect.NewClient[gamev1.CreateGameRequest, gamev1.CreateGameResponse](
			httpClient,
			baseURL+GameServiceCreateGameProcedure,
			opts...,
		),
		joinGame: connect.NewClient[gamev1.JoinGameRequest, gamev1.JoinGameResponse](
			httpClient,
			baseURL+GameServiceJoinGameProcedure,
			opts...,
		),
		getGame: connect.NewClient[gamev1.GetGameRequest, gamev1.GetGameResponse](
			httpClient,
			baseURL+GameServiceGetGameProcedure,
			opts...,
		),
		getActiveGames: connect.NewClient[gamev1.GetActiveGamesRequest, gamev1.GetActiveGamesResponse](
			httpClient,
			baseURL+GameServiceGetActiveGamesProcedure,
			opts...,
		),
		startGame: connect.NewClient[gamev1.StartGameRequest, gamev1.StartGameResponse](
			httpClient,
			baseURL+GameServiceStartGameProcedure,
			opts...,
		),
		updateTapCount: connect.NewClient[gamev1.UpdateTapCountRequest, gamev1.UpdateTapCountResponse](
			httpClient,
			baseURL+GameServiceUpdateTapCountProcedure,
			opts...,
		),
		finishGame: connect.NewClient[gamev1.FinishGameRequest, gamev1.FinishGameResponse](
			httpClient,
			baseURL+GameServiceFinishGameProcedure,
			opts...,
		),
	}
}

type gameServiceClient struct {
	createGame     *connect.Client[gamev1.CreateGameRequest, gamev1.CreateGameResponse]
	joinGame       *connect.Client[gamev1.JoinGameRequest, gamev1.JoinGameResponse]
	getGame        *connect.Client[gamev1.GetGameRequest, gamev1.GetGameResponse]
	getActiveGames *connect.Client[gamev1.GetActiveGamesRequest, gamev1.GetActiveGamesResponse]
	startGame      *connect.Client[gamev1.StartGameRequest, gamev1.StartGameResponse]
	updateTapCount *connect.Client[gamev1.UpdateTapCountRequest, gamev1.UpdateTapCountResponse]
	finishGame     *connect.Client[gamev1.FinishGameRequest, gamev1.FinishGameResponse]
}

func (c *gameServiceClient) CreateGame(ctx context.Context, req *connect.Request[gamev1.CreateGameRequest]) (*connect.Response[gamev1.CreateGameResponse], error) {
	return c.createGame.CallUnary(ctx, req)
}

func (c *gameServiceClient) JoinGame(ctx context.Context, req *connect.Request[gamev1.JoinGameRequest]) (*connect.Response[gamev1.JoinGameResponse], error) {
	return c.joinGame.CallUnary(ctx, req)
}

func (c *gameServiceClient) GetGame(ctx context.Context, req *connect.Request[gamev1.GetGameRequest]) (*connect.Response[gamev1.GetGameResponse], error) {
	return c.getGame.CallUnary(ctx, req)
}

func (c *gameServiceClient) GetActiveGames(ctx context.Context, req *connect.Request[gamev1.GetActiveGamesRequest]) (*connect.Response[gamev1.GetActiveGamesResponse], error) {
	return c.getActiveGames.CallUnary(ctx, req)
}

func (c *gameServiceClient) StartGame(ctx context.Context, req *connect.Request[gamev1.StartGameRequest]) (*connect.Response[gamev1.StartGameResponse], error) {
	return c.startGame.CallUnary(ctx, req)
}

func (c *gameServiceClient) UpdateTapCount(ctx context.Context, req *connect.Request[gamev1.UpdateTapCountRequest]) (*connect.Response[gamev1.UpdateTapCountResponse], error) {
	return c.updateTapCount.CallUnary(ctx, req)
}

func (c *gameServiceClient) FinishGame(ctx context.Context, req *connect.Request[gamev1.FinishGameRequest]) (*connect.Response[gamev1.FinishGameResponse], error) {
	return c.finishGame.CallUnary(ctx, req)
}

// GameServiceHandler is implemented by the game service.
type GameServiceHandler interface {
	CreateGame(context.Context, *connect.Request[gamev1.CreateGameRequest]) (*connect.Response[gamev1.CreateGameResponse], error)
	JoinGame(context.Context, *connect.Request[gamev1.JoinGameRequest]) (*connect.Response[gamev1.JoinGameResponse], error)
	GetGame(context.Context, *connect.Request[gamev1.GetGameRequest]) (*connect.Response[gamev1.GetGameResponse], error)
	GetActiveGames(context.Context, *connect.Request[gamev1.GetActiveGamesRequest]) (*connect.Response[gamev1.GetActiveGamesResponse], error)
	StartGame(context.Context, *connect.Request[gamev1.StartGameRequest]) (*connect.Response[gamev1.StartGameResponse], error)
	UpdateTapCount(context.Context, *connect.Request[gamev1.UpdateTapCountRequest]) (*connect.Response[gamev1.UpdateTapCountResponse], error)
	FinishGame(context.Context, *connect.Request[gamev1.FinishGameRequest]) (*connect.Response[gamev1.FinishGameResponse], error)
}

// NewGameServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewGameServiceHandler(svc GameServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = rpc.HandlerOptions(opts...)
	createGameHandler := connect.NewUnaryHandler(GameServiceCreateGameProcedure, svc.CreateGame, opts...)
	joinGameHandler := connect.NewUnaryHandler(GameServiceJoinGameProcedure, svc.JoinGame, opts...)
	getGameHandler := connect.NewUnaryHandler(GameServiceGetGameProcedure, svc.GetGame, opts...)
	getActiveGamesHandler := connect.NewUnaryHandler(GameServiceGetActiveGamesProcedure, svc.GetActiveGames, opts...)
	startGameHandler := connect.NewUnaryHandler(GameServiceStartGameProcedure, svc.StartGame, opts...)
	updateTapCountHandler := connect.NewUnaryHandler(GameServiceUpdateTapCountProcedure, svc.UpdateTapCount, opts...)
	finishGameHandler := connect.NewUnaryHandler(GameServiceFinishGameProcedure, svc.FinishGame, opts...)
	return "/" + GameServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case GameServiceCreateGameProcedure:
			createGameHandler.ServeHTTP(w, r)
		case GameServiceJoinGameProcedure:
			joinGameHandler.ServeHTTP(w, r)
		case GameServiceGetGameProcedure:
			getGameHandler.ServeHTTP(w, r)
		case GameServiceGetActiveGamesProcedure:
			getActiveGamesHandler.ServeHTTP(w, r)
		case GameServiceStartGameProcedure:
			startGameHandler.ServeHTTP(w, r)
		case GameServiceUpdateTapCountProcedure:
			updateTapCountHandler.ServeHTTP(w, r)
		case GameServiceFinishGameProcedure:
			finishGameHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
