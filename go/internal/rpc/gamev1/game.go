// Package gamev1 defines the request and response messages of the game service.
package gamev1

import "time"

type GameStatus string

const (
	GameStatusWaiting    GameStatus = "waiting"
	GameStatusStarting   GameStatus = "starting"
	GameStatusInProgress GameStatus = "in_progress"
	GameStatusFinished   GameStatus = "finished"
)

type Game struct {
	Id               string             `json:"id"`
	Status           GameStatus         `json:"status"`
	CreatedBy        string             `json:"createdBy"`
	CreatedAt        time.Time          `json:"createdAt"`
	StartedAt        *time.Time         `json:"startedAt,omitempty"`
	FinishedAt       *time.Time         `json:"finishedAt,omitempty"`
	NextTransitionAt *time.Time         `json:"nextTransitionAt,omitempty"`
	Reconciled       bool               `json:"reconciled"`
	Version          int32              `json:"version"`
	Participants     []*GameParticipant `json:"participants"`
}

type GameParticipant struct {
	ParticipantId string    `json:"participantId"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	AvatarKey     string    `json:"avatarKey,omitempty"`
	AvatarUrl     string    `json:"avatarUrl,omitempty"`
	TapCount      int32     `json:"tapCount"`
	Rank          *int32    `json:"rank,omitempty"`
	ScoreAwarded  *int32    `json:"scoreAwarded,omitempty"`
	JoinedAt      time.Time `json:"joinedAt"`
}

type CreateGameRequest struct{}

type CreateGameResponse struct {
	Game *Game `json:"game"`
}

type JoinGameRequest struct {
	GameId string `json:"gameId"`
}

type JoinGameResponse struct {
	Game *Game `json:"game"`
}

type GetGameRequest struct {
	GameId string `json:"gameId"`
}

type GetGameResponse struct {
	Game *Game `json:"game"`
}

type GetActiveGamesRequest struct {
	// IncludeRunning also returns games that are counting down or in play.
	IncludeRunning bool `json:"includeRunning,omitempty"`
}

type GetActiveGamesResponse struct {
	Games []*Game `json:"games"`
}

type StartGameRequest struct {
	GameId string `json:"gameId"`
}

type StartGameResponse struct {
	Game *Game `json:"game"`
}

type UpdateTapCountRequest struct {
	GameId   string `json:"gameId"`
	TapCount int32  `json:"tapCount"`
}

type UpdateTapCountResponse struct {
	Participant *GameParticipant `json:"participant"`
}

type FinishGameRequest struct {
	GameId string `json:"gameId"`
}

type FinishGameResponse struct {
	Game *Game `json:"game"`
}
