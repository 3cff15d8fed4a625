package main

import (
	"context"
	"database/sql"
	"fmt"

	"connectrpc.com/connect"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/scotty-olympics/olympics/go/internal/auth"
	"github.com/scotty-olympics/olympics/go/internal/config"
	"github.com/scotty-olympics/olympics/go/internal/game"
	"github.com/scotty-olympics/olympics/go/internal/game/orchestrator"
	"github.com/scotty-olympics/olympics/go/internal/game/outbox"
	"github.com/scotty-olympics/olympics/go/internal/leaderboard"
	leaderboarddb "github.com/scotty-olympics/olympics/go/internal/leaderboard/db"
	"github.com/scotty-olympics/olympics/go/internal/participants"
	participantsdb "github.com/scotty-olympics/olympics/go/internal/participants/db"
	"github.com/scotty-olympics/olympics/go/internal/storage"
)

type Services struct {
	Participants *participants.Service
	Leaderboard  *leaderboard.Service
	Game         *game.Service
	Orchestrator *orchestrator.Orchestrator
	Interceptor  connect.Interceptor
}

func setupServices(ctx context.Context, database *sql.DB, cfg *config.Config, rules config.GameRules) (*Services, error) {
	// Database layer → Repository layer → App layer → Service layer

	var avatars storage.AvatarResolver
	if cfg.Avatars.Enabled() {
		resolver, err := storage.NewBucketResolver(ctx, cfg.Avatars.R2())
		if err != nil {
			return nil, fmt.Errorf("failed to set up avatar storage: %w", err)
		}
		avatars = resolver
	} else {
		log.Warn().Msg("avatar bucket not configured, avatar URLs disabled")
	}

	// Participants
	participantsRepo := participants.NewRepository(participantsdb.New(database))
	participantsApp := participants.NewApp(participantsRepo)
	participantsService := participants.NewService(participantsApp, avatars)

	// Leaderboard
	leaderboardRepo := leaderboard.NewRepository(leaderboarddb.New(database))
	leaderboardApp := leaderboard.NewApp(leaderboardRepo)
	leaderboardService := leaderboard.NewService(leaderboardApp, avatars)

	event, err := leaderboardApp.EnsureEvent(ctx, rules.EventName, rules.EventDescription)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure minigame event: %w", err)
	}
	log.Info().Str("event_id", event.ID.String()).Str("event", event.Name).Msg("minigame event ready")

	// Game
	clock := clockwork.NewRealClock()
	outboxApp := outbox.NewApp(outbox.NewRepository(database))
	gameApp, err := game.NewApp(game.NewRepository(database), outboxApp, clock, game.ConfigFromRules(rules))
	if err != nil {
		return nil, fmt.Errorf("failed to create game app: %w", err)
	}
	gameService := game.NewService(gameApp, avatars)

	orch := orchestrator.NewOrchestrator(gameApp, clock, orchestratorConfig(rules))
	gameApp.SetScheduler(orch)

	return &Services{
		Participants: participantsService,
		Leaderboard:  leaderboardService,
		Game:         gameService,
		Orchestrator: orch,
		Interceptor:  auth.NewInterceptor(auth.NewVerifier(cfg.JWTSecret), participantsApp),
	}, nil
}
