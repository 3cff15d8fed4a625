package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, rules, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	zerolog.SetGlobalLevel(cfg.ZerologLevel())

	database, err := setupDatabase(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up database")
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	services, err := setupServices(ctx, database, cfg, rules)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up services")
	}

	server := setupServer(cfg, services)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return services.Orchestrator.Run(gctx)
	})
	g.Go(func() error {
		log.Info().
			Str("addr", server.Addr).
			Dur("countdown", rules.Countdown).
			Dur("play_duration", rules.PlayDuration).
			Str("award_policy", rules.AwardPolicy).
			Msg("olympics API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("olympics API stopped")
}
