package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/scotty-olympics/olympics/go/internal/game/gateway"
	"github.com/scotty-olympics/olympics/go/internal/rpc/gamev1/gamev1connect"
)

type gatewayConfig struct {
	Addr           string   `env:"GATEWAY_ADDR" envDefault:":8081"`
	NATSURL        string   `env:"NATS_URL" envDefault:"nats://127.0.0.1:4222"`
	APIURL         string   `env:"API_URL" envDefault:"http://localhost:8080"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := env.ParseAs[gatewayConfig]()
	if err != nil {
		log.Fatal().Err(err).Msg("parse gateway config")
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", cfg.LogLevel).Msg("invalid LOG_LEVEL")
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := gateway.DefaultOptions()
	opts.JetStream.URL = cfg.NATSURL

	gameClient := gamev1connect.NewGameServiceClient(http.DefaultClient, cfg.APIURL)
	gw, err := gateway.New(ctx, opts, gateway.NewGameStateProvider(gameClient))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create gateway")
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}).Handler(gw.Handler())

	// No write timeout: WebSocket connections are long-lived.
	server := &http.Server{
		Addr:        cfg.Addr,
		Handler:     corsHandler,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	go func() {
		if err := gw.Run(ctx); err != nil {
			log.Error().Err(err).Msg("gateway failed")
			stop()
		}
	}()

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Str("nats_url", cfg.NATSURL).
			Str("api_url", cfg.APIURL).
			Msg("game gateway starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	log.Info().Msg("game gateway shutdown complete")
}
