package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/scotty-olympics/olympics/go/internal/dbconfig"
	"github.com/scotty-olympics/olympics/go/internal/game/outbox"
	"github.com/scotty-olympics/olympics/go/internal/game/outbox/worker"
)

type relayConfig struct {
	NATSURL          string        `env:"NATS_URL" envDefault:"nats://127.0.0.1:4222"`
	FallbackInterval time.Duration `env:"OUTBOX_FALLBACK_INTERVAL" envDefault:"15s"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := env.ParseAs[relayConfig]()
	if err != nil {
		log.Fatal().Err(err).Msg("parse relay config")
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", cfg.LogLevel).Msg("invalid LOG_LEVEL")
	}
	zerolog.SetGlobalLevel(level)

	dbCfg := dbconfig.NewConfigFromEnv()
	dsn := dbCfg.DSN()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}
	log.Info().
		Str("host", dbCfg.Host).
		Int("port", dbCfg.Port).
		Str("database", dbCfg.Database).
		Msg("connected to database")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jsCfg := worker.DefaultJetStreamConfig()
	jsCfg.URL = cfg.NATSURL
	publisher, err := worker.NewJetStreamPublisher(ctx, jsCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("create JetStream publisher")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("close publisher")
		}
	}()

	ltCfg := worker.DefaultListenerConfig()
	ltCfg.DatabaseURL = dsn
	ltCfg.FallbackInterval = cfg.FallbackInterval

	app := outbox.NewApp(outbox.NewRepository(db))
	listener, err := worker.NewListener(app, publisher, ltCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("create outbox listener")
	}

	log.Info().Str("nats_url", jsCfg.URL).Msg("starting outbox relay")
	if err := listener.Start(ctx); err != nil {
		log.Error().Err(err).Msg("listener stopped with error")
	}
	log.Info().Msg("outbox relay stopped")
}
