// Package config loads process configuration from the environment and the
// minigame rules from game.yaml.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"

	"github.com/scotty-olympics/olympics/go/internal/dbconfig"
	"github.com/scotty-olympics/olympics/go/internal/storage"
)

type Config struct {
	HTTPAddr       string   `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`
	JWTSecret      string   `env:"JWT_SECRET,required"`
	NATSURL        string   `env:"NATS_URL" envDefault:"nats://127.0.0.1:4222"`
	GameConfigPath string   `env:"GAME_CONFIG_PATH" envDefault:"game.yaml"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	GatewayAddr    string   `env:"GATEWAY_ADDR" envDefault:":8081"`
	APIURL         string   `env:"API_URL" envDefault:"http://localhost:8080"`

	DB      dbconfig.Config
	Avatars AvatarConfig `envPrefix:"R2_"`
}

// AvatarConfig describes the avatar bucket. An empty bucket name disables URL resolution.
type AvatarConfig struct {
	AccountID       string        `env:"ACCOUNT_ID"`
	AccessKeyID     string        `env:"ACCESS_KEY_ID"`
	SecretAccessKey string        `env:"SECRET_ACCESS_KEY"`
	BucketName      string        `env:"BUCKET_NAME"`
	Endpoint        string        `env:"ENDPOINT"`
	PublicBaseURL   string        `env:"PUBLIC_BASE_URL"`
	PresignTTL      time.Duration `env:"PRESIGN_TTL" envDefault:"15m"`
}

// Enabled reports whether an avatar bucket is configured.
func (c AvatarConfig) Enabled() bool {
	return c.BucketName != ""
}

// R2 converts the avatar settings into storage configuration.
func (c AvatarConfig) R2() storage.R2Config {
	return storage.R2Config{
		AccountID:       c.AccountID,
		AccessKeyID:     c.AccessKeyID,
		SecretAccessKey: c.SecretAccessKey,
		BucketName:      c.BucketName,
		Endpoint:        c.Endpoint,
		PublicBaseURL:   c.PublicBaseURL,
		PresignTTL:      c.PresignTTL,
	}
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	return &cfg, nil
}

// ZerologLevel returns the configured log level, defaulting to info.
func (c *Config) ZerologLevel() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
