package main

import (
	"fmt"

	"github.com/scotty-olympics/olympics/go/internal/config"
	"github.com/scotty-olympics/olympics/go/internal/game/orchestrator"
)

// loadConfig reads the environment and the game rules file it points at.
func loadConfig() (*config.Config, config.GameRules, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, config.GameRules{}, err
	}

	rules, err := config.LoadGameRules(cfg.GameConfigPath)
	if err != nil {
		return nil, config.GameRules{}, fmt.Errorf("failed to load game rules from %s: %w", cfg.GameConfigPath, err)
	}
	return cfg, rules, nil
}

func orchestratorConfig(rules config.GameRules) orchestrator.Config {
	return orchestrator.Config{
		SweepInterval: rules.Orchestrator.SweepInterval,
		BatchSize:     rules.Orchestrator.BatchSize,
		Workers:       rules.Orchestrator.Workers,
	}
}
