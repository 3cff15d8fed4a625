package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Award policies for players tied at rank 1.
const (
	AwardPolicyShared   = "shared"
	AwardPolicyOutright = "outright"
)

// GameRules are the tunables of the tap-race minigame.
type GameRules struct {
	Countdown        time.Duration `yaml:"countdown"`
	PlayDuration     time.Duration `yaml:"play_duration"`
	EventName        string        `yaml:"event_name"`
	EventDescription string        `yaml:"event_description"`
	AwardPolicy      string        `yaml:"award_policy"`

	Orchestrator OrchestratorRules `yaml:"orchestrator"`
}

// OrchestratorRules control the background transition driver.
type OrchestratorRules struct {
	SweepInterval time.Duration `yaml:"sweep_interval"`
	BatchSize     int           `yaml:"batch_size"`
	Workers       int           `yaml:"workers"`
}

func DefaultGameRules() GameRules {
	return GameRules{
		Countdown:        3 * time.Second,
		PlayDuration:     10 * time.Second,
		EventName:        "Row Harder!",
		EventDescription: "Tap as fast as you can before the clock runs out.",
		AwardPolicy:      AwardPolicyShared,
		Orchestrator: OrchestratorRules{
			SweepInterval: 5 * time.Second,
			BatchSize:     50,
			Workers:       4,
		},
	}
}

// LoadGameRules reads rules from path over the defaults. A missing file yields the defaults.
func LoadGameRules(path string) (GameRules, error) {
	rules := DefaultGameRules()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return rules, nil
		}
		return rules, fmt.Errorf("failed to read game config: %w", err)
	}

	if err := yaml.Unmarshal(data, &rules); err != nil {
		return rules, fmt.Errorf("failed to parse game config: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return rules, err
	}
	return rules, nil
}

func (r GameRules) Validate() error {
	switch {
	case r.Countdown < 0:
		return fmt.Errorf("invalid game config: countdown must not be negative")
	case r.PlayDuration <= 0:
		return fmt.Errorf("invalid game config: play_duration must be positive")
	case r.EventName == "":
		return fmt.Errorf("invalid game config: event_name is required")
	case r.AwardPolicy != AwardPolicyShared && r.AwardPolicy != AwardPolicyOutright:
		return fmt.Errorf("invalid game config: unknown award_policy %q", r.AwardPolicy)
	case r.Orchestrator.SweepInterval <= 0:
		return fmt.Errorf("invalid game config: orchestrator.sweep_interval must be positive")
	case r.Orchestrator.BatchSize <= 0 || r.Orchestrator.Workers <= 0:
		return fmt.Errorf("invalid game config: orchestrator batch_size and workers must be positive")
	}
	return nil
}
