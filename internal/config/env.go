// Package config loads process settings from the environment and match
// scenarios from YAML.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Settings are the process-wide options read from the environment.
type Settings struct {
	DBPath    string `env:"ARENASIM_DB_PATH" envDefault:"arenasim.db"`
	StepMS    int    `env:"ARENASIM_STEP_MS" envDefault:"100"`
	Telemetry bool   `env:"ARENASIM_TELEMETRY" envDefault:"false"`
	LogEvents bool   `env:"ARENASIM_LOG_EVENTS" envDefault:"false"`
}

// Step returns the configured simulation step.
func (s Settings) Step() time.Duration {
	return time.Duration(s.StepMS) * time.Millisecond
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadSettings reads Settings from the environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := ParseEnv(&s); err != nil {
		return Settings{}, err
	}
	if s.StepMS <= 0 {
		return Settings{}, fmt.Errorf("parse env: ARENASIM_STEP_MS must be positive, got %d", s.StepMS)
	}
	return s, nil
}
