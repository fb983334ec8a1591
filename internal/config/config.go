// Package config loads evreg command configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/nkcmr/evreg"
)

// Config holds settings shared by every evreg command. Command-line flags
// override these values.
type Config struct {
	LogLevel  string `env:"EVREG_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"EVREG_LOG_FORMAT" envDefault:"text"`
	FailFast  bool   `env:"EVREG_FAIL_FAST" envDefault:"false"`
	// OTelEndpoint enables span export when set.
	OTelEndpoint string `env:"EVREG_OTEL_ENDPOINT"`
}

// Load reads Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// FailurePolicy maps FailFast onto the registry policy.
func (c Config) FailurePolicy() evreg.FailurePolicy {
	if c.FailFast {
		return evreg.StopOnError
	}
	return evreg.ContinueOnError
}
