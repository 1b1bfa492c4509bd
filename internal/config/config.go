// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the environment-driven configuration surface. Storage selects
// the persistence backend: "sqlite", "file", or "auto" (sqlite with a file
// fallback).
type Config struct {
	DBPath  string `env:"SURGISET_DB" envDefault:"surgiset.sqlite3"`
	DataDir string `env:"SURGISET_DATA_DIR" envDefault:"surgiset-data"`
	Storage string `env:"SURGISET_STORAGE" envDefault:"auto"`
}

// Load parses the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}
