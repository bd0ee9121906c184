// Package config loads stash settings from defaults, an optional YAML file and
// STASH_* environment variables, in that order, and builds the stores and
// logger they describe.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Backend describes the store behind one kind.
type Backend struct {
	// Driver is one of memory, redis, postgres or sqlite.
	Driver string `yaml:"driver" env:"DRIVER"`
	// Addr is the Redis address.
	Addr string `yaml:"addr" env:"ADDR"`
	// DSN is the postgres connection string or sqlite file path.
	DSN       string `yaml:"dsn" env:"DSN"`
	Namespace string `yaml:"namespace" env:"NAMESPACE"`
	// QuotaBytes caps a memory store; 0 is unlimited.
	QuotaBytes int `yaml:"quota_bytes" env:"QUOTA_BYTES"`
}

type Config struct {
	Mode               string  `yaml:"mode" env:"MODE"`
	PersistenceAllowed bool    `yaml:"persistence_allowed" env:"PERSISTENCE_ALLOWED"`
	LogLevel           string  `yaml:"log_level" env:"LOG_LEVEL"`
	Durable            Backend `yaml:"durable" envPrefix:"DURABLE_"`
	Session            Backend `yaml:"session" envPrefix:"SESSION_"`
}

// Default returns in-memory stores in production mode.
func Default() Config {
	return Config{
		Mode:               "production",
		PersistenceAllowed: true,
		LogLevel:           "",
		Durable:            Backend{Driver: "memory", Namespace: "local"},
		Session:            Backend{Driver: "memory", Namespace: "session"},
	}
}

// Load applies the YAML file at path (skipped when empty) and then the
// environment over Default.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "STASH_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}
