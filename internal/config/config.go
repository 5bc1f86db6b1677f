// Package config loads the dungeon service configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
)

// Config is the full service configuration
type Config struct {
	HTTPPort int `env:"DUNGEON_HTTP_PORT" envDefault:"8080"`

	DBPath       string `env:"DUNGEON_DB_PATH" envDefault:"data/dungeon.db"`
	GameDataPath string `env:"DUNGEON_GAMEDATA_PATH" envDefault:"data/gamedata.db"`

	RedisAddr  string        `env:"DUNGEON_REDIS_ADDR" envDefault:"localhost:6379"`
	BrokerAddr string        `env:"DUNGEON_BROKER_ADDR" envDefault:"localhost:6379"`
	CacheTTL   time.Duration `env:"DUNGEON_CACHE_TTL" envDefault:"300s"`

	EventsStream string `env:"DUNGEON_EVENTS_STREAM" envDefault:"dungeon.events"`
	CombatStream string `env:"DUNGEON_COMBAT_STREAM" envDefault:"combat.triggers"`
	StreamMaxLen int64  `env:"DUNGEON_STREAM_MAXLEN" envDefault:"0"`

	Floors        int `env:"DUNGEON_FLOORS" envDefault:"3"`
	RoomsPerFloor int `env:"DUNGEON_ROOMS_PER_FLOOR" envDefault:"5"`

	StartupInitialBackoff time.Duration `env:"DUNGEON_STARTUP_INITIAL_BACKOFF" envDefault:"500ms"`
	StartupMaxBackoff     time.Duration `env:"DUNGEON_STARTUP_MAX_BACKOFF" envDefault:"30s"`

	LogLevel     string `env:"DUNGEON_LOG_LEVEL" envDefault:"info"`
	OTELEndpoint string `env:"DUNGEON_OTEL_ENDPOINT"`
}

var logLevels = []string{"debug", "info", "warn", "error"}

// Load parses the environment into a validated Config
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration bounds
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("DUNGEON_HTTP_PORT", c.HTTPPort, 1, 65535, vb)
	errors.ValidateRequired("DUNGEON_DB_PATH", c.DBPath, vb)
	errors.ValidateRequired("DUNGEON_GAMEDATA_PATH", c.GameDataPath, vb)
	errors.ValidateRequired("DUNGEON_REDIS_ADDR", c.RedisAddr, vb)
	errors.ValidateRequired("DUNGEON_BROKER_ADDR", c.BrokerAddr, vb)
	errors.ValidateRequired("DUNGEON_EVENTS_STREAM", c.EventsStream, vb)
	errors.ValidateRequired("DUNGEON_COMBAT_STREAM", c.CombatStream, vb)
	errors.ValidateMin("DUNGEON_FLOORS", c.Floors, 1, vb)
	errors.ValidateMin("DUNGEON_ROOMS_PER_FLOOR", c.RoomsPerFloor, 2, vb)
	errors.ValidateEnum("DUNGEON_LOG_LEVEL", c.LogLevel, logLevels, vb)
	if c.CacheTTL <= 0 {
		vb.Field("DUNGEON_CACHE_TTL", "must be positive")
	}
	if c.StreamMaxLen < 0 {
		vb.Field("DUNGEON_STREAM_MAXLEN", "must not be negative")
	}
	if c.StartupMaxBackoff < c.StartupInitialBackoff {
		vb.Field("DUNGEON_STARTUP_MAX_BACKOFF", "must be at least DUNGEON_STARTUP_INITIAL_BACKOFF")
	}

	return vb.Build()
}

// SlogLevel converts LogLevel to a slog.Level
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
