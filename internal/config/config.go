// Package config defines service configuration and the koanf loader that fills it.
package config

import (
	"fmt"
	"strings"

	"github.com/okian/golfbet/internal/domain/game"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MaxGames bounds the number of rounds held in the registry.
	MaxGames int `koanf:"max_games"`

	// EventBuffer sizes the in-process pub/sub output channel.
	EventBuffer int `koanf:"event_buffer"`

	// RateLimitRPS and RateLimitBurst configure the API token bucket.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`

	// Defaults applied to POST /games fields the client leaves out.
	DefaultPlayers int    `koanf:"default_players"`
	DefaultHoles   int    `koanf:"default_holes"`
	DefaultMode    string `koanf:"default_mode"`
	DefaultScoring string `koanf:"default_scoring"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           ":9080",
		MaxGames:       10_000,
		EventBuffer:    1024,
		RateLimitRPS:   50,
		RateLimitBurst: 100,
		DefaultPlayers: 2,
		DefaultHoles:   9,
		DefaultMode:    string(game.SingleWinner),
		DefaultScoring: string(game.ParScoring),
	}
}

// DefaultSettings converts the default_* fields into round settings.
func (c *Config) DefaultSettings() (game.Settings, error) {
	mode, err := game.ParseGameMode(c.DefaultMode)
	if err != nil {
		return game.Settings{}, fmt.Errorf("%w: default_mode: %w", ErrInvalidConfig, err)
	}
	scoring, err := game.ParseScoringType(c.DefaultScoring)
	if err != nil {
		return game.Settings{}, fmt.Errorf("%w: default_scoring: %w", ErrInvalidConfig, err)
	}
	s := game.Settings{
		PlayerCount: c.DefaultPlayers,
		HoleCount:   c.DefaultHoles,
		Mode:        mode,
		Scoring:     scoring,
	}
	if err := s.Validate(); err != nil {
		return game.Settings{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return s, nil
}

// Validate checks the fields Load cannot repair.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.MaxGames <= 0 {
		return fmt.Errorf("%w: max_games must be positive", ErrInvalidConfig)
	}
	if c.EventBuffer < 0 {
		return fmt.Errorf("%w: event_buffer must not be negative", ErrInvalidConfig)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("%w: rate limit must be positive", ErrInvalidConfig)
	}
	_, err := c.DefaultSettings()
	return err
}
