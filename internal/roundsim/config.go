// Package roundsim plays generated rounds against a running golfbet service
// and checks the settlements it returns.
package roundsim

import (
	"errors"
	"fmt"
	"time"

	"github.com/okian/golfbet/internal/domain/game"
)

// ErrInvalidConfig is returned when the simulation cannot be run as configured.
var ErrInvalidConfig = errors.New("invalid simulation config")

// Config holds configuration for a simulation run.
type Config struct {
	BaseURL     string        // Base URL of the service
	Rounds      int           // Number of rounds to play
	Players     int           // Players per round
	Holes       int           // Holes per round
	Mode        string        // Game mode
	Scoring     string        // Scoring type
	Voor        bool          // Give random strokes between players
	Buchi       bool          // Play the side bet on every hole
	Concurrency int           // Rounds in flight at once
	Timeout     time.Duration // HTTP request timeout
	Seed        int64         // Generator seed, 0 picks one from the clock
	Verbose     bool          // Log every round
}

// Validate checks the bounds the service would reject anyway, before any
// request is sent.
func (c *Config) Validate() error {
	switch {
	case c.BaseURL == "":
		return fmt.Errorf("%w: url must not be empty", ErrInvalidConfig)
	case c.Rounds < 1:
		return fmt.Errorf("%w: rounds must be positive", ErrInvalidConfig)
	case c.Players < game.MinPlayers || c.Players > game.MaxPlayers:
		return fmt.Errorf("%w: players must be in [%d,%d]", ErrInvalidConfig, game.MinPlayers, game.MaxPlayers)
	case c.Holes < game.MinHoles || c.Holes > game.MaxHoles:
		return fmt.Errorf("%w: holes must be in [%d,%d]", ErrInvalidConfig, game.MinHoles, game.MaxHoles)
	case c.Concurrency < 1:
		return fmt.Errorf("%w: concurrency must be positive", ErrInvalidConfig)
	}
	if _, err := game.ParseGameMode(c.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := game.ParseScoringType(c.Scoring); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
