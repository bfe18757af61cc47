package game

import (
	"fmt"
	"strings"
)

// Round configuration bounds.
const (
	MinPlayers = 2
	MaxPlayers = 10
	MinHoles   = 1
	MaxHoles   = 18

	MinStrokes = 1
	MaxStrokes = 20

	MaxVoorStrokes = 2
)

// GameMode selects how a hole is settled.
type GameMode string

const (
	// SingleWinner pays one global winner per hole.
	SingleWinner GameMode = "single_winner"
	// FaceToFace settles every pair of players independently.
	FaceToFace GameMode = "face_to_face"
)

// Valid reports whether m is a known mode.
func (m GameMode) Valid() bool {
	return m == SingleWinner || m == FaceToFace
}

// ParseGameMode accepts the canonical names plus a few spellings used by clients.
func ParseGameMode(s string) (GameMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single_winner", "single-winner", "singlewinner", "single":
		return SingleWinner, nil
	case "face_to_face", "face-to-face", "facetoface", "f2f":
		return FaceToFace, nil
	default:
		return "", fmt.Errorf("%w: unknown game mode %q", ErrInvalidSettings, s)
	}
}

// ScoringType decides whether above-par winners still collect.
type ScoringType string

const (
	// ParScoring voids payments when the winner is over par.
	ParScoring ScoringType = "par"
	// BogeyScoring pays half the hole value when the winner is over par.
	BogeyScoring ScoringType = "bogey"
)

// Valid reports whether s is a known scoring type.
func (s ScoringType) Valid() bool {
	return s == ParScoring || s == BogeyScoring
}

// ParseScoringType parses "par" or "bogey".
func ParseScoringType(s string) (ScoringType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "par":
		return ParScoring, nil
	case "bogey":
		return BogeyScoring, nil
	default:
		return "", fmt.Errorf("%w: unknown scoring type %q", ErrInvalidSettings, s)
	}
}

// Settings is fixed for the whole round.
type Settings struct {
	PlayerCount  int         `json:"player_count"`
	HoleCount    int         `json:"hole_count"`
	Mode         GameMode    `json:"mode"`
	Scoring      ScoringType `json:"scoring"`
	BuchiEnabled bool        `json:"buchi_enabled"`
	VoorEnabled  bool        `json:"voor_enabled"`
}

// DefaultSettings mirrors a casual nine-hole two-player round.
func DefaultSettings() Settings {
	return Settings{
		PlayerCount: MinPlayers,
		HoleCount:   9,
		Mode:        SingleWinner,
		Scoring:     ParScoring,
	}
}

// Validate rejects out-of-range configuration before any hole is played.
func (s Settings) Validate() error {
	switch {
	case s.PlayerCount < MinPlayers || s.PlayerCount > MaxPlayers:
		return fmt.Errorf("%w: player count %d outside [%d,%d]", ErrInvalidSettings, s.PlayerCount, MinPlayers, MaxPlayers)
	case s.HoleCount < MinHoles || s.HoleCount > MaxHoles:
		return fmt.Errorf("%w: hole count %d outside [%d,%d]", ErrInvalidSettings, s.HoleCount, MinHoles, MaxHoles)
	case !s.Mode.Valid():
		return fmt.Errorf("%w: unknown game mode %q", ErrInvalidSettings, s.Mode)
	case !s.Scoring.Valid():
		return fmt.Errorf("%w: unknown scoring type %q", ErrInvalidSettings, s.Scoring)
	}
	return nil
}
