// Package types contains the read models the service hands to its adapters.
package types

import (
	"strconv"

	"github.com/okian/golfbet/internal/domain/game"
	"github.com/okian/golfbet/internal/domain/ledger"
)

// Voor is one standing handicap between two players.
type Voor struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Strokes int    `json:"strokes"`
}

// GameView summarizes a round.
type GameView struct {
	ID          string            `json:"id"`
	Settings    game.Settings     `json:"settings"`
	Players     []string          `json:"players"`
	Voor        []Voor            `json:"voor"`
	Holes       []int             `json:"holes"`
	CurrentHole int               `json:"current_hole"`
	Finished    bool              `json:"finished"`
	Settlement  []ledger.Transfer `json:"settlement"`
}

// Score is one player's result on a hole.
type Score struct {
	Player   string `json:"player"`
	Scored   bool   `json:"scored"`
	Raw      int    `json:"raw,omitempty"`
	Adjusted int    `json:"adjusted,omitempty"`
	Display  string `json:"display"`
}

// HoleView is the per-hole result.
type HoleView struct {
	Number            int               `json:"number"`
	Par               int               `json:"par"`
	Value             float64           `json:"value"`
	Scores            []Score           `json:"scores"`
	BuchiParticipants []string          `json:"buchi_participants"`
	BuchiWinners      []string          `json:"buchi_winners"`
	Payments          []ledger.Transfer `json:"payments"`
}

// PlayerTotals holds a player's totals and net position.
type PlayerTotals struct {
	Player        string  `json:"player"`
	Total         int     `json:"total"`
	AdjustedTotal int     `json:"adjusted_total"`
	Display       string  `json:"display"`
	Net           float64 `json:"net"`
}

// Scorecard is the complete state of a round for exports.
type Scorecard struct {
	GameID     string            `json:"game_id"`
	Settings   game.Settings     `json:"settings"`
	Players    []string          `json:"players"`
	Holes      []HoleView        `json:"holes"`
	Totals     []PlayerTotals    `json:"totals"`
	Settlement []ledger.Transfer `json:"settlement"`
	// Running holds each player's cumulative balance after each entry of Holes.
	Running map[string][]float64 `json:"running"`
}

// ScoreText renders "raw (adjusted)" when voor changes the score, the raw score
// otherwise, and "-" when nothing is recorded.
func ScoreText(raw, adjusted int, scored bool) string {
	if !scored {
		return "-"
	}
	if raw == adjusted {
		return strconv.Itoa(raw)
	}
	return strconv.Itoa(raw) + " (" + strconv.Itoa(adjusted) + ")"
}

// NewGame describes a round to create. Zero settings fields take the service
// defaults; a zero PlayerCount becomes the larger of the default and the
// number of players listed.
type NewGame struct {
	Settings game.Settings
	Players  []string
	Voor     []Voor
}

// ScoreEntry is one stroke count to record on a hole.
type ScoreEntry struct {
	Player string `json:"player"`
	Score  int    `json:"score"`
}

// BuchiEntry sets a player's side bet state on a hole. Won implies Participates.
type BuchiEntry struct {
	Player       string `json:"player"`
	Participates bool   `json:"participates"`
	Won          bool   `json:"won"`
}
