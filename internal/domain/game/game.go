// Package game implements the golf wagering engine: round state, voor
// handicaps, per-hole payments and the end-of-round settlement.
//
// A Game is not safe for concurrent use. Callers serialize access per game.
package game

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/okian/golfbet/internal/domain/ledger"
)

// Game owns every Player and Hole of one round.
type Game struct {
	settings Settings

	players map[string]*Player
	order   []string

	holes       map[int]*Hole
	currentHole int

	finalPayments *ledger.Ledger
}

// New creates a round after validating its settings.
func New(settings Settings) (*Game, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &Game{
		settings:      settings,
		players:       make(map[string]*Player),
		holes:         make(map[int]*Hole),
		currentHole:   1,
		finalPayments: ledger.New(),
	}, nil
}

// Settings returns the round configuration.
func (g *Game) Settings() Settings { return g.settings }

// AddPlayer registers a player. Players must be added before any score is recorded.
func (g *Game) AddPlayer(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidPlayer)
	}
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("%w: %q has surrounding whitespace", ErrInvalidPlayer, name)
	}
	if _, ok := g.players[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicatePlayer, name)
	}
	if len(g.order) >= g.settings.PlayerCount {
		return fmt.Errorf("%w: %d", ErrTooManyPlayers, g.settings.PlayerCount)
	}
	if g.started() {
		return ErrRoundStarted
	}
	g.players[name] = newPlayer(name)
	g.order = append(g.order, name)
	return nil
}

func (g *Game) started() bool {
	for _, h := range g.holes {
		if len(h.scores) > 0 {
			return true
		}
	}
	return false
}

// AddHole creates hole number with its stake value and par.
func (g *Game) AddHole(number int, value float64, par int) error {
	switch {
	case number < 1 || number > g.settings.HoleCount:
		return fmt.Errorf("%w: number %d outside [1,%d]", ErrInvalidHole, number, g.settings.HoleCount)
	case !(value > 0) || math.IsInf(value, 0):
		return fmt.Errorf("%w: value must be positive, got %v", ErrInvalidHole, value)
	case par < 1:
		return fmt.Errorf("%w: par must be positive, got %d", ErrInvalidHole, par)
	}
	if _, ok := g.holes[number]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateHole, number)
	}
	g.holes[number] = newHole(number, value, par)
	return nil
}

// SetPlayerScore records (or overwrites) a player's strokes on a hole.
func (g *Game) SetPlayerScore(hole int, player string, score int) error {
	h, p, err := g.lookup(hole, player)
	if err != nil {
		return err
	}
	if score < MinStrokes || score > MaxStrokes {
		return fmt.Errorf("%w: %d outside [%d,%d]", ErrInvalidScore, score, MinStrokes, MaxStrokes)
	}
	h.scores[player] = score
	p.scores[hole] = score
	return nil
}

// SetVoorAdjustment records that from gives to the given number of strokes.
// Zero strokes removes the adjustment.
func (g *Game) SetVoorAdjustment(from, to string, strokes int) error {
	if !g.settings.VoorEnabled {
		return ErrVoorDisabled
	}
	giver, ok := g.players[from]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPlayer, from)
	}
	if _, ok := g.players[to]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPlayer, to)
	}
	if from == to {
		return fmt.Errorf("%w: %q", ErrSelfVoor, from)
	}
	if strokes < 0 || strokes > MaxVoorStrokes {
		return fmt.Errorf("%w: %d outside [0,%d]", ErrInvalidVoor, strokes, MaxVoorStrokes)
	}
	if strokes == 0 {
		delete(giver.voorGiven, to)
		return nil
	}
	giver.voorGiven[to] = strokes
	return nil
}

// SetBuchiParticipation adds or removes a player from a hole's side bet.
// Leaving the bet also clears a recorded win.
func (g *Game) SetBuchiParticipation(hole int, player string, participates bool) error {
	if !g.settings.BuchiEnabled {
		return ErrBuchiDisabled
	}
	h, p, err := g.lookup(hole, player)
	if err != nil {
		return err
	}
	p.buchiParticipation[hole] = participates
	if participates {
		h.buchiParticipants[player] = struct{}{}
		return nil
	}
	delete(h.buchiParticipants, player)
	delete(h.buchiWinners, player)
	p.buchiWin[hole] = false
	return nil
}

// SetBuchiWin marks a player as a side-bet winner. Winning implies participating.
func (g *Game) SetBuchiWin(hole int, player string, won bool) error {
	if !g.settings.BuchiEnabled {
		return ErrBuchiDisabled
	}
	h, p, err := g.lookup(hole, player)
	if err != nil {
		return err
	}
	p.buchiWin[hole] = won
	if !won {
		delete(h.buchiWinners, player)
		return nil
	}
	h.buchiWinners[player] = struct{}{}
	h.buchiParticipants[player] = struct{}{}
	p.buchiParticipation[hole] = true
	return nil
}

// AdvanceHole moves the cursor to the next hole. finished is true once the
// cursor has moved past the last hole.
func (g *Game) AdvanceHole() (next int, finished bool, err error) {
	if g.currentHole > g.settings.HoleCount {
		return g.currentHole, true, ErrRoundComplete
	}
	g.currentHole++
	return g.currentHole, g.currentHole > g.settings.HoleCount, nil
}

// CurrentHole returns the hole cursor.
func (g *Game) CurrentHole() int { return g.currentHole }

// Finished reports whether every hole has been advanced past.
func (g *Game) Finished() bool { return g.currentHole > g.settings.HoleCount }

// Players returns player names in the order they were added.
func (g *Game) Players() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// HoleNumbers returns the created hole numbers in ascending order.
func (g *Game) HoleNumbers() []int {
	out := make([]int, 0, len(g.holes))
	for n := range g.holes {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Buchi returns the sorted participants and winners of a hole's side bet.
func (g *Game) Buchi(hole int) (participants, winners []string, ok bool) {
	h, ok := g.holes[hole]
	if !ok {
		return nil, nil, false
	}
	return sortedKeys(h.buchiParticipants), sortedKeys(h.buchiWinners), true
}

// VoorGiven returns the strokes from gives to.
func (g *Game) VoorGiven(from, to string) (int, bool) {
	p, ok := g.players[from]
	if !ok {
		return 0, false
	}
	return p.voorGiven[to], true
}

func (g *Game) lookup(hole int, player string) (*Hole, *Player, error) {
	h, ok := g.holes[hole]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %d", ErrUnknownHole, hole)
	}
	p, ok := g.players[player]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownPlayer, player)
	}
	return h, p, nil
}
