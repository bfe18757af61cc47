package game

import (
	"sort"

	"github.com/okian/golfbet/internal/domain/ledger"
)

// Player holds one participant's raw round state. Identity is the name.
type Player struct {
	Name string

	scores map[int]int
	// voorGiven maps opponent -> strokes this player gives that opponent.
	voorGiven          map[string]int
	buchiParticipation map[int]bool
	buchiWin           map[int]bool
}

func newPlayer(name string) *Player {
	return &Player{
		Name:               name,
		scores:             make(map[int]int),
		voorGiven:          make(map[string]int),
		buchiParticipation: make(map[int]bool),
		buchiWin:           make(map[int]bool),
	}
}

// Score returns the recorded score for a hole.
func (p *Player) Score(hole int) (int, bool) {
	s, ok := p.scores[hole]
	return s, ok
}

// Hole is one hole of the round. Players are referenced by name only.
type Hole struct {
	Number int
	Value  float64
	Par    int

	scores            map[string]int
	buchiParticipants map[string]struct{}
	buchiWinners      map[string]struct{}
	payments          *ledger.Ledger
}

func newHole(number int, value float64, par int) *Hole {
	return &Hole{
		Number:            number,
		Value:             value,
		Par:               par,
		scores:            make(map[string]int),
		buchiParticipants: make(map[string]struct{}),
		buchiWinners:      make(map[string]struct{}),
		payments:          ledger.New(),
	}
}

// score returns a player's score on this hole, 0 when missing.
func (h *Hole) score(player string) int {
	return h.scores[player]
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
