package roundsim

import (
	"strconv"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/okian/golfbet/internal/domain/game"
	"github.com/okian/golfbet/internal/domain/types"
)

var pars = []int{3, 4, 4, 4, 5}

// HolePlan is one hole of a generated round.
type HolePlan struct {
	Number int
	Value  float64
	Par    int
	Scores []types.ScoreEntry
	Buchi  []types.BuchiEntry
}

// RoundPlan is a generated round, ready to be played against the API.
type RoundPlan struct {
	Players []string
	Voor    []types.Voor
	Holes   []HolePlan
}

// Generator builds reproducible rounds from a seed.
type Generator struct {
	faker *gofakeit.Faker
}

// NewGenerator creates a generator; equal seeds give equal rounds.
func NewGenerator(seed int64) *Generator {
	return &Generator{faker: gofakeit.New(uint64(seed))}
}

// Round generates one round for cfg.
func (g *Generator) Round(cfg *Config) RoundPlan {
	plan := RoundPlan{Players: g.players(cfg.Players)}

	if cfg.Voor {
		for _, from := range plan.Players {
			for _, to := range plan.Players {
				if from == to || !g.faker.Bool() {
					continue
				}
				if n := g.faker.Number(0, game.MaxVoorStrokes); n > 0 {
					plan.Voor = append(plan.Voor, types.Voor{From: from, To: to, Strokes: n})
				}
			}
		}
	}

	for n := 1; n <= cfg.Holes; n++ {
		h := HolePlan{
			Number: n,
			Value:  float64(g.faker.Number(1, 4) * 5),
			Par:    pars[g.faker.Number(0, len(pars)-1)],
		}
		for _, p := range plan.Players {
			score := h.Par + g.faker.Number(-2, 3)
			h.Scores = append(h.Scores, types.ScoreEntry{Player: p, Score: max(score, game.MinStrokes)})
		}
		if cfg.Buchi {
			h.Buchi = g.buchi(plan.Players)
		}
		plan.Holes = append(plan.Holes, h)
	}
	return plan
}

// players returns n distinct first names.
func (g *Generator) players(n int) []string {
	seen := make(map[string]int, n)
	out := make([]string, 0, n)
	for len(out) < n {
		name := g.faker.FirstName()
		seen[name]++
		if seen[name] > 1 {
			name += " " + strconv.Itoa(seen[name])
		}
		out = append(out, name)
	}
	return out
}

// buchi picks a random set of participants and one winner among them.
func (g *Generator) buchi(players []string) []types.BuchiEntry {
	var entries []types.BuchiEntry
	for _, p := range players {
		if g.faker.Bool() {
			entries = append(entries, types.BuchiEntry{Player: p, Participates: true})
		}
	}
	if len(entries) > 1 {
		entries[g.faker.Number(0, len(entries)-1)].Won = true
	}
	return entries
}
