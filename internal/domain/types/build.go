package types

import (
	"github.com/okian/golfbet/internal/domain/game"
)

// NewGameView builds the round summary. The settlement is the last one computed.
func NewGameView(id string, g *game.Game) GameView {
	players := g.Players()
	v := GameView{
		ID:          id,
		Settings:    g.Settings(),
		Players:     players,
		Voor:        []Voor{},
		Holes:       g.HoleNumbers(),
		CurrentHole: g.CurrentHole(),
		Finished:    g.Finished(),
		Settlement:  g.FinalPayments().Transfers(),
	}
	for _, from := range players {
		for _, to := range players {
			if n, _ := g.VoorGiven(from, to); n > 0 {
				v.Voor = append(v.Voor, Voor{From: from, To: to, Strokes: n})
			}
		}
	}
	return v
}

// NewHoleView builds the result of one hole.
func NewHoleView(g *game.Game, hole int) (HoleView, bool) {
	par, ok := g.HolePar(hole)
	if !ok {
		return HoleView{}, false
	}
	value, _ := g.HoleValue(hole)
	participants, winners, _ := g.Buchi(hole)
	payments, _ := g.HolePayments(hole)

	v := HoleView{
		Number:            hole,
		Par:               par,
		Value:             value,
		BuchiParticipants: participants,
		BuchiWinners:      winners,
		Payments:          payments.Transfers(),
	}
	for _, p := range g.Players() {
		raw, scored := g.PlayerScore(hole, p)
		adjusted, _ := g.AdjustedScore(p, hole)
		v.Scores = append(v.Scores, Score{
			Player:   p,
			Scored:   scored,
			Raw:      raw,
			Adjusted: adjusted,
			Display:  ScoreText(raw, adjusted, scored),
		})
	}
	return v, true
}

// NewScorecard builds the full round state from the payments last computed.
func NewScorecard(id string, g *game.Game) Scorecard {
	players := g.Players()
	final := g.FinalPayments()
	net := final.Balances()

	sc := Scorecard{
		GameID:     id,
		Settings:   g.Settings(),
		Players:    players,
		Settlement: final.Transfers(),
		Running:    make(map[string][]float64, len(players)),
	}

	running := make(map[string]float64, len(players))
	for _, n := range g.HoleNumbers() {
		hv, _ := NewHoleView(g, n)
		sc.Holes = append(sc.Holes, hv)

		payments, _ := g.HolePayments(n)
		for p, b := range payments.Balances() {
			running[p] += b
		}
		for _, p := range players {
			sc.Running[p] = append(sc.Running[p], running[p])
		}
	}

	for _, p := range players {
		total, _ := g.TotalScore(p)
		adjusted, _ := g.AdjustedTotalScore(p)
		sc.Totals = append(sc.Totals, PlayerTotals{
			Player:        p,
			Total:         total,
			AdjustedTotal: adjusted,
			Display:       ScoreText(total, adjusted, true),
			Net:           net[p],
		})
	}
	return sc
}
