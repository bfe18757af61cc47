package game

// AdjustedScoreAgainst returns player's score on hole reduced by the strokes
// opponent gives player. Missing scores and adjustments count as 0. Callers
// bypass this when voor is disabled.
func (g *Game) AdjustedScoreAgainst(player string, hole int, opponent string) int {
	score := 0
	if p, ok := g.players[player]; ok {
		score = p.scores[hole]
	}
	if o, ok := g.players[opponent]; ok {
		score -= o.voorGiven[player]
	}
	return score
}

// BestAdjustedScore is the lowest AdjustedScoreAgainst over every opponent.
// Without opponents it falls back to the raw score.
func (g *Game) BestAdjustedScore(player string, hole int) int {
	best, found := 0, false
	for _, opponent := range g.order {
		if opponent == player {
			continue
		}
		adj := g.AdjustedScoreAgainst(player, hole, opponent)
		if !found || adj < best {
			best, found = adj, true
		}
	}
	if !found {
		if p, ok := g.players[player]; ok {
			return p.scores[hole]
		}
		return 0
	}
	return best
}

// effectiveScore is the ranking score used by Single Winner mode.
func (g *Game) effectiveScore(player string, hole int) int {
	if !g.settings.VoorEnabled {
		return g.holes[hole].score(player)
	}
	return g.BestAdjustedScore(player, hole)
}

// pairScores returns a's and b's scores as compared head to head.
func (g *Game) pairScores(h *Hole, a, b string) (int, int) {
	if !g.settings.VoorEnabled {
		return h.score(a), h.score(b)
	}
	return g.AdjustedScoreAgainst(a, h.Number, b), g.AdjustedScoreAgainst(b, h.Number, a)
}
