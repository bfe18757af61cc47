package game

// HolePar returns the par of a hole.
func (g *Game) HolePar(hole int) (int, bool) {
	h, ok := g.holes[hole]
	if !ok {
		return 0, false
	}
	return h.Par, true
}

// HoleValue returns the stake of a hole.
func (g *Game) HoleValue(hole int) (float64, bool) {
	h, ok := g.holes[hole]
	if !ok {
		return 0, false
	}
	return h.Value, true
}

// PlayerScore returns a player's raw score on a hole.
func (g *Game) PlayerScore(hole int, player string) (int, bool) {
	h, ok := g.holes[hole]
	if !ok {
		return 0, false
	}
	if _, ok := g.players[player]; !ok {
		return 0, false
	}
	s, ok := h.scores[player]
	return s, ok
}

// TotalScore sums a player's raw scores over the holes scored so far.
func (g *Game) TotalScore(player string) (int, bool) {
	if _, ok := g.players[player]; !ok {
		return 0, false
	}
	total := 0
	for n := 1; n <= g.settings.HoleCount; n++ {
		if s, ok := g.PlayerScore(n, player); ok {
			total += s
		}
	}
	return total, true
}

// AdjustedTotalScore sums the best voor-adjusted score per scored hole. It
// equals TotalScore when voor is disabled.
func (g *Game) AdjustedTotalScore(player string) (int, bool) {
	if !g.settings.VoorEnabled {
		return g.TotalScore(player)
	}
	if _, ok := g.players[player]; !ok {
		return 0, false
	}
	total := 0
	for n := 1; n <= g.settings.HoleCount; n++ {
		if _, ok := g.PlayerScore(n, player); ok {
			total += g.BestAdjustedScore(player, n)
		}
	}
	return total, true
}

// AdjustedScore is the single-hole form of AdjustedTotalScore, used to show
// "raw (adjusted)" pairs.
func (g *Game) AdjustedScore(player string, hole int) (int, bool) {
	s, ok := g.PlayerScore(hole, player)
	if !ok || !g.settings.VoorEnabled {
		return s, ok
	}
	return g.BestAdjustedScore(player, hole), true
}
