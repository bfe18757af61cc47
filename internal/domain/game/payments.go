package game

import (
	"fmt"

	"github.com/okian/golfbet/internal/domain/ledger"
)

// Payout multipliers keyed on the winner's raw score relative to par.
const (
	holeInOneMultiplier = 8
	eagleMultiplier     = 4
	birdieMultiplier    = 2
	parMultiplier       = 1
	bogeyMultiplier     = 0.5
)

// Multiplier returns the payout multiplier for a winning raw score. ok is false
// when the comparison pays nothing (over par under Par scoring).
func Multiplier(score, par int, scoring ScoringType) (float64, bool) {
	switch {
	case score == 1:
		return holeInOneMultiplier, true
	case score == par-2:
		return eagleMultiplier, true
	case score == par-1:
		return birdieMultiplier, true
	case score == par:
		return parMultiplier, true
	case score > par:
		if scoring == BogeyScoring {
			return bogeyMultiplier, true
		}
		return 0, false
	default:
		// more than two under par without an ace
		return parMultiplier, true
	}
}

// CalculatePaymentsForHole recomputes a hole's payments from its current
// scores and returns a copy. Running it again yields the same ledger.
func (g *Game) CalculatePaymentsForHole(hole int) (*ledger.Ledger, error) {
	h, ok := g.holes[hole]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHole, hole)
	}
	h.payments.Reset()

	var err error
	switch g.settings.Mode {
	case FaceToFace:
		err = g.faceToFacePayments(h)
	default:
		err = g.singleWinnerPayments(h)
	}
	if err != nil {
		return nil, err
	}

	if g.settings.BuchiEnabled && len(h.buchiParticipants) > 0 {
		if err := g.buchiPayments(h); err != nil {
			return nil, err
		}
	}
	return h.payments.Clone(), nil
}

func (g *Game) singleWinnerPayments(h *Hole) error {
	if len(g.order) == 0 {
		return nil
	}

	scores := make(map[string]int, len(g.order))
	var winner string
	best, ties := 0, 0
	for i, name := range g.order {
		s := g.effectiveScore(name, h.Number)
		scores[name] = s
		switch {
		case i == 0 || s < best:
			best, winner, ties = s, name, 1
		case s == best:
			ties++
		}
	}
	if ties > 1 {
		return nil
	}

	multiplier, pays := Multiplier(h.score(winner), h.Par, g.settings.Scoring)
	if !pays {
		return nil
	}
	amount := h.Value * multiplier
	for _, name := range g.order {
		if name == winner || scores[name] <= best {
			continue
		}
		if err := h.payments.Add(name, winner, amount); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) faceToFacePayments(h *Hole) error {
	for i, a := range g.order {
		for _, b := range g.order[i+1:] {
			sa, sb := g.pairScores(h, a, b)
			if sa == sb {
				continue
			}
			winner, loser := a, b
			if sb < sa {
				winner, loser = b, a
			}
			multiplier, pays := Multiplier(h.score(winner), h.Par, g.settings.Scoring)
			if !pays {
				// only this pair is void
				continue
			}
			h.payments.ClearPair(winner, loser)
			if err := h.payments.Add(loser, winner, h.Value*multiplier); err != nil {
				return err
			}
		}
	}
	return nil
}

// buchiPayments settles the side bet at a flat hole value per loser/winner pair.
// Nothing moves unless the outcome is split.
func (g *Game) buchiPayments(h *Hole) error {
	var winners, losers []string
	for _, name := range g.order {
		if _, in := h.buchiParticipants[name]; !in {
			continue
		}
		if _, won := h.buchiWinners[name]; won {
			winners = append(winners, name)
		} else {
			losers = append(losers, name)
		}
	}
	if len(winners) == 0 || len(losers) == 0 {
		return nil
	}
	for _, loser := range losers {
		for _, winner := range winners {
			if err := h.payments.Add(loser, winner, h.Value); err != nil {
				return err
			}
		}
	}
	return nil
}
