package roundsim

import (
	"errors"
	"fmt"
	"math"

	"github.com/okian/golfbet/internal/domain/ledger"
	"github.com/okian/golfbet/internal/domain/types"
)

const balanceTolerance = 1e-6

// ErrVerification is returned when a settlement breaks one of its guarantees.
var ErrVerification = errors.New("settlement verification failed")

// Verify checks a round's settlement against the payments of its holes: every
// amount is positive, no pair owes in both directions, and every player's net
// position equals the sum of their hole balances.
func Verify(holes []types.HoleView, settlement []ledger.Transfer) error {
	pairs := make(map[[2]string]struct{}, len(settlement))
	for _, t := range settlement {
		if !(t.Amount > 0) {
			return fmt.Errorf("%w: %s -> %s has non-positive amount %v", ErrVerification, t.From, t.To, t.Amount)
		}
		if _, ok := pairs[[2]string{t.To, t.From}]; ok {
			return fmt.Errorf("%w: %s and %s owe each other", ErrVerification, t.From, t.To)
		}
		pairs[[2]string{t.From, t.To}] = struct{}{}
	}

	expected := make(map[string]float64)
	for _, h := range holes {
		for p, b := range balances(h.Payments) {
			expected[p] += b
		}
	}
	got := balances(settlement)

	for p, want := range expected {
		if math.Abs(got[p]-want) > balanceTolerance {
			return fmt.Errorf("%w: %s nets %.2f, holes add up to %.2f", ErrVerification, p, got[p], want)
		}
	}
	for p, b := range got {
		if _, ok := expected[p]; !ok && math.Abs(b) > balanceTolerance {
			return fmt.Errorf("%w: %s nets %.2f without any hole payment", ErrVerification, p, b)
		}
	}
	return nil
}

func balances(transfers []ledger.Transfer) map[string]float64 {
	l := ledger.New()
	for _, t := range transfers {
		_ = l.Add(t.From, t.To, t.Amount)
	}
	return l.Balances()
}
