package game

import "github.com/okian/golfbet/internal/domain/ledger"

// CalculateAllPayments recomputes every hole, sums the hole ledgers and nets
// reciprocal debts into the round's final payments.
func (g *Game) CalculateAllPayments() (*ledger.Ledger, error) {
	total := ledger.New()
	for _, n := range g.HoleNumbers() {
		payments, err := g.CalculatePaymentsForHole(n)
		if err != nil {
			return nil, err
		}
		total.Merge(payments)
	}
	g.finalPayments = total.Net()
	return g.finalPayments.Clone(), nil
}

// FinalPayments returns the last settlement computed by CalculateAllPayments.
func (g *Game) FinalPayments() *ledger.Ledger {
	return g.finalPayments.Clone()
}

// HolePayments returns the payments last computed for a hole.
func (g *Game) HolePayments(hole int) (*ledger.Ledger, bool) {
	h, ok := g.holes[hole]
	if !ok {
		return nil, false
	}
	return h.payments.Clone(), true
}
