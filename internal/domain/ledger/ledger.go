// Package ledger keeps payer -> payee -> amount debts with the invariants
// enforced in one place: nobody pays themselves and every stored amount is
// strictly positive.
package ledger

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// amountEpsilon absorbs float residue when two debts are compared or reduced.
const amountEpsilon = 1e-9

// Transfer is a single payer -> payee debt.
type Transfer struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// Ledger is a nested payer -> payee -> amount map. The zero value is not
// usable; call New.
type Ledger struct {
	debts map[string]map[string]float64
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{debts: make(map[string]map[string]float64)}
}

// Add accumulates amount onto the payer -> payee entry.
func (l *Ledger) Add(payer, payee string, amount float64) error {
	if payer == payee {
		return fmt.Errorf("%w: %q", ErrSelfPayment, payer)
	}
	if !(amount > 0) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: %s -> %s: %v", ErrNonPositiveAmount, payer, payee, amount)
	}
	row, ok := l.debts[payer]
	if !ok {
		row = make(map[string]float64)
		l.debts[payer] = row
	}
	row[payee] += amount
	return nil
}

// Get returns the payer -> payee amount.
func (l *Ledger) Get(payer, payee string) (float64, bool) {
	amount, ok := l.debts[payer][payee]
	return amount, ok
}

// Remove deletes the payer -> payee entry. Payers left without payees are dropped.
func (l *Ledger) Remove(payer, payee string) {
	row, ok := l.debts[payer]
	if !ok {
		return
	}
	delete(row, payee)
	if len(row) == 0 {
		delete(l.debts, payer)
	}
}

// ClearPair removes both directions between a and b.
func (l *Ledger) ClearPair(a, b string) {
	l.Remove(a, b)
	l.Remove(b, a)
}

// Reset empties the ledger in place.
func (l *Ledger) Reset() {
	l.debts = make(map[string]map[string]float64)
}

// Merge accumulates every entry of other into l.
func (l *Ledger) Merge(other *Ledger) {
	if other == nil {
		return
	}
	for payer, row := range other.debts {
		for payee, amount := range row {
			// other already holds only valid entries
			_ = l.Add(payer, payee, amount)
		}
	}
}

// Net returns a copy in which every reciprocal pair is collapsed into a single
// direction. Equal debts cancel; otherwise the larger side is reduced by the
// smaller one. Only direct pairs are netted: A->B->C->A cycles survive.
func (l *Ledger) Net() *Ledger {
	out := l.Clone()
	for _, payer := range out.Payers() {
		for _, payee := range out.payees(payer) {
			d, ok := out.Get(payer, payee)
			if !ok {
				continue
			}
			r, ok := out.Get(payee, payer)
			if !ok {
				continue
			}
			switch {
			case math.Abs(d-r) <= amountEpsilon:
				out.ClearPair(payer, payee)
			case d > r:
				out.debts[payer][payee] = d - r
				out.Remove(payee, payer)
			default:
				out.debts[payee][payer] = r - d
				out.Remove(payer, payee)
			}
		}
	}
	return out
}

// Transfers lists all entries ordered by payer, then payee.
func (l *Ledger) Transfers() []Transfer {
	out := make([]Transfer, 0, l.Len())
	for _, payer := range l.Payers() {
		for _, payee := range l.payees(payer) {
			out = append(out, Transfer{From: payer, To: payee, Amount: l.debts[payer][payee]})
		}
	}
	return out
}

// Balances returns received minus paid for every player that appears in the ledger.
func (l *Ledger) Balances() map[string]float64 {
	out := make(map[string]float64)
	for payer, row := range l.debts {
		for payee, amount := range row {
			out[payer] -= amount
			out[payee] += amount
		}
	}
	return out
}

// Payers returns the sorted payer names.
func (l *Ledger) Payers() []string {
	out := make([]string, 0, len(l.debts))
	for payer := range l.debts {
		out = append(out, payer)
	}
	sort.Strings(out)
	return out
}

func (l *Ledger) payees(payer string) []string {
	row := l.debts[payer]
	out := make([]string, 0, len(row))
	for payee := range row {
		out = append(out, payee)
	}
	sort.Strings(out)
	return out
}

// Len is the number of payer -> payee entries.
func (l *Ledger) Len() int {
	n := 0
	for _, row := range l.debts {
		n += len(row)
	}
	return n
}

// IsEmpty reports whether the ledger has no entries.
func (l *Ledger) IsEmpty() bool { return len(l.debts) == 0 }

// Total sums every amount.
func (l *Ledger) Total() float64 {
	var sum float64
	for _, row := range l.debts {
		for _, amount := range row {
			sum += amount
		}
	}
	return sum
}

// Clone returns a deep copy.
func (l *Ledger) Clone() *Ledger {
	out := New()
	if l == nil {
		return out
	}
	for payer, row := range l.debts {
		cp := make(map[string]float64, len(row))
		for payee, amount := range row {
			cp[payee] = amount
		}
		out.debts[payer] = cp
	}
	return out
}

// Map returns a deep copy of the nested payer -> payee -> amount map.
func (l *Ledger) Map() map[string]map[string]float64 {
	return l.Clone().debts
}

// MarshalJSON encodes the ledger as its nested map.
func (l *Ledger) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(l.debts)
}
