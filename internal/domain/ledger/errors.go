package ledger

import "errors"

// Sentinel kinds for ledger errors.
var (
	ErrSelfPayment       = errors.New("payer and payee are the same player")
	ErrNonPositiveAmount = errors.New("payment amount must be positive")
)
