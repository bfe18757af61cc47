package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/golfbet/internal/adapters/repository"
	"github.com/okian/golfbet/internal/domain/game"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrBodyTooLarge = errors.New("request body too large")
	ErrRateLimited  = errors.New("rate limited")
	ErrExport       = errors.New("export failed")
)

// Wrap annotates err with the operation that failed.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// NewKind reports kind as the failure of op.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// WrapKind classifies err as kind for op, keeping both in the chain.
func WrapKind(op string, kind, err error) error {
	if err == nil {
		return NewKind(op, kind)
	}
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

// statusFor maps an error from the service to an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, game.ErrUnknownHole),
		errors.Is(err, game.ErrUnknownPlayer):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, repository.ErrCapacity):
		return http.StatusServiceUnavailable, "capacity"
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge, "body_too_large"
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limited"
	case isValidation(err):
		return http.StatusBadRequest, "bad_request"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func isValidation(err error) bool {
	for _, kind := range []error{
		ErrBadRequest,
		game.ErrInvalidSettings,
		game.ErrDuplicatePlayer,
		game.ErrTooManyPlayers,
		game.ErrInvalidPlayer,
		game.ErrRoundStarted,
		game.ErrDuplicateHole,
		game.ErrInvalidHole,
		game.ErrInvalidScore,
		game.ErrInvalidVoor,
		game.ErrSelfVoor,
		game.ErrVoorDisabled,
		game.ErrBuchiDisabled,
		game.ErrRoundComplete,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
