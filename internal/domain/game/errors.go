package game

import "errors"

// Domain errors for the round engine. Unknown references leave state untouched;
// callers that only reference entities they created may ignore them.
var (
	// ErrInvalidSettings indicates round configuration outside the supported bounds.
	ErrInvalidSettings = errors.New("invalid game settings")

	// ErrUnknownPlayer indicates an operation referenced a player that was never added.
	ErrUnknownPlayer = errors.New("unknown player")

	// ErrUnknownHole indicates an operation referenced a hole that was never added.
	ErrUnknownHole = errors.New("unknown hole")

	ErrDuplicatePlayer = errors.New("player already added")
	ErrTooManyPlayers  = errors.New("player count reached")
	ErrInvalidPlayer   = errors.New("invalid player name")

	// ErrRoundStarted indicates players can no longer be added because scores exist.
	ErrRoundStarted = errors.New("round already started")

	ErrDuplicateHole = errors.New("hole already added")
	ErrInvalidHole   = errors.New("invalid hole")
	ErrInvalidScore  = errors.New("invalid score")

	ErrInvalidVoor  = errors.New("invalid voor adjustment")
	ErrSelfVoor     = errors.New("a player cannot give strokes to themselves")
	ErrVoorDisabled = errors.New("voor is not enabled for this round")

	ErrBuchiDisabled = errors.New("buchi is not enabled for this round")

	// ErrRoundComplete indicates the cursor is already past the last hole.
	ErrRoundComplete = errors.New("round already complete")
)
