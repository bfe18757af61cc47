package repository

import "errors"

// Sentinel kinds for registry errors.
var (
	ErrNotFound = errors.New("game not found")
	ErrCapacity = errors.New("game registry is full")
	ErrNilGame  = errors.New("nil game")
)
