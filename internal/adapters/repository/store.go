// Package repository holds live rounds in memory and serializes access to each.
package repository

import (
	"context"

	"github.com/okian/golfbet/internal/domain/game"
)

// Store provides transactional access to rounds by id.
type Store interface {
	// Create registers g and returns its new id.
	// Returns ErrCapacity when the registry is full.
	Create(ctx context.Context, g *game.Game) (string, error)

	// Update runs fn with exclusive access to the round. The error of fn is
	// returned unchanged.
	Update(ctx context.Context, id string, fn func(*game.Game) error) error

	// View runs fn with exclusive access to the round. fn must not mutate it.
	View(ctx context.Context, id string, fn func(*game.Game) error) error

	// Delete removes a round. Returns ErrNotFound if the id is unknown.
	Delete(ctx context.Context, id string) error

	// Count returns the number of rounds held.
	Count(ctx context.Context) int
}
