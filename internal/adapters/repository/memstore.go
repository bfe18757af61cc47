package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/golfbet/internal/domain/game"
	"github.com/okian/golfbet/pkg/metrics"
)

const defaultMetricsUpdateInterval = 5 * time.Second

// entry guards one round. A deleted entry stays unusable for callers that
// fetched it before removal.
type entry struct {
	mu      sync.Mutex
	game    *game.Game
	deleted bool
}

// MemoryStore is a map backed Store.
type MemoryStore struct {
	mu    sync.RWMutex
	games map[string]*entry

	maxGames              int
	metricsUpdateInterval time.Duration
	newID                 func() string

	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore constructs a store and starts its metrics updater, which runs
// until ctx is done or Close is called.
func NewMemoryStore(ctx context.Context, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		games:                 make(map[string]*entry),
		metricsUpdateInterval: defaultMetricsUpdateInterval,
		newID:                 uuid.NewString,
		stopChan:              make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.startMetricsUpdater(ctx)
	return s
}

// Create implements Store.Create.
func (s *MemoryStore) Create(ctx context.Context, g *game.Game) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if g == nil {
		return "", ErrNilGame
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.maxGames > 0 && len(s.games) >= s.maxGames {
		return "", fmt.Errorf("%w: %d games", ErrCapacity, s.maxGames)
	}
	id := s.newID()
	for _, taken := s.games[id]; taken; _, taken = s.games[id] {
		id = s.newID()
	}
	s.games[id] = &entry{game: g}
	return id, nil
}

// Update implements Store.Update.
func (s *MemoryStore) Update(ctx context.Context, id string, fn func(*game.Game) error) error {
	return s.with(ctx, id, fn)
}

// View implements Store.View.
func (s *MemoryStore) View(ctx context.Context, id string, fn func(*game.Game) error) error {
	return s.with(ctx, id, fn)
}

func (s *MemoryStore) with(ctx context.Context, id string, fn func(*game.Game) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	e, ok := s.games[id]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return fn(e.game)
}

// Delete implements Store.Delete.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	e, ok := s.games[id]
	delete(s.games, id)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	e.mu.Lock()
	e.deleted = true
	e.game = nil
	e.mu.Unlock()
	return nil
}

// Count implements Store.Count.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// Close stops the background metrics updater.
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
	return nil
}

func (s *MemoryStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				metrics.UpdateActiveGames(s.Count(ctx))
			}
		}
	}()
}
