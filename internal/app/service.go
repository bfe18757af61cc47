// Package service runs rounds for the HTTP API: it owns the game registry,
// applies engine operations atomically per round and publishes settlement events.
package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/okian/golfbet/internal/adapters/mq/events"
	"github.com/okian/golfbet/internal/adapters/repository"
	"github.com/okian/golfbet/internal/domain/game"
	"github.com/okian/golfbet/pkg/logger"
	"github.com/okian/golfbet/pkg/metrics"
)

const consumerShutdownTimeout = 5 * time.Second

// ErrNotStarted is returned by operations called before Start.
var ErrNotStarted = errors.New("service not started")

// Service implements the API dependencies for golf wagering rounds.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     *repository.MemoryStore
	bus       *gochannel.GoChannel
	publisher *events.Publisher
	consumer  *events.Consumer

	// Configuration
	maxGames    int
	eventBuffer int
	defaults    game.Settings

	// Consumed event counters
	holeEvents  atomic.Int64
	roundEvents atomic.Int64

	// State
	started bool
	cancel  context.CancelFunc

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxGames bounds the number of rounds held at once.
func WithMaxGames(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxGames = n
		}
	}
}

// WithEventBuffer sets the pub/sub output buffer.
func WithEventBuffer(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.eventBuffer = n
		}
	}
}

// WithDefaultSettings sets the settings used for fields a new round leaves zero.
func WithDefaultSettings(settings game.Settings) Option {
	return func(s *Service) {
		if settings.Validate() == nil {
			s.defaults = settings
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxGames:    10_000,
		eventBuffer: 1024,
		defaults:    game.DefaultSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start creates the registry and the event bus and starts the event consumer.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.logger.Info(ctx, "starting golfbet service...")

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.store = repository.NewMemoryStore(runCtx, repository.WithMaxGames(s.maxGames))
	s.bus = events.NewBus(s.eventBuffer, s.logger.Named("watermill"))
	s.publisher = events.NewPublisher(s.bus, s.logger.Named("publisher"))
	s.consumer = events.NewConsumer(s.bus, s, events.WithLogger(s.logger.Named("consumer")))

	errCh := make(chan error, 1)
	go func() { errCh <- s.consumer.Run(runCtx) }()
	select {
	case <-s.consumer.Ready():
	case err := <-errCh:
		cancel()
		_ = s.store.Close()
		_ = s.bus.Close()
		return err
	}

	s.started = true
	s.logger.Info(ctx, "golfbet service started",
		logger.Int("maxGames", s.maxGames),
		logger.Int("eventBuffer", s.eventBuffer),
		logger.String("defaultMode", string(s.defaults.Mode)),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	s.logger.Info(ctx, "stopping golfbet service...")

	sctx, cancel := context.WithTimeout(ctx, consumerShutdownTimeout)
	defer cancel()
	if err := s.consumer.Shutdown(sctx); err != nil {
		s.logger.Warn(ctx, "consumer shutdown", logger.Error(err))
	}
	s.cancel()
	_ = s.bus.Close()
	_ = s.store.Close()

	s.started = false
	s.logger.Info(ctx, "golfbet service stopped")
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"maxGames":       s.maxGames,
		"eventBuffer":    s.eventBuffer,
		"defaultMode":    s.defaults.Mode,
		"defaultHoles":   s.defaults.HoleCount,
		"defaultPlayers": s.defaults.PlayerCount,
		"holeEvents":     s.holeEvents.Load(),
		"roundEvents":    s.roundEvents.Load(),
	}
	if s.started {
		games := s.store.Count(context.Background())
		stats["games"] = games
		metrics.UpdateActiveGames(games)
	}
	return stats
}

// GameCount returns the number of rounds in the registry.
func (s *Service) GameCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return 0
	}
	return s.store.Count(context.Background())
}

// HandleHoleSettled implements events.Handler.
func (s *Service) HandleHoleSettled(_ context.Context, _ events.HoleSettled) error {
	s.holeEvents.Add(1)
	return nil
}

// HandleRoundSettled implements events.Handler.
func (s *Service) HandleRoundSettled(ctx context.Context, ev events.RoundSettled) error {
	s.roundEvents.Add(1)
	s.logger.Info(ctx, "round settled",
		logger.String("game_id", ev.GameID),
		logger.Int("transfers", len(ev.Transfers)),
	)
	return nil
}

// components returns the registry and publisher, or ErrNotStarted.
func (s *Service) components() (*repository.MemoryStore, *events.Publisher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.store, s.publisher, nil
}
