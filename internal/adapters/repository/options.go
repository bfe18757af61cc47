package repository

import "time"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithMaxGames bounds the number of rounds the store accepts. Zero means unbounded.
func WithMaxGames(n int) Option {
	return func(s *MemoryStore) {
		if n >= 0 {
			s.maxGames = n
		}
	}
}

// WithMetricsUpdateInterval sets the interval for background metrics updates.
func WithMetricsUpdateInterval(interval time.Duration) Option {
	return func(s *MemoryStore) {
		if interval > 0 {
			s.metricsUpdateInterval = interval
		}
	}
}

// WithIDGenerator replaces the uuid based id source.
func WithIDGenerator(next func() string) Option {
	return func(s *MemoryStore) {
		if next != nil {
			s.newID = next
		}
	}
}
