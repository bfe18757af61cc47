package events

import (
	"github.com/okian/golfbet/internal/domain/dedupe"
	"github.com/okian/golfbet/pkg/logger"
)

// Option applies a configuration option to the Consumer.
type Option func(*Consumer)

// WithName sets the consumer name for identification and logging.
func WithName(name string) Option {
	return func(c *Consumer) {
		if name != "" {
			c.name = name
		}
	}
}

// WithLogger sets a custom logger for the consumer.
func WithLogger(l logger.Logger) Option {
	return func(c *Consumer) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithDeduper replaces the in-memory message deduplicator.
func WithDeduper(d dedupe.Deduper) Option {
	return func(c *Consumer) {
		if d != nil {
			c.dedupe = d
		}
	}
}
