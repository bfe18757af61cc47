package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/okian/golfbet/internal/domain/dedupe"
	"github.com/okian/golfbet/pkg/logger"
	"github.com/okian/golfbet/pkg/metrics"
)

// Handler reacts to settlement events.
type Handler interface {
	HandleHoleSettled(ctx context.Context, ev HoleSettled) error
	HandleRoundSettled(ctx context.Context, ev RoundSettled) error
}

// Consumer reads both settlement topics and hands decoded events to a Handler.
// Every message is acked; handler failures are logged and counted. Message
// UUIDs already handled are skipped.
type Consumer struct {
	sub     message.Subscriber
	handler Handler
	name    string
	dedupe  dedupe.Deduper

	shutdown     chan struct{}
	shutdownOnce sync.Once
	ready        chan struct{}
	done         chan struct{}

	logger logger.Logger
}

// NewConsumer creates a consumer with configuration options.
func NewConsumer(sub message.Subscriber, handler Handler, opts ...Option) *Consumer {
	c := &Consumer{
		sub:      sub,
		handler:  handler,
		name:     "consumer",
		dedupe:   dedupe.NewInMemoryDeduper(),
		shutdown: make(chan struct{}),
		ready:    make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("events"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run subscribes and processes messages until ctx is canceled or Shutdown is called.
func (c *Consumer) Run(ctx context.Context) error {
	defer close(c.done)

	holes, err := c.sub.Subscribe(ctx, TopicHoleSettled)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", TopicHoleSettled, err)
	}
	rounds, err := c.sub.Subscribe(ctx, TopicRoundSettled)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", TopicRoundSettled, err)
	}
	close(c.ready)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-c.shutdown:
			return nil
		case msg, ok := <-holes:
			if !ok {
				return nil
			}
			c.process(ctx, TopicHoleSettled, msg)
		case msg, ok := <-rounds:
			if !ok {
				return nil
			}
			c.process(ctx, TopicRoundSettled, msg)
		}
	}
}

// Ready is closed once both topics are subscribed.
func (c *Consumer) Ready() <-chan struct{} {
	return c.ready
}

// Shutdown stops the consumer and waits for the loop to exit.
func (c *Consumer) Shutdown(ctx context.Context) error {
	c.shutdownOnce.Do(func() { close(c.shutdown) })

	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		c.logger.Warn(ctx, "shutdown timed out", logger.String("consumer", c.name))
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

func (c *Consumer) process(ctx context.Context, topic string, msg *message.Message) {
	if c.dedupe.SeenAndRecord(ctx, msg.UUID) {
		metrics.RecordEventDuplicate(topic)
		c.logger.Debug(ctx, "duplicate event skipped",
			logger.String("topic", topic),
			logger.String("message_id", msg.UUID),
		)
		msg.Ack()
		return
	}
	if err := c.dispatch(ctx, topic, msg); err != nil {
		c.dedupe.Unrecord(ctx, msg.UUID)
		metrics.RecordEventError(topic)
		metrics.RecordErrorByComponent("events", "handle_error")
		c.logger.Error(ctx, "error processing event",
			logger.String("topic", topic),
			logger.String("message_id", msg.UUID),
			logger.String("game_id", msg.Metadata.Get(metadataGameID)),
			logger.Error(err),
		)
		// redelivery would fail the same way
		msg.Ack()
		return
	}
	metrics.RecordEventConsumed(topic)
	msg.Ack()
}

func (c *Consumer) dispatch(ctx context.Context, topic string, msg *message.Message) error {
	switch topic {
	case TopicHoleSettled:
		var ev HoleSettled
		if err := decode(msg, &ev); err != nil {
			return err
		}
		c.logger.Debug(ctx, "hole settled",
			logger.String("game_id", ev.GameID),
			logger.Int("hole", ev.Hole),
			logger.Int("payments", len(ev.Payments)),
		)
		return c.handler.HandleHoleSettled(ctx, ev)
	case TopicRoundSettled:
		var ev RoundSettled
		if err := decode(msg, &ev); err != nil {
			return err
		}
		c.logger.Debug(ctx, "round settled",
			logger.String("game_id", ev.GameID),
			logger.Int("transfers", len(ev.Transfers)),
		)
		return c.handler.HandleRoundSettled(ctx, ev)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownTopic, topic)
	}
}
