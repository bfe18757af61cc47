package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/okian/golfbet/pkg/logger"
	"github.com/okian/golfbet/pkg/metrics"
)

// Publisher emits settlement events.
type Publisher struct {
	pub    message.Publisher
	logger logger.Logger
}

// NewPublisher wraps a watermill publisher.
func NewPublisher(pub message.Publisher, log logger.Logger) *Publisher {
	return &Publisher{pub: pub, logger: log}
}

// PublishHoleSettled publishes a HoleSettled event.
func (p *Publisher) PublishHoleSettled(ctx context.Context, ev HoleSettled) error {
	return p.publish(ctx, TopicHoleSettled, ev.GameID, ev)
}

// PublishRoundSettled publishes a RoundSettled event.
func (p *Publisher) PublishRoundSettled(ctx context.Context, ev RoundSettled) error {
	return p.publish(ctx, TopicRoundSettled, ev.GameID, ev)
}

func (p *Publisher) publish(ctx context.Context, topic, gameID string, payload any) error {
	msg, err := encode(gameID, payload)
	if err != nil {
		metrics.RecordEventError(topic)
		return err
	}
	msg.SetContext(ctx)
	if err := p.pub.Publish(topic, msg); err != nil {
		metrics.RecordEventError(topic)
		p.logger.Error(ctx, "publish failed",
			logger.String("topic", topic),
			logger.String("game_id", gameID),
			logger.Error(err),
		)
		return fmt.Errorf("%w: %s: %w", ErrPublish, topic, err)
	}
	metrics.RecordEventPublished(topic)
	return nil
}
