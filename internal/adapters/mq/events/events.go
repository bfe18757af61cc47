// Package events publishes and consumes settlement events over watermill.
package events

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/okian/golfbet/internal/domain/ledger"
	"github.com/okian/golfbet/pkg/logger"
)

// Topics.
const (
	TopicHoleSettled  = "golfbet.hole.settled"
	TopicRoundSettled = "golfbet.round.settled"
)

const metadataGameID = "game_id"

// HoleSettled is emitted after a hole's payments are recalculated.
type HoleSettled struct {
	GameID   string            `json:"game_id"`
	Hole     int               `json:"hole"`
	Mode     string            `json:"mode"`
	Payments []ledger.Transfer `json:"payments"`
}

// RoundSettled is emitted after the netted settlement of a round is computed.
type RoundSettled struct {
	GameID    string            `json:"game_id"`
	Transfers []ledger.Transfer `json:"transfers"`
}

// NewBus returns an in-process pub/sub with the given output buffer per subscriber.
// Publish does not wait for delivery, so consumers may see events out of publish
// order, including a HoleSettled after the RoundSettled that followed it.
func NewBus(buffer int, log logger.Logger) *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: int64(buffer),
	}, NewLoggerAdapter(log))
}

func encode(gameID string, payload any) (*message.Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.Metadata.Set(metadataGameID, gameID)
	return msg, nil
}

func decode(msg *message.Message, into any) error {
	if err := json.Unmarshal(msg.Payload, into); err != nil {
		return fmt.Errorf("%w: message %s: %w", ErrDecode, msg.UUID, err)
	}
	return nil
}
