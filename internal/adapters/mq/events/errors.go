package events

import "errors"

// Sentinel kinds for event errors.
var (
	ErrEncode       = errors.New("event encode failed")
	ErrDecode       = errors.New("event decode failed")
	ErrPublish      = errors.New("event publish failed")
	ErrUnknownTopic = errors.New("unknown event topic")
)
