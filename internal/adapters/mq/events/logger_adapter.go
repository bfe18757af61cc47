package events

import (
	"context"
	"sort"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/okian/golfbet/pkg/logger"
)

// LoggerAdapter adapts logger.Logger to the watermill.LoggerAdapter interface.
// Watermill trace output is logged at debug level.
type LoggerAdapter struct {
	logger logger.Logger
}

var _ watermill.LoggerAdapter = (*LoggerAdapter)(nil)

// NewLoggerAdapter creates a new LoggerAdapter.
func NewLoggerAdapter(l logger.Logger) *LoggerAdapter {
	return &LoggerAdapter{logger: l}
}

// Error logs an error message.
func (a *LoggerAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.logger.Error(context.Background(), msg, append(toFields(fields), logger.Error(err))...)
}

// Info logs an info message.
func (a *LoggerAdapter) Info(msg string, fields watermill.LogFields) {
	a.logger.Info(context.Background(), msg, toFields(fields)...)
}

// Debug logs a debug message.
func (a *LoggerAdapter) Debug(msg string, fields watermill.LogFields) {
	a.logger.Debug(context.Background(), msg, toFields(fields)...)
}

// Trace logs a trace message.
func (a *LoggerAdapter) Trace(msg string, fields watermill.LogFields) {
	a.logger.Debug(context.Background(), msg, toFields(fields)...)
}

// With returns a new adapter with the given fields.
func (a *LoggerAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &LoggerAdapter{logger: a.logger.With(toFields(fields)...)}
}

func toFields(fields watermill.LogFields) []logger.Field {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]logger.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, logger.Any(k, fields[k]))
	}
	return out
}
