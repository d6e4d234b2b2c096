package pubsub

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
)

// slogAdapter routes watermill's internal logging through slog.
type slogAdapter struct {
	logger *slog.Logger
}

func newSlogAdapter(logger *slog.Logger) watermill.LoggerAdapter {
	return &slogAdapter{logger: logger.With("component", "watermill")}
}

func (a *slogAdapter) log(level slog.Level, msg string, err error, fields watermill.LogFields) {
	attrs := make([]any, 0, len(fields)*2+2)
	if err != nil {
		attrs = append(attrs, "error", err)
	}
	for k, v := range fields {
		attrs = append(attrs, k, v)
	}
	a.logger.Log(context.Background(), level, msg, attrs...)
}

func (a *slogAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.log(slog.LevelError, msg, err, fields)
}

func (a *slogAdapter) Info(msg string, fields watermill.LogFields) {
	a.log(slog.LevelInfo, msg, nil, fields)
}

// Debug and Trace both map to slog's debug level.
func (a *slogAdapter) Debug(msg string, fields watermill.LogFields) {
	a.log(slog.LevelDebug, msg, nil, fields)
}

func (a *slogAdapter) Trace(msg string, fields watermill.LogFields) {
	a.log(slog.LevelDebug, msg, nil, fields)
}

func (a *slogAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	attrs := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		attrs = append(attrs, k, v)
	}
	return &slogAdapter{logger: a.logger.With(attrs...)}
}
