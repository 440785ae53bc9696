package bitview

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with bitview-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// WithBits adds a bit length field to the logger.
func (l *Logger) WithBits(nbits uint64) *Logger {
	return &Logger{Logger: l.Logger.With("bits", nbits)}
}

// LogSave logs a persisted bitmap.
func (l *Logger) LogSave(ctx context.Context, name string, size int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"name", name,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "save completed",
		"name", name,
		"bytes", size,
		"elapsed", elapsed,
	)
}

// LogLoad logs a loaded bitmap.
func (l *Logger) LogLoad(ctx context.Context, name string, size int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"name", name,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "load completed",
		"name", name,
		"bytes", size,
		"elapsed", elapsed,
	)
}

// LogDelete logs a delete operation.
func (l *Logger) LogDelete(ctx context.Context, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "delete failed",
			"name", name,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "delete completed", "name", name)
}

// LogBatchSave logs the outcome of a multi-bitmap save.
func (l *Logger) LogBatchSave(ctx context.Context, count, failed int) {
	if failed > 0 {
		l.WarnContext(ctx, "batch save completed with failures",
			"total", count,
			"failed", failed,
			"success", count-failed,
		)
		return
	}
	l.InfoContext(ctx, "batch save completed", "count", count)
}
