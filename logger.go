package facet

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with facet-specific context.
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

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogMutation logs a completed mutation pipeline run.
func (l *Logger) LogMutation(op, path string, keys int) {
	l.Debug("mutation applied",
		"op", op,
		"path", path,
		"keys", keys,
	)
}

// LogStructural logs a structural operation (sort, index, memo, clear).
func (l *Logger) LogStructural(op, path string) {
	l.Info("structure changed",
		"op", op,
		"path", path,
	)
}

// LogPartitionCreated logs the lazy creation of a partition.
func (l *Logger) LogPartitionCreated(path string) {
	l.Debug("partition created",
		"path", path,
	)
}

// LogMaterialize logs a (de)materialization of the ordered view.
func (l *Logger) LogMaterialize(path string, rows int, enabled bool) {
	l.Debug("view materialization changed",
		"path", path,
		"rows", rows,
		"enabled", enabled,
	)
}
