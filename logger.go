package tanhv2

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with table-generation context.
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
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
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

// WithAddress adds a segment address field to the logger.
func (l *Logger) WithAddress(addr int) *Logger {
	return &Logger{
		Logger: l.Logger.With("address", addr),
	}
}

// LogFit logs the outcome of one segment fit.
func (l *Logger) LogFit(ctx context.Context, addr int, maxErr float64, converged bool) {
	if !converged {
		l.WarnContext(ctx, "fit did not converge within budget, keeping best candidate",
			"address", addr,
			"max_error", maxErr,
		)
		return
	}
	l.DebugContext(ctx, "fit completed",
		"address", addr,
		"max_error", maxErr,
	)
}

// LogProgress logs running fit progress.
func (l *Logger) LogProgress(ctx context.Context, done, active int) {
	l.InfoContext(ctx, "fitting segments",
		"done", done,
		"active", active,
	)
}

// LogSummary logs the end-of-run summary.
func (l *Logger) LogSummary(ctx context.Context, r *Report) {
	l.InfoContext(ctx, "run completed",
		"total_segments", r.TotalSegments,
		"active_segments", r.ActiveSegments,
		"max_error", r.MaxError,
		"target_error", r.TargetError,
		"status", r.Status,
	)
}
