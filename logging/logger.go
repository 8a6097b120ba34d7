// Package logging wraps log/slog with metatsp field conventions and provides
// a tsp.Observer that reports search progress.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/katalvlaran/metatsp/tsp"
)

// Logger wraps slog.Logger with consistent field names.
type Logger struct {
	*slog.Logger
}

// New creates a Logger with the given handler.
// If handler is nil, a text handler at Info level writes to stderr.
func New(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewText creates a Logger that writes human-readable text logs to w.
func NewText(w io.Writer, level slog.Level) *Logger {
	return New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewJSON creates a Logger that writes JSON logs to w.
func NewJSON(w io.Writer, level slog.Level) *Logger {
	return New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Noop creates a Logger that discards all output.
func Noop() *Logger {
	return New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// ParseLevel maps "debug", "info", "warn" and "error" (any case) to a level.
// An empty string is Info.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", s)
	}
	return level, nil
}

// Open builds a Logger from a format ("text" or "json") and a level name.
func Open(w io.Writer, format, level string) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return NewText(w, lvl), nil
	case "json":
		return NewJSON(w, lvl), nil
	default:
		return nil, fmt.Errorf("logging: unknown format %q", format)
	}
}

// WithInstance adds the instance name.
func (l *Logger) WithInstance(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("instance", name),
	}
}

// WithAlgorithm adds the algorithm name.
func (l *Logger) WithAlgorithm(algo tsp.Algorithm) *Logger {
	return &Logger{
		Logger: l.Logger.With("algo", algo.String()),
	}
}

// WithTrial adds a trial index and its seed.
func (l *Logger) WithTrial(trial int, seed int64) *Logger {
	return &Logger{
		Logger: l.Logger.With("trial", trial, "seed", seed),
	}
}

// LogResult logs the outcome of a solver run.
func (l *Logger) LogResult(ctx context.Context, res tsp.TSResult, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"iterations", res.Iterations,
			"elapsed", res.Elapsed,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "search completed",
		"cost", res.Cost,
		"iterations", res.Iterations,
		"elapsed", res.Elapsed,
		"stop", res.Stop.String(),
	)
}
