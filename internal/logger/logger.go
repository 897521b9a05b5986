// Package logger builds the structured slog logger used across playstate.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogsampling "github.com/samber/slog-sampling"
)

// Config holds the logger configuration.
type Config struct {
	Level  string // "debug", "info", "warning" or "error"
	Output io.Writer

	// Threshold sampling: the first Threshold identical messages per Tick
	// pass, then only Rate of them.
	DisableSampling bool
	Tick            time.Duration
	Threshold       uint64
	Rate            float64
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:     "warning",
		Output:    os.Stderr,
		Tick:      5 * time.Second,
		Threshold: 10,
		Rate:      0.05,
	}
}

// New creates a JSON logger, sampled unless sampling is disabled.
func New(cfg Config) *slog.Logger {
	def := DefaultConfig()
	if cfg.Output == nil {
		cfg.Output = def.Output
	}
	if cfg.Tick <= 0 {
		cfg.Tick = def.Tick
	}
	if cfg.Threshold == 0 {
		cfg.Threshold = def.Threshold
	}
	if cfg.Rate <= 0 || cfg.Rate > 1 {
		cfg.Rate = def.Rate
	}

	handler := slog.NewJSONHandler(cfg.Output, &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	})
	if cfg.DisableSampling {
		return slog.New(handler)
	}

	sampling := slogsampling.ThresholdSamplingOption{
		Tick:      cfg.Tick,
		Threshold: cfg.Threshold,
		Rate:      cfg.Rate,
		Matcher:   slogsampling.MatchByLevelAndMessage(),
	}
	return slog.New(
		slogmulti.
			Pipe(sampling.NewMiddleware()).
			Handler(handler),
	)
}

// ParseLevel converts a level name to slog.Level, defaulting to warn.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARNING", "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// WithComponent adds a component field to the logger.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With("component", component)
}

// Discard returns a logger that drops everything. Used in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
