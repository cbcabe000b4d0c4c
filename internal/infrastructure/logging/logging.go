// Package logging builds the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/felixgeelhaar/agenthub/internal/infrastructure/config"
)

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// New returns a logger writing to w in the configured format. level is
// shared so callers can change verbosity after a config reload.
func New(cfg config.LogConfig, w io.Writer, level *slog.LevelVar) (*slog.Logger, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if level == nil {
		level = new(slog.LevelVar)
	}
	level.Set(lvl)

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	return slog.New(h).With("service", "agenthub"), nil
}

// Setup builds the logger and installs it as slog's default.
func Setup(cfg config.LogConfig, w io.Writer, level *slog.LevelVar) (*slog.Logger, error) {
	l, err := New(cfg, w, level)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(l)
	return l, nil
}
