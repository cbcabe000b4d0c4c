package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/agenthub/internal/infrastructure/watch"
)

// Reloader re-reads a config file whenever it changes.
type Reloader struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
	onReload func(*Config)
}

// NewReloader prepares a reloader for path. onReload receives every valid
// new configuration; invalid files are logged and skipped.
func NewReloader(path string, onReload func(*Config), logger *slog.Logger) *Reloader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reloader{
		path:     path,
		debounce: watch.DefaultDebounce,
		logger:   logger,
		onReload: onReload,
	}
}

// Run watches the file until ctx is cancelled.
func (r *Reloader) Run(ctx context.Context) error {
	w, err := watch.NewFileWatcher([]string{r.path}, r.debounce, func(ev watch.ChangeEvent) {
		r.reload(ev)
	})
	if err != nil {
		return err
	}
	r.logger.Info("watching config", "path", r.path)
	return w.Run(ctx)
}

func (r *Reloader) reload(ev watch.ChangeEvent) {
	if ev.ChangeType == watch.ChangeRemove {
		r.logger.Warn("config file removed, keeping current settings", "path", ev.Path)
		return
	}
	cfg, err := Load(r.path)
	if err != nil {
		r.logger.Warn("config reload rejected", "path", r.path, "error", err)
		return
	}
	r.logger.Info("config reloaded", "path", r.path, "change", string(ev.ChangeType))
	if r.onReload != nil {
		r.onReload(cfg)
	}
}
