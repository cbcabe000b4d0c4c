package wiring

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/felixgeelhaar/agenthub/internal/infrastructure/config"
	"github.com/felixgeelhaar/agenthub/internal/infrastructure/logging"
	"github.com/felixgeelhaar/agenthub/pkg/application"
	"github.com/felixgeelhaar/agenthub/pkg/domain/events"
	"github.com/felixgeelhaar/agenthub/pkg/platform"
)

// App bundles the session and the infrastructure around it.
type App struct {
	Session  *application.Session
	Platform *platform.Client
	Bus      *events.Bus
	Logger   *slog.Logger

	level *slog.LevelVar

	mu     sync.RWMutex
	config *config.Config
	// pinnedLevel, when set, wins over the file's log level on reload.
	pinnedLevel string
}

// Build wires a session, platform client and event bus from cfg. level,
// when non-nil, is adjusted on reload so an existing logger follows the
// configured verbosity.
func Build(cfg *config.Config, logger *slog.Logger, level *slog.LevelVar) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	client := platform.NewClient(
		platform.WithDelay(cfg.Platform.Delay.Std()),
		platform.WithTimeout(cfg.Platform.Timeout.Std()),
		platform.WithRetry(cfg.Platform.MaxAttempts, platform.DefaultRetryDelay),
		platform.WithLogger(logger.With("component", "platform")),
	)

	bus := events.NewBus()
	bus.ContinueOnError = true

	session, err := application.NewSession(
		application.WithResponseDelay(cfg.Chat.ResponseDelay.Std()),
		application.WithLogger(logger.With("component", "session")),
		application.WithBus(bus),
		application.WithPlatform(client),
	)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &App{
		Session:  session,
		Platform: client,
		Bus:      bus,
		Logger:   logger,
		level:    level,
		config:   cfg,
	}, nil
}

// Config returns the configuration currently applied.
func (a *App) Config() *config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.config
}

// PinLogLevel keeps level in force across reloads, as a command-line
// override does. An empty level unpins.
func (a *App) PinLogLevel(level string) {
	a.mu.Lock()
	a.pinnedLevel = level
	a.mu.Unlock()
}

// Apply pushes the tunable parts of cfg into the running app: reply and
// platform delays and the log level. Addresses and transports need a restart.
func (a *App) Apply(cfg *config.Config) error {
	a.mu.RLock()
	pinned := a.pinnedLevel
	a.mu.RUnlock()
	if pinned != "" && cfg.Log.Level != pinned {
		c := *cfg
		c.Log.Level = pinned
		cfg = &c
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.Session.SetResponseDelay(cfg.Chat.ResponseDelay.Std())
	a.Platform.SetDelay(cfg.Platform.Delay.Std())
	if a.level != nil {
		lvl, err := logging.ParseLevel(cfg.Log.Level)
		if err != nil {
			return err
		}
		a.level.Set(lvl)
	}

	a.mu.Lock()
	a.config = cfg
	a.mu.Unlock()
	a.Logger.Info("configuration applied",
		"response_delay", cfg.Chat.ResponseDelay.String(),
		"platform_delay", cfg.Platform.Delay.String(),
		"log_level", cfg.Log.Level,
	)
	return nil
}

// WatchConfig applies every valid change to the file at path until ctx ends.
func (a *App) WatchConfig(ctx context.Context, path string) error {
	r := config.NewReloader(path, func(cfg *config.Config) {
		if err := a.Apply(cfg); err != nil {
			a.Logger.Warn("config change not applied", "error", err)
		}
	}, a.Logger.With("component", "config"))
	return r.Run(ctx)
}
