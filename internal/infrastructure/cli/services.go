package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/agenthub/internal/infrastructure/config"
	"github.com/felixgeelhaar/agenthub/internal/infrastructure/logging"
	"github.com/felixgeelhaar/agenthub/internal/infrastructure/wiring"
)

// loadConfig reads the configuration named by --config and applies the
// logging flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadApp wires the application for a command. Logs go to logOut, which
// is stderr for most commands so stdout stays clean for output and MCP.
func loadApp(cmd *cobra.Command, logOut io.Writer) (*wiring.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if logOut == nil {
		logOut = cmd.ErrOrStderr()
	}
	level := new(slog.LevelVar)
	logger, err := logging.Setup(cfg.Log, logOut, level)
	if err != nil {
		return nil, err
	}
	app, err := wiring.Build(cfg, logger, level)
	if err != nil {
		return nil, fmt.Errorf("failed to build app: %w", err)
	}
	app.PinLogLevel(logLevel)
	return app, nil
}
