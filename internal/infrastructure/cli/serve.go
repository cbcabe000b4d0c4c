package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/felixgeelhaar/agenthub/internal/infrastructure/config"
	"github.com/felixgeelhaar/agenthub/internal/infrastructure/httpapi"
	inframcp "github.com/felixgeelhaar/agenthub/internal/infrastructure/mcp"
	"github.com/felixgeelhaar/agenthub/internal/infrastructure/wiring"
)

var (
	serveAddr     string
	serveWatch    bool
	serveWithMCP  bool
	serveMCPAddr  string
	serveMCPTrans string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the chat over HTTP, SSE and websockets",
	Long: `Serve the chat API. The config file is watched and the reply delay,
platform latency and log level follow edits without a restart.

With --mcp the same session is also exposed to MCP clients over http or ws.`,
	Example: `  agenthub serve --addr :8080
  agenthub serve --mcp --mcp-transport ws --mcp-addr :8090`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd, nil)
		if err != nil {
			return err
		}
		cfg := app.Config()
		addr := cfg.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		g, ctx := errgroup.WithContext(ctx)

		api := httpapi.New(app.Session,
			httpapi.WithLogger(app.Logger.With("component", "http")),
			httpapi.WithAllowedOrigins(cfg.Server.AllowedOrigins),
			httpapi.WithRateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst),
		)
		g.Go(func() error {
			return api.ListenAndServe(ctx, addr)
		})

		if path := watchablePath(); serveWatch && path != "" {
			g.Go(func() error {
				return app.WatchConfig(ctx, path)
			})
		}

		if serveWithMCP {
			transport, mcpAddr := mcpTarget(cfg, serveMCPTrans, serveMCPAddr)
			if transport == "stdio" {
				return NewCLIError("stdio MCP cannot run beside the HTTP server", "Use --mcp-transport http or ws, or run 'agenthub mcp'", nil)
			}
			server, err := newMCPServer(app)
			if err != nil {
				return err
			}
			g.Go(func() error {
				app.Logger.Info("mcp server listening", "transport", transport, "addr", mcpAddr)
				return server.Serve(ctx, transport, mcpAddr)
			})
		}

		err = g.Wait()
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Address for the HTTP API (overrides server.addr)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch-config", true, "Apply config file edits while running")
	serveCmd.Flags().BoolVar(&serveWithMCP, "mcp", false, "Also serve MCP for the same session")
	serveCmd.Flags().StringVar(&serveMCPTrans, "mcp-transport", "", "MCP transport when --mcp is set (http, ws)")
	serveCmd.Flags().StringVar(&serveMCPAddr, "mcp-addr", "", "MCP address when --mcp is set (overrides mcp.addr)")
	RootCmd.AddCommand(serveCmd)
}

// watchablePath returns the config file to watch, or "" when none exists.
func watchablePath() string {
	path, _ := config.ResolvePath(configPath)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// mcpTarget resolves transport and address from flags over config.
func mcpTarget(cfg *config.Config, transport, addr string) (string, string) {
	if transport == "" {
		transport = cfg.MCP.Transport
	}
	if addr == "" {
		addr = cfg.MCP.Addr
	}
	return transport, addr
}

func newMCPServer(app *wiring.App) (*inframcp.Server, error) {
	inframcp.Version = Version
	inframcp.BuildCommit = Commit
	inframcp.BuildDate = Date
	server, err := inframcp.NewServer(app.Session, inframcp.WithLogger(app.Logger.With("component", "mcp")))
	if err != nil {
		return nil, fmt.Errorf("create mcp server: %w", err)
	}
	return server, nil
}
