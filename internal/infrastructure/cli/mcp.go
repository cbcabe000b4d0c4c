package cli

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	mcpTransport string
	mcpAddr      string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Agent Hub MCP server",
	Long: `Expose a chat session to MCP clients. stdio is the default; http and
ws listen on --addr. Logs always go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("AGENTHUB_SKIP_MCP_START") == "true" {
			return nil
		}
		app, err := loadApp(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		server, err := newMCPServer(app)
		if err != nil {
			return err
		}
		transport, addr := mcpTarget(app.Config(), strings.ToLower(mcpTransport), mcpAddr)
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return server.Serve(ctx, transport, addr)
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpTransport, "transport", "", "Transport to use (stdio, http, ws); defaults to mcp.transport")
	mcpCmd.Flags().StringVar(&mcpAddr, "addr", "", "Address for http/ws transports; defaults to mcp.addr")
	RootCmd.AddCommand(mcpCmd)
}
