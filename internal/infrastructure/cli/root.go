package cli

import (
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var (
	configPath string
	logLevel   string
	logFormat  string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "agenthub",
	Version: Version,
	Short:   "Plan AI agents through conversation",
	Long: `Agent Hub turns a conversation about the agent you want into a
structured plan: objective, tasks, tools, memory and retrieval settings.

Chat in the terminal, serve the chat over HTTP and websockets, or expose it
to MCP clients. The platform commands drive the AgentCore control plane.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return MapError(RootCmd.Execute())
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to agenthub.yaml (default: $AGENTHUB_CONFIG or ./agenthub.yaml)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the log level (debug, info, warn, error)")
	RootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Override the log format (text, json)")
}
