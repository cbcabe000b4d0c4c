package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	openapiServerURL string
	openapiOutput    string
)

var openapiCmd = &cobra.Command{
	Use:   "openapi",
	Short: "Print the MCP tools as an OpenAPI 3.0 document",
	Long: `Print the MCP tool registrations as an OpenAPI 3.0 document.

Each tool becomes POST /tools/{name}, tagged chat, plan, platform or
commands by its name prefix.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd, nil)
		if err != nil {
			return err
		}
		srv, err := newMCPServer(app)
		if err != nil {
			return err
		}
		data, err := srv.OpenAPI(openapiServerURL)
		if err != nil {
			return fmt.Errorf("generate openapi: %w", err)
		}
		if openapiOutput == "" {
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}
		if err := os.WriteFile(openapiOutput, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", openapiOutput, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", openapiOutput)
		return nil
	},
}

func init() {
	openapiCmd.Flags().StringVar(&openapiServerURL, "server-url", "", "Base URL listed under servers")
	openapiCmd.Flags().StringVarP(&openapiOutput, "output", "o", "", "Write to a file instead of stdout")
	RootCmd.AddCommand(openapiCmd)
}
