package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/agenthub/internal/infrastructure/wiring"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the configuration, the platform client and a full chat round trip",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Running Agent Hub Doctor...")

		hasIssues := false
		check := func(name string, fn func() error) {
			fmt.Fprintf(out, "Checking %s... ", name)
			if err := fn(); err != nil {
				fmt.Fprintf(out, "%s\n  Error: %v\n", errorStyle.Render("FAIL"), err)
				hasIssues = true
			} else {
				fmt.Fprintf(out, "%s\n", doneStyle.Render("PASS"))
			}
		}

		var app *wiring.App
		check("Configuration", func() error {
			var err error
			app, err = loadApp(cmd, nil)
			return err
		})
		if app == nil {
			return NewCLIError("doctor found issues", "Fix the configuration and rerun 'agenthub doctor'", nil)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		check("Platform", func() error {
			res, err := app.Platform.Agents.List(ctx)
			if err != nil {
				return err
			}
			if !res.Success {
				return fmt.Errorf("agents.list: %s", res.Message)
			}
			return nil
		})

		check("Conversation", func() error {
			app.Session.SetResponseDelay(0)
			reply, err := app.Session.Ask(ctx, "Quero criar um agente de cobrança")
			if err != nil {
				return err
			}
			if !reply.HasPlan() {
				return fmt.Errorf("billing request produced no plan")
			}
			app.Session.Clear(ctx)
			return nil
		})

		check("MCP server", func() error {
			_, err := newMCPServer(app)
			return err
		})

		if hasIssues {
			return NewCLIError("doctor found issues", "See the failed checks above", nil)
		}
		fmt.Fprintln(out, "\nAll checks passed.")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(doctorCmd)
}
