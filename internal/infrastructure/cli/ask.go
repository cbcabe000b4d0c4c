package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/agenthub/pkg/domain/chat"
)

var (
	askJSON    bool
	askNoDelay bool
	askTimeout time.Duration
)

type askOutput struct {
	Message chat.Message `json:"message"`
	Reply   chat.Message `json:"reply"`
}

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Send one message and print the assistant reply",
	Long: `Send one message to a fresh conversation and print the reply,
including suggestions, one-click actions and the proposed plan.`,
	Example: `  agenthub ask "Quero criar um agente de cobrança"
  agenthub ask --json /novo_agente`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd, nil)
		if err != nil {
			return err
		}
		if askNoDelay {
			app.Session.SetResponseDelay(0)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), askTimeout)
		defer cancel()

		text := strings.Join(args, " ")
		pending, err := app.Session.Send(ctx, text)
		if err != nil {
			return err
		}
		reply, err := pending.Wait(ctx)
		if err != nil {
			return fmt.Errorf("waiting for reply: %w", err)
		}

		out := cmd.OutOrStdout()
		if askJSON {
			return printJSON(out, askOutput{Message: pending.User, Reply: reply})
		}
		fmt.Fprint(out, renderMessage(reply))
		if reply.Metadata.Plan != nil {
			fmt.Fprintln(out)
			fmt.Fprint(out, renderPlan(*reply.Metadata.Plan, nil, 0))
		}
		return nil
	},
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "Output in JSON format")
	askCmd.Flags().BoolVar(&askNoDelay, "no-delay", false, "Reply immediately instead of waiting the configured response delay")
	askCmd.Flags().DurationVar(&askTimeout, "timeout", 30*time.Second, "Maximum time to wait for the reply")
	RootCmd.AddCommand(askCmd)
}
