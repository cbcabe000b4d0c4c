package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/agenthub/pkg/domain/commands"
)

var (
	commandsJSON     bool
	commandsCategory string
)

var commandsCmd = &cobra.Command{
	Use:   "commands [prefix]",
	Short: "List the slash commands available in the chat",
	Example: `  agenthub commands
  agenthub commands /dep
  agenthub commands --category rag`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list := commands.All()
		if commandsCategory != "" {
			list = commands.ByCategory(commands.Category(commandsCategory))
		}
		if len(args) == 1 {
			list = slices.DeleteFunc(list, func(c commands.Command) bool {
				return !slices.Contains(commands.Filter(args[0]), c)
			})
		}
		out := cmd.OutOrStdout()
		if commandsJSON {
			return printJSON(out, list)
		}
		if len(list) == 0 {
			fmt.Fprintln(out, "No matching commands.")
			return nil
		}
		for _, c := range list {
			fmt.Fprintf(out, "%-22s %-40s %s\n", c.Name, c.Description, mutedStyle.Render(string(c.Category)))
		}
		return nil
	},
}

func init() {
	commandsCmd.Flags().BoolVar(&commandsJSON, "json", false, "Output in JSON format")
	commandsCmd.Flags().StringVar(&commandsCategory, "category", "", "Only list commands in this category (e.g. rag, deploy)")
	RootCmd.AddCommand(commandsCmd)
}
