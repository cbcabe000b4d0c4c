package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/agenthub/pkg/platform"
)

var platformJSON bool

// withPlatform wires the app and runs fn against its platform client.
func withPlatform(cmd *cobra.Command, fn func(ctx context.Context, c *platform.Client, out io.Writer) error) error {
	app, err := loadApp(cmd, nil)
	if err != nil {
		return err
	}
	return fn(cmd.Context(), app.Platform, cmd.OutOrStdout())
}

func renderTable(out io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(out, t.String())
}

// report prints v as JSON with --json, otherwise runs text.
func report(out io.Writer, v any, text func()) error {
	if platformJSON {
		return printJSON(out, v)
	}
	text()
	return nil
}

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "Manage agents on the platform",
}

var agentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered agents",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPlatform(cmd, func(ctx context.Context, c *platform.Client, out io.Writer) error {
			res, err := c.Agents.List(ctx)
			if err != nil {
				return err
			}
			return report(out, res.Data, func() {
				rows := make([][]string, 0, len(res.Data))
				for _, a := range res.Data {
					rows = append(rows, []string{a.ID, a.Name, string(a.Framework), a.Model, a.Status})
				}
				renderTable(out, []string{"ID", "Name", "Framework", "Model", "Status"}, rows)
			})
		})
	},
}

var agentSpec platform.AgentSpec

var agentsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a new agent",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPlatform(cmd, func(ctx context.Context, c *platform.Client, out io.Writer) error {
			res, err := c.Agents.Create(ctx, agentSpec)
			if err != nil {
				return err
			}
			return report(out, res.Data, func() {
				fmt.Fprintf(out, "%s %s (%s)\n", doneStyle.Render("Created"), res.Data.Name, res.Data.ID)
			})
		})
	},
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Publish and list gateway tools",
}

var toolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tools published on the gateway",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPlatform(cmd, func(ctx context.Context, c *platform.Client, out io.Writer) error {
			res, err := c.Gateway.ListTools(ctx)
			if err != nil {
				return err
			}
			return report(out, res.Data, func() {
				rows := make([][]string, 0, len(res.Data))
				for _, t := range res.Data {
					rows = append(rows, []string{t.ID, t.Name, string(t.Type), strings.Join(t.Scopes, " "), t.Status})
				}
				renderTable(out, []string{"ID", "Name", "Type", "Scopes", "Status"}, rows)
			})
		})
	},
}

var (
	toolSpec   platform.ToolSpec
	toolType   string
	toolConfig map[string]string
)

var toolsPublishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish a tool to the gateway",
	RunE: func(cmd *cobra.Command, args []string) error {
		spec := toolSpec
		spec.Type = platform.ToolType(toolType)
		spec.Config = toolConfig
		return withPlatform(cmd, func(ctx context.Context, c *platform.Client, out io.Writer) error {
			res, err := c.Gateway.PublishTool(ctx, spec)
			if err != nil {
				return err
			}
			return report(out, res.Data, func() {
				fmt.Fprintf(out, "%s %s at %s\n", doneStyle.Render("Published"), res.Data.Name, res.Data.MCPEndpoint)
			})
		})
	},
}

var toolsImportCmd = &cobra.Command{
	Use:   "import <openapi-file>",
	Short: "Publish a tool from an OpenAPI document (YAML or JSON)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read OpenAPI document: %w", err)
		}
		return withPlatform(cmd, func(ctx context.Context, c *platform.Client, out io.Writer) error {
			res, err := c.Gateway.ImportOpenAPI(ctx, string(doc), toolConfig)
			if err != nil {
				return err
			}
			return report(out, res.Data, func() {
				fmt.Fprintf(out, "%s %s (%s)\n", doneStyle.Render("Imported"), res.Data.Name, res.Data.ID)
			})
		})
	},
}

var toolsScopesCmd = &cobra.Command{
	Use:   "scopes <tool-id> <scope>...",
	Short: "Replace the scopes of a published tool",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPlatform(cmd, func(ctx context.Context, c *platform.Client, out io.Writer) error {
			res, err := c.Gateway.ConfigureScopes(ctx, args[0], args[1:])
			if err != nil {
				return err
			}
			return report(out, res, func() {
				fmt.Fprintf(out, "%s %s\n", doneStyle.Render("Scopes updated for"), args[0])
			})
		})
	},
}

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Manage memory resources",
}

var memorySpec platform.MemorySpec

var memoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List memory resources",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPlatform(cmd, func(ctx context.Context, c *platform.Client, out io.Writer) error {
			res, err := c.Memory.List(ctx)
			if err != nil {
				return err
			}
			return report(out, res.Data, func() {
				rows := make([][]string, 0, len(res.Data))
				for _, m := range res.Data {
					rows = append(rows, []string{m.ID, m.Name, strings.Join(m.Strategies, ", "), strconv.Itoa(m.Retention.Days), m.Status})
				}
				renderTable(out, []string{"ID", "Name", "Strategies", "Days", "Status"}, rows)
			})
		})
	},
}

var memoryCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a memory resource",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPlatform(cmd, func(ctx context.Context, c *platform.Client, out io.Writer) error {
			res, err := c.Memory.Create(ctx, memorySpec)
			if err != nil {
				return err
			}
			return report(out, res.Data, func() {
				fmt.Fprintf(out, "%s %s (%s)\n", doneStyle.Render("Created"), res.Data.Name, res.Data.ID)
			})
		})
	},
}

var memoryUpdateCmd = &cobra.Command{
	Use:   "update <memory-id>",
	Short: "Update a memory resource; unset flags keep their value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPlatform(cmd, func(ctx context.Context, c *platform.Client, out io.Writer) error {
			res, err := c.Memory.Update(ctx, args[0], memorySpec)
			if err != nil {
				return err
			}
			return report(out, res.Data, func() {
				fmt.Fprintf(out, "%s %s\n", doneStyle.Render("Updated"), res.Data.ID)
			})
		})
	},
}

var memoryDeleteCmd = &cobra.Command{
	Use:   "delete <memory-id>",
	Short: "Delete a memory resource",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPlatform(cmd, func(ctx context.Context, c *platform.Client, out io.Writer) error {
			res, err := c.Memory.Delete(ctx, args[0])
			if err != nil {
				return err
			}
			return report(out, res, func() {
				fmt.Fprintf(out, "%s %s\n", doneStyle.Render("Deleted"), args[0])
			})
		})
	},
}

var deployEnv string

var deployCmd = &cobra.Command{
	Use:   "deploy <agent-version-id>",
	Short: "Deploy an agent version to the runtime",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPlatform(cmd, func(ctx context.Context, c *platform.Client, out io.Writer) error {
			res, err := c.Runtime.Deploy(ctx, args[0], platform.Environment(deployEnv))
			if err != nil {
				return err
			}
			return report(out, res.Data, func() { printDeployment(out, res.Data) })
		})
	},
}

var deployStatusCmd = &cobra.Command{
	Use:   "status <deployment-id>",
	Short: "Show a deployment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPlatform(cmd, func(ctx context.Context, c *platform.Client, out io.Writer) error {
			res, err := c.Runtime.Status(ctx, args[0])
			if err != nil {
				return err
			}
			return report(out, res.Data, func() { printDeployment(out, res.Data) })
		})
	},
}

func printDeployment(out io.Writer, d platform.Deployment) {
	fmt.Fprintf(out, "%s %s\n", titleStyle.Render("Deployment"), d.ID)
	fmt.Fprintf(out, "  Version:     %s\n", d.AgentVersionID)
	fmt.Fprintf(out, "  Environment: %s\n", d.Environment)
	fmt.Fprintf(out, "  Status:      %s\n", d.Status)
	fmt.Fprintf(out, "  Endpoint:    %s\n", d.EndpointURL)
}

var invokePayload map[string]string

var invokeCmd = &cobra.Command{
	Use:   "invoke <session-id>",
	Short: "Invoke a deployed agent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPlatform(cmd, func(ctx context.Context, c *platform.Client, out io.Writer) error {
			res, err := c.Runtime.Invoke(ctx, args[0], invokePayload)
			if err != nil {
				return err
			}
			return report(out, res.Data, func() {
				fmt.Fprintln(out, res.Data.Response)
				for k, v := range res.Data.Output {
					fmt.Fprintf(out, "  %s=%s\n", k, v)
				}
			})
		})
	},
}

var (
	observeAgent    string
	observeFeedback string
)

var observeCmd = &cobra.Command{
	Use:   "observe",
	Short: "Inspect agent sessions and record feedback",
}

var observeSessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List observed sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPlatform(cmd, func(ctx context.Context, c *platform.Client, out io.Writer) error {
			res, err := c.Observability.ListSessions(ctx, observeAgent)
			if err != nil {
				return err
			}
			return report(out, res.Data, func() {
				rows := make([][]string, 0, len(res.Data))
				for _, o := range res.Data {
					score := "-"
					if o.Score != nil {
						score = strconv.FormatFloat(o.Score.Value, 'f', 1, 64)
					}
					rows = append(rows, []string{
						o.ID, o.SessionID, strconv.Itoa(len(o.Steps)),
						strconv.Itoa(o.Metrics.TotalTokens), fmt.Sprintf("$%.4f", o.Metrics.Cost), score,
					})
				}
				renderTable(out, []string{"ID", "Session", "Steps", "Tokens", "Cost", "Score"}, rows)
			})
		})
	},
}

var observeTrajectoryCmd = &cobra.Command{
	Use:   "trajectory <session-id>",
	Short: "Show the steps of one session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPlatform(cmd, func(ctx context.Context, c *platform.Client, out io.Writer) error {
			res, err := c.Observability.Trajectory(ctx, args[0])
			if err != nil {
				return err
			}
			return report(out, res.Data, func() {
				fmt.Fprintf(out, "%s %s (%s)\n", titleStyle.Render("Trajectory"), res.Data.SessionID, res.Data.Status)
				for i, s := range res.Data.Steps {
					fmt.Fprintf(out, "  %d. [%s] %s %dms\n", i+1, s.Type, s.Name, s.DurationMS)
				}
			})
		})
	},
}

var observeScoreCmd = &cobra.Command{
	Use:   "score <observation-id> <0-5>",
	Short: "Record a score for an observation",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return NewCLIError("score must be a number", "Use a value between 0 and 5", err)
		}
		return withPlatform(cmd, func(ctx context.Context, c *platform.Client, out io.Writer) error {
			res, err := c.Observability.Score(ctx, args[0], value, observeFeedback)
			if err != nil {
				return err
			}
			return report(out, res, func() {
				fmt.Fprintf(out, "%s %s = %.1f\n", doneStyle.Render("Scored"), args[0], value)
			})
		})
	},
}

var (
	oauthSpec     platform.OAuthSpec
	consentScopes []string
)

var identityCmd = &cobra.Command{
	Use:   "identity",
	Short: "Configure inbound auth and outbound consents",
}

var identityOAuthCmd = &cobra.Command{
	Use:   "oauth",
	Short: "Register an inbound OAuth client and print the consent URL",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPlatform(cmd, func(ctx context.Context, c *platform.Client, out io.Writer) error {
			res, err := c.Identity.ConfigureInboundOAuth(ctx, oauthSpec)
			if err != nil {
				return err
			}
			return report(out, res.Data, func() {
				fmt.Fprintf(out, "%s\n%s\n", doneStyle.Render("OAuth client registered. Visit:"), res.Data.ConsentURL)
			})
		})
	},
}

var identityConsentCmd = &cobra.Command{
	Use:   "consent <service>",
	Short: "Grant an outbound consent to a third-party service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPlatform(cmd, func(ctx context.Context, c *platform.Client, out io.Writer) error {
			res, err := c.Identity.ConfigureOutboundConsent(ctx, args[0], consentScopes)
			if err != nil {
				return err
			}
			return report(out, res.Data, func() {
				fmt.Fprintf(out, "%s %s (%s)\n", doneStyle.Render("Consent granted for"), res.Data.Service, strings.Join(res.Data.Scopes, " "))
			})
		})
	},
}

var ragEmbeddingModel string

var ragCmd = &cobra.Command{
	Use:   "rag",
	Short: "Manage retrieval indexes",
}

var ragIndexCmd = &cobra.Command{
	Use:   "index <data-source>",
	Short: "Start indexing a data source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPlatform(cmd, func(ctx context.Context, c *platform.Client, out io.Writer) error {
			res, err := c.RAG.Index(ctx, args[0], ragEmbeddingModel)
			if err != nil {
				return err
			}
			return report(out, res.Data, func() {
				fmt.Fprintf(out, "%s %s (%s)\n", doneStyle.Render("Indexing"), res.Data.DataSource, res.Data.ID)
			})
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{agentsCmd, toolsCmd, memoryCmd, deployCmd, invokeCmd, observeCmd, identityCmd, ragCmd} {
		c.PersistentFlags().BoolVar(&platformJSON, "json", false, "Output in JSON format")
	}

	agentsCreateCmd.Flags().StringVar(&agentSpec.Name, "name", "", "Agent name")
	agentsCreateCmd.Flags().StringVar(&agentSpec.Description, "description", "", "What the agent does")
	agentsCreateCmd.Flags().StringVar((*string)(&agentSpec.Framework), "framework", string(platform.FrameworkLangGraph), "langgraph, crewai, strands or custom")
	agentsCreateCmd.Flags().StringVar(&agentSpec.Model, "model", "", "Model identifier")
	agentsCreateCmd.Flags().StringVar(&agentSpec.MemoryID, "memory", "", "Memory resource to attach")
	agentsCmd.AddCommand(agentsListCmd, agentsCreateCmd)

	toolsPublishCmd.Flags().StringVar(&toolSpec.Name, "name", "", "Tool name")
	toolsPublishCmd.Flags().StringVar(&toolSpec.Description, "description", "", "Tool description")
	toolsPublishCmd.Flags().StringVar(&toolType, "type", string(platform.ToolOpenAPI), "openapi, lambda or saas")
	toolsPublishCmd.Flags().StringSliceVar(&toolSpec.Scopes, "scope", nil, "OAuth scope (repeatable)")
	for _, c := range []*cobra.Command{toolsPublishCmd, toolsImportCmd} {
		c.Flags().StringToStringVar(&toolConfig, "config", nil, "Tool configuration as key=value")
	}
	toolsCmd.AddCommand(toolsListCmd, toolsPublishCmd, toolsImportCmd, toolsScopesCmd)

	for _, c := range []*cobra.Command{memoryCreateCmd, memoryUpdateCmd} {
		c.Flags().StringVar(&memorySpec.Name, "name", "", "Resource name")
		c.Flags().StringSliceVar(&memorySpec.Strategies, "strategy", nil, "shortTerm, longTerm or summary (repeatable)")
		c.Flags().IntVar(&memorySpec.RetentionDays, "retention", 0, "Retention in days")
	}
	memoryCmd.AddCommand(memoryListCmd, memoryCreateCmd, memoryUpdateCmd, memoryDeleteCmd)

	deployCmd.Flags().StringVar(&deployEnv, "env", string(platform.EnvSandbox), "sandbox, staging or production")
	deployCmd.AddCommand(deployStatusCmd)

	invokeCmd.Flags().StringToStringVar(&invokePayload, "payload", nil, "Payload as key=value")

	observeSessionsCmd.Flags().StringVar(&observeAgent, "agent", "", "Agent ID (defaults to the demo agent)")
	observeScoreCmd.Flags().StringVar(&observeFeedback, "feedback", "", "Free-text feedback")
	observeCmd.AddCommand(observeSessionsCmd, observeTrajectoryCmd, observeScoreCmd)

	identityOAuthCmd.Flags().StringVar(&oauthSpec.ClientID, "client-id", "", "OAuth client ID")
	identityOAuthCmd.Flags().StringVar(&oauthSpec.ClientSecret, "client-secret", "", "OAuth client secret")
	identityOAuthCmd.Flags().StringVar(&oauthSpec.AuthURL, "auth-url", "", "Authorization endpoint")
	identityOAuthCmd.Flags().StringVar(&oauthSpec.TokenURL, "token-url", "", "Token endpoint")
	identityOAuthCmd.Flags().StringVar(&oauthSpec.RedirectURL, "redirect-url", "", "Redirect URL")
	identityOAuthCmd.Flags().StringSliceVar(&oauthSpec.Scopes, "scope", nil, "Scope (repeatable)")
	identityConsentCmd.Flags().StringSliceVar(&consentScopes, "scope", nil, "Scope (repeatable)")
	identityCmd.AddCommand(identityOAuthCmd, identityConsentCmd)

	ragIndexCmd.Flags().StringVar(&ragEmbeddingModel, "embedding-model", "amazon.titan-embed-text-v1", "Embedding model")
	ragCmd.AddCommand(ragIndexCmd)

	RootCmd.AddCommand(agentsCmd, toolsCmd, memoryCmd, deployCmd, invokeCmd, observeCmd, identityCmd, ragCmd)
}
