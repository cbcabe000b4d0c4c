package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/agenthub/internal/infrastructure/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and write agenthub.yaml",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration after file, environment and flags",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		path, _ := config.ResolvePath(configPath)
		fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("# "+path))
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := config.ResolvePath(configPath)
		if _, err := os.Stat(path); err == nil && !configForce {
			return NewCLIError(fmt.Sprintf("%s already exists", path), "Pass --force to overwrite it", nil)
		}
		if err := config.Save(path, config.Default()); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the config file and environment overrides",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), doneStyle.Render("Configuration is valid."))
		return nil
	},
}

var configWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactively write agenthub.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := config.ResolvePath(configPath)
		existing, err := config.LoadFile(path)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return err
			}
			existing = config.Default()
		}

		cfg, err := runWizard(bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout(), existing)
		if err != nil {
			return err
		}
		if err := config.Save(path, cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nConfiguration saved to %s\n", path)
		return nil
	},
}

// runWizard prompts for each setting, keeping the current value on an
// empty answer, and returns the validated result.
func runWizard(reader *bufio.Reader, out io.Writer, current *config.Config) (*config.Config, error) {
	cfg := *current
	fmt.Fprintln(out, titleStyle.Render("Agent Hub configuration"))

	fmt.Fprintln(out, "\n=== Chat ===")
	var err error
	if cfg.Chat.ResponseDelay, err = promptDuration(reader, out, "Reply delay", cfg.Chat.ResponseDelay); err != nil {
		return nil, err
	}

	fmt.Fprintln(out, "\n=== Platform ===")
	if cfg.Platform.Delay, err = promptDuration(reader, out, "Simulated latency", cfg.Platform.Delay); err != nil {
		return nil, err
	}
	if cfg.Platform.Timeout, err = promptDuration(reader, out, "Call timeout", cfg.Platform.Timeout); err != nil {
		return nil, err
	}
	attempts := prompt(reader, out, "Max attempts", strconv.Itoa(cfg.Platform.MaxAttempts))
	if cfg.Platform.MaxAttempts, err = strconv.Atoi(attempts); err != nil {
		return nil, fmt.Errorf("max attempts: %w", err)
	}

	fmt.Fprintln(out, "\n=== Servers ===")
	cfg.Server.Addr = prompt(reader, out, "HTTP address", cfg.Server.Addr)
	cfg.MCP.Transport = strings.ToLower(prompt(reader, out, "MCP transport (stdio, http, ws)", cfg.MCP.Transport))
	cfg.MCP.Addr = prompt(reader, out, "MCP address", cfg.MCP.Addr)

	fmt.Fprintln(out, "\n=== Logging ===")
	cfg.Log.Level = strings.ToLower(prompt(reader, out, "Level (debug, info, warn, error)", cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(prompt(reader, out, "Format (text, json)", cfg.Log.Format))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func prompt(reader *bufio.Reader, out io.Writer, label, defaultVal string) string {
	if defaultVal != "" {
		fmt.Fprintf(out, "  %s [%s]: ", label, defaultVal)
	} else {
		fmt.Fprintf(out, "  %s: ", label)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultVal
	}
	return input
}

func promptDuration(reader *bufio.Reader, out io.Writer, label string, current config.Duration) (config.Duration, error) {
	v := prompt(reader, out, label, current.String())
	d, err := config.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", strings.ToLower(label), err)
	}
	return d, nil
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configShowCmd, configInitCmd, configValidateCmd, configWizardCmd)
	RootCmd.AddCommand(configCmd)
}
