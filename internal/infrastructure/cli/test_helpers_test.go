package cli

import (
	"bytes"
	"testing"

	"github.com/felixgeelhaar/agenthub/internal/infrastructure/config"
	"github.com/felixgeelhaar/agenthub/pkg/platform"
)

// runCLI executes the root command with args in a fresh directory and
// returns what it wrote to stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvResponseDelay, "0s")
	t.Setenv(config.EnvPlatformDelay, "0s")
	resetFlags(t)

	buf := new(bytes.Buffer)
	RootCmd.SetOut(buf)
	RootCmd.SetErr(new(bytes.Buffer))
	RootCmd.SetArgs(args)
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
		RootCmd.SetArgs(nil)
	})
	err := RootCmd.Execute()
	return buf.String(), err
}

// resetFlags clears package flag variables that survive between Execute calls.
func resetFlags(t *testing.T) {
	t.Helper()
	configPath, logLevel, logFormat = "", "", ""
	askJSON, askNoDelay = false, false
	commandsJSON, commandsCategory = false, ""
	configForce = false
	platformJSON = false
	openapiServerURL, openapiOutput = "", ""
	agentSpec = platform.AgentSpec{}
}
