package cli

import (
	"strings"
	"testing"
)

func TestCompletionCmd(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := runCLI(t, "completion", shell)
			if err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(out, "agenthub") {
				t.Errorf("%s script does not mention agenthub", shell)
			}
		})
	}
}

func TestCompletionCmd_RejectsUnknownShell(t *testing.T) {
	if _, err := runCLI(t, "completion", "tcsh"); err == nil {
		t.Fatal("expected an error for tcsh")
	}
	if _, err := runCLI(t, "completion"); err == nil {
		t.Fatal("expected an error without a shell")
	}
}
