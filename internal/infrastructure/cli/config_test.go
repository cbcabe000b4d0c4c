package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/felixgeelhaar/agenthub/internal/infrastructure/config"
)

func TestRunWizard_KeepsDefaultsOnEmptyAnswers(t *testing.T) {
	in := bufio.NewReader(strings.NewReader(strings.Repeat("\n", 10)))
	var out bytes.Buffer

	cfg, err := runWizard(in, &out, config.Default())
	if err != nil {
		t.Fatalf("runWizard: %v", err)
	}
	def := config.Default()
	if cfg.Chat.ResponseDelay != def.Chat.ResponseDelay || cfg.Server.Addr != def.Server.Addr || cfg.MCP.Transport != def.MCP.Transport {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if !strings.Contains(out.String(), "=== Platform ===") {
		t.Errorf("missing section header:\n%s", out.String())
	}
}

func TestRunWizard_AppliesAnswers(t *testing.T) {
	answers := []string{"500ms", "0s", "10s", "4", ":9000", "HTTP", ":9100", "DEBUG", "json"}
	in := bufio.NewReader(strings.NewReader(strings.Join(answers, "\n") + "\n"))

	cfg, err := runWizard(in, new(bytes.Buffer), config.Default())
	if err != nil {
		t.Fatalf("runWizard: %v", err)
	}
	if cfg.Chat.ResponseDelay.Std() != 500*time.Millisecond {
		t.Errorf("response delay = %v", cfg.Chat.ResponseDelay)
	}
	if cfg.Platform.Delay != 0 || cfg.Platform.Timeout.Std() != 10*time.Second || cfg.Platform.MaxAttempts != 4 {
		t.Errorf("unexpected platform config: %+v", cfg.Platform)
	}
	if cfg.Server.Addr != ":9000" || cfg.MCP.Transport != "http" || cfg.MCP.Addr != ":9100" {
		t.Errorf("unexpected servers: %+v %+v", cfg.Server, cfg.MCP)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("unexpected log config: %+v", cfg.Log)
	}
}

func TestRunWizard_RejectsBadValues(t *testing.T) {
	t.Run("duration", func(t *testing.T) {
		in := bufio.NewReader(strings.NewReader("soon\n"))
		if _, err := runWizard(in, new(bytes.Buffer), config.Default()); err == nil {
			t.Fatal("expected a duration error")
		}
	})

	t.Run("transport", func(t *testing.T) {
		answers := []string{"", "", "", "", "", "carrier-pigeon", "", "", ""}
		in := bufio.NewReader(strings.NewReader(strings.Join(answers, "\n") + "\n"))
		_, err := runWizard(in, new(bytes.Buffer), config.Default())
		if !errors.Is(err, config.ErrInvalid) {
			t.Fatalf("expected ErrInvalid, got %v", err)
		}
	})
}

func TestRunWizard_DoesNotMutateCurrent(t *testing.T) {
	current := config.Default()
	in := bufio.NewReader(strings.NewReader("\n\n\n\n:7000\n\n\n\n\n"))
	cfg, err := runWizard(in, new(bytes.Buffer), current)
	if err != nil {
		t.Fatalf("runWizard: %v", err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("addr = %s", cfg.Server.Addr)
	}
	if current.Server.Addr != ":8080" {
		t.Errorf("current config was modified: %s", current.Server.Addr)
	}
}

func TestPrompt(t *testing.T) {
	var out bytes.Buffer
	got := prompt(bufio.NewReader(strings.NewReader("  value \n")), &out, "Label", "def")
	if got != "value" {
		t.Errorf("prompt = %q", got)
	}
	if out.String() != "  Label [def]: " {
		t.Errorf("prompt text = %q", out.String())
	}

	out.Reset()
	got = prompt(bufio.NewReader(strings.NewReader("")), &out, "Name", "")
	if got != "" || out.String() != "  Name: " {
		t.Errorf("prompt without default = %q, %q", got, out.String())
	}
}
