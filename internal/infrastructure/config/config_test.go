package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvConfig, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Chat.ResponseDelay.Std() != 1500*time.Millisecond {
		t.Fatalf("unexpected default delay %s", cfg.Chat.ResponseDelay)
	}
	if cfg.Server.Addr != ":8080" || cfg.MCP.Transport != "stdio" {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agenthub.yaml")
	data := `chat:
  response_delay: 250ms
platform:
  delay: 100
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvAddr, "127.0.0.1:9999")
	t.Setenv(EnvLogFormat, "json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Chat.ResponseDelay.Std() != 250*time.Millisecond {
		t.Errorf("response delay = %s", cfg.Chat.ResponseDelay)
	}
	if cfg.Platform.Delay.Std() != 100*time.Millisecond {
		t.Errorf("platform delay = %s", cfg.Platform.Delay)
	}
	if cfg.Platform.MaxAttempts != 2 {
		t.Errorf("unset fields should keep defaults, got %d", cfg.Platform.MaxAttempts)
	}
	if cfg.Server.Addr != "127.0.0.1:9999" || cfg.Log.Format != "json" || cfg.Log.Level != "debug" {
		t.Errorf("unexpected config: %#v", cfg)
	}
}

func TestLoad_EnvConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("server:\n  addr: \":7000\"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfig, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Fatalf("expected :7000, got %s", cfg.Server.Addr)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvAddr, ":7000")
	env := "AGENTHUB_LOG_LEVEL=warn\nAGENTHUB_ADDR=:6000\n"
	if err := os.WriteFile(filepath.Join(dir, DotEnvFile), []byte(env), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("level = %s, want warn from .env", cfg.Log.Level)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("addr = %s, process env should win", cfg.Server.Addr)
	}
}

func TestEnvLookup_MissingFile(t *testing.T) {
	lookup, err := EnvLookup(t.TempDir())
	if err != nil {
		t.Fatalf("EnvLookup: %v", err)
	}
	t.Setenv("AGENTHUB_TEST_VAR", "x")
	if v, ok := lookup("AGENTHUB_TEST_VAR"); !ok || v != "x" {
		t.Errorf("lookup = %q %v", v, ok)
	}
}

func TestApplyEnv_InvalidDuration(t *testing.T) {
	cfg := Default()
	lookup := func(k string) (string, bool) {
		if k == EnvResponseDelay {
			return "soon", true
		}
		return "", false
	}
	if err := cfg.ApplyEnv(lookup); err == nil || !strings.Contains(err.Error(), EnvResponseDelay) {
		t.Fatalf("expected error naming %s, got %v", EnvResponseDelay, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"negative delay", func(c *Config) { c.Chat.ResponseDelay = -1 }, "response_delay"},
		{"zero attempts", func(c *Config) { c.Platform.MaxAttempts = 0 }, "max_attempts"},
		{"bad transport", func(c *Config) { c.MCP.Transport = "smoke" }, "mcp.transport"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"no addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
		{"negative rate", func(c *Config) { c.Server.RateLimit = -1 }, "server.rate_limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %s problem, got %v", tt.want, err)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "agenthub.yaml")
	cfg := Default()
	cfg.Chat.ResponseDelay = Duration(2 * time.Second)

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "response_delay: 2s") {
		t.Fatalf("expected human readable duration, got:\n%s", data)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Chat.ResponseDelay != cfg.Chat.ResponseDelay {
		t.Fatalf("round trip lost delay: %s", loaded.Chat.ResponseDelay)
	}
	if err := Save(path, nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"1500", 1500 * time.Millisecond, false},
		{"1.5s", 1500 * time.Millisecond, false},
		{"0", 0, false},
		{"fast", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseDuration(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDuration(%q) error = %v", tt.in, err)
			continue
		}
		if got.Std() != tt.want {
			t.Errorf("ParseDuration(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestReloader_AppliesValidChanges(t *testing.T) {
	t.Setenv(EnvResponseDelay, "")
	path := filepath.Join(t.TempDir(), "agenthub.yaml")
	if err := os.WriteFile(path, []byte("chat:\n  response_delay: 1s\n"), 0600); err != nil {
		t.Fatal(err)
	}

	got := make(chan *Config, 4)
	r := NewReloader(path, func(c *Config) { got <- c }, nil)
	r.debounce = 20 * time.Millisecond

	ctx := t.Context()
	go func() { _ = r.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(path, []byte("chat:\n  response_delay: 10ms\n"), 0600); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-got:
		if cfg.Chat.ResponseDelay.Std() != 10*time.Millisecond {
			t.Fatalf("unexpected reloaded delay %s", cfg.Chat.ResponseDelay)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no reload observed")
	}
}
