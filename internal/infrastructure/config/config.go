// Package config loads agenthub.yaml, applies environment overrides and
// reloads the file when it changes.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "agenthub.yaml"

// Environment variables read by ApplyEnv.
const (
	EnvConfig          = "AGENTHUB_CONFIG"
	EnvResponseDelay   = "AGENTHUB_RESPONSE_DELAY"
	EnvPlatformDelay   = "AGENTHUB_PLATFORM_DELAY"
	EnvAddr            = "AGENTHUB_ADDR"
	EnvLogLevel        = "AGENTHUB_LOG_LEVEL"
	EnvLogFormat       = "AGENTHUB_LOG_FORMAT"
	EnvMCPTransport    = "AGENTHUB_MCP_TRANSPORT"
	EnvPlatformTries   = "AGENTHUB_PLATFORM_ATTEMPTS"
	EnvPlatformTimeout = "AGENTHUB_PLATFORM_TIMEOUT"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete runtime configuration.
type Config struct {
	Chat     ChatConfig     `yaml:"chat"`
	Platform PlatformConfig `yaml:"platform"`
	Server   ServerConfig   `yaml:"server"`
	MCP      MCPConfig      `yaml:"mcp"`
	Log      LogConfig      `yaml:"log"`
}

type ChatConfig struct {
	// ResponseDelay is the pause before the assistant replies.
	ResponseDelay Duration `yaml:"response_delay"`
}

type PlatformConfig struct {
	Delay       Duration `yaml:"delay"`
	Timeout     Duration `yaml:"timeout"`
	MaxAttempts int      `yaml:"max_attempts"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	// AllowedOrigins restricts websocket upgrades. Empty allows any origin.
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
	// RateLimit caps mutating requests per client per second; 0 disables it.
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`
}

type MCPConfig struct {
	Transport string `yaml:"transport"`
	Addr      string `yaml:"addr"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Chat: ChatConfig{ResponseDelay: Duration(1500 * time.Millisecond)},
		Platform: PlatformConfig{
			Delay:       Duration(800 * time.Millisecond),
			Timeout:     Duration(30 * time.Second),
			MaxAttempts: 2,
		},
		Server: ServerConfig{Addr: ":8080", RateLimit: 5, RateBurst: 10},
		MCP:    MCPConfig{Transport: "stdio", Addr: ":8090"},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// ResolvePath picks the config file: the explicit path, then
// AGENTHUB_CONFIG, then agenthub.yaml in the working directory. explicit
// reports whether the user named the file.
func ResolvePath(path string) (resolved string, explicit bool) {
	if path != "" {
		return path, true
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env, true
	}
	return DefaultFile, false
}

// Load reads the file at path over the defaults, applies environment
// overrides (including a .env beside the file) and validates the result. A missing default file is not an
// error; a missing file the user named is.
func Load(path string) (*Config, error) {
	resolved, explicit := ResolvePath(path)
	cfg, err := LoadFile(resolved)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			cfg = Default()
		} else {
			return nil, err
		}
	}
	lookup, err := EnvLookup(filepath.Dir(resolved))
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads path over the defaults without environment overrides.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o600)
}

// Marshal renders cfg as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// ApplyEnv overrides fields from environment variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	durations := []struct {
		key string
		dst *Duration
	}{
		{EnvResponseDelay, &c.Chat.ResponseDelay},
		{EnvPlatformDelay, &c.Platform.Delay},
		{EnvPlatformTimeout, &c.Platform.Timeout},
	}
	for _, d := range durations {
		if v, ok := lookup(d.key); ok && v != "" {
			parsed, err := ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", d.key, err)
			}
			*d.dst = parsed
		}
	}

	if v, ok := lookup(EnvPlatformTries); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPlatformTries, err)
		}
		c.Platform.MaxAttempts = n
	}

	strs := []struct {
		key string
		dst *string
	}{
		{EnvAddr, &c.Server.Addr},
		{EnvLogLevel, &c.Log.Level},
		{EnvLogFormat, &c.Log.Format},
		{EnvMCPTransport, &c.MCP.Transport},
	}
	for _, s := range strs {
		if v, ok := lookup(s.key); ok && v != "" {
			*s.dst = v
		}
	}
	return nil
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var problems []string
	if c.Chat.ResponseDelay < 0 {
		problems = append(problems, "chat.response_delay must not be negative")
	}
	if c.Platform.Delay < 0 {
		problems = append(problems, "platform.delay must not be negative")
	}
	if c.Platform.Timeout <= 0 {
		problems = append(problems, "platform.timeout must be positive")
	}
	if c.Platform.MaxAttempts < 1 {
		problems = append(problems, "platform.max_attempts must be at least 1")
	}
	if c.Server.Addr == "" {
		problems = append(problems, "server.addr is required")
	}
	if c.Server.RateLimit < 0 || c.Server.RateBurst < 0 {
		problems = append(problems, "server.rate_limit and server.rate_burst must not be negative")
	}
	switch c.MCP.Transport {
	case "stdio", "http", "ws":
	default:
		problems = append(problems, fmt.Sprintf("mcp.transport %q must be stdio, http or ws", c.MCP.Transport))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("log.format %q must be text or json", c.Log.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}
