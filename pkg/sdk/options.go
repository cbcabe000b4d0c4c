package sdk

import (
	"time"

	"github.com/felixgeelhaar/fortify/retry"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultMaxAttempts  = 3
	defaultInitialDelay = 500 * time.Millisecond
)

// Option configures a Client before its MCP connection is built.
type Option func(*Client)

// WithTimeout sets the per-call timeout. Calls to Send with wait set need
// room for the server's reply delay.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRetry sets how often a failed transport call is attempted and the
// first backoff delay. Attempts below one are treated as one.
func WithRetry(maxAttempts int, initialDelay time.Duration) Option {
	return func(c *Client) {
		c.retryCfg.MaxAttempts = max(maxAttempts, 1)
		c.retryCfg.InitialDelay = initialDelay
	}
}

// WithoutRetry makes every call a single attempt.
func WithoutRetry() Option {
	return WithRetry(1, 0)
}

func defaultRetry() retry.Config {
	return retry.Config{
		MaxAttempts:   defaultMaxAttempts,
		InitialDelay:  defaultInitialDelay,
		BackoffPolicy: retry.BackoffExponential,
	}
}
