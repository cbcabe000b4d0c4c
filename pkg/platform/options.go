package platform

import (
	"log/slog"
	"time"
)

// DefaultRetryDelay is the first backoff step between attempts.
const DefaultRetryDelay = 100 * time.Millisecond

type options struct {
	delay        time.Duration
	timeout      time.Duration
	maxAttempts  int
	initialDelay time.Duration
	logger       *slog.Logger
	now          func() time.Time
}

func defaultOptions() options {
	return options{
		delay:        800 * time.Millisecond,
		timeout:      30 * time.Second,
		maxAttempts:  2,
		initialDelay: DefaultRetryDelay,
		logger:       slog.Default(),
		now:          time.Now,
	}
}

// Option configures the platform client.
type Option func(*options)

// WithDelay sets the artificial latency of every call. Zero disables it.
func WithDelay(d time.Duration) Option {
	return func(o *options) { o.delay = d }
}

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithRetry configures retry behaviour.
func WithRetry(maxAttempts int, initialDelay time.Duration) Option {
	return func(o *options) {
		o.maxAttempts = maxAttempts
		o.initialDelay = initialDelay
	}
}

// WithLogger sets the logger used for call tracing.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock overrides the time source for created resources.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
