package platform

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/fortify/timeout"
	"github.com/google/uuid"
)

// Client is the entry point to every platform service.
type Client struct {
	delay    atomic.Int64
	timeout  time.Duration
	retryCfg retry.Config
	logger   *slog.Logger
	now      func() time.Time

	mu       sync.RWMutex
	agents   []Agent
	tools    []GatewayTool
	memories []MemoryResource
	deploys  map[string]Deployment
	scores   map[string]Score

	Runtime       *Runtime
	Memory        *Memory
	Gateway       *Gateway
	Identity      *Identity
	Observability *Observability
	Agents        *Agents
	RAG           *RAG
}

// NewClient creates a client seeded with the demo catalog.
func NewClient(opts ...Option) *Client {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.maxAttempts < 1 {
		o.maxAttempts = 1
	}

	c := &Client{
		timeout: o.timeout,
		retryCfg: retry.Config{
			MaxAttempts:   o.maxAttempts,
			InitialDelay:  o.initialDelay,
			BackoffPolicy: retry.BackoffExponential,
		},
		logger:  o.logger,
		now:     o.now,
		deploys: make(map[string]Deployment),
		scores:  make(map[string]Score),
	}
	c.delay.Store(int64(o.delay))
	c.seed()

	c.Runtime = &Runtime{c: c}
	c.Memory = &Memory{c: c}
	c.Gateway = &Gateway{c: c}
	c.Identity = &Identity{c: c}
	c.Observability = &Observability{c: c}
	c.Agents = &Agents{c: c}
	c.RAG = &RAG{c: c}
	return c
}

// SetDelay changes the artificial latency for subsequent calls.
func (c *Client) SetDelay(d time.Duration) {
	if d < 0 {
		d = 0
	}
	c.delay.Store(int64(d))
}

// Delay returns the current artificial latency.
func (c *Client) Delay() time.Duration {
	return time.Duration(c.delay.Load())
}

func (c *Client) newID(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

// invoke runs fn after the artificial delay, under the client's timeout and
// retry policy. Request validation belongs before invoke so bad input is
// neither delayed nor retried.
func invoke[T any](ctx context.Context, c *Client, op string, fn func() (T, error)) (Response[T], error) {
	start := time.Now()
	r := retry.New[T](c.retryCfg)
	t := timeout.New[T](timeout.Config{DefaultTimeout: c.timeout})

	data, err := t.Execute(ctx, c.timeout, func(ctx context.Context) (T, error) {
		return r.Do(ctx, func(ctx context.Context) (T, error) {
			if err := sleep(ctx, c.Delay()); err != nil {
				var zero T
				return zero, err
			}
			return fn()
		})
	})
	if err != nil {
		c.logger.Warn("platform call failed", "op", op, "error", err)
		return Response[T]{Success: false, Message: err.Error(), Errors: []string{err.Error()}}, fmt.Errorf("%s: %w", op, err)
	}
	c.logger.Debug("platform call", "op", op, "elapsed_ms", time.Since(start).Milliseconds())
	return Response[T]{Data: data, Success: true}, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
