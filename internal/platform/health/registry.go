// Package health provides a thread-safe health check registry for the
// service's backing components: the email directory and, when configured,
// Redis. The readiness endpoint uses it to decide whether the service can
// accept traffic.
package health

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jsamuelsen11/tryconstruct/internal/platform/fanout"
	"github.com/jsamuelsen11/tryconstruct/internal/ports"
)

// DefaultCheckTimeout bounds a single checker when none is configured.
const DefaultCheckTimeout = 2 * time.Second

// Compile-time interface check.
var _ ports.HealthRegistry = (*Registry)(nil)

// Registry is a thread-safe implementation of [ports.HealthRegistry].
// Checkers run concurrently, each under its own timeout, so one hung
// dependency cannot hold up the others' answers.
type Registry struct {
	mu       sync.RWMutex
	checkers []ports.HealthChecker
	timeout  time.Duration
}

// Option configures a Registry.
type Option func(*Registry)

// WithCheckTimeout sets the per-checker timeout. Values of zero or less keep
// the default.
func WithCheckTimeout(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// New creates an empty health check registry.
func New(opts ...Option) *Registry {
	r := &Registry{timeout: DefaultCheckTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a health checker to the registry. Safe for concurrent use.
func (r *Registry) Register(checker ports.HealthChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers = append(r.checkers, checker)
}

// CheckAll executes all registered health checks and returns results keyed by
// checker name. Nil values indicate healthy components. When two checkers
// share a name, the one registered last wins.
func (r *Registry) CheckAll(ctx context.Context) map[string]error {
	r.mu.RLock()
	checkers := slices.Clone(r.checkers)
	r.mu.RUnlock()

	outs := fanout.Run(ctx, 0, checkers, func(ctx context.Context, c ports.HealthChecker) (error, error) {
		return r.check(ctx, c), nil
	})

	results := make(map[string]error, len(checkers))
	for i, c := range checkers {
		err := outs[i].Value
		if outs[i].Err != nil {
			err = outs[i].Err
		}
		results[c.Name()] = err
	}
	return results
}

func (r *Registry) check(ctx context.Context, c ports.HealthChecker) error {
	ctx, cancel := context.WithTimeoutCause(ctx, r.timeout,
		fmt.Errorf("health check %s: no answer within %s", c.Name(), r.timeout))
	defer cancel()
	return c.HealthCheck(ctx)
}
