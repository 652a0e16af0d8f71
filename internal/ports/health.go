package ports

import "context"

// HealthChecker is a backing component the readiness probe depends on: the
// email directory client, the Redis connection.
type HealthChecker interface {
	// Name identifies the component in readiness output, e.g.
	// "email-directory".
	Name() string

	// HealthCheck returns nil when the component can serve lookups.
	// It must return once ctx is done.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry collects the service's HealthCheckers and runs them for
// GET /health/ready.
type HealthRegistry interface {
	Register(checker HealthChecker)

	// CheckAll runs every checker and maps each name to its result; a nil
	// error means ready.
	CheckAll(ctx context.Context) map[string]error
}
