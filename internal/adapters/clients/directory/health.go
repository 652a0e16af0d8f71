package directory

import "context"

// Name identifies the directory in health reports, traces and metrics.
func (c *Client) Name() string {
	return c.http.Name()
}

// HealthCheck reports the circuit breaker state of the underlying client. No
// request is made, so a failing directory never takes the service out of
// rotation.
func (c *Client) HealthCheck(ctx context.Context) error {
	return c.http.HealthCheck(ctx)
}
