package dto

import (
	"cmp"
	"slices"
)

// Health statuses.
const (
	HealthOK       = "ok"
	HealthReady    = "ready"
	HealthNotReady = "not_ready"
)

// HealthResponse is the body of the health endpoints. Checks is omitted on
// liveness.
type HealthResponse struct {
	Status string        `json:"status"`
	Checks []HealthCheck `json:"checks,omitempty"`
}

// HealthCheck is the result of one backing component's check.
type HealthCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// NewReadinessResponse turns registry results into a response sorted by
// component name, and reports whether every component is healthy.
func NewReadinessResponse(results map[string]error) (HealthResponse, bool) {
	resp := HealthResponse{Status: HealthReady, Checks: make([]HealthCheck, 0, len(results))}
	for name, err := range results {
		c := HealthCheck{Name: name, Status: HealthOK}
		if err != nil {
			c.Status = HealthNotReady
			c.Error = err.Error()
			resp.Status = HealthNotReady
		}
		resp.Checks = append(resp.Checks, c)
	}
	slices.SortFunc(resp.Checks, func(a, b HealthCheck) int { return cmp.Compare(a.Name, b.Name) })
	return resp, resp.Status == HealthReady
}
