package httpclient

import (
	"net/http"
	"testing"
	"time"

	"github.com/jsamuelsen11/tryconstruct/internal/platform/config"
)

func fixedPolicy(r float64) retryPolicy {
	p := newRetryPolicy(config.RetryConfig{
		MaxAttempts:     4,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     time.Second,
		Multiplier:      2,
	})
	p.rand = func() float64 { return r }
	return p
}

func TestRetryPolicy_Delay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rand    float64
		attempt int
		resp    *http.Response
		want    time.Duration
	}{
		{name: "first retry, no jitter", rand: 0.5, attempt: 1, want: 100 * time.Millisecond},
		{name: "grows exponentially", rand: 0.5, attempt: 3, want: 400 * time.Millisecond},
		{name: "capped", rand: 0.5, attempt: 10, want: time.Second},
		{name: "low jitter", rand: 0, attempt: 1, want: 75 * time.Millisecond},
		{name: "high jitter", rand: 1, attempt: 1, want: 125 * time.Millisecond},
		{
			name: "retry-after wins", rand: 0.5, attempt: 1,
			resp: &http.Response{StatusCode: http.StatusTooManyRequests, Header: http.Header{"Retry-After": {"0"}}},
			want: 0,
		},
		{
			name: "retry-after capped", rand: 0.5, attempt: 1,
			resp: &http.Response{StatusCode: http.StatusServiceUnavailable, Header: http.Header{"Retry-After": {"120"}}},
			want: time.Second,
		},
		{
			name: "retry-after ignored on 500", rand: 0.5, attempt: 1,
			resp: &http.Response{StatusCode: http.StatusInternalServerError, Header: http.Header{"Retry-After": {"0"}}},
			want: 100 * time.Millisecond,
		},
		{
			name: "http-date retry-after ignored", rand: 0.5, attempt: 1,
			resp: &http.Response{StatusCode: http.StatusServiceUnavailable, Header: http.Header{"Retry-After": {"Wed, 21 Oct 2026 07:28:00 GMT"}}},
			want: 100 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := fixedPolicy(tt.rand).delay(tt.attempt, tt.resp); got != tt.want {
				t.Errorf("delay(%d) = %v, want %v", tt.attempt, got, tt.want)
			}
		})
	}
}

func TestNewRetryPolicy_Floors(t *testing.T) {
	t.Parallel()

	p := newRetryPolicy(config.RetryConfig{})
	if p.attempts != 1 {
		t.Errorf("attempts = %d, want 1", p.attempts)
	}
	if p.multiplier != 1 {
		t.Errorf("multiplier = %v, want 1", p.multiplier)
	}
}

func TestRetryableStatus(t *testing.T) {
	t.Parallel()

	tests := map[int]bool{
		http.StatusOK:                  false,
		http.StatusBadRequest:          false,
		http.StatusNotFound:            false,
		http.StatusTooManyRequests:     true,
		http.StatusInternalServerError: true,
		http.StatusNotImplemented:      false,
		http.StatusBadGateway:          true,
		http.StatusServiceUnavailable:  true,
		http.StatusGatewayTimeout:      true,
	}
	for status, want := range tests {
		if got := retryableStatus(status); got != want {
			t.Errorf("retryableStatus(%d) = %v, want %v", status, got, want)
		}
	}
}

func TestIdempotent(t *testing.T) {
	t.Parallel()

	for _, m := range []string{http.MethodGet, http.MethodHead} {
		if !idempotent(m) {
			t.Errorf("idempotent(%s) = false, want true", m)
		}
	}
	for _, m := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		if idempotent(m) {
			t.Errorf("idempotent(%s) = true, want false", m)
		}
	}
}
