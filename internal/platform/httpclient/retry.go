package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/jsamuelsen11/tryconstruct/internal/platform/config"
	"github.com/jsamuelsen11/tryconstruct/internal/platform/logging"
)

// jitter spreads each delay by up to ±25%.
const jitter = 0.25

// retryPolicy is exponential backoff with jitter. A Retry-After header on
// 429 or 503 replaces the computed delay, capped at maxDelay.
type retryPolicy struct {
	attempts   int
	baseDelay  time.Duration
	maxDelay   time.Duration
	multiplier float64
	// rand returns a value in [0, 1). Tests pin it.
	rand func() float64
}

func newRetryPolicy(cfg config.RetryConfig) retryPolicy {
	return retryPolicy{
		attempts:   max(cfg.MaxAttempts, 1),
		baseDelay:  cfg.InitialInterval,
		maxDelay:   cfg.MaxInterval,
		multiplier: max(cfg.Multiplier, 1),
		rand:       rand.Float64,
	}
}

// do sends req until it gets a final answer, returning the response, the
// number of attempts made and, when no attempt succeeded, an error.
func (p retryPolicy) do(ctx context.Context, hc *http.Client, req *http.Request, peer string) (*http.Response, int, error) {
	attempts := p.attempts
	if !idempotent(req.Method) {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; ; attempt++ {
		resp, err := hc.Do(req)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return nil, attempt, fmt.Errorf("%s: %w", peer, ctx.Err())
			}
			lastErr = fmt.Errorf("%s: %w", peer, err)
		case !retryableStatus(resp.StatusCode):
			return resp, attempt, nil
		case attempt == attempts:
			return resp, attempt, fmt.Errorf("%s: HTTP %d after %d attempts: %w",
				peer, resp.StatusCode, attempt, ErrRetriesExhausted)
		default:
			lastErr = fmt.Errorf("%s: HTTP %d", peer, resp.StatusCode)
		}

		if attempt == attempts {
			return nil, attempt, lastErr
		}

		wait := p.delay(attempt, resp)
		if resp != nil {
			discard(resp)
		}
		logging.FromContext(ctx).WarnContext(ctx, "retrying outbound request",
			slog.String("peer_service", peer),
			slog.String("method", req.Method),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", attempts),
			slog.Duration("backoff", wait),
			slog.Any("error", lastErr),
		)

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, attempt, fmt.Errorf("%s: %w", peer, errors.Join(ctx.Err(), lastErr))
		case <-t.C:
		}
	}
}

// delay returns the wait before the retry that follows attempt (1-based).
func (p retryPolicy) delay(attempt int, resp *http.Response) time.Duration {
	if d, ok := retryAfter(resp); ok {
		return min(d, p.maxDelay)
	}

	d := float64(p.baseDelay)
	for range attempt - 1 {
		d *= p.multiplier
	}
	d = min(d, float64(p.maxDelay))
	d += d * jitter * (2*p.rand() - 1)
	return time.Duration(max(d, 0))
}

// retryAfter reads a delay-seconds Retry-After header. HTTP dates are
// ignored.
func retryAfter(resp *http.Response) (time.Duration, bool) {
	if resp == nil {
		return 0, false
	}
	if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusServiceUnavailable {
		return 0, false
	}
	secs, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	if err != nil || secs < 0 {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

func idempotent(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

// retryableStatus reports whether status is worth another attempt: 429 and
// the 5xx range except 501, which will not change on retry.
func retryableStatus(status int) bool {
	if status == http.StatusTooManyRequests {
		return true
	}
	return status >= http.StatusInternalServerError && status != http.StatusNotImplemented
}

// discard drains and closes a body so the connection can be reused.
func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}
