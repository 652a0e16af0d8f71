// Package httpclient is the outbound HTTP client used for lookups against
// remote services. A call passes through, outermost first:
//
//	circuit breaker → rate limiter → span + header propagation → retry → transport
//
// Only idempotent requests (GET, HEAD) are retried. Cancellation by the
// caller never counts against the breaker, so an abandoned validation cannot
// open the circuit for everyone else.
//
//	c := httpclient.New(&cfg.Client, "email-directory", httpclient.WithMetrics(m))
//	resp, err := c.Get(ctx, "/api/v1/users/exists", url.Values{"email": {addr}})
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/jsamuelsen11/tryconstruct/internal/platform/config"
	"github.com/jsamuelsen11/tryconstruct/internal/platform/telemetry"
)

const tracerName = "github.com/jsamuelsen11/tryconstruct/internal/platform/httpclient"

// Errors returned by Client. Both mean the peer gave no usable answer.
var (
	// ErrCircuitOpen is returned without contacting the peer while the
	// breaker is open or its half-open probe budget is spent.
	ErrCircuitOpen = errors.New("circuit breaker open")
	// ErrRetriesExhausted is returned, together with the last response, when
	// every attempt got a retryable status.
	ErrRetriesExhausted = errors.New("retries exhausted")
)

type (
	requestIDKey     struct{}
	correlationIDKey struct{}
)

// WithRequestID stores the inbound request ID for propagation as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// WithCorrelationID stores the correlation ID for propagation as
// X-Correlation-ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// Option configures a Client.
type Option func(*Client)

// WithMetrics records client request metrics into m.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithLogger sets the logger for breaker transitions. Retry warnings use the
// context logger of the call.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.http.Transport = rt }
}

// Client sends requests to one peer service.
type Client struct {
	http    *http.Client
	baseURL string
	peer    string
	breaker *gobreaker.CircuitBreaker[*http.Response]
	limiter *rate.Limiter
	retry   retryPolicy
	metrics *telemetry.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer
}

// New returns a Client for peer configured from cfg.
func New(cfg *config.ClientConfig, peer string, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		peer:    peer,
		retry:   newRetryPolicy(cfg.Retry),
		logger:  slog.New(slog.DiscardHandler),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}

	if cfg.RateLimit.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), max(cfg.RateLimit.BurstSize, 1))
	}

	maxFailures := cfg.CircuitBreaker.MaxFailures
	c.breaker = gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        peer,
		MaxRequests: clampUint32(cfg.CircuitBreaker.HalfOpenLimit),
		Timeout:     cfg.CircuitBreaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return maxFailures > 0 && counts.ConsecutiveFailures >= clampUint32(maxFailures)
		},
		IsExcluded: isAbandoned,
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("circuit breaker state change",
				slog.String("peer_service", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	return c
}

// Name returns the peer service name.
func (c *Client) Name() string {
	return c.peer
}

// URL resolves path against the base URL and appends query when non-empty.
func (c *Client) URL(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// Get sends a GET for path with query.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(path, query), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("building GET %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	return c.Do(req)
}

// Do sends req, which carries the call's context.
//
// A non-retryable status is returned as a response with a nil error. When
// retries run out the last response comes back together with an error
// wrapping ErrRetriesExhausted; the caller closes its body either way.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	start := time.Now()

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, &abandonedError{err: err}
			}
		}
		resp, err := c.send(req)
		if err != nil && ctx.Err() != nil {
			return resp, &abandonedError{err: err}
		}
		return resp, err
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = fmt.Errorf("%s: %w", c.peer, ErrCircuitOpen)
	}

	c.record(ctx, req.Method, time.Since(start), resp, err)
	return resp, err
}

// send runs one traced, retried exchange.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	ctx, span := c.tracer.Start(req.Context(), "HTTP "+req.Method+" "+c.peer,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.full", req.URL.Redacted()),
			telemetry.AttrPeerService.String(c.peer),
		),
	)
	defer span.End()

	req = req.Clone(ctx)
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		req.Header.Set("X-Request-ID", id)
	}
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok && id != "" {
		req.Header.Set("X-Correlation-ID", id)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, attempts, err := c.retry.do(ctx, c.http, req, c.peer)
	span.SetAttributes(attribute.Int("http.request.resend_count", attempts-1))
	if resp != nil {
		span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return resp, err
}

// HealthCheck reports the breaker state without contacting the peer.
func (c *Client) HealthCheck(context.Context) error {
	switch st := c.breaker.State(); st {
	case gobreaker.StateClosed:
		return nil
	case gobreaker.StateHalfOpen:
		return fmt.Errorf("%s: probing after failures (circuit half-open)", c.peer)
	case gobreaker.StateOpen:
		return fmt.Errorf("%s: %w", c.peer, ErrCircuitOpen)
	default:
		return fmt.Errorf("%s: unknown breaker state %v", c.peer, st)
	}
}

func (c *Client) record(ctx context.Context, method string, elapsed time.Duration, resp *http.Response, err error) {
	if c.metrics == nil {
		return
	}

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	attrs := metric.WithAttributes(
		telemetry.AttrHTTPMethod.String(method),
		telemetry.AttrHTTPStatus.Int(status),
		telemetry.AttrPeerService.String(c.peer),
		telemetry.AttrResult.String(resultOf(status, err)),
	)
	c.metrics.ClientRequestDuration.Record(ctx, elapsed.Seconds(), attrs)
	c.metrics.ClientRequestTotal.Add(ctx, 1, attrs)
}

func resultOf(status int, err error) string {
	switch {
	case errors.Is(err, ErrCircuitOpen):
		return "circuit_open"
	case isAbandoned(err):
		return telemetry.ResultCancelled
	case err != nil, status >= http.StatusBadRequest:
		return "error"
	default:
		return "success"
	}
}

// abandonedError marks a call the caller gave up on: its context ended or it
// could not wait for a rate limit token. The peer is not at fault.
type abandonedError struct {
	err error
}

func (e *abandonedError) Error() string { return e.err.Error() }

func (e *abandonedError) Unwrap() error { return e.err }

func isAbandoned(err error) bool {
	var ab *abandonedError
	return errors.As(err, &ab)
}

func clampUint32(v int) uint32 {
	switch {
	case v <= 0:
		return 0
	case v > math.MaxUint32:
		return math.MaxUint32
	default:
		return uint32(v)
	}
}
