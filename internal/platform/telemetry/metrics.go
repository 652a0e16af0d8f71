package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// Values of AttrResult for validation outcomes.
const (
	ResultValid       = "valid"
	ResultInvalid     = "invalid"
	ResultCancelled   = "cancelled"
	ResultUnavailable = "unavailable"
)

// Metrics holds the service's instruments.
type Metrics struct {
	ServerRequestDuration metric.Float64Histogram
	ServerRequestTotal    metric.Int64Counter
	ClientRequestDuration metric.Float64Histogram
	ClientRequestTotal    metric.Int64Counter
	ValidationDuration    metric.Float64Histogram
	ValidationTotal       metric.Int64Counter
}

// NewMetrics registers the instruments on a meter named scope.
func NewMetrics(mp metric.MeterProvider, scope string) (*Metrics, error) {
	r := registrar{meter: mp.Meter(scope)}
	m := &Metrics{
		ServerRequestDuration: r.seconds("http.server.request.duration", "Duration of incoming HTTP requests"),
		ServerRequestTotal:    r.count("http.server.request.total", "Incoming HTTP requests", "{request}"),
		ClientRequestDuration: r.seconds("http.client.request.duration", "Duration of outgoing HTTP requests, retries included"),
		ClientRequestTotal:    r.count("http.client.request.total", "Outgoing HTTP requests", "{request}"),
		ValidationDuration:    r.seconds("validation.duration", "Duration of TryCreate calls"),
		ValidationTotal:       r.count("validation.outcome.total", "TryCreate calls by result", "{call}"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return m, nil
}

// RecordOutcome counts one TryCreate call of factory and records how long it
// took. A nil receiver records nothing.
func (m *Metrics) RecordOutcome(ctx context.Context, factory, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(AttrFactory.String(factory), AttrResult.String(result))
	m.ValidationTotal.Add(ctx, 1, attrs)
	m.ValidationDuration.Record(ctx, elapsed.Seconds(), attrs)
}

// registrar creates instruments and keeps every creation error.
type registrar struct {
	meter metric.Meter
	err   error
}

func (r *registrar) seconds(name, desc string) metric.Float64Histogram {
	h, err := r.meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit("s"))
	if err != nil {
		r.err = errors.Join(r.err, fmt.Errorf("creating %s: %w", name, err))
	}
	return h
}

func (r *registrar) count(name, desc, unit string) metric.Int64Counter {
	c, err := r.meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
	if err != nil {
		r.err = errors.Join(r.err, fmt.Errorf("creating %s: %w", name, err))
	}
	return c
}
