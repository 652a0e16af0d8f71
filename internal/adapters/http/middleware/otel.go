package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/tryconstruct/internal/adapters/http/dto"
	"github.com/jsamuelsen11/tryconstruct/internal/platform/telemetry"
)

const serverTracerName = "github.com/jsamuelsen11/tryconstruct/internal/adapters/http/middleware"

// OpenTelemetry continues the caller's W3C trace, opens a server span per
// request and, when metrics is non-nil, records the request count and
// duration.
//
// Spans and metric series are named by the chi route pattern once routing
// has run, so /api/v1/signups/{id} is one series however many IDs are
// requested. Outside a chi router the raw path is used.
func OpenTelemetry(metrics *telemetry.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := otel.Tracer(serverTracerName).Start(ctx, "HTTP "+r.Method,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", r.Method),
					attribute.String("url.path", r.URL.Path),
					attribute.String("request.id", RequestIDFromContext(ctx)),
					attribute.String("correlation.id", CorrelationIDFromContext(ctx)),
				),
			)
			defer span.End()

			rw := record(w)
			next.ServeHTTP(rw, r.WithContext(ctx))

			status := rw.status()
			route := r.URL.Path
			if rc := chi.RouteContext(ctx); rc != nil {
				route = rc.RoutePattern()
			}
			if route != "" {
				span.SetName("HTTP " + r.Method + " " + route)
				span.SetAttributes(telemetry.AttrHTTPRoute.String(route))
			}
			span.SetAttributes(attribute.Int("http.response.status_code", status))
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}

			if metrics == nil {
				return
			}
			attrs := metric.WithAttributes(
				telemetry.AttrHTTPMethod.String(r.Method),
				telemetry.AttrHTTPRoute.String(route),
				telemetry.AttrHTTPStatus.Int(status),
				telemetry.AttrResult.String(serverResult(status)),
			)
			metrics.ServerRequestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
			metrics.ServerRequestTotal.Add(ctx, 1, attrs)
		})
	}
}

// serverResult labels a response status: the validation outcomes get their
// own values so dashboards can tell a rejected signup from a failure.
func serverResult(status int) string {
	switch {
	case status == http.StatusUnprocessableEntity:
		return telemetry.ResultInvalid
	case status == dto.StatusClientClosedRequest:
		return telemetry.ResultCancelled
	case status == http.StatusBadGateway:
		return telemetry.ResultUnavailable
	case status >= http.StatusBadRequest:
		return "error"
	default:
		return "success"
	}
}
