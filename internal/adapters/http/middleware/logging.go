package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/tryconstruct/internal/adapters/http/dto"
	"github.com/jsamuelsen11/tryconstruct/internal/platform/logging"
)

// Logging stores a logger carrying the request and correlation IDs in the
// request context, then logs the request once on arrival and once on
// completion. Headers are logged, redacted, at debug level only.
//
// The completion line is an error for 5xx, a warning when the caller went
// away (499) and info otherwise; an invalid signup (422) is a normal answer.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()

			reqLogger := logger.With(
				slog.String("request_id", RequestIDFromContext(ctx)),
				slog.String("correlation_id", CorrelationIDFromContext(ctx)),
			)
			ctx = logging.WithLogger(ctx, reqLogger)
			request := slog.Group("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)

			reqLogger.LogAttrs(ctx, slog.LevelInfo, "request started", request)
			if reqLogger.Enabled(ctx, slog.LevelDebug) {
				reqLogger.LogAttrs(ctx, slog.LevelDebug, "request headers", RedactHeaders(r.Header)...)
			}

			rw := record(w)
			next.ServeHTTP(rw, r.WithContext(ctx))

			attrs := []slog.Attr{
				request,
				slog.Int("status", rw.status()),
				slog.Int64("bytes", rw.bytes),
				slog.Duration("duration", time.Since(start)),
			}
			if rc := chi.RouteContext(ctx); rc != nil && rc.RoutePattern() != "" {
				attrs = append(attrs, slog.String("route", rc.RoutePattern()))
			}
			reqLogger.LogAttrs(ctx, completionLevel(rw.status()), "request completed", attrs...)
		})
	}
}

func completionLevel(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status == dto.StatusClientClosedRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
