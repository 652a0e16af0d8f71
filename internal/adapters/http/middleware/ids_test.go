package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/tryconstruct/internal/adapters/http/middleware"
)

type seenIDs struct {
	request, correlation string
}

// serveIDs runs RequestID then CorrelationID over a request carrying hdr.
func serveIDs(t *testing.T, hdr http.Header) (seenIDs, http.Header) {
	t.Helper()

	var seen seenIDs
	h := middleware.RequestID()(middleware.CorrelationID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = seenIDs{
			request:     middleware.RequestIDFromContext(r.Context()),
			correlation: middleware.CorrelationIDFromContext(r.Context()),
		}
	})))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/signups", http.NoBody)
	for k, v := range hdr {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return seen, rec.Header()
}

func TestIDs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		hdr             http.Header
		wantRequest     string // "" means a generated UUID
		wantCorrelation string // "" means equal to the request ID
	}{
		{name: "both generated"},
		{name: "request id reused", hdr: http.Header{"X-Request-Id": {"req-123"}}, wantRequest: "req-123"},
		{
			name:            "correlation id reused",
			hdr:             http.Header{"X-Request-Id": {"req-1"}, "X-Correlation-Id": {"corr-9"}},
			wantRequest:     "req-1",
			wantCorrelation: "corr-9",
		},
		{name: "request id too long", hdr: http.Header{"X-Request-Id": {strings.Repeat("a", 129)}}},
		{name: "request id with space", hdr: http.Header{"X-Request-Id": {"two words"}}},
		{name: "request id with control byte", hdr: http.Header{"X-Request-Id": {"id\x00"}}},
		{
			name:        "unusable correlation id falls back",
			hdr:         http.Header{"X-Request-Id": {"req-2"}, "X-Correlation-Id": {"bad\tid"}},
			wantRequest: "req-2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			seen, resp := serveIDs(t, tt.hdr)

			if tt.wantRequest == "" {
				if _, err := uuid.Parse(seen.request); err != nil {
					t.Errorf("request ID = %q, want a generated UUID", seen.request)
				}
			} else if seen.request != tt.wantRequest {
				t.Errorf("request ID = %q, want %q", seen.request, tt.wantRequest)
			}

			wantCorr := tt.wantCorrelation
			if wantCorr == "" {
				wantCorr = seen.request
			}
			if seen.correlation != wantCorr {
				t.Errorf("correlation ID = %q, want %q", seen.correlation, wantCorr)
			}

			if got := resp.Get("X-Request-ID"); got != seen.request {
				t.Errorf("response X-Request-ID = %q, want %q", got, seen.request)
			}
			if got := resp.Get("X-Correlation-ID"); got != seen.correlation {
				t.Errorf("response X-Correlation-ID = %q, want %q", got, seen.correlation)
			}
		})
	}
}

func TestRequestID_Unique(t *testing.T) {
	t.Parallel()

	ids := make(map[string]struct{})
	for range 50 {
		seen, _ := serveIDs(t, nil)
		ids[seen.request] = struct{}{}
	}
	if len(ids) != 50 {
		t.Errorf("unique IDs = %d, want 50", len(ids))
	}
}

func TestIDsFromContext_Empty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if got := middleware.RequestIDFromContext(ctx); got != "" {
		t.Errorf("RequestIDFromContext() = %q, want empty", got)
	}
	if got := middleware.CorrelationIDFromContext(ctx); got != "" {
		t.Errorf("CorrelationIDFromContext() = %q, want empty", got)
	}

	ctx = middleware.WithCorrelationID(middleware.WithRequestID(ctx, "r"), "c")
	if middleware.RequestIDFromContext(ctx) != "r" || middleware.CorrelationIDFromContext(ctx) != "c" {
		t.Error("With*ID() values not readable from context")
	}
}
