package middleware_test

import (
	"net/http"
	"testing"

	"github.com/jsamuelsen11/tryconstruct/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/tryconstruct/internal/platform/logging"
)

const redactedValue = logging.Redacted

func TestRedactHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers http.Header
		want    map[string]string
	}{
		{
			name:    "authorization",
			headers: http.Header{"Authorization": {"Bearer secret-token"}},
			want:    map[string]string{"Authorization": redactedValue},
		},
		{
			name:    "proxy authorization",
			headers: http.Header{"Proxy-Authorization": {"Basic Zm9vOmJhcg=="}},
			want:    map[string]string{"Proxy-Authorization": redactedValue},
		},
		{
			name:    "api key",
			headers: http.Header{"X-Api-Key": {"my-api-key-value"}},
			want:    map[string]string{"X-Api-Key": redactedValue},
		},
		{
			name:    "cookie",
			headers: http.Header{"Cookie": {"session=abc123"}},
			want:    map[string]string{"Cookie": redactedValue},
		},
		{
			name:    "non-sensitive passes through",
			headers: http.Header{"Content-Type": {"application/json"}, "Accept": {"application/json"}},
			want:    map[string]string{"Content-Type": "application/json", "Accept": "application/json"},
		},
		{
			name:    "multi-value joined",
			headers: http.Header{"Accept": {"text/html", "application/json"}},
			want:    map[string]string{"Accept": "text/html,application/json"},
		},
		{
			name:    "empty",
			headers: http.Header{},
			want:    map[string]string{},
		},
		{
			name:    "mixed",
			headers: http.Header{"Authorization": {"Bearer secret"}, "Content-Type": {"application/json"}},
			want:    map[string]string{"Authorization": redactedValue, "Content-Type": "application/json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			attrs := middleware.RedactHeaders(tt.headers)
			if len(attrs) != len(tt.want) {
				t.Fatalf("len(attrs) = %d, want %d", len(attrs), len(tt.want))
			}
			for _, a := range attrs {
				if want, ok := tt.want[a.Key]; !ok || a.Value.String() != want {
					t.Errorf("%s = %q, want %q", a.Key, a.Value.String(), want)
				}
			}
		})
	}
}

func TestRedactHeaders_SortedByName(t *testing.T) {
	t.Parallel()

	attrs := middleware.RedactHeaders(http.Header{
		"X-Request-Id": {"1"},
		"Accept":       {"*/*"},
		"Content-Type": {"application/json"},
	})

	want := []string{"Accept", "Content-Type", "X-Request-Id"}
	for i, a := range attrs {
		if a.Key != want[i] {
			t.Errorf("attrs[%d].Key = %q, want %q", i, a.Key, want[i])
		}
	}
}
