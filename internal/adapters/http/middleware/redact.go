package middleware

import (
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/jsamuelsen11/tryconstruct/internal/platform/logging"
)

// RedactHeaders converts headers into slog attributes sorted by name, with
// the value of every header in logging.CredentialHeaders masked. Multi-value
// headers are joined with a comma.
func RedactHeaders(headers http.Header) []slog.Attr {
	keys := slices.Sorted(maps.Keys(headers))

	attrs := make([]slog.Attr, len(keys))
	for i, key := range keys {
		val := logging.Redacted
		if !slices.Contains(logging.CredentialHeaders, strings.ToLower(key)) {
			val = strings.Join(headers[key], ",")
		}
		attrs[i] = slog.String(key, val)
	}
	return attrs
}
