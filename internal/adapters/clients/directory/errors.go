package directory

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/buger/jsonparser"

	"github.com/jsamuelsen11/tryconstruct/internal/domain"
)

// maxErrorBody caps how much of an error body is read.
const maxErrorBody = 64 << 10

// statusErrors maps directory answers to domain errors. 429 and 5xx are
// handled separately as ErrUnavailable.
var statusErrors = map[int]error{
	http.StatusBadRequest:          domain.ErrValidation,
	http.StatusUnprocessableEntity: domain.ErrValidation,
	http.StatusUnauthorized:        domain.ErrForbidden,
	http.StatusForbidden:           domain.ErrForbidden,
	http.StatusNotFound:            domain.ErrNotFound,
	http.StatusConflict:            domain.ErrConflict,
}

// TranslateHTTPError turns a non-200 directory response into a domain error.
// The message is the problem body's detail, or the field errors it lists,
// or else the status text.
func TranslateHTTPError(resp *http.Response) error {
	detail := problemMessage(resp)
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%s: %w", detail, domain.ErrUnavailable)
	}
	if sentinel, ok := statusErrors[resp.StatusCode]; ok {
		return fmt.Errorf("%s: %w", detail, sentinel)
	}
	return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, detail)
}

// problemMessage reads an RFC 7807 body. Field errors, rendered as
// "field: message; ...", win over the top-level detail.
func problemMessage(resp *http.Response) string {
	if resp.Body == nil || !strings.Contains(resp.Header.Get("Content-Type"), "json") {
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return ""
	}

	var fields []string
	_, _ = jsonparser.ArrayEach(body, func(item []byte, _ jsonparser.ValueType, _ int, _ error) {
		loc, _ := jsonparser.GetString(item, "location")
		msg, _ := jsonparser.GetString(item, "message")
		if msg != "" {
			fields = append(fields, strings.TrimPrefix(loc, "query.")+": "+msg)
		}
	}, "errors")
	if len(fields) > 0 {
		return strings.Join(fields, "; ")
	}

	detail, _ := jsonparser.GetString(body, "detail")
	return detail
}
