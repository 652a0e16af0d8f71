package dto

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/tryconstruct/internal/domain"
	"github.com/jsamuelsen11/tryconstruct/internal/validation"
)

// StatusClientClosedRequest is the non-standard status for a request whose
// caller went away before an answer was ready.
const StatusClientClosedRequest = 499

const problemContentType = "application/problem+json"

// Errors raised by the HTTP layer itself.
var (
	ErrTimeout          = errors.New("request timed out")
	ErrRouteNotFound    = errors.New("no such route")
	ErrMethodNotAllowed = errors.New("method not allowed on this route")
)

// ErrorResponse is an RFC 9457 problem document. Errors lists field
// failures in the order they were found.
type ErrorResponse struct {
	Type     string        `json:"type"`
	Title    string        `json:"title"`
	Status   int           `json:"status"`
	Detail   string        `json:"detail,omitempty"`
	Instance string        `json:"instance,omitempty"`
	Errors   []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail is one field failure. Location is the dotted field path under
// "body."; Cause is set when a nested failure was re-tagged as composition.
type ErrorDetail struct {
	Location string `json:"location"`
	Message  string `json:"message"`
	Kind     string `json:"kind,omitempty"`
	Cause    string `json:"cause,omitempty"`
}

// statuses is checked in order; the first sentinel err wraps decides.
var statuses = []struct {
	target error
	status int
}{
	{validation.ErrCancelled, StatusClientClosedRequest},
	{ErrTimeout, http.StatusGatewayTimeout},
	{ErrRouteNotFound, http.StatusNotFound},
	{ErrMethodNotAllowed, http.StatusMethodNotAllowed},
	{validation.ErrShape, http.StatusBadRequest},
	{domain.ErrValidation, http.StatusBadRequest},
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrConflict, http.StatusConflict},
	{domain.ErrUnavailable, http.StatusBadGateway},
}

// StatusFor returns the HTTP status for err, 500 when nothing matches.
func StatusFor(err error) int {
	for _, s := range statuses {
		if errors.Is(err, s.target) {
			return s.status
		}
	}
	return http.StatusInternalServerError
}

// NewErrorResponse describes err as a problem document for r.
func NewErrorResponse(r *http.Request, err error) ErrorResponse {
	status := StatusFor(err)
	resp := ErrorResponse{
		Type:     "about:blank",
		Title:    statusTitle(status),
		Status:   status,
		Detail:   err.Error(),
		Instance: r.RequestURI,
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		resp.Errors = make([]ErrorDetail, 0, len(verrs))
		for _, e := range verrs {
			resp.Errors = append(resp.Errors, detailOf(e))
		}
	}
	return resp
}

// WriteErrorResponse writes err as application/problem+json.
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	resp := NewErrorResponse(r, err)

	w.Header().Set("Content-Type", problemContentType)
	w.WriteHeader(resp.Status)
	if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
		slog.ErrorContext(r.Context(), "writing problem response failed",
			slog.Int("status", resp.Status),
			slog.Any("error", encErr),
		)
	}
}

func statusTitle(status int) string {
	if status == StatusClientClosedRequest {
		return "Client Closed Request"
	}
	return http.StatusText(status)
}

func detailOf(e validation.Error) ErrorDetail {
	d := ErrorDetail{
		Location: "body." + e.Field(),
		Message:  e.Message,
		Kind:     e.Kind.String(),
	}
	if e.Cause != 0 {
		d.Cause = e.Cause.String()
	}
	return d
}
