package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jsamuelsen11/tryconstruct/internal/adapters/http/dto"
	"github.com/jsamuelsen11/tryconstruct/internal/validation"
)

// parseID extracts a UUID path parameter from the chi URL params.
func parseID(r *http.Request, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, validation.Errors{{
			Path:    []string{param},
			Kind:    validation.KindFormat,
			Message: "must be a valid UUID",
		}}
	}
	return id, nil
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

// writeOutcome writes a validation result: 200 (or okStatus) when valid, 422
// when invalid.
func writeOutcome(w http.ResponseWriter, okStatus int, resp dto.OutcomeResponse) {
	if !resp.OK {
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}
	writeJSON(w, okStatus, resp)
}

// writeServiceError writes the response for an error returned by the service.
// A cancelled call still gets the cancelled report as its body.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, validation.ErrCancelled) {
		writeJSON(w, dto.StatusClientClosedRequest, dto.CancelledResponse())
		return
	}
	dto.WriteErrorResponse(w, r, err)
}

// decodeRecord reads the request body. On failure it writes the error
// response and returns nil.
func decodeRecord(w http.ResponseWriter, r *http.Request) *validation.Record {
	rec, err := dto.DecodeRecord(w, r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return nil
	}
	return rec
}
