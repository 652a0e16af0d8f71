package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/tryconstruct/internal/adapters/http/dto"
	"github.com/jsamuelsen11/tryconstruct/internal/ports"
)

// SignupHandler handles HTTP requests for registrations.
type SignupHandler struct {
	svc ports.SignupService
}

// NewSignupHandler creates a new SignupHandler with the given service port.
func NewSignupHandler(svc ports.SignupService) *SignupHandler {
	return &SignupHandler{svc: svc}
}

// Register handles POST /api/v1/signups.
func (h *SignupHandler) Register(w http.ResponseWriter, r *http.Request) {
	rec := decodeRecord(w, r)
	if rec == nil {
		return
	}

	res, err := h.svc.Register(r.Context(), rec)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeOutcome(w, http.StatusCreated, dto.NewRegisterResponse(res.Outcome, res.ID))
}

// Validate handles POST /api/v1/signups/validate.
func (h *SignupHandler) Validate(w http.ResponseWriter, r *http.Request) {
	rec := decodeRecord(w, r)
	if rec == nil {
		return
	}

	out, err := h.svc.Validate(r.Context(), rec)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeOutcome(w, http.StatusOK, dto.NewOutcomeResponse(out))
}

// Get handles GET /api/v1/signups/{id}.
func (h *SignupHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	s, err := h.svc.Get(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToSignupResponse(id, s))
}
