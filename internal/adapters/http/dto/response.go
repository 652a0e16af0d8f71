// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"github.com/google/uuid"

	"github.com/jsamuelsen11/tryconstruct/internal/domain/signup"
	"github.com/jsamuelsen11/tryconstruct/internal/validation"
)

// OutcomeResponse is the body of every validation endpoint:
//
//	{"ok": true, "id": "...", "value": {...}}
//	{"ok": false, "errors": [{"field": "city", "message": "City is required"}]}
//	{"ok": false, "cancelled": true}
//
// ID is set only for a stored signup.
type OutcomeResponse struct {
	validation.Report
	ID string `json:"id,omitempty"`
}

// NewOutcomeResponse renders a signup outcome.
func NewOutcomeResponse(o validation.Outcome[signup.Signup]) OutcomeResponse {
	return OutcomeResponse{Report: validation.NewReport(o, renderSignup)}
}

// NewRegisterResponse renders a registration. id is omitted when it is the
// nil UUID.
func NewRegisterResponse(o validation.Outcome[signup.Signup], id uuid.UUID) OutcomeResponse {
	resp := NewOutcomeResponse(o)
	if id != uuid.Nil {
		resp.ID = id.String()
	}
	return resp
}

// CancelledResponse is the body for a request abandoned by its caller.
func CancelledResponse() OutcomeResponse {
	return OutcomeResponse{Report: validation.CancelledReport()}
}

// SignupResponse represents a stored signup.
type SignupResponse struct {
	ID     string      `json:"id"`
	Signup signup.View `json:"signup"`
}

// ToSignupResponse converts a stored signup to its HTTP representation.
func ToSignupResponse(id uuid.UUID, s signup.Signup) SignupResponse {
	return SignupResponse{ID: id.String(), Signup: signup.NewView(s)}
}

func renderSignup(s signup.Signup) any {
	return signup.NewView(s)
}
