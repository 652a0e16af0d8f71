package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/tryconstruct/internal/domain/signup"
	"github.com/jsamuelsen11/tryconstruct/internal/validation"
)

// SignupService defines the service port for registrations.
// Implemented by the application layer; called by inbound adapters (HTTP
// handlers, CLI).
type SignupService interface {
	// Register validates rec and, when it is valid, stores the signup.
	// An invalid rec is not an error: the result carries the Invalid
	// outcome and a zero ID.
	// Returns an error wrapping validation.ErrCancelled when ctx ends first,
	// or domain.ErrUnavailable when the email directory or the repository
	// cannot answer.
	Register(ctx context.Context, rec *validation.Record) (*RegisterResult, error)

	// Validate runs the signup factory without storing anything.
	// Errors as for Register.
	Validate(ctx context.Context, rec *validation.Record) (validation.Outcome[signup.Signup], error)

	// Get returns a stored signup.
	// Returns domain.ErrNotFound if no signup has the ID.
	Get(ctx context.Context, id uuid.UUID) (signup.Signup, error)
}

// RegisterResult is the outcome of a registration. ID is set only when the
// outcome is valid.
type RegisterResult struct {
	Outcome validation.Outcome[signup.Signup]
	ID      uuid.UUID
}
