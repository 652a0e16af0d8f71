package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/tryconstruct/internal/domain/signup"
)

// EmailDirectory is the read-only lookup behind the email uniqueness check.
// Implemented by the memory, redis and HTTP directory adapters; consulted by
// the user factory during validation.
type EmailDirectory interface {
	// Exists reports whether email is already registered.
	// Returns an error wrapping domain.ErrUnavailable when the directory
	// cannot answer, or the context error when ctx ends first.
	Exists(ctx context.Context, email string) (bool, error)
}

// SignupRepository stores validated signups. It accepts only signup.Signup
// values built by the signup factory, so nothing unvalidated reaches storage.
type SignupRepository interface {
	// Save stores s and returns its new ID.
	// A zero s (one the factory did not build) is rejected with
	// domain.ErrValidation.
	Save(ctx context.Context, s signup.Signup) (uuid.UUID, error)

	// Get returns a stored signup.
	// Returns domain.ErrNotFound if no signup has the ID.
	Get(ctx context.Context, id uuid.UUID) (signup.Signup, error)
}
