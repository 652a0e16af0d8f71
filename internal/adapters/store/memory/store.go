// Package memory provides an in-process signup repository that doubles as
// the email directory. It backs the local profile, the CLI and tests.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/tryconstruct/internal/domain"
	"github.com/jsamuelsen11/tryconstruct/internal/domain/signup"
	"github.com/jsamuelsen11/tryconstruct/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.SignupRepository = (*Store)(nil)
	_ ports.EmailDirectory   = (*Store)(nil)
	_ ports.HealthChecker    = (*Store)(nil)
)

// Store keeps signups in a map and tracks every registered email. Safe for
// concurrent use.
type Store struct {
	mu      sync.RWMutex
	signups map[uuid.UUID]signup.Signup
	emails  map[string]struct{}
}

// New returns a store whose directory already knows the seed emails.
func New(seed ...string) *Store {
	s := &Store{
		signups: make(map[uuid.UUID]signup.Signup),
		emails:  make(map[string]struct{}, len(seed)),
	}
	for _, e := range seed {
		s.emails[normalize(e)] = struct{}{}
	}
	return s
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Save stores sg under a new random ID and registers its email.
// Returns domain.ErrConflict when the email was registered in the meantime.
func (s *Store) Save(ctx context.Context, sg signup.Signup) (uuid.UUID, error) {
	if sg.IsZero() {
		return uuid.Nil, fmt.Errorf("%w: signup was not built by its factory", domain.ErrValidation)
	}
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}

	email := normalize(sg.User().Email())

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[email]; taken {
		return uuid.Nil, fmt.Errorf("%w: email already registered", domain.ErrConflict)
	}
	id := uuid.New()
	s.signups[id] = sg
	s.emails[email] = struct{}{}
	return id, nil
}

// Get returns a stored signup.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (signup.Signup, error) {
	if err := ctx.Err(); err != nil {
		return signup.Signup{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sg, ok := s.signups[id]
	if !ok {
		return signup.Signup{}, fmt.Errorf("signup %s: %w", id, domain.ErrNotFound)
	}
	return sg, nil
}

// Exists reports whether email is registered. Comparison ignores case.
func (s *Store) Exists(ctx context.Context, email string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.emails[normalize(email)]
	return ok, nil
}

// Len returns the number of stored signups.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.signups)
}

// Name identifies the store in health reports.
func (s *Store) Name() string {
	return "memory-store"
}

// HealthCheck always succeeds.
func (s *Store) HealthCheck(context.Context) error {
	return nil
}
