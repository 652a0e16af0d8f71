package validation

import "slices"

// Outcome is the result of validating raw input into a T. It is either Valid,
// carrying the value, or Invalid, carrying at least one Error. The only way
// to build one is through Valid and Invalid.
//
// The zero Outcome is neither; it is only ever returned next to a non-nil
// error (ErrCancelled, an unavailable collaborator) and must not be read.
type Outcome[T any] struct {
	value T
	errs  Errors
	valid bool
}

// Valid wraps a successfully validated value.
func Valid[T any](v T) Outcome[T] {
	return Outcome[T]{value: v, valid: true}
}

// Invalid builds a failed outcome. Calling it with no errors is a programmer
// error and panics.
func Invalid[T any](errs ...Error) Outcome[T] {
	if len(errs) == 0 {
		panic("validation: Invalid called with no errors")
	}
	return Outcome[T]{errs: slices.Clone(errs)}
}

// IsValid reports whether the outcome carries a value.
func (o Outcome[T]) IsValid() bool {
	return o.valid
}

// Value returns the validated value and true, or the zero value and false.
func (o Outcome[T]) Value() (T, bool) {
	return o.value, o.valid
}

// Errors returns a copy of the failures, or nil for a valid outcome.
func (o Outcome[T]) Errors() Errors {
	return slices.Clone(o.errs)
}

// Err returns the failures as an error (unwrapping to domain.ErrValidation),
// or nil when the outcome is valid. It is the error-returning view of the
// same outcome: same errors, same order.
func (o Outcome[T]) Err() error {
	if o.valid || len(o.errs) == 0 {
		return nil
	}
	return o.Errors()
}

// MapOutcome transforms the value of a valid outcome and passes an invalid one
// through unchanged.
func MapOutcome[A, B any](o Outcome[A], f func(A) B) Outcome[B] {
	if !o.valid {
		return Outcome[B]{errs: o.errs}
	}
	return Valid(f(o.value))
}
