package validation

import "context"

// Validator turns one raw Value into an Outcome[T]. Errors it reports have
// paths relative to the value it was given; an empty path means the value
// itself.
//
// A validator is either pure (no I/O, never blocks, never returns a Go error)
// or a lookup (may consult a read-only collaborator, honours ctx, and may
// return a non-verdict error such as an unavailable store). Factories run
// pure fields inline and lookup fields concurrently.
type Validator[T any] struct {
	run   func(ctx context.Context, in Value) (Outcome[T], error)
	async bool
}

// Pure builds a synchronous validator.
func Pure[T any](fn func(in Value) Outcome[T]) Validator[T] {
	return Validator[T]{
		run: func(_ context.Context, in Value) (Outcome[T], error) {
			return fn(in), nil
		},
	}
}

// Lookup builds a validator that may block on a collaborator. Expected
// rejections (unknown reference, taken name) are Invalid outcomes; only
// failures to get an answer at all are returned as errors.
func Lookup[T any](fn func(ctx context.Context, in Value) (Outcome[T], error)) Validator[T] {
	return Validator[T]{run: fn, async: true}
}

// Validate runs the validator.
func (v Validator[T]) Validate(ctx context.Context, in Value) (Outcome[T], error) {
	if v.run == nil {
		panic("validation: zero Validator used")
	}
	return v.run(ctx, in)
}

// Async reports whether the validator may block.
func (v Validator[T]) Async() bool {
	return v.async
}
