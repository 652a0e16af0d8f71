package validation

import (
	"context"
	"strconv"

	"github.com/jsamuelsen11/tryconstruct/internal/platform/fanout"
)

// sequenceWorkers bounds how many list elements a lookup element validator
// checks at once.
const sequenceWorkers = 8

// Map transforms the value of a valid outcome. Invalid outcomes pass through.
func Map[A, B any](v Validator[A], f func(A) B) Validator[B] {
	return Validator[B]{
		async: v.async,
		run: func(ctx context.Context, in Value) (Outcome[B], error) {
			out, err := v.Validate(ctx, in)
			if err != nil {
				return Outcome[B]{}, err
			}
			return MapOutcome(out, f), nil
		},
	}
}

// And runs both validators on the same value. The result is valid only when
// both are; otherwise it carries the errors of v1 followed by those of v2.
func And[A, B, C any](v1 Validator[A], v2 Validator[B], combine func(A, B) C) Validator[C] {
	return Validator[C]{
		async: v1.async || v2.async,
		run: func(ctx context.Context, in Value) (Outcome[C], error) {
			o1, err := v1.Validate(ctx, in)
			if err != nil {
				return Outcome[C]{}, err
			}
			o2, err := v2.Validate(ctx, in)
			if err != nil {
				return Outcome[C]{}, err
			}

			var acc Accumulator
			acc.Add(o1.errs...)
			acc.Add(o2.errs...)
			return Finish(&acc, func() C { return combine(o1.value, o2.value) }), nil
		},
	}
}

// Then refines a valid value with a further step that may block, such as a
// uniqueness lookup. It is fail-fast: next only runs when v succeeded, since
// there is nothing to look up otherwise.
func Then[A, B any](v Validator[A], next func(ctx context.Context, a A) (Outcome[B], error)) Validator[B] {
	return Validator[B]{
		async: true,
		run: func(ctx context.Context, in Value) (Outcome[B], error) {
			out, err := v.Validate(ctx, in)
			if err != nil {
				return Outcome[B]{}, err
			}
			a, ok := out.Value()
			if !ok {
				return Outcome[B]{errs: out.errs}, nil
			}
			return next(ctx, a)
		},
	}
}

// Rule is a single predicate over an already-typed value.
type Rule[T any] struct {
	kind    Kind
	message string
	ok      func(T) bool
}

// Check builds a rule. message is a predicate ("must be positive"); the
// factory prepends the field label.
func Check[T any](kind Kind, message string, ok func(T) bool) Rule[T] {
	return Rule[T]{kind: kind, message: message, ok: ok}
}

// All runs v and, when it succeeds, every rule against its value. Rule
// failures accumulate instead of stopping at the first.
func All[T any](v Validator[T], rules ...Rule[T]) Validator[T] {
	return Validator[T]{
		async: v.async,
		run: func(ctx context.Context, in Value) (Outcome[T], error) {
			out, err := v.Validate(ctx, in)
			if err != nil || !out.valid {
				return out, err
			}
			var acc Accumulator
			for _, r := range rules {
				if !r.ok(out.value) {
					acc.Add(Error{Kind: r.kind, Message: r.message})
				}
			}
			return Finish(&acc, func() T { return out.value }), nil
		},
	}
}

// Sequence validates every element of a list independently. Element errors
// are prefixed with the element index; the list is valid only if every
// element is. Lookup elements run concurrently and are reported in index
// order.
func Sequence[T any](elem Validator[T]) Validator[[]T] {
	return Validator[[]T]{
		async: elem.async,
		run: func(ctx context.Context, in Value) (Outcome[[]T], error) {
			items, ok := in.AsList()
			if !ok && in.formScalar {
				items, ok = []Value{in}, true
			}
			if !ok {
				return Invalid[[]T](Error{Kind: KindTypeMismatch, Message: "must be a list"}), nil
			}

			outs := make([]Outcome[T], len(items))
			if elem.async {
				for i, r := range fanout.Run(ctx, sequenceWorkers, items, elem.Validate) {
					if r.Err != nil {
						return Outcome[[]T]{}, r.Err
					}
					outs[i] = r.Value
				}
			} else {
				for i, item := range items {
					out, err := elem.Validate(ctx, item)
					if err != nil {
						return Outcome[[]T]{}, err
					}
					outs[i] = out
				}
			}

			var acc Accumulator
			values := make([]T, 0, len(items))
			for i, out := range outs {
				if v, ok := out.Value(); ok {
					values = append(values, v)
					continue
				}
				acc.Add(itemErrors(i, out.errs)...)
			}
			return Finish(&acc, func() []T { return values }), nil
		},
	}
}

// itemErrors places element errors under the element index. Errors about the
// element itself get "Item N" as their subject.
func itemErrors(i int, errs Errors) Errors {
	idx := strconv.Itoa(i)
	out := make(Errors, len(errs))
	for n, e := range errs {
		if len(e.Path) == 0 {
			e.Message = "Item " + idx + " " + e.Message
		}
		out[n] = e.prefixed(idx)
	}
	return out
}

// Nested validates a nested record with another factory. Its errors are
// marked KindComposition, keeping the original kind in Cause; the enclosing
// factory prefixes them with the field name.
func Nested[T any](inner *Factory[T]) Validator[T] {
	return Validator[T]{
		async: inner.async,
		run: func(ctx context.Context, in Value) (Outcome[T], error) {
			rec, ok := in.AsRecord()
			if !ok {
				return Invalid[T](Error{Kind: KindTypeMismatch, Message: "must be an object"}), nil
			}
			out, err := inner.TryCreate(ctx, rec)
			if err != nil || out.valid {
				return out, err
			}

			errs := make(Errors, len(out.errs))
			for i, e := range out.errs {
				if e.Kind != KindComposition {
					e.Cause = e.Kind
					e.Kind = KindComposition
				}
				errs[i] = e
			}
			return Invalid[T](errs...), nil
		},
	}
}
