package validation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jsamuelsen11/tryconstruct/internal/domain"
	"github.com/jsamuelsen11/tryconstruct/internal/platform/fanout"
)

// State is a step of one TryCreate call. Observers see Pending, then
// Accumulating once every field has answered, then exactly one of Valid,
// Invalid, Cancelled or Failed.
type State int

// TryCreate states.
const (
	StatePending State = iota
	StateAccumulating
	StateValid
	StateInvalid
	StateCancelled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateAccumulating:
		return "accumulating"
	case StateValid:
		return "valid"
	case StateInvalid:
		return "invalid"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Observer is notified of state changes. It must not block.
type Observer func(ctx context.Context, factory string, state State)

// Option configures a Factory.
type Option func(*options)

type options struct {
	maxConcurrency int
	lookupTimeout  time.Duration
	observer       Observer
}

// WithMaxConcurrency bounds how many lookup fields run at once. Zero or less
// means no bound.
func WithMaxConcurrency(n int) Option {
	return func(o *options) { o.maxConcurrency = n }
}

// WithLookupTimeout bounds each lookup field. A field that runs out of time
// makes TryCreate fail with domain.ErrUnavailable; it is not a verdict.
func WithLookupTimeout(d time.Duration) Option {
	return func(o *options) { o.lookupTimeout = d }
}

// WithObserver registers an observer for state changes.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// identity ties keys to the builder that issued them.
type identity struct {
	name string
}

// Key is a typed handle to one declared field. Only the factory whose builder
// issued it can resolve it.
type Key[T any] struct {
	owner *identity
	index int
	name  string
}

// Name returns the field name the key was declared with.
func (k Key[T]) Name() string {
	return k.name
}

// Fields holds every validated field value of one successful TryCreate. It is
// only ever handed to a factory's construct function.
type Fields struct {
	owner  *identity
	values []any
}

// Get returns a field value. A key declared on a different builder is a
// programmer error and panics.
func Get[T any](f Fields, k Key[T]) T {
	if k.owner == nil || k.owner != f.owner {
		panic(fmt.Sprintf("validation: key %q does not belong to this factory", k.name))
	}
	return f.values[k.index].(T)
}

type fieldResult struct {
	value any
	errs  Errors
	err   error
}

type field struct {
	name     string
	embeds   bool
	embedded []string // inner field names when embeds is set
	async    bool
	run      func(ctx context.Context, rec *Record) fieldResult
}

// Builder declares the fields of a factory in order. Declaration order is
// the order errors are reported in.
type Builder[T any] struct {
	id     *identity
	fields []field
	built  bool
}

// NewBuilder starts a factory declaration. name identifies the factory in
// observers and error messages.
func NewBuilder[T any](name string) *Builder[T] {
	return &Builder[T]{id: &identity{name: name}}
}

func (b *Builder[T]) declare(f field) int {
	if b.built {
		panic(fmt.Sprintf("validation: field %q declared after Build on %q", f.name, b.id.name))
	}
	b.fields = append(b.fields, f)
	return len(b.fields) - 1
}

// Required declares a field that must be present and non-null. Absence is
// reported as KindMissing "<Label> is required".
func Required[T, U any](b *Builder[T], name string, v Validator[U]) Key[U] {
	idx := b.declare(field{
		name:  name,
		async: v.async,
		run: func(ctx context.Context, rec *Record) fieldResult {
			in, ok := rec.Get(name)
			if !ok || in.IsNull() {
				return fieldResult{errs: Errors{{
					Path:    []string{name},
					Kind:    KindMissing,
					Message: Label(name) + " is required",
				}}}
			}
			return runField(ctx, name, v, in, func(u U) any { return u })
		},
	})
	return Key[U]{owner: b.id, index: idx, name: name}
}

// Optional declares a field that may be absent or null, in which case its
// value is nil.
func Optional[T, U any](b *Builder[T], name string, v Validator[U]) Key[*U] {
	idx := b.declare(field{
		name:  name,
		async: v.async,
		run: func(ctx context.Context, rec *Record) fieldResult {
			in, ok := rec.Get(name)
			if !ok || in.IsNull() {
				return fieldResult{value: (*U)(nil)}
			}
			return runField(ctx, name, v, in, func(u U) any { return &u })
		},
	})
	return Key[*U]{owner: b.id, index: idx, name: name}
}

func runField[U any](ctx context.Context, name string, v Validator[U], in Value, wrap func(U) any) fieldResult {
	out, err := v.Validate(ctx, in)
	if err != nil {
		return fieldResult{err: err}
	}
	if u, ok := out.Value(); ok {
		return fieldResult{value: wrap(u)}
	}
	return fieldResult{errs: subject(name, out.errs)}
}

// Embed runs another factory against the same record, without any prefix.
// Use it for flat input that carries several values side by side. Inner
// errors keep their paths and kinds.
func Embed[T, U any](b *Builder[T], inner *Factory[U]) Key[U] {
	idx := b.declare(field{
		name:     inner.name,
		embeds:   true,
		embedded: inner.FieldNames(),
		async:    inner.async,
		run: func(ctx context.Context, rec *Record) fieldResult {
			out, err := inner.TryCreate(ctx, rec)
			if err != nil {
				return fieldResult{err: err}
			}
			if u, ok := out.Value(); ok {
				return fieldResult{value: u}
			}
			return fieldResult{errs: out.errs}
		},
	})
	return Key[U]{owner: b.id, index: idx, name: inner.name}
}

// Build finishes the declaration. construct receives the validated fields and
// is only called when every field is valid. Duplicate or empty field names
// and a nil construct are programmer errors and panic.
func (b *Builder[T]) Build(construct func(Fields) T, opts ...Option) *Factory[T] {
	if construct == nil {
		panic(fmt.Sprintf("validation: nil construct for %q", b.id.name))
	}
	seen := make(map[string]bool)
	claim := func(name string) {
		if name == "" {
			panic(fmt.Sprintf("validation: empty field name in %q", b.id.name))
		}
		if seen[name] {
			panic(fmt.Sprintf("validation: duplicate field %q in %q", name, b.id.name))
		}
		seen[name] = true
	}

	f := &Factory[T]{
		name:      b.id.name,
		id:        b.id,
		fields:    b.fields,
		construct: construct,
	}
	for _, fd := range b.fields {
		if fd.embeds {
			for _, name := range fd.embedded {
				claim(name)
			}
		} else {
			claim(fd.name)
		}
		f.async = f.async || fd.async
	}
	for _, opt := range opts {
		opt(&f.opts)
	}
	b.built = true
	return f
}

// Factory is the only way to obtain a T from raw input.
type Factory[T any] struct {
	name      string
	id        *identity
	fields    []field
	construct func(Fields) T
	opts      options
	async     bool
}

// Name returns the factory name.
func (f *Factory[T]) Name() string {
	return f.name
}

// FieldNames returns the record keys the factory reads, in declaration order.
// Embedded factories contribute their own keys.
func (f *Factory[T]) FieldNames() []string {
	var names []string
	for _, fd := range f.fields {
		if fd.embeds {
			names = append(names, fd.embedded...)
			continue
		}
		names = append(names, fd.name)
	}
	return names
}

// Async reports whether any field performs a lookup.
func (f *Factory[T]) Async() bool {
	return f.async
}

// TryCreate validates rec and, if every field is valid, constructs a T.
//
// All fields are checked; errors are reported in declaration order
// regardless of which lookup finished first. Pure fields run inline; lookup
// fields run concurrently, bounded by WithMaxConcurrency.
//
// The returned error is non-nil only when no verdict could be reached: it
// wraps ErrCancelled when ctx ended first, or domain.ErrUnavailable when a
// lookup could not answer. In both cases the outcome is the zero Outcome.
//
// A nil record is a programmer error and panics.
func (f *Factory[T]) TryCreate(ctx context.Context, rec *Record) (Outcome[T], error) {
	if rec == nil {
		panic(fmt.Sprintf("validation: nil record passed to %q", f.name))
	}

	f.observe(ctx, StatePending)
	if err := ctx.Err(); err != nil {
		f.observe(ctx, StateCancelled)
		return Outcome[T]{}, cancelled(err)
	}

	results := make([]fieldResult, len(f.fields))
	var lookups []int
	for i, fd := range f.fields {
		if fd.async {
			lookups = append(lookups, i)
			continue
		}
		results[i] = fd.run(ctx, rec)
	}
	if len(lookups) > 0 {
		joined := fanout.Run(ctx, f.opts.maxConcurrency, lookups, func(ctx context.Context, i int) (fieldResult, error) {
			return f.runLookup(ctx, f.fields[i], rec), nil
		})
		for n, r := range joined {
			if r.Err != nil {
				results[lookups[n]] = fieldResult{err: r.Err}
				continue
			}
			results[lookups[n]] = r.Value
		}
	}

	f.observe(ctx, StateAccumulating)
	if err := ctx.Err(); err != nil {
		f.observe(ctx, StateCancelled)
		return Outcome[T]{}, cancelled(err)
	}

	var acc Accumulator
	values := make([]any, len(f.fields))
	for i, r := range results {
		if r.err != nil {
			f.observe(ctx, StateFailed)
			return Outcome[T]{}, f.unavailable(f.fields[i].name, r.err)
		}
		acc.Add(r.errs...)
		values[i] = r.value
	}

	out := Finish(&acc, func() T {
		return f.construct(Fields{owner: f.id, values: values})
	})
	if out.valid {
		f.observe(ctx, StateValid)
	} else {
		f.observe(ctx, StateInvalid)
	}
	return out, nil
}

func (f *Factory[T]) runLookup(ctx context.Context, fd field, rec *Record) fieldResult {
	if f.opts.lookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.opts.lookupTimeout)
		defer cancel()
	}
	return fd.run(ctx, rec)
}

// unavailable classifies a field error seen while the caller's context is
// still live: a lookup that ran out of its own time budget, or a
// collaborator that failed outright.
func (f *Factory[T]) unavailable(name string, err error) error {
	if errors.Is(err, domain.ErrUnavailable) {
		return err
	}
	if errors.Is(err, ErrCancelled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s.%s lookup timed out", domain.ErrUnavailable, f.name, name)
	}
	return fmt.Errorf("%w: %s.%s lookup: %w", domain.ErrUnavailable, f.name, name, err)
}

func (f *Factory[T]) observe(ctx context.Context, s State) {
	if f.opts.observer != nil {
		f.opts.observer(ctx, f.name, s)
	}
}

func cancelled(cause error) error {
	return fmt.Errorf("%w: %w", ErrCancelled, cause)
}
