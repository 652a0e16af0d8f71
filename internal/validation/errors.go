package validation

import (
	"errors"
	"slices"
	"strings"

	"github.com/jsamuelsen11/tryconstruct/internal/domain"
)

// Non-verdict errors. Neither is ever reported as an Invalid outcome.
var (
	// ErrCancelled is returned by TryCreate when the caller's context ends
	// before all field outcomes are joined. It wraps the context error.
	ErrCancelled = errors.New("validation cancelled")

	// ErrShape is returned by the input decoders when the top-level input is
	// not a record (or cannot be parsed at all).
	ErrShape = errors.New("input is not a record")
)

// Kind classifies a validation failure.
type Kind int

// Failure kinds.
const (
	KindMissing Kind = iota + 1
	KindFormat
	KindRange
	KindReferential
	KindComposition
	KindTypeMismatch
)

var kindNames = map[Kind]string{
	KindMissing:      "missing_field",
	KindFormat:       "format",
	KindRange:        "range",
	KindReferential:  "referential",
	KindComposition:  "composition",
	KindTypeMismatch: "type_mismatch",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Error is a single field-level failure. Path is relative to whatever
// validated it: empty while a field validator is running, the full dotted
// location once the factory has prefixed it.
//
// Cause carries the original kind of an error that was re-tagged as
// KindComposition while bubbling out of a nested factory; it is zero
// otherwise.
type Error struct {
	Path    []string
	Kind    Kind
	Cause   Kind
	Message string
}

// Field renders the path in dot notation ("shipping.city", "tags.1").
func (e Error) Field() string {
	return strings.Join(e.Path, ".")
}

func (e Error) Error() string {
	if len(e.Path) == 0 {
		return e.Message
	}
	return e.Field() + ": " + e.Message
}

// prefixed returns a copy of e with segment prepended to its path.
func (e Error) prefixed(segment string) Error {
	path := make([]string, 0, len(e.Path)+1)
	path = append(path, segment)
	path = append(path, e.Path...)
	e.Path = path
	return e
}

// Errors is an ordered list of failures. The order is the declaration order
// of the fields that produced them and never depends on timing.
type Errors []Error

func (es Errors) Error() string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.Error()
	}
	return domain.ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is(err, domain.ErrValidation) match.
func (es Errors) Unwrap() error {
	return domain.ErrValidation
}

// Has reports whether any error sits at the given dotted field.
func (es Errors) Has(field string) bool {
	return slices.ContainsFunc(es, func(e Error) bool { return e.Field() == field })
}

// Get returns the errors recorded for the given dotted field, in order.
func (es Errors) Get(field string) Errors {
	var out Errors
	for _, e := range es {
		if e.Field() == field {
			out = append(out, e)
		}
	}
	return out
}

// Fields returns the distinct dotted fields that have errors, in first-seen
// order.
func (es Errors) Fields() []string {
	seen := make(map[string]bool, len(es))
	var out []string
	for _, e := range es {
		f := e.Field()
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

// Prefix returns a copy of es with segment prepended to every path.
func (es Errors) Prefix(segment string) Errors {
	out := make(Errors, len(es))
	for i, e := range es {
		out[i] = e.prefixed(segment)
	}
	return out
}

// Messages returns the messages in order. Handy for logs and the CLI.
func (es Errors) Messages() []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Message
	}
	return out
}
