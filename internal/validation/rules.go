package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Parsers turn a raw Value into a Go type. Form input arrives as strings, so
// the numeric and boolean parsers accept a string spelling too.

// Text accepts a string.
func Text() Validator[string] {
	return Pure(func(in Value) Outcome[string] {
		s, ok := in.AsString()
		if !ok {
			return Invalid[string](mismatch("must be a string"))
		}
		return Valid(s)
	})
}

// Int accepts a whole number, or a string spelling one.
func Int() Validator[int64] {
	return Pure(func(in Value) Outcome[int64] {
		var (
			n   int64
			err error
		)
		switch in.Shape() {
		case ShapeNumber:
			num, _ := in.AsNumber()
			n, err = num.Int64()
		case ShapeString:
			s, _ := in.AsString()
			n, err = strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		default:
			return Invalid[int64](mismatch("must be a number"))
		}
		if err != nil {
			return Invalid[int64](Error{Kind: KindFormat, Message: "must be a whole number"})
		}
		return Valid(n)
	})
}

// Float accepts any number, or a string spelling one.
func Float() Validator[float64] {
	return Pure(func(in Value) Outcome[float64] {
		var (
			f   float64
			err error
		)
		switch in.Shape() {
		case ShapeNumber:
			num, _ := in.AsNumber()
			f, err = num.Float64()
		case ShapeString:
			s, _ := in.AsString()
			f, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
		default:
			return Invalid[float64](mismatch("must be a number"))
		}
		if err != nil {
			return Invalid[float64](Error{Kind: KindFormat, Message: "must be a number"})
		}
		return Valid(f)
	})
}

// Boolean accepts a bool, or a string strconv.ParseBool understands.
func Boolean() Validator[bool] {
	return Pure(func(in Value) Outcome[bool] {
		if b, ok := in.AsBool(); ok {
			return Valid(b)
		}
		s, ok := in.AsString()
		if !ok {
			return Invalid[bool](mismatch("must be true or false"))
		}
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return Invalid[bool](Error{Kind: KindFormat, Message: "must be true or false"})
		}
		return Valid(b)
	})
}

// UUID accepts a string in any form uuid.Parse understands.
func UUID() Validator[uuid.UUID] {
	return Pure(func(in Value) Outcome[uuid.UUID] {
		s, ok := in.AsString()
		if !ok {
			return Invalid[uuid.UUID](mismatch("must be a string"))
		}
		id, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil {
			return Invalid[uuid.UUID](Error{Kind: KindFormat, Message: "must be a valid UUID"})
		}
		return Valid(id)
	})
}

func mismatch(msg string) Error {
	return Error{Kind: KindTypeMismatch, Message: msg}
}

// NonBlank rejects strings that are empty after trimming whitespace. A blank
// value counts as missing.
func NonBlank() Rule[string] {
	return Check(KindMissing, "is required", func(s string) bool {
		return strings.TrimSpace(s) != ""
	})
}

// MinLen requires at least n characters.
func MinLen(n int) Rule[string] {
	return Check(KindRange, fmt.Sprintf("must be at least %d characters long", n), func(s string) bool {
		return utf8.RuneCountInString(s) >= n
	})
}

// MaxLen allows at most n characters.
func MaxLen(n int) Rule[string] {
	return Check(KindRange, fmt.Sprintf("must be at most %d characters long", n), func(s string) bool {
		return utf8.RuneCountInString(s) <= n
	})
}

// Pattern requires re to match. Anchor re for a full match. message
// describes the expected form.
func Pattern(re *regexp.Regexp, message string) Rule[string] {
	return Check(KindFormat, message, re.MatchString)
}

// Email requires a bare address ("a@b.com", not "Ann <a@b.com>").
func Email() Rule[string] {
	return Check(KindFormat, "must be a valid email address", func(s string) bool {
		addr, err := mail.ParseAddress(s)
		return err == nil && addr.Address == s && addr.Name == ""
	})
}

// Number is the set of types the range rules accept.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Min requires a value of at least n.
func Min[N Number](n N) Rule[N] {
	return Check(KindRange, fmt.Sprintf("must be at least %v", n), func(v N) bool { return v >= n })
}

// Max requires a value of at most n.
func Max[N Number](n N) Rule[N] {
	return Check(KindRange, fmt.Sprintf("must be at most %v", n), func(v N) bool { return v <= n })
}

// Between requires lo <= value <= hi.
func Between[N Number](lo, hi N) Rule[N] {
	return Check(KindRange, fmt.Sprintf("must be between %v and %v", lo, hi), func(v N) bool {
		return v >= lo && v <= hi
	})
}

// OneOf requires the value to be one of allowed.
func OneOf[T comparable](allowed ...T) Rule[T] {
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = fmt.Sprint(a)
	}
	return Check(KindFormat, "must be one of: "+strings.Join(names, ", "), func(v T) bool {
		return slices.Contains(allowed, v)
	})
}
