// Package validation builds trusted values out of untrusted input.
//
// Raw input is a [Record]: an ordered mapping of field name to [Value],
// decoded from JSON ([FromJSON]), form data ([FromValues]) or a Go map
// ([FromMap]). A [Validator] turns one Value into an [Outcome], which is
// either Valid with a typed value or Invalid with one or more [Error]s.
// Validators compose with [Map], [And], [Then], [All], [Sequence] and
// [Nested].
//
// A [Factory] declares the fields of a type with [Required], [Optional] and
// [Embed] and is the only path to that type:
//
//	b := validation.NewBuilder[Point]("point")
//	x := validation.Required(b, "x", validation.Int())
//	y := validation.Required(b, "y", validation.Int())
//	points := b.Build(func(f validation.Fields) Point {
//		return Point{X: validation.Get(f, x), Y: validation.Get(f, y)}
//	})
//	out, err := points.TryCreate(ctx, rec)
//
// TryCreate checks every field and reports every failure, in declaration
// order, before it decides. The construct function only runs when there are
// none, so a value that exists is a value that passed. Fields backed by
// lookups run concurrently; their completion order never changes the result.
//
// Verdicts are data: an Invalid outcome with a nil error. A non-nil error from
// TryCreate means no verdict was reached, either because the caller's context
// ended ([ErrCancelled]) or because a lookup could not answer
// (domain.ErrUnavailable).
package validation
