package validation

import "slices"

// Accumulator collects errors from independent checks in the order they are
// added. The zero value is ready to use. It is not safe for concurrent use:
// concurrent results are joined first and added afterwards in declared order.
type Accumulator struct {
	errs Errors
}

// Add appends errors.
func (a *Accumulator) Add(errs ...Error) {
	a.errs = append(a.errs, errs...)
}

// AddAt appends errors after prefixing their paths with field.
func (a *Accumulator) AddAt(field string, errs Errors) {
	for _, e := range errs {
		a.errs = append(a.errs, e.prefixed(field))
	}
}

// Len returns the number of errors collected so far.
func (a *Accumulator) Len() int {
	return len(a.errs)
}

// Errors returns a copy of the collected errors.
func (a *Accumulator) Errors() Errors {
	return slices.Clone(a.errs)
}

// Finish turns the accumulator into an outcome: Invalid with every collected
// error, or Valid with build's result. build is not called when there are
// errors.
func Finish[T any](a *Accumulator, build func() T) Outcome[T] {
	if len(a.errs) > 0 {
		return Invalid[T](a.errs...)
	}
	return Valid(build())
}
