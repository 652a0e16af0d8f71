package domain

import "errors"

// Failure classes shared across layers; match them with errors.Is.
//
// validation.Errors unwraps to ErrValidation, so every verdict about the
// input is one. ErrUnavailable means a collaborator such as the email
// directory or the signup store could not answer and says nothing about
// the input.
var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrForbidden   = errors.New("forbidden")
	ErrUnavailable = errors.New("unavailable")
)
