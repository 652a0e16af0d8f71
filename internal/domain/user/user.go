// Package user defines the sealed User value: a person's name and a unique,
// well-formed email address.
package user

import (
	"context"
	"strings"

	"github.com/jsamuelsen11/tryconstruct/internal/validation"
)

// Field names.
const (
	FieldName  = "name"
	FieldEmail = "email"
)

// Limits.
const (
	MaxNameLength  = 100
	MaxEmailLength = 254
)

// User is a validated user. Its fields are unexported and only the factory
// fills them, so a non-zero User always holds checked values.
type User struct {
	name  string
	email string
	built bool
}

func (u User) Name() string { return u.name }

func (u User) Email() string { return u.email }

// IsZero reports whether u was not built by the factory.
func (u User) IsZero() bool { return !u.built }

// Directory answers whether an email address is already registered.
type Directory interface {
	Exists(ctx context.Context, email string) (bool, error)
}

// NewFactory returns the factory for Users. Email uniqueness is checked
// against dir; a nil dir skips that check.
func NewFactory(dir Directory, opts ...validation.Option) *validation.Factory[User] {
	b := validation.NewBuilder[User]("user")
	name := validation.Required(b, FieldName, validation.All(
		validation.Map(validation.Text(), strings.TrimSpace),
		validation.NonBlank(),
		validation.MaxLen(MaxNameLength),
	))
	email := validation.Required(b, FieldEmail, emailValidator(dir))

	return b.Build(func(f validation.Fields) User {
		return User{name: validation.Get(f, name), email: validation.Get(f, email), built: true}
	}, opts...)
}

func emailValidator(dir Directory) validation.Validator[string] {
	format := validation.All(
		validation.Map(validation.Text(), strings.TrimSpace),
		validation.NonBlank(),
		validation.MaxLen(MaxEmailLength),
		validation.Email(),
	)
	if dir == nil {
		return format
	}
	return validation.Then(format, func(ctx context.Context, email string) (validation.Outcome[string], error) {
		taken, err := dir.Exists(ctx, email)
		if err != nil {
			return validation.Outcome[string]{}, err
		}
		if taken {
			return validation.Invalid[string](validation.Error{
				Kind:    validation.KindReferential,
				Message: "is already registered",
			}), nil
		}
		return validation.Valid(email), nil
	})
}

// TryCreate validates rec into a User.
func TryCreate(ctx context.Context, dir Directory, rec *validation.Record) (validation.Outcome[User], error) {
	return NewFactory(dir).TryCreate(ctx, rec)
}

// AppendTo writes u's fields into rec, in the form TryCreate reads them.
func AppendTo(rec *validation.Record, u User) *validation.Record {
	return rec.
		Set(FieldName, validation.StringValue(u.Name())).
		Set(FieldEmail, validation.StringValue(u.Email()))
}
