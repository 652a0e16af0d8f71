// Package address defines the sealed Address value.
package address

import (
	"context"
	"regexp"
	"strings"

	"github.com/jsamuelsen11/tryconstruct/internal/validation"
)

// Field names.
const (
	FieldStreet     = "street"
	FieldCity       = "city"
	FieldPostalCode = "postal_code"
	FieldCountry    = "country"
)

// DefaultCountry is used when the input names none.
const DefaultCountry = "US"

const maxLineLength = 200

var (
	postalCodePattern = regexp.MustCompile(`^[A-Za-z0-9 -]{3,10}$`)
	countryPattern    = regexp.MustCompile(`^[A-Z]{2}$`)
)

// Address is a validated postal address. Only the factory fills its fields.
type Address struct {
	street     string
	city       string
	postalCode *string
	country    string
	built      bool
}

func (a Address) Street() string { return a.street }

func (a Address) City() string { return a.city }

func (a Address) Country() string { return a.country }

func (a Address) PostalCode() (string, bool) {
	if a.postalCode == nil {
		return "", false
	}
	return *a.postalCode, true
}

// IsZero reports whether a was not built by the factory.
func (a Address) IsZero() bool { return !a.built }

func line() validation.Validator[string] {
	return validation.All(
		validation.Map(validation.Text(), strings.TrimSpace),
		validation.NonBlank(),
		validation.MaxLen(maxLineLength),
	)
}

// NewFactory returns the factory for Addresses.
func NewFactory(opts ...validation.Option) *validation.Factory[Address] {
	b := validation.NewBuilder[Address]("address")
	street := validation.Required(b, FieldStreet, line())
	city := validation.Required(b, FieldCity, line())
	postal := validation.Optional(b, FieldPostalCode, validation.All(
		validation.Map(validation.Text(), strings.TrimSpace),
		validation.Pattern(postalCodePattern, "must be 3 to 10 letters, digits, spaces or dashes"),
	))
	country := validation.Optional(b, FieldCountry, validation.All(
		validation.Map(validation.Text(), func(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }),
		validation.Pattern(countryPattern, "must be a two-letter country code"),
	))

	return b.Build(func(f validation.Fields) Address {
		a := Address{
			street:     validation.Get(f, street),
			city:       validation.Get(f, city),
			postalCode: validation.Get(f, postal),
			country:    DefaultCountry,
			built:      true,
		}
		if c := validation.Get(f, country); c != nil {
			a.country = *c
		}
		return a
	}, opts...)
}

// TryCreate validates rec into an Address.
func TryCreate(ctx context.Context, rec *validation.Record) (validation.Outcome[Address], error) {
	return NewFactory().TryCreate(ctx, rec)
}

// AppendTo writes a's fields into rec, in the form TryCreate reads them.
func AppendTo(rec *validation.Record, a Address) *validation.Record {
	rec.Set(FieldStreet, validation.StringValue(a.Street())).
		Set(FieldCity, validation.StringValue(a.City()))
	if pc, ok := a.PostalCode(); ok {
		rec.Set(FieldPostalCode, validation.StringValue(pc))
	}
	return rec.Set(FieldCountry, validation.StringValue(a.Country()))
}
