// Package signup defines the sealed Signup value: a user, their address and
// the optional extras of a registration form.
//
// Input is flat: the user's and the address's fields sit side by side at the
// top level, and an optional "shipping" object carries a second address.
package signup

import (
	"context"
	"slices"
	"strings"

	"github.com/jsamuelsen11/tryconstruct/internal/domain/address"
	"github.com/jsamuelsen11/tryconstruct/internal/domain/user"
	"github.com/jsamuelsen11/tryconstruct/internal/validation"
)

// Field names beyond those of user and address.
const (
	FieldShipping    = "shipping"
	FieldTags        = "tags"
	FieldAge         = "age"
	FieldAcceptTerms = "accept_terms"
)

// Limits.
const (
	MaxTagLength = 32
	MinAge       = 13
	MaxAge       = 130
)

// Signup is a validated registration. Its fields are unexported and only
// the factory fills them: a value from anywhere else is the zero Signup,
// which writers reject.
type Signup struct {
	user     user.User
	address  address.Address
	shipping *address.Address
	tags     []string
	age      *int64
	terms    bool
	built    bool
}

func (s Signup) User() user.User { return s.user }

func (s Signup) Address() address.Address { return s.address }

func (s Signup) Shipping() (address.Address, bool) {
	if s.shipping == nil {
		return address.Address{}, false
	}
	return *s.shipping, true
}

func (s Signup) Tags() []string { return slices.Clone(s.tags) }

func (s Signup) Age() (int64, bool) {
	if s.age == nil {
		return 0, false
	}
	return *s.age, true
}

func (s Signup) TermsAccepted() bool { return s.terms }

// IsZero reports whether s was not built by the factory.
func (s Signup) IsZero() bool { return !s.built }

// NewFactory returns the factory for Signups. dir backs the email uniqueness
// check of the embedded user.
func NewFactory(dir user.Directory, opts ...validation.Option) *validation.Factory[Signup] {
	b := validation.NewBuilder[Signup]("signup")
	u := validation.Embed(b, user.NewFactory(dir))
	addr := validation.Embed(b, address.NewFactory())
	shipping := validation.Optional(b, FieldShipping, validation.Nested(address.NewFactory()))
	tags := validation.Optional(b, FieldTags, validation.Sequence(validation.All(
		validation.Map(validation.Text(), strings.TrimSpace),
		validation.NonBlank(),
		validation.MaxLen(MaxTagLength),
	)))
	age := validation.Optional(b, FieldAge, validation.All(validation.Int(), validation.Between[int64](MinAge, MaxAge)))
	terms := validation.Optional(b, FieldAcceptTerms, validation.All(validation.Boolean(),
		validation.Check(validation.KindRange, "must be accepted", func(ok bool) bool { return ok }),
	))

	return b.Build(func(f validation.Fields) Signup {
		s := Signup{
			user:     validation.Get(f, u),
			address:  validation.Get(f, addr),
			shipping: validation.Get(f, shipping),
			age:      validation.Get(f, age),
			terms:    validation.Get(f, terms) != nil,
			built:    true,
		}
		if t := validation.Get(f, tags); t != nil {
			s.tags = *t
		}
		return s
	}, opts...)
}

// TryCreate validates rec into a Signup.
func TryCreate(ctx context.Context, dir user.Directory, rec *validation.Record) (validation.Outcome[Signup], error) {
	return NewFactory(dir).TryCreate(ctx, rec)
}

// ToRecord renders s back into the flat input form. Feeding the result to
// TryCreate yields an equal Signup, as long as the directory does not know
// the email yet.
func ToRecord(s Signup) *validation.Record {
	rec := validation.NewRecord()
	user.AppendTo(rec, s.User())
	address.AppendTo(rec, s.Address())
	if ship, ok := s.Shipping(); ok {
		rec.Set(FieldShipping, validation.RecordValue(address.AppendTo(validation.NewRecord(), ship)))
	}
	if tags := s.Tags(); tags != nil {
		items := make([]validation.Value, len(tags))
		for i, t := range tags {
			items[i] = validation.StringValue(t)
		}
		rec.Set(FieldTags, validation.ListValue(items...))
	}
	if age, ok := s.Age(); ok {
		rec.Set(FieldAge, validation.IntValue(age))
	}
	if s.TermsAccepted() {
		rec.Set(FieldAcceptTerms, validation.BoolValue(true))
	}
	return rec
}

// View is the caller-facing rendering of a Signup.
type View struct {
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	Address  AddressView  `json:"address"`
	Shipping *AddressView `json:"shipping,omitempty"`
	Tags     []string     `json:"tags,omitempty"`
	Age      *int64       `json:"age,omitempty"`
	Terms    bool         `json:"accept_terms,omitempty"`
}

// AddressView is the caller-facing rendering of an Address.
type AddressView struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country"`
}

// NewAddressView renders an Address.
func NewAddressView(a address.Address) AddressView {
	pc, _ := a.PostalCode()
	return AddressView{Street: a.Street(), City: a.City(), PostalCode: pc, Country: a.Country()}
}

// NewView renders a Signup.
func NewView(s Signup) View {
	v := View{
		Name:    s.User().Name(),
		Email:   s.User().Email(),
		Address: NewAddressView(s.Address()),
		Tags:    s.Tags(),
		Terms:   s.TermsAccepted(),
	}
	if ship, ok := s.Shipping(); ok {
		sv := NewAddressView(ship)
		v.Shipping = &sv
	}
	if age, ok := s.Age(); ok {
		v.Age = &age
	}
	return v
}
