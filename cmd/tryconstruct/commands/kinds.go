package commands

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jsamuelsen11/tryconstruct/internal/domain/address"
	"github.com/jsamuelsen11/tryconstruct/internal/domain/signup"
	"github.com/jsamuelsen11/tryconstruct/internal/domain/user"
	"github.com/jsamuelsen11/tryconstruct/internal/validation"
)

// kind is one document type the CLI knows how to validate.
type kind struct {
	fields []string
	run    func(ctx context.Context, rec *validation.Record) (validation.Report, error)
}

func newKind[T any](f *validation.Factory[T], render func(T) any) kind {
	return kind{
		fields: f.FieldNames(),
		run: func(ctx context.Context, rec *validation.Record) (validation.Report, error) {
			out, err := f.TryCreate(ctx, rec)
			if err != nil {
				return validation.Report{}, err
			}
			return validation.NewReport(out, render), nil
		},
	}
}

var kindNames = []string{"signup", "user", "address"}

// lookupKind builds the factory for name. dir backs email uniqueness.
func lookupKind(name string, dir user.Directory, opts ...validation.Option) (kind, error) {
	switch name {
	case "signup":
		return newKind(signup.NewFactory(dir, opts...), func(s signup.Signup) any {
			return signup.NewView(s)
		}), nil
	case "user":
		return newKind(user.NewFactory(dir, opts...), func(u user.User) any {
			return user.AppendTo(validation.NewRecord(), u)
		}), nil
	case "address":
		return newKind(address.NewFactory(opts...), func(a address.Address) any {
			return signup.NewAddressView(a)
		}), nil
	default:
		return kind{}, fmt.Errorf("unknown type %q (want one of: %s)", name, strings.Join(kindNames, ", "))
	}
}

func validKindName(name string) bool {
	return slices.Contains(kindNames, name)
}
