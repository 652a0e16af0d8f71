package validation_test

import (
	"slices"
	"testing"

	"github.com/jsamuelsen11/tryconstruct/internal/validation"
)

func TestKind_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind validation.Kind
		want string
	}{
		{validation.KindMissing, "missing_field"},
		{validation.KindFormat, "format"},
		{validation.KindRange, "range"},
		{validation.KindReferential, "referential"},
		{validation.KindComposition, "composition"},
		{validation.KindTypeMismatch, "type_mismatch"},
		{validation.Kind(0), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestError_FieldAndError(t *testing.T) {
	t.Parallel()

	e := validation.Error{Path: []string{"shipping", "city"}, Message: "City is required"}
	if got := e.Field(); got != "shipping.city" {
		t.Errorf("Field() = %q, want %q", got, "shipping.city")
	}
	if got := e.Error(); got != "shipping.city: City is required" {
		t.Errorf("Error() = %q", got)
	}

	bare := validation.Error{Message: "must be a list"}
	if got := bare.Error(); got != "must be a list" {
		t.Errorf("Error() with empty path = %q, want %q", got, "must be a list")
	}
}

func TestErrors_Queries(t *testing.T) {
	t.Parallel()

	errs := validation.Errors{
		{Path: []string{"name"}, Message: "Name is required"},
		{Path: []string{"tags", "1"}, Message: "Item 1 must be at most 32 characters long"},
		{Path: []string{"name"}, Message: "Name must be at most 100 characters long"},
	}

	if !errs.Has("tags.1") {
		t.Error("Has(tags.1) = false, want true")
	}
	if errs.Has("tags") {
		t.Error("Has(tags) = true, want false")
	}
	if got := errs.Get("name"); len(got) != 2 {
		t.Errorf("len(Get(name)) = %d, want 2", len(got))
	}
	if got := errs.Fields(); !slices.Equal(got, []string{"name", "tags.1"}) {
		t.Errorf("Fields() = %v, want [name tags.1]", got)
	}

	prefixed := errs.Prefix("signup")
	if got := prefixed[1].Field(); got != "signup.tags.1" {
		t.Errorf("Prefix()[1].Field() = %q, want signup.tags.1", got)
	}
	if got := errs[1].Field(); got != "tags.1" {
		t.Errorf("Prefix mutated the receiver: Field() = %q", got)
	}
}
