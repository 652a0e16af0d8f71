package user_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/tryconstruct/internal/domain"
	"github.com/jsamuelsen11/tryconstruct/internal/domain/user"
	"github.com/jsamuelsen11/tryconstruct/internal/validation"
	"github.com/jsamuelsen11/tryconstruct/mocks"
)

func record(name, email string) *validation.Record {
	return validation.NewRecord().
		Set(user.FieldName, validation.StringValue(name)).
		Set(user.FieldEmail, validation.StringValue(email))
}

func TestTryCreate_Valid(t *testing.T) {
	t.Parallel()

	dir := mocks.NewMockEmailDirectory(t)
	dir.EXPECT().Exists(mock.Anything, "ann@example.com").Return(false, nil)

	out, err := user.TryCreate(context.Background(), dir, record("  Ann ", "ann@example.com"))
	if err != nil {
		t.Fatalf("TryCreate() error = %v", err)
	}
	u, ok := out.Value()
	if !ok {
		t.Fatalf("TryCreate() errors = %v, want valid", out.Errors())
	}
	if u.Name() != "Ann" {
		t.Errorf("Name() = %q, want trimmed %q", u.Name(), "Ann")
	}
	if u.Email() != "ann@example.com" {
		t.Errorf("Email() = %q", u.Email())
	}
}

func TestTryCreate_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rec        *validation.Record
		wantFields []string
		wantMsgs   []string
	}{
		{
			name:       "both missing",
			rec:        validation.NewRecord(),
			wantFields: []string{"name", "email"},
			wantMsgs:   []string{"Name is required", "Email is required"},
		},
		{
			name:       "blank name and bad email",
			rec:        record(" ", "not-an-email"),
			wantFields: []string{"name", "email"},
			wantMsgs:   []string{"Name is required", "Email must be a valid email address"},
		},
		{
			name:       "name too long",
			rec:        record(strings.Repeat("a", user.MaxNameLength+1), "a@b.com"),
			wantFields: []string{"name"},
			wantMsgs:   []string{"Name must be at most 100 characters long"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Malformed emails never reach the directory.
			dir := mocks.NewMockEmailDirectory(t)
			dir.EXPECT().Exists(mock.Anything, mock.Anything).Return(false, nil).Maybe()

			out, err := user.TryCreate(context.Background(), dir, tt.rec)
			if err != nil {
				t.Fatalf("TryCreate() error = %v", err)
			}
			errs := out.Errors()
			if got := errs.Fields(); !slices.Equal(got, tt.wantFields) {
				t.Errorf("Fields() = %v, want %v", got, tt.wantFields)
			}
			if got := errs.Messages(); !slices.Equal(got, tt.wantMsgs) {
				t.Errorf("Messages() = %v, want %v", got, tt.wantMsgs)
			}
		})
	}
}

func TestTryCreate_EmailTaken(t *testing.T) {
	t.Parallel()

	dir := mocks.NewMockEmailDirectory(t)
	dir.EXPECT().Exists(mock.Anything, "taken@example.com").Return(true, nil)

	out, err := user.TryCreate(context.Background(), dir, record("Ann", "taken@example.com"))
	if err != nil {
		t.Fatalf("TryCreate() error = %v", err)
	}
	errs := out.Errors()
	if len(errs) != 1 {
		t.Fatalf("errors = %v, want 1", errs)
	}
	if errs[0].Kind != validation.KindReferential || errs[0].Message != "Email is already registered" {
		t.Errorf("error = (%v, %q), want referential 'Email is already registered'", errs[0].Kind, errs[0].Message)
	}
}

func TestTryCreate_DirectoryDown(t *testing.T) {
	t.Parallel()

	dir := mocks.NewMockEmailDirectory(t)
	dir.EXPECT().Exists(mock.Anything, mock.Anything).
		Return(false, errors.Join(domain.ErrUnavailable, errors.New("dial tcp: refused")))

	out, err := user.TryCreate(context.Background(), dir, record("Ann", "a@b.com"))
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("TryCreate() error = %v, want ErrUnavailable", err)
	}
	if out.IsValid() || len(out.Errors()) != 0 {
		t.Error("TryCreate() returned an outcome alongside a directory failure")
	}
}

func TestNewFactory_NilDirectorySkipsLookup(t *testing.T) {
	t.Parallel()

	f := user.NewFactory(nil)
	if f.Async() {
		t.Error("Async() = true without a directory, want false")
	}
	out, err := f.TryCreate(context.Background(), record("Ann", "a@b.com"))
	if err != nil || !out.IsValid() {
		t.Errorf("TryCreate() = (%v, %v), want valid", out.Errors(), err)
	}
}

func TestAppendTo_RoundTrip(t *testing.T) {
	t.Parallel()

	f := user.NewFactory(nil)
	out, _ := f.TryCreate(context.Background(), record("Ann", "a@b.com"))
	u, _ := out.Value()

	again, err := f.TryCreate(context.Background(), user.AppendTo(validation.NewRecord(), u))
	if err != nil {
		t.Fatalf("TryCreate() error = %v", err)
	}
	u2, ok := again.Value()
	if !ok || u2.Name() != u.Name() || u2.Email() != u.Email() {
		t.Errorf("round trip = %v, want equal user", again.Errors())
	}
}
