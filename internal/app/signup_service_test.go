package app

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/jsamuelsen11/tryconstruct/internal/domain"
	"github.com/jsamuelsen11/tryconstruct/internal/domain/signup"
	"github.com/jsamuelsen11/tryconstruct/internal/platform/telemetry"
	"github.com/jsamuelsen11/tryconstruct/internal/validation"
	"github.com/jsamuelsen11/tryconstruct/mocks"
)

const (
	validJSON   = `{"name": "Ann", "email": "ann@example.com", "street": "Main St", "city": "Austin"}`
	invalidJSON = `{"name": "", "email": "ann@example.com", "street": "Main St", "city": ""}`
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func record(t *testing.T, js string) *validation.Record {
	t.Helper()
	rec, err := validation.FromJSON([]byte(js))
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	return rec
}

// --- NewSignupService ---

func TestNewSignupService_NilLogger(t *testing.T) {
	t.Parallel()

	svc := NewSignupService(mocks.NewMockEmailDirectory(t), mocks.NewMockSignupRepository(t), nil, nil)
	if svc.logger == nil {
		t.Fatal("NewSignupService(nil logger) should create a no-op logger, got nil")
	}
}

// --- Register ---

func TestSignupService_Register(t *testing.T) {
	t.Parallel()

	t.Run("stores a valid signup", func(t *testing.T) {
		t.Parallel()
		dir := mocks.NewMockEmailDirectory(t)
		repo := mocks.NewMockSignupRepository(t)
		svc := NewSignupService(dir, repo, nil, discardLogger())

		id := uuid.New()
		dir.EXPECT().Exists(mock.Anything, "ann@example.com").Return(false, nil)
		repo.EXPECT().Save(mock.Anything, mock.AnythingOfType("signup.Signup")).Return(id, nil)

		got, err := svc.Register(context.Background(), record(t, validJSON))
		if err != nil {
			t.Fatalf("Register() error = %v, want nil", err)
		}
		if !got.Outcome.IsValid() {
			t.Fatalf("Register() errors = %v, want valid", got.Outcome.Errors())
		}
		if got.ID != id {
			t.Errorf("Register() ID = %v, want %v", got.ID, id)
		}
	})

	t.Run("does not store an invalid signup", func(t *testing.T) {
		t.Parallel()
		dir := mocks.NewMockEmailDirectory(t)
		repo := mocks.NewMockSignupRepository(t)
		svc := NewSignupService(dir, repo, nil, discardLogger())

		dir.EXPECT().Exists(mock.Anything, mock.Anything).Return(false, nil)

		got, err := svc.Register(context.Background(), record(t, invalidJSON))
		if err != nil {
			t.Fatalf("Register() error = %v, want nil", err)
		}
		if got.Outcome.IsValid() {
			t.Fatal("Register() is valid, want invalid")
		}
		if fields := got.Outcome.Errors().Fields(); !slices.Equal(fields, []string{"name", "city"}) {
			t.Errorf("Register() fields = %v, want [name city]", fields)
		}
		if got.ID != uuid.Nil {
			t.Errorf("Register() ID = %v, want nil UUID", got.ID)
		}
	})

	t.Run("rejects a registered email", func(t *testing.T) {
		t.Parallel()
		dir := mocks.NewMockEmailDirectory(t)
		repo := mocks.NewMockSignupRepository(t)
		svc := NewSignupService(dir, repo, nil, discardLogger())

		dir.EXPECT().Exists(mock.Anything, "ann@example.com").Return(true, nil)

		got, err := svc.Register(context.Background(), record(t, validJSON))
		if err != nil {
			t.Fatalf("Register() error = %v, want nil", err)
		}
		errs := got.Outcome.Errors()
		if len(errs) != 1 || errs[0].Kind != validation.KindReferential {
			t.Fatalf("Register() errors = %v, want one referential error", errs)
		}
		if errs[0].Message != "Email is already registered" {
			t.Errorf("Message = %q, want %q", errs[0].Message, "Email is already registered")
		}
	})

	t.Run("turns a save conflict into an email error", func(t *testing.T) {
		t.Parallel()
		dir := mocks.NewMockEmailDirectory(t)
		repo := mocks.NewMockSignupRepository(t)
		svc := NewSignupService(dir, repo, nil, discardLogger())

		dir.EXPECT().Exists(mock.Anything, mock.Anything).Return(false, nil)
		repo.EXPECT().Save(mock.Anything, mock.Anything).Return(uuid.Nil, domain.ErrConflict)

		got, err := svc.Register(context.Background(), record(t, validJSON))
		if err != nil {
			t.Fatalf("Register() error = %v, want nil", err)
		}
		errs := got.Outcome.Errors()
		if !errs.Has("email") || errs[0].Kind != validation.KindReferential {
			t.Errorf("Register() errors = %v, want a referential email error", errs)
		}
	})

	t.Run("returns error when save fails", func(t *testing.T) {
		t.Parallel()
		dir := mocks.NewMockEmailDirectory(t)
		repo := mocks.NewMockSignupRepository(t)
		svc := NewSignupService(dir, repo, nil, discardLogger())

		dir.EXPECT().Exists(mock.Anything, mock.Anything).Return(false, nil)
		repo.EXPECT().Save(mock.Anything, mock.Anything).Return(uuid.Nil, domain.ErrUnavailable)

		_, err := svc.Register(context.Background(), record(t, validJSON))
		if !errors.Is(err, domain.ErrUnavailable) {
			t.Errorf("Register() error = %v, want ErrUnavailable", err)
		}
	})

	t.Run("returns cancelled when the caller leaves during save", func(t *testing.T) {
		t.Parallel()
		dir := mocks.NewMockEmailDirectory(t)
		repo := mocks.NewMockSignupRepository(t)
		svc := NewSignupService(dir, repo, nil, discardLogger())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		dir.EXPECT().Exists(mock.Anything, mock.Anything).Return(false, nil)
		repo.EXPECT().Save(mock.Anything, mock.Anything).RunAndReturn(
			func(ctx context.Context, _ signup.Signup) (uuid.UUID, error) {
				cancel()
				return uuid.Nil, ctx.Err()
			})

		_, err := svc.Register(ctx, record(t, validJSON))
		if !errors.Is(err, validation.ErrCancelled) || !errors.Is(err, context.Canceled) {
			t.Errorf("Register() error = %v, want ErrCancelled wrapping context.Canceled", err)
		}
	})

	t.Run("returns error when the directory fails", func(t *testing.T) {
		t.Parallel()
		dir := mocks.NewMockEmailDirectory(t)
		repo := mocks.NewMockSignupRepository(t)
		svc := NewSignupService(dir, repo, nil, discardLogger())

		dir.EXPECT().Exists(mock.Anything, mock.Anything).Return(false, errors.New("connection refused"))

		_, err := svc.Register(context.Background(), record(t, validJSON))
		if !errors.Is(err, domain.ErrUnavailable) {
			t.Errorf("Register() error = %v, want ErrUnavailable", err)
		}
		if errors.Is(err, validation.ErrCancelled) {
			t.Errorf("Register() error = %v, want it not to read as cancelled", err)
		}
	})

	t.Run("returns cancelled for a finished context", func(t *testing.T) {
		t.Parallel()
		svc := NewSignupService(mocks.NewMockEmailDirectory(t), mocks.NewMockSignupRepository(t), nil, discardLogger())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := svc.Register(ctx, record(t, validJSON))
		if !errors.Is(err, validation.ErrCancelled) {
			t.Errorf("Register() error = %v, want ErrCancelled", err)
		}
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Register() error = %v, want it to wrap context.Canceled", err)
		}
	})
}

// --- Validate ---

func TestSignupService_Validate(t *testing.T) {
	t.Parallel()

	dir := mocks.NewMockEmailDirectory(t)
	repo := mocks.NewMockSignupRepository(t)
	svc := NewSignupService(dir, repo, nil, discardLogger())

	dir.EXPECT().Exists(mock.Anything, mock.Anything).Return(false, nil)

	out, err := svc.Validate(context.Background(), record(t, validJSON))
	if err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
	s, ok := out.Value()
	if !ok {
		t.Fatalf("Validate() errors = %v, want valid", out.Errors())
	}
	if s.User().Email() != "ann@example.com" {
		t.Errorf("Email() = %q, want ann@example.com", s.User().Email())
	}
	// repo has no expectations: any Save call fails the test.
}

// --- Get ---

func TestSignupService_Get(t *testing.T) {
	t.Parallel()

	t.Run("returns the stored signup", func(t *testing.T) {
		t.Parallel()
		dir := mocks.NewMockEmailDirectory(t)
		dir.EXPECT().Exists(mock.Anything, mock.Anything).Return(false, nil)
		repo := mocks.NewMockSignupRepository(t)
		svc := NewSignupService(dir, repo, nil, discardLogger())

		out, err := signup.TryCreate(context.Background(), dir, record(t, validJSON))
		if err != nil {
			t.Fatalf("TryCreate() error = %v", err)
		}
		want, _ := out.Value()
		id := uuid.New()
		repo.EXPECT().Get(mock.Anything, id).Return(want, nil)

		got, err := svc.Get(context.Background(), id)
		if err != nil {
			t.Fatalf("Get() error = %v, want nil", err)
		}
		if got.User().Email() != want.User().Email() || got.Address().City() != want.Address().City() {
			t.Errorf("Get() = %+v, want %+v", signup.NewView(got), signup.NewView(want))
		}
	})

	t.Run("returns error when not found", func(t *testing.T) {
		t.Parallel()
		repo := mocks.NewMockSignupRepository(t)
		svc := NewSignupService(mocks.NewMockEmailDirectory(t), repo, nil, discardLogger())

		repo.EXPECT().Get(mock.Anything, mock.Anything).Return(signup.Signup{}, domain.ErrNotFound)

		_, err := svc.Get(context.Background(), uuid.New())
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("Get() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("returns cancelled when the caller left", func(t *testing.T) {
		t.Parallel()
		repo := mocks.NewMockSignupRepository(t)
		svc := NewSignupService(mocks.NewMockEmailDirectory(t), repo, nil, discardLogger())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		repo.EXPECT().Get(mock.Anything, mock.Anything).Return(signup.Signup{}, context.Canceled)

		_, err := svc.Get(ctx, uuid.New())
		if !errors.Is(err, validation.ErrCancelled) {
			t.Errorf("Get() error = %v, want ErrCancelled", err)
		}
	})
}

// --- Metrics ---

func TestSignupService_RecordsOutcomes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	metrics, err := telemetry.NewMetrics(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)), "test")
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}

	dir := mocks.NewMockEmailDirectory(t)
	dir.EXPECT().Exists(mock.Anything, mock.Anything).Return(false, nil)
	svc := NewSignupService(dir, mocks.NewMockSignupRepository(t), metrics, discardLogger())

	if _, err := svc.Validate(ctx, record(t, validJSON)); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if _, err := svc.Validate(ctx, record(t, invalidJSON)); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	counts := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if m.Name != "validation.outcome.total" || !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				v, _ := dp.Attributes.Value(attribute.Key("result"))
				counts[v.AsString()] += dp.Value
			}
		}
	}
	if counts[telemetry.ResultValid] != 1 || counts[telemetry.ResultInvalid] != 1 {
		t.Errorf("outcome counts = %v, want valid=1 invalid=1", counts)
	}
}
