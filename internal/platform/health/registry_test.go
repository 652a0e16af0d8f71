package health_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/tryconstruct/internal/platform/health"
	"github.com/jsamuelsen11/tryconstruct/mocks"
)

// checker returns a mock named name whose check returns err.
func checker(t *testing.T, name string, err error) *mocks.MockHealthChecker {
	t.Helper()
	c := mocks.NewMockHealthChecker(t)
	c.EXPECT().Name().Return(name)
	c.EXPECT().HealthCheck(mock.Anything).Return(err)
	return c
}

func TestCheckAll(t *testing.T) {
	t.Parallel()

	errRefused := errors.New("dial tcp 10.0.0.7:6379: connection refused")
	errBreaker := errors.New("email-directory: circuit breaker open")

	tests := []struct {
		name     string
		checkers func(t *testing.T) []*mocks.MockHealthChecker
		want     map[string]error
	}{
		{
			name:     "nothing registered",
			checkers: func(*testing.T) []*mocks.MockHealthChecker { return nil },
			want:     map[string]error{},
		},
		{
			name: "all ready",
			checkers: func(t *testing.T) []*mocks.MockHealthChecker {
				return []*mocks.MockHealthChecker{checker(t, "redis", nil), checker(t, "email-directory", nil)}
			},
			want: map[string]error{"redis": nil, "email-directory": nil},
		},
		{
			name: "one down",
			checkers: func(t *testing.T) []*mocks.MockHealthChecker {
				return []*mocks.MockHealthChecker{checker(t, "redis", errRefused), checker(t, "email-directory", nil)}
			},
			want: map[string]error{"redis": errRefused, "email-directory": nil},
		},
		{
			name: "same name, last registered wins",
			checkers: func(t *testing.T) []*mocks.MockHealthChecker {
				return []*mocks.MockHealthChecker{checker(t, "email-directory", nil), checker(t, "email-directory", errBreaker)}
			},
			want: map[string]error{"email-directory": errBreaker},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := health.New()
			for _, c := range tt.checkers(t) {
				r.Register(c)
			}
			got := r.CheckAll(context.Background())

			if got == nil || len(got) != len(tt.want) {
				t.Fatalf("CheckAll() = %v, want %v", got, tt.want)
			}
			for name, want := range tt.want {
				if err, ok := got[name]; !ok || !errors.Is(err, want) || (want == nil) != (err == nil) {
					t.Errorf("CheckAll()[%q] = %v, want %v", name, err, want)
				}
			}
		})
	}
}

func TestCheckAll_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := mocks.NewMockHealthChecker(t)
	c.EXPECT().Name().Return("email-directory")
	c.EXPECT().HealthCheck(mock.Anything).RunAndReturn(func(ctx context.Context) error { return ctx.Err() }).Maybe()

	r := health.New()
	r.Register(c)

	if got := r.CheckAll(ctx)["email-directory"]; !errors.Is(got, context.Canceled) {
		t.Errorf("CheckAll()[email-directory] = %v, want context.Canceled", got)
	}
}

func TestCheckAll_HungCheckerTimesOut(t *testing.T) {
	t.Parallel()

	hung := mocks.NewMockHealthChecker(t)
	hung.EXPECT().Name().Return("redis")
	hung.EXPECT().HealthCheck(mock.Anything).RunAndReturn(func(ctx context.Context) error {
		<-ctx.Done()
		return context.Cause(ctx)
	})

	r := health.New(health.WithCheckTimeout(20 * time.Millisecond))
	r.Register(hung)
	r.Register(checker(t, "email-directory", nil))

	start := time.Now()
	got := r.CheckAll(context.Background())

	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("CheckAll() took %v, want it bounded by the check timeout", elapsed)
	}
	if err := got["redis"]; err == nil || !strings.Contains(err.Error(), "no answer within 20ms") {
		t.Errorf("CheckAll()[redis] = %v, want the timeout cause", err)
	}
	if err := got["email-directory"]; err != nil {
		t.Errorf("CheckAll()[email-directory] = %v, want nil", err)
	}
}

func TestWithCheckTimeout_IgnoresNonPositive(t *testing.T) {
	t.Parallel()

	hung := mocks.NewMockHealthChecker(t)
	hung.EXPECT().Name().Return("redis")
	hung.EXPECT().HealthCheck(mock.Anything).RunAndReturn(func(ctx context.Context) error {
		deadline, ok := ctx.Deadline()
		if !ok || time.Until(deadline) < time.Second {
			return errors.New("deadline shorter than the default")
		}
		return nil
	})

	r := health.New(health.WithCheckTimeout(0))
	r.Register(hung)

	if err := r.CheckAll(context.Background())["redis"]; err != nil {
		t.Errorf("CheckAll()[redis] = %v, want nil under the default timeout", err)
	}
}

func TestRegistry_ConcurrentUse(t *testing.T) {
	t.Parallel()

	r := health.New()
	var wg sync.WaitGroup
	for i := range 40 {
		if i%2 == 0 {
			c := mocks.NewMockHealthChecker(t)
			c.EXPECT().Name().Return("checker").Maybe()
			c.EXPECT().HealthCheck(mock.Anything).Return(nil).Maybe()
			wg.Go(func() { r.Register(c) })
			continue
		}
		wg.Go(func() { r.CheckAll(context.Background()) })
	}
	wg.Wait()
}
