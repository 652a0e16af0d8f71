package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/tryconstruct/internal/adapters/http/dto"
	"github.com/jsamuelsen11/tryconstruct/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/tryconstruct/mocks"
)

func TestLiveness(t *testing.T) {
	t.Parallel()

	h := handlers.NewHealthHandler(mocks.NewMockHealthRegistry(t))

	rec := httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/health/live", http.NoBody))

	requireStatus(t, rec, http.StatusOK)
	if got := rec.Body.String(); got != `{"status":"ok"}`+"\n" {
		t.Errorf("body = %q, want {\"status\":\"ok\"}", got)
	}
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		results    map[string]error
		wantCode   int
		wantStatus string
		wantChecks []dto.HealthCheck
	}{
		{
			name:       "no components",
			results:    map[string]error{},
			wantCode:   http.StatusOK,
			wantStatus: dto.HealthReady,
			wantChecks: nil,
		},
		{
			name:       "all healthy",
			results:    map[string]error{"redis": nil, "email-directory": nil},
			wantCode:   http.StatusOK,
			wantStatus: dto.HealthReady,
			wantChecks: []dto.HealthCheck{
				{Name: "email-directory", Status: dto.HealthOK},
				{Name: "redis", Status: dto.HealthOK},
			},
		},
		{
			name: "directory down",
			results: map[string]error{
				"redis":           nil,
				"email-directory": errors.New("email-directory: circuit breaker open"),
			},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: dto.HealthNotReady,
			wantChecks: []dto.HealthCheck{
				{Name: "email-directory", Status: dto.HealthNotReady, Error: "email-directory: circuit breaker open"},
				{Name: "redis", Status: dto.HealthOK},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			registry := mocks.NewMockHealthRegistry(t)
			registry.EXPECT().CheckAll(mock.Anything).Return(tt.results)

			rec := httptest.NewRecorder()
			handlers.NewHealthHandler(registry).Readiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", http.NoBody))

			requireStatus(t, rec, tt.wantCode)
			resp := decodeJSON[dto.HealthResponse](t, rec)
			if resp.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", resp.Status, tt.wantStatus)
			}
			if !slices.Equal(resp.Checks, tt.wantChecks) {
				t.Errorf("checks = %+v, want %+v", resp.Checks, tt.wantChecks)
			}
		})
	}
}
