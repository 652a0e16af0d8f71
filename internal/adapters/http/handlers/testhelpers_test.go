package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/tryconstruct/internal/domain/signup"
	"github.com/jsamuelsen11/tryconstruct/internal/validation"
)

const validSignupJSON = `{"name": "Ann", "email": "a@b.com", "street": "Main St", "city": "Austin"}`

// withSignupID sets the {id} route parameter the way the router would.
func withSignupID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// validSignup builds a signup through the real factory with no email
// directory, so it cannot fail on lookups.
func validSignup(t *testing.T) signup.Signup {
	t.Helper()
	rec, err := validation.FromJSON([]byte(validSignupJSON))
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	out, err := signup.TryCreate(context.Background(), nil, rec)
	if err != nil {
		t.Fatalf("TryCreate() error = %v", err)
	}
	s, ok := out.Value()
	if !ok {
		t.Fatalf("TryCreate() errors = %v, want valid", out.Errors())
	}
	return s
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decoding %T from %q: %v", v, rec.Body.String(), err)
	}
	return v
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}
