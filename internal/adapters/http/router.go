// Package http is the inbound HTTP adapter: the chi router and the server
// that runs it.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/tryconstruct/internal/adapters/http/dto"
	"github.com/jsamuelsen11/tryconstruct/internal/adapters/http/handlers"
)

// Route prefixes.
const (
	HealthPrefix  = "/health"
	SignupsPrefix = "/api/v1/signups"
)

// NewRouter mounts the health and signup endpoints behind middlewares,
// outermost first. Unknown routes and wrong methods answer with problem
// documents like every other error.
func NewRouter(
	signups *handlers.SignupHandler,
	health *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewares...)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		dto.WriteErrorResponse(w, req, dto.ErrRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		dto.WriteErrorResponse(w, req, dto.ErrMethodNotAllowed)
	})

	r.Route(HealthPrefix, func(r chi.Router) {
		r.Get("/live", health.Liveness)
		r.Get("/ready", health.Readiness)
	})
	r.Route(SignupsPrefix, func(r chi.Router) {
		r.Post("/", signups.Register)
		r.Post("/validate", signups.Validate)
		r.Get("/{id}", signups.Get)
	})

	return r
}
