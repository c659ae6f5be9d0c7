// Package chi provides thin adapters for using fault-envelope with chi router.
//
// Chi uses standard net/http handlers, so the translator works directly.
// This package adds route-aware component names.
package chi

import (
	"net/http"

	faultenvelope "github.com/blackwell-systems/fault-envelope"
	"github.com/go-chi/chi/v5"
)

// Trace is a convenience wrapper around faultenvelope.TraceMiddleware
// that returns a standard net/http middleware for chi.
//
// Example:
//
//	r := chi.NewRouter()
//	r.Use(chi.Trace)
func Trace(next http.Handler) http.Handler {
	return faultenvelope.TraceMiddleware(next)
}

// Handle adapts fn to a chi handler. Unexpected faults are logged with the
// matched route pattern ("GET /users/{id}") as component.
//
// Example:
//
//	r.Get("/users/{id}", chi.Handle(t, func(r *http.Request) (faultenvelope.Response, error) {
//	    return faultenvelope.Response{}, faultenvelope.NotFound("no such user")
//	}))
func Handle(t *faultenvelope.Translator, fn faultenvelope.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.ServeResult(w, r, Component(r), func() (faultenvelope.Response, error) { return fn(r) })
	}
}

// Component returns the method and route pattern chi matched for r, or the
// raw path when no route context is present.
func Component(r *http.Request) string {
	pattern := r.URL.Path
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			pattern = p
		}
	}
	return r.Method + " " + pattern
}

// NotFound returns a handler for chi's NotFound hook that answers with the
// generic 404 envelope.
func NotFound(t *faultenvelope.Translator) http.HandlerFunc {
	return statusHandler(t, http.StatusNotFound)
}

// MethodNotAllowed returns a handler for chi's MethodNotAllowed hook that
// answers with the generic 405 envelope.
func MethodNotAllowed(t *faultenvelope.Translator) http.HandlerFunc {
	return statusHandler(t, http.StatusMethodNotAllowed)
}

func statusHandler(t *faultenvelope.Translator, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.ServeResult(w, r, Component(r), func() (faultenvelope.Response, error) {
			return faultenvelope.Respond(status, nil), nil
		})
	}
}
