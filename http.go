package faultenvelope

import (
	"context"
	"net/http"
)

const (
	// HeaderTraceID is the standard header name for trace/request IDs.
	HeaderTraceID = "X-Request-Id"
)

// Write sends the outcome on w and echoes the request's trace ID, if any, in
// the X-Request-Id header.
func Write(w http.ResponseWriter, r *http.Request, o Outcome) {
	if id := TraceIDFromRequest(r); id != "" {
		w.Header().Set(HeaderTraceID, id)
	}
	_ = o.Write(w)
}

// HandlerFunc is a net/http handler that reports its result instead of
// writing it.
type HandlerFunc func(r *http.Request) (Response, error)

// HTTPHandler adapts fn to http.Handler. Every result of fn, including a
// panic, is written through t. Nothing is written if the request context is
// already done when fn returns.
func (t *Translator) HTTPHandler(component string, fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.ServeResult(w, r, component, func() (Response, error) { return fn(r) })
	})
}

// ServeResult runs fn and writes its translated result. It is the building
// block for framework adapters.
func (t *Translator) ServeResult(w http.ResponseWriter, r *http.Request, component string, fn func() (Response, error)) {
	req := RequestInfo{Component: component, TraceID: TraceIDFromRequest(r)}
	out, ok := t.Invoke(r.Context(), req, func(ctx context.Context) (Response, error) {
		return fn()
	})
	if !ok {
		return
	}
	Write(w, r, out)
}
