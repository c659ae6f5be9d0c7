package faultenvelope

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type ctxKey string

const traceKey ctxKey = "faultenvelope.trace_id"

// TraceIDFromRequest extracts the trace ID from the request header or context.
func TraceIDFromRequest(r *http.Request) string {
	if r == nil {
		return ""
	}
	// Prefer header
	if id := r.Header.Get(HeaderTraceID); id != "" {
		return id
	}
	return TraceIDFromContext(r.Context())
}

// TraceIDFromContext returns the trace ID stored by WithTraceID.
func TraceIDFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(traceKey).(string); ok {
		return s
	}
	return ""
}

// WithTraceID adds a trace ID to the context.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceKey, id)
}

// TraceMiddleware generates or propagates a trace ID for each request and
// echoes it in the response header.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderTraceID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderTraceID, id)
		ctx := WithTraceID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
