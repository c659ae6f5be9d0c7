package faultenvelope

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestWriteOutcome(t *testing.T) {
	tr := NewTranslator()
	out, _ := tr.Handle(context.Background(), RequestInfo{}, Response{}, NotFound("user not found"))

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/test", nil)
	r.Header.Set(HeaderTraceID, "trace123")

	Write(w, r, out)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}
	if id := w.Header().Get(HeaderTraceID); id != "trace123" {
		t.Errorf("expected X-Request-Id trace123, got %s", id)
	}

	var response Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response.Error == nil || response.Error.Code != "404" || response.Error.Message != "NotFound" {
		t.Errorf("unexpected envelope %+v", response.Error)
	}
}

func TestWriteWithTraceFromContext(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/test", nil)
	r = r.WithContext(WithTraceID(r.Context(), "context-trace-456"))

	Write(w, r, Outcome{Status: http.StatusNoContent})

	if id := w.Header().Get(HeaderTraceID); id != "context-trace-456" {
		t.Errorf("expected X-Request-Id context-trace-456, got %s", id)
	}
	if w.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, w.Code)
	}
	if w.Body.Len() != 0 {
		t.Error("expected empty body")
	}
}

func TestWriteZeroOutcome(t *testing.T) {
	w := httptest.NewRecorder()
	if err := (Outcome{}).Write(w); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected default status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestHTTPHandler(t *testing.T) {
	sink := &logSink{}
	tr := NewTranslator(WithLogger(zerolog.New(sink)))

	mux := http.NewServeMux()
	mux.Handle("/ok", tr.HTTPHandler("ok", func(r *http.Request) (Response, error) {
		return OK(map[string]string{"status": "fine"}), nil
	}))
	mux.Handle("/reject", tr.HTTPHandler("reject", func(r *http.Request) (Response, error) {
		return Response{}, Reject("ITEM_NOT_AVAILABLE", "sold out")
	}))
	mux.Handle("/boom", tr.HTTPHandler("boom", func(r *http.Request) (Response, error) {
		return Response{}, errors.New("database on fire")
	}))
	mux.Handle("/panic", tr.HTTPHandler("panic", func(r *http.Request) (Response, error) {
		panic("unreachable state")
	}))

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/ok", http.StatusOK, `{"status":"fine"}`},
		{"/reject", http.StatusUnprocessableEntity, `{"error":{"message":"sold out","code":"ITEM_NOT_AVAILABLE"}}`},
		{"/boom", http.StatusInternalServerError, `{"error":{"message":"InternalServerError","code":"500"}}`},
		{"/panic", http.StatusInternalServerError, `{"error":{"message":"InternalServerError","code":"500"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("GET", tt.path, nil))

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if w.Body.String() != tt.wantBody {
				t.Errorf("expected body %s, got %s", tt.wantBody, w.Body.String())
			}
		})
	}

	entries := sink.entries(t)
	if len(entries) != 2 {
		t.Fatalf("expected two log writes, got %d", len(entries))
	}
	if entries[0]["component"] != "boom" || entries[1]["component"] != "panic" {
		t.Errorf("unexpected components %v, %v", entries[0]["component"], entries[1]["component"])
	}
}

func TestHTTPHandlerCancelledRequest(t *testing.T) {
	sink := &logSink{}
	tr := NewTranslator(WithLogger(zerolog.New(sink)))

	ctx, cancel := context.WithCancel(context.Background())
	h := tr.HTTPHandler("slow", func(r *http.Request) (Response, error) {
		cancel()
		return Response{}, r.Context().Err()
	})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/slow", nil).WithContext(ctx))

	if w.Body.Len() != 0 {
		t.Errorf("expected nothing written, got %s", w.Body.String())
	}
	if n := len(sink.entries(t)); n != 0 {
		t.Errorf("expected no log writes, got %d", n)
	}
}

func TestHTTPHandlerInvalidStatus(t *testing.T) {
	sink := &logSink{}
	tr := NewTranslator(WithLogger(zerolog.New(sink)))

	for _, status := range []int{42, http.StatusEarlyHints} {
		srv := httptest.NewServer(tr.HTTPHandler("hints", func(r *http.Request) (Response, error) {
			return Respond(status, nil), nil
		}))

		resp, err := http.Get(srv.URL)
		if err != nil {
			srv.Close()
			t.Fatalf("status %d: request failed: %v", status, err)
		}
		var env Envelope
		decodeErr := json.NewDecoder(resp.Body).Decode(&env)
		resp.Body.Close()
		srv.Close()

		if resp.StatusCode != http.StatusInternalServerError {
			t.Errorf("status %d: expected client to see 500, got %d", status, resp.StatusCode)
		}
		if decodeErr != nil || env.Error == nil || env.Error.Code != "500" {
			t.Errorf("status %d: expected 500 envelope, got %+v (%v)", status, env.Error, decodeErr)
		}
	}

	if n := len(sink.entries(t)); n != 2 {
		t.Errorf("expected two log writes, got %d", n)
	}
}

func TestWriteRetryAfter(t *testing.T) {
	tr := NewTranslator()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"seconds", RateLimited("slow down").WithRetryAfter(30 * time.Second), "30"},
		{"rounded up to one", Unavailable("maintenance").WithRetryAfter(200 * time.Millisecond), "1"},
		{"unset", Unavailable("maintenance"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _ := tr.Handle(context.Background(), RequestInfo{}, Response{}, tt.err)

			w := httptest.NewRecorder()
			Write(w, httptest.NewRequest("GET", "/", nil), out)

			if got := w.Header().Get("Retry-After"); got != tt.want {
				t.Errorf("expected Retry-After %q, got %q", tt.want, got)
			}
		})
	}
}

func TestHTTPHandlerNoContentDropsBody(t *testing.T) {
	tr := NewTranslator()
	h := tr.HTTPHandler("delete", func(r *http.Request) (Response, error) {
		return Respond(http.StatusNoContent, map[string]string{"deleted": "yes"}), nil
	})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("DELETE", "/items/1", nil))

	if w.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "" {
		t.Errorf("expected no Content-Type, got %s", ct)
	}
	if w.Body.Len() != 0 {
		t.Errorf("expected empty body, got %s", w.Body.String())
	}
}
