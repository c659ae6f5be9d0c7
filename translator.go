package faultenvelope

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

// RequestInfo identifies the request being translated.
type RequestInfo struct {
	// Component is the logical handler that was executing, e.g. a controller
	// or route name. It tags the log entry of an unexpected fault.
	Component string
	TraceID   string
}

// Observer is notified once per produced Outcome.
type Observer interface {
	ObserveOutcome(component string, class Class, status int)
}

// Translator converts handler results into Outcomes. It holds only
// configuration and is safe for concurrent use.
type Translator struct {
	logger   zerolog.Logger
	codec    Codec
	codeOf   func(error) string
	observer Observer
}

// Option configures a Translator.
type Option func(*Translator)

// WithLogger sets the logger used for unexpected faults. The default discards
// everything.
func WithLogger(l zerolog.Logger) Option {
	return func(t *Translator) { t.logger = l }
}

// WithCodec sets the codec used to encode bodies. The default is JSON.
func WithCodec(c Codec) Option {
	return func(t *Translator) {
		if c != nil {
			t.codec = c
		}
	}
}

// WithCodeFunc overrides how a business code is extracted from an error.
// The default is CodeOf.
func WithCodeFunc(fn func(error) string) Option {
	return func(t *Translator) {
		if fn != nil {
			t.codeOf = fn
		}
	}
}

// WithObserver registers an observer for produced outcomes.
func WithObserver(o Observer) Option {
	return func(t *Translator) { t.observer = o }
}

// NewTranslator creates a Translator.
func NewTranslator(opts ...Option) *Translator {
	t := &Translator{
		logger: zerolog.Nop(),
		codec:  JSON,
		codeOf: CodeOf,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Handle translates the result of an inner handler into exactly one Outcome.
//
// A nil err with a 2xx status yields the encoded body; if it cannot be
// encoded the result is treated as an unexpected fault. 204 and 304 never
// carry a body. A nil err with a 3xx-5xx status yields the generic envelope
// for that status; any status outside 200-599 is an unexpected fault. A fault with a
// business code yields 422 with that code; a fault of a classified kind
// yields its kind's status; anything else is logged once and yields 500
// without exposing the cause.
//
// Handle returns false, and does nothing else, when ctx is already done.
func (t *Translator) Handle(ctx context.Context, req RequestInfo, resp Response, err error) (out Outcome, ok bool) {
	if ctx.Err() != nil {
		return Outcome{}, false
	}
	defer func() {
		if rec := recover(); rec != nil {
			out, ok = fallbackOutcome(), true
			t.observe(req, out)
		}
	}()

	out = t.translate(req, resp, err)
	t.observe(req, out)
	return out, true
}

// InvokeFunc is an inner handler run by Invoke.
type InvokeFunc func(ctx context.Context) (Response, error)

// Invoke runs fn and translates its result. A panic in fn is treated as an
// unexpected fault, except http.ErrAbortHandler which is re-raised.
func (t *Translator) Invoke(ctx context.Context, req RequestInfo, fn InvokeFunc) (Outcome, bool) {
	resp, err := call(ctx, fn)
	return t.Handle(ctx, req, resp, err)
}

func call(ctx context.Context, fn InvokeFunc) (resp Response, err error) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		if rec == http.ErrAbortHandler {
			panic(rec)
		}
		if e, ok := rec.(error); ok {
			err = Unexpected(fmt.Errorf("panic: %w", e))
			return
		}
		err = Unexpected(fmt.Errorf("panic: %v", rec))
	}()
	return fn(ctx)
}

func (t *Translator) translate(req RequestInfo, resp Response, err error) Outcome {
	if err == nil {
		status := resp.Status
		if status == 0 {
			status = http.StatusOK
		}
		if status < 200 || status > 599 {
			return t.unexpected(req, fmt.Errorf("invalid response status %d", status))
		}
		class := ClassSuccess
		if status > 299 {
			class = ClassStatus
		}
		if !bodyAllowed(status) {
			return Outcome{Status: status, Class: class}
		}
		if class == ClassStatus {
			return t.envelope(status, StatusEnvelope(status), ClassStatus)
		}
		if resp.Body == nil {
			return Outcome{Status: status, Class: ClassSuccess}
		}
		payload, encErr := t.marshal(resp.Body)
		if encErr != nil {
			return t.unexpected(req, fmt.Errorf("encode response body: %w", encErr))
		}
		return Outcome{
			Status:      status,
			Body:        resp.Body,
			Class:       ClassSuccess,
			payload:     payload,
			contentType: t.codec.ContentType(),
		}
	}

	if code := t.codeOf(err); code != "" {
		return t.envelope(http.StatusUnprocessableEntity, NewEnvelope(code, messageOf(err)), ClassBusiness)
	}

	var f *Fault
	if errors.As(err, &f) && f != nil && f.Kind != KindUnexpected {
		status := f.Status()
		out := t.envelope(status, StatusEnvelope(status), ClassClassified)
		if out.Class == ClassClassified {
			out.retryAfter = f.RetryAfter
		}
		return out
	}

	return t.unexpected(req, err)
}

func (t *Translator) unexpected(req RequestInfo, cause error) Outcome {
	ev := t.logger.Error().Str(zerolog.ErrorFieldName, cause.Error()).Str("component", req.Component)
	if req.TraceID != "" {
		ev = ev.Str("trace_id", req.TraceID)
	}
	var f *Fault
	if errors.As(cause, &f) && f != nil {
		ev = ev.Object("fault", f)
	}
	ev.Msg("critical fault while processing request")

	status := http.StatusInternalServerError
	return t.envelope(status, StatusEnvelope(status), ClassUnexpected)
}

// marshal encodes a handler body, turning an encoder panic into an error.
func (t *Translator) marshal(v any) (payload []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return t.codec.Marshal(v)
}

func (t *Translator) envelope(status int, env Envelope, class Class) Outcome {
	payload, err := t.codec.Marshal(env)
	if err != nil {
		return fallbackOutcome()
	}
	return Outcome{
		Status:      status,
		Body:        env,
		Class:       class,
		payload:     payload,
		contentType: t.codec.ContentType(),
	}
}

func (t *Translator) observe(req RequestInfo, out Outcome) {
	if t.observer == nil {
		return
	}
	defer func() { _ = recover() }()
	t.observer.ObserveOutcome(req.Component, out.Class, out.Status)
}

func messageOf(err error) string {
	var f *Fault
	if errors.As(err, &f) && f != nil {
		return f.Message
	}
	return err.Error()
}
