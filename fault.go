// Package faultenvelope turns every fault that reaches an HTTP service
// boundary into exactly one well-formed JSON response.
//
// Faults are classified by Kind, each with a fixed status code. A Translator
// decides the status and body for a handler result, logs unexpected faults
// once, and never lets a partially encoded body escape. The wire shape is
// always:
//
//	{"error":{"message":"...","code":"..."}}
package faultenvelope

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Fault is an error raised by business logic at the point a failure is
// detected. It is consumed once by the Translator.
type Fault struct {
	Kind Kind
	// Code is an optional machine-readable business code such as
	// "ITEM_NOT_AVAILABLE". A non-empty code marks a validated business
	// rejection.
	Code    string
	Message string
	Cause   error
	// RetryAfter, when positive, is sent as the Retry-After header on
	// classified responses (rate limiting, maintenance windows).
	RetryAfter time.Duration
}

func (f *Fault) Error() string {
	if f == nil {
		return "<nil>"
	}
	prefix := f.Kind.String()
	if f.Code != "" {
		prefix = f.Code
	}
	if f.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", prefix, f.Message, f.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, f.Message)
}

func (f *Fault) Unwrap() error { return f.Cause }

// Status returns the HTTP status of the fault's kind.
func (f *Fault) Status() int { return StatusFor(f.Kind) }

// New creates a Fault of the given kind. An empty message uses the kind's
// default message.
func New(kind Kind, msg string) *Fault {
	if msg == "" {
		msg = DefaultMessage(kind)
	}
	return &Fault{Kind: kind, Message: msg}
}

// Newf creates a Fault with a formatted message.
func Newf(kind Kind, format string, args ...any) *Fault {
	return New(kind, fmt.Sprintf(format, args...))
}

// Wrap creates a Fault that wraps an underlying cause.
func Wrap(kind Kind, msg string, cause error) *Fault {
	f := New(kind, msg)
	f.Cause = cause
	return f
}

// Wrapf creates a Fault with a formatted message that wraps cause.
func Wrapf(kind Kind, format string, cause error, args ...any) *Fault {
	return Wrap(kind, fmt.Sprintf(format, args...), cause)
}

// WithCode returns a copy of f carrying the business code.
func (f *Fault) WithCode(code string) *Fault {
	c := *f
	c.Code = code
	return &c
}

// WithCause returns a copy of f wrapping cause.
func (f *Fault) WithCause(cause error) *Fault {
	c := *f
	c.Cause = cause
	return &c
}

// WithRetryAfter returns a copy of f advising clients to retry after d.
func (f *Fault) WithRetryAfter(d time.Duration) *Fault {
	c := *f
	c.RetryAfter = d
	return &c
}

// MarshalZerologObject lets a Fault be logged with zerolog's Object.
func (f *Fault) MarshalZerologObject(e *zerolog.Event) {
	if f == nil {
		return
	}
	e.Str("kind", f.Kind.String()).
		Int("status", f.Status()).
		Str("message", f.Message)
	if f.Code != "" {
		e.Str("code", f.Code)
	}
	if f.RetryAfter > 0 {
		e.Dur("retry_after", f.RetryAfter)
	}
	if f.Cause != nil {
		e.AnErr("cause", f.Cause)
	}
}

// IsKind reports whether err's chain contains a Fault of the given kind.
func IsKind(err error, kind Kind) bool {
	var f *Fault
	if errors.As(err, &f) && f != nil {
		return f.Kind == kind
	}
	return false
}

// CodeOf returns the business code of the first Fault in err's chain, or ""
// if there is none. A nil *Fault has no code.
func CodeOf(err error) string {
	var f *Fault
	if errors.As(err, &f) && f != nil {
		return f.Code
	}
	return ""
}

// KindOf returns the kind of the first Fault in err's chain. Errors that are
// not faults are KindUnexpected.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) && f != nil {
		return f.Kind
	}
	return KindUnexpected
}
