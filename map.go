package faultenvelope

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Reject creates a validated business rejection. The translator answers it
// with 422 and the given code, regardless of kind.
func Reject(code, msg string) *Fault {
	return New(KindUnprocessable, msg).WithCode(code)
}

// Rejectf is Reject with a formatted message.
func Rejectf(code, format string, args ...any) *Fault {
	return Reject(code, fmt.Sprintf(format, args...))
}

// BadRequest creates a bad request fault (400).
func BadRequest(msg string) *Fault { return New(KindBadRequest, msg) }

// Unauthorized creates an unauthorized fault (401).
func Unauthorized(msg string) *Fault { return New(KindUnauthorized, msg) }

// Forbidden creates a forbidden fault (403).
func Forbidden(msg string) *Fault { return New(KindForbidden, msg) }

// NotFound creates a not found fault (404).
func NotFound(msg string) *Fault { return New(KindNotFound, msg) }

// NotFoundf creates a not found fault with a formatted message.
func NotFoundf(format string, args ...any) *Fault { return Newf(KindNotFound, format, args...) }

// Conflict creates a conflict fault (409).
func Conflict(msg string) *Fault { return New(KindConflict, msg) }

// Gone creates a fault for a resource that no longer exists (410).
func Gone(msg string) *Fault { return New(KindGone, msg) }

// RateLimited creates a rate limit fault (429).
func RateLimited(msg string) *Fault { return New(KindRateLimited, msg) }

// Unavailable creates an unavailable fault (503).
func Unavailable(msg string) *Fault { return New(KindUnavailable, msg) }

// Timeout creates a timeout fault (504).
func Timeout(msg string) *Fault { return New(KindTimeout, msg) }

// Unexpected wraps cause as an unclassified fault (500).
func Unexpected(cause error) *Fault { return Wrap(KindUnexpected, "", cause) }

// From maps an arbitrary error into a *Fault.
// Existing faults are returned as is; context deadlines and network timeouts
// become KindTimeout; everything else is wrapped as KindUnexpected.
func From(err error) *Fault {
	if err == nil {
		return nil
	}

	var f *Fault
	if errors.As(err, &f) {
		return f
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Wrap(KindTimeout, "", err)
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return Wrap(KindTimeout, "", err)
	}

	return Unexpected(err)
}
