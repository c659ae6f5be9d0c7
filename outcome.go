package faultenvelope

import (
	"net/http"
	"strconv"
	"time"
)

// Class records which translation branch produced an Outcome.
type Class int

const (
	// ClassSuccess is a 2xx response whose body encoded cleanly.
	ClassSuccess Class = iota
	// ClassStatus is a non-2xx status set by the handler without a fault.
	ClassStatus
	// ClassBusiness is a fault carrying a business code (422).
	ClassBusiness
	// ClassClassified is a fault of a kind with its own status.
	ClassClassified
	// ClassUnexpected is an unclassified fault (500, logged).
	ClassUnexpected
	// ClassFallback is the last-resort 500 written when translation itself failed.
	ClassFallback
)

var classNames = [...]string{
	ClassSuccess:    "success",
	ClassStatus:     "status",
	ClassBusiness:   "business",
	ClassClassified: "classified",
	ClassUnexpected: "unexpected",
	ClassFallback:   "fallback",
}

func (c Class) String() string {
	if c >= 0 && int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}

// Response is what an inner handler returns on success. A zero Status means
// 200.
type Response struct {
	Status int
	Body   any
}

// OK returns a 200 response carrying body.
func OK(body any) Response { return Response{Status: http.StatusOK, Body: body} }

// Respond returns a response with an explicit status.
func Respond(status int, body any) Response { return Response{Status: status, Body: body} }

// Outcome is the translator's result: a status plus a body that has already
// been encoded, so writing it cannot fail halfway through on encoding.
type Outcome struct {
	Status int
	// Body is the value that was encoded: the handler's body on success, an
	// Envelope otherwise. It is nil for the fallback outcome.
	Body  any
	Class Class

	payload     []byte
	contentType string
	retryAfter  time.Duration
}

// Payload returns the encoded body. It is empty for a success without body.
func (o Outcome) Payload() []byte { return o.payload }

// ContentType returns the media type of the payload.
func (o Outcome) ContentType() string { return o.contentType }

// RetryAfter returns the retry advice carried by a classified fault.
func (o Outcome) RetryAfter() time.Duration { return o.retryAfter }

// Write sends the outcome on w.
func (o Outcome) Write(w http.ResponseWriter) error {
	status := o.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if o.retryAfter > 0 {
		seconds := int(o.retryAfter.Seconds())
		if seconds < 1 {
			seconds = 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}
	if len(o.payload) > 0 && o.contentType != "" {
		w.Header().Set("Content-Type", o.contentType)
	}
	w.WriteHeader(status)
	if len(o.payload) == 0 {
		return nil
	}
	_, err := w.Write(o.payload)
	return err
}

// bodyAllowed reports whether a response with status may carry a body.
func bodyAllowed(status int) bool {
	return status != http.StatusNoContent && status != http.StatusNotModified
}

func fallbackOutcome() Outcome {
	return Outcome{
		Status:      http.StatusInternalServerError,
		Class:       ClassFallback,
		payload:     fallbackPayload,
		contentType: "application/json",
	}
}
