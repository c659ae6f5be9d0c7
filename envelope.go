package faultenvelope

import (
	"encoding/json"
	"strconv"
)

// ErrorBody is the inner object of an error envelope.
type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Envelope is the body of every non-success response. Error is omitted when
// nil, so a success body never carries an "error" field.
type Envelope struct {
	Error *ErrorBody `json:"error,omitempty"`
}

// NewEnvelope builds an envelope from a code and message.
func NewEnvelope(code, msg string) Envelope {
	return Envelope{Error: &ErrorBody{Message: msg, Code: code}}
}

// StatusEnvelope builds the generic envelope for a status: the code is the
// decimal status and the message its canonical name.
func StatusEnvelope(status int) Envelope {
	return NewEnvelope(strconv.Itoa(status), StatusName(status))
}

// DecodeEnvelope parses an error envelope from a response body.
func DecodeEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	err := json.Unmarshal(data, &env)
	return env, err
}

// fallbackPayload is written when the translator cannot produce anything
// better. It is pre-encoded so writing it cannot fail on encoding.
var fallbackPayload = []byte(`{"error":{"message":"InternalServerError","code":"500"}}`)
