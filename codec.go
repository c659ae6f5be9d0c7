package faultenvelope

import (
	"encoding/json"

	jsoniter "github.com/json-iterator/go"
)

// Codec encodes response bodies for the wire.
type Codec interface {
	Marshal(v any) ([]byte, error)
	ContentType() string
}

// JSON is the default codec, backed by encoding/json.
var JSON Codec = stdJSON{}

// JSONIter is a drop-in codec backed by json-iterator, configured to match
// encoding/json output.
var JSONIter Codec = iterJSON{api: jsoniter.ConfigCompatibleWithStandardLibrary}

type stdJSON struct{}

func (stdJSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }
func (stdJSON) ContentType() string           { return "application/json" }

type iterJSON struct{ api jsoniter.API }

func (c iterJSON) Marshal(v any) ([]byte, error) { return c.api.Marshal(v) }
func (iterJSON) ContentType() string             { return "application/json" }

// CodecByName resolves "json" or "jsoniter". Unknown names return false.
func CodecByName(name string) (Codec, bool) {
	switch name {
	case "", "json":
		return JSON, true
	case "jsoniter":
		return JSONIter, true
	default:
		return nil, false
	}
}
