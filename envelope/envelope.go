// Package envelope translates between raw JSON-RPC 2.0 payloads and the
// four-field request/response envelope used by the dispatcher.
//
// A request looks like:
//
//	{"jsonrpc":"2.0","method":"testMethod","params":{"varStr":"test"},"id":"a1"}
//
// The response produced by Format echoes jsonrpc, method and id, and carries
// the method result in params:
//
//	{"jsonrpc":"2.0","method":"testMethod","params":{"success":true},"id":"a1"}
//
// Parse rejects payloads that are not objects (ErrMalformedEnvelope) and
// envelopes lacking id, jsonrpc, method or params (ErrMissingField, checked in
// that order). A field holding null counts as absent.
package envelope

import (
	"errors"
	"fmt"
	"strconv"
)

// Version is the protocol version set by NewRequest.
const Version = "2.0"

// requiredFields lists envelope members in the order they are checked.
var requiredFields = []string{"id", "jsonrpc", "method", "params"}

// Envelope is a decoded request (or a response before encoding).
type Envelope struct {
	JSONRPC string
	Method  string
	Params  map[string]any
	// ID is opaque: a string or a number, echoed back unchanged.
	ID any
}

// wire is the serialized field order: jsonrpc, method, params, id.
type wire struct {
	JSONRPC string `json:"jsonrpc" cbor:"jsonrpc"`
	Method  string `json:"method" cbor:"method"`
	Params  any    `json:"params" cbor:"params"`
	ID      any    `json:"id" cbor:"id"`
}

// IDString renders the request id as a string. Numbers use their shortest
// decimal form.
func (e *Envelope) IDString() string {
	if e == nil {
		return ""
	}
	switch id := e.ID.(type) {
	case nil:
		return ""
	case string:
		return id
	case int64:
		return strconv.FormatInt(id, 10)
	case uint64:
		return strconv.FormatUint(id, 10)
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	}
	return fmt.Sprint(e.ID)
}

// NewRequest builds a client-side request envelope with a fresh id.
func NewRequest(method string, params map[string]any) *Envelope {
	if params == nil {
		params = map[string]any{}
	}
	return &Envelope{
		JSONRPC: Version,
		Method:  method,
		Params:  params,
		ID:      NewID(),
	}
}

// Parse decodes a JSON request envelope.
func Parse(raw []byte) (*Envelope, error) {
	return JSON.Parse(raw)
}

// Format encodes a JSON response envelope for req carrying result.
func Format(result any, req *Envelope) ([]byte, error) {
	return JSON.Format(result, req)
}

// Parse decodes a request envelope and checks its required fields.
func (c Codec) Parse(raw []byte) (*Envelope, error) {
	doc, err := c.decode(raw)
	if err != nil {
		if errors.Is(err, errCodecConfig) {
			return nil, err
		}
		return nil, malformed("json format is not valid", err)
	}
	doc, err = normalize(doc)
	if err != nil {
		return nil, malformed("json format is not valid", err)
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, malformed("json format is not valid", fmt.Errorf("payload is %T, not an object", doc))
	}

	for _, name := range requiredFields {
		if v, ok := obj[name]; !ok || v == nil {
			return nil, missingField(name)
		}
	}

	env := &Envelope{}
	switch id := obj["id"].(type) {
	case string, int64, uint64, float64:
		env.ID = id
	default:
		return nil, malformed("id must be a string or a number", nil)
	}
	if env.JSONRPC, ok = obj["jsonrpc"].(string); !ok {
		return nil, malformed("jsonrpc must be a string", nil)
	}
	if env.Method, ok = obj["method"].(string); !ok {
		return nil, malformed("method must be a string", nil)
	}
	switch params := obj["params"].(type) {
	case map[string]any:
		env.Params = params
	case []any:
		// Some encoders cannot tell an empty object from an empty list.
		if len(params) != 0 {
			return nil, malformed("params must be an object", nil)
		}
		env.Params = map[string]any{}
	default:
		return nil, malformed("params must be an object", nil)
	}
	return env, nil
}

// Format encodes a response for req, echoing its version, method and id and
// placing result in params.
func (c Codec) Format(result any, req *Envelope) ([]byte, error) {
	if req == nil {
		return nil, errors.New("envelope: format: nil request envelope")
	}
	return c.encode(wire{
		JSONRPC: req.JSONRPC,
		Method:  req.Method,
		Params:  result,
		ID:      req.ID,
	})
}

// Encode serializes a request envelope as-is.
func (c Codec) Encode(req *Envelope) ([]byte, error) {
	if req == nil {
		return nil, errors.New("envelope: encode: nil request envelope")
	}
	return c.Format(req.Params, req)
}
