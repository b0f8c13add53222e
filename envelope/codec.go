package envelope

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// Codec serializes envelopes with a pluggable marshal/unmarshal pair.
//
// The zero Codec is not usable; start from JSON, CBOR or NewCodec.
type Codec struct {
	name      string
	marshal   func(v any) ([]byte, error)
	unmarshal func(data []byte, v any) error
}

// NewCodec creates a Codec from a marshal and an unmarshal function.
//
// unmarshal is always called with a *any destination. Maps it produces must
// be keyed by string for Parse to accept the payload.
func NewCodec(name string, marshal func(v any) ([]byte, error), unmarshal func(data []byte, v any) error) Codec {
	return Codec{name: name, marshal: marshal, unmarshal: unmarshal}
}

var (
	// JSON is the default codec. Numbers are decoded without precision loss
	// and HTML characters are not escaped on output.
	JSON = NewCodec("json", marshalJSON, unmarshalJSON)

	// CBOR encodes envelopes as deterministic CBOR (RFC 8949 core
	// deterministic encoding).
	CBOR = NewCodec("cbor", marshalCBOR, unmarshalCBOR)
)

// Name returns the codec name, e.g. "json".
func (c Codec) Name() string {
	return c.name
}

// Lookup returns the built-in codec with the given name.
func Lookup(name string) (Codec, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return JSON, true
	case "cbor":
		return CBOR, true
	}
	return Codec{}, false
}

var errCodecConfig = errors.New("envelope: codec not configured")

func (c Codec) encode(v any) ([]byte, error) {
	if c.marshal == nil {
		return nil, errCodecConfig
	}
	return c.marshal(v)
}

func (c Codec) decode(data []byte) (any, error) {
	if c.unmarshal == nil {
		return nil, errCodecConfig
	}
	var doc any
	if err := c.unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	// json.Encoder appends a trailing newline.
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func unmarshalJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after top-level value")
	}
	return nil
}

var (
	cborEnc = mustEncMode(cbor.CoreDetEncOptions())
	cborDec = mustDecMode(cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	})
)

func mustEncMode(opts cbor.EncOptions) cbor.EncMode {
	em, err := opts.EncMode()
	if err != nil {
		panic("envelope: cbor encoder options: " + err.Error())
	}
	return em
}

func mustDecMode(opts cbor.DecOptions) cbor.DecMode {
	dm, err := opts.DecMode()
	if err != nil {
		panic("envelope: cbor decoder options: " + err.Error())
	}
	return dm
}

func marshalCBOR(v any) ([]byte, error) {
	return cborEnc.Marshal(v)
}

func unmarshalCBOR(data []byte, v any) error {
	return cborDec.Unmarshal(data, v)
}
