package envelope

import (
	"errors"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/go-cmp/cmp"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"json", "json", true},
		{"CBOR", "cbor", true},
		{" json ", "json", true},
		{"xml", "", false},
	}
	for _, tt := range tests {
		c, ok := Lookup(tt.name)
		if ok != tt.wantOK || c.Name() != tt.want {
			t.Errorf("Lookup(%q) = %q, %v; want %q, %v", tt.name, c.Name(), ok, tt.want, tt.wantOK)
		}
	}
}

func TestCBORRoundTrip(t *testing.T) {
	req := &Envelope{
		JSONRPC: "2.0",
		Method:  "testMethod",
		Params: map[string]any{
			"varStr":   "test",
			"varArray": []any{1, 2},
			"varInt":   2,
			"varBool":  false,
			"nested":   map[string]any{"k": -1},
		},
		ID: "abc",
	}

	raw, err := CBOR.Encode(req)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := CBOR.Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := &Envelope{
		JSONRPC: "2.0",
		Method:  "testMethod",
		Params: map[string]any{
			"varStr":   "test",
			"varArray": []any{int64(1), int64(2)},
			"varInt":   int64(2),
			"varBool":  false,
			"nested":   map[string]any{"k": int64(-1)},
		},
		ID: "abc",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CBOR round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCBORMissingField(t *testing.T) {
	raw, err := cbor.Marshal(map[string]any{"jsonrpc": "2.0", "method": "m", "params": map[string]any{}})
	if err != nil {
		t.Fatal(err)
	}
	_, err = CBOR.Parse(raw)
	var ee *Error
	if !errors.As(err, &ee) || ee.Code != CodeMissingField || ee.Name != "id" {
		t.Errorf("got %v, want missing field id", err)
	}
}

func TestCBORNonStringKeys(t *testing.T) {
	raw, err := cbor.Marshal(map[int]any{1: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := CBOR.Parse(raw); !errors.Is(err, ErrMalformedEnvelope) {
		t.Errorf("got %v, want ErrMalformedEnvelope", err)
	}
}

func TestCustomCodec(t *testing.T) {
	called := false
	c := NewCodec("custom", func(v any) ([]byte, error) {
		called = true
		return JSON.encode(v)
	}, unmarshalJSON)

	env, err := c.Parse([]byte(`{"jsonrpc":"2.0","method":"m","params":{},"id":"1"}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := c.Format(true, env); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !called {
		t.Error("custom marshal was not used")
	}
}

func TestZeroCodec(t *testing.T) {
	var c Codec
	if _, err := c.Parse([]byte(`{}`)); !errors.Is(err, errCodecConfig) {
		t.Errorf("got %v, want errCodecConfig", err)
	}
	if _, err := c.Format(nil, &Envelope{}); !errors.Is(err, errCodecConfig) {
		t.Errorf("got %v, want errCodecConfig", err)
	}
}
