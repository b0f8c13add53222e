package jsonrpc

import (
	"encoding/json"
	"testing"
)

type namedString string

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want Kind
	}{
		{"nil", nil, KindNull},
		{"string", "test", KindString},
		{"numeric string", "2", KindString},
		{"named string", namedString("x"), KindString},
		{"int", 2, KindInt},
		{"int64", int64(2), KindInt},
		{"uint64", uint64(2), KindInt},
		{"float64", 2.0, KindFloat},
		{"float32", float32(1.5), KindFloat},
		{"json integer", json.Number("12"), KindInt},
		{"json float", json.Number("1.5"), KindFloat},
		{"json garbage", json.Number("x"), KindInvalid},
		{"bool", false, KindBool},
		{"any slice", []any{1, 2}, KindArray},
		{"nil any slice", []any(nil), KindArray},
		{"typed slice", []int{1}, KindArray},
		{"array", [2]string{"a", "b"}, KindArray},
		{"bytes", []byte("x"), KindInvalid},
		{"object", map[string]any{"a": 1}, KindObject},
		{"typed map", map[string]int{"a": 1}, KindObject},
		{"int keyed map", map[int]any{1: 1}, KindInvalid},
		{"struct", struct{}{}, KindInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.v); got != tt.want {
				t.Errorf("KindOf(%#v) = %s, want %s", tt.v, got, tt.want)
			}
		})
	}
}

func TestKindText(t *testing.T) {
	for k := KindInvalid; k <= KindObject; k++ {
		text, err := k.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d): %v", k, err)
		}
		var back Kind
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%s): %v", text, err)
		}
		if back != k {
			t.Errorf("got %s, want %s", back, k)
		}
	}

	if _, err := ParseKind("integer"); err == nil {
		t.Error("expected error for unknown kind name")
	}
	if got := Kind(99).String(); got != "kind(99)" {
		t.Errorf("got %q, want kind(99)", got)
	}
}
