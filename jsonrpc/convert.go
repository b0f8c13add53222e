package jsonrpc

import (
	"encoding/json"
	"math"
	"reflect"
)

// convertArg turns a resolved value into a reflect.Value of the Go parameter
// type t. It reports false when v cannot be represented as t, e.g. an integer
// that overflows. nil becomes the zero value of t.
func convertArg(v any, t reflect.Type) (reflect.Value, bool) {
	if v == nil {
		return reflect.Zero(t), true
	}
	rv := reflect.ValueOf(v)
	out := reflect.New(t).Elem()

	switch t.Kind() {
	case reflect.Interface:
		if !rv.Type().AssignableTo(t) {
			return reflect.Value{}, false
		}
		out.Set(rv)
	case reflect.String:
		if rv.Kind() != reflect.String {
			return reflect.Value{}, false
		}
		out.SetString(rv.String())
	case reflect.Bool:
		if rv.Kind() != reflect.Bool {
			return reflect.Value{}, false
		}
		out.SetBool(rv.Bool())
	case reflect.Int, reflect.Int64:
		n, ok := toInt64(v)
		if !ok || out.OverflowInt(n) {
			return reflect.Value{}, false
		}
		out.SetInt(n)
	case reflect.Float32, reflect.Float64:
		f, ok := toFloat64(v)
		if !ok || out.OverflowFloat(f) {
			return reflect.Value{}, false
		}
		out.SetFloat(f)
	case reflect.Slice:
		if s, ok := v.([]any); ok {
			out.Set(reflect.ValueOf(s))
			break
		}
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return reflect.Value{}, false
		}
		s := make([]any, rv.Len())
		for i := range s {
			s[i] = rv.Index(i).Interface()
		}
		out.Set(reflect.ValueOf(s))
	case reflect.Map:
		if m, ok := v.(map[string]any); ok {
			out.Set(reflect.ValueOf(m))
			break
		}
		if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
			return reflect.Value{}, false
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		out.Set(reflect.ValueOf(m))
	default:
		return reflect.Value{}, false
	}
	return out, true
}

func toInt64(v any) (int64, bool) {
	if n, ok := v.(json.Number); ok {
		i, err := n.Int64()
		return i, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
