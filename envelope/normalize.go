package envelope

import (
	"encoding/json"
	"fmt"
	"math"
)

// normalize rewrites decoded documents so that values look the same whichever
// codec produced them: integers become int64 (uint64 only when out of range),
// other numbers float64, and maps map[string]any.
func normalize(v any) (any, error) {
	switch v := v.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("number %s: %w", v, err)
		}
		return f, nil
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), nil
		}
		return v, nil
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			n, err := normalize(elem)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, elem := range v {
			n, err := normalize(elem)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, elem := range v {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("map key %v is not a string", k)
			}
			n, err := normalize(elem)
			if err != nil {
				return nil, err
			}
			out[key] = n
		}
		return out, nil
	}
	return v, nil
}
