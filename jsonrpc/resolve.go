package jsonrpc

import (
	"maps"
	"slices"
)

// resolve validates params against the descriptor and returns the argument
// list in declaration order.
//
// Unknown names are rejected before anything else. Declared parameters are
// then walked in order: a missing required parameter fails, a missing
// optional one takes a copy of its default (not type-checked), and a supplied
// value must have exactly the declared kind.
func (m *MethodDescriptor) resolve(params map[string]any) ([]any, error) {
	// Sorted so the reported name does not depend on map iteration order.
	for _, name := range slices.Sorted(maps.Keys(params)) {
		if _, ok := m.declared[name]; !ok {
			return nil, unknownParameter(name)
		}
	}

	pending := maps.Clone(params)
	args := make([]any, 0, len(m.params))
	for _, p := range m.params {
		v, ok := pending[p.Name]
		if !ok {
			if !p.Optional {
				return nil, missingRequiredParameter(p.Name)
			}
			args = append(args, cloneValue(p.Default))
			continue
		}
		if actual := KindOf(v); actual != p.Type {
			return nil, typeMismatch(p.Name, p.Type, actual)
		}
		args = append(args, v)
		delete(pending, p.Name)
	}
	return args, nil
}
