package jsonrpc

import "reflect"

// Handler is implemented by values whose methods are served by a Dispatcher.
//
// RPCMethods is the exposure marker: it lists every callable method together
// with its parameters in declaration order. Methods not listed are never
// reachable, whether or not they are exported.
type Handler interface {
	RPCMethods() []MethodDecl
}

// MethodDecl declares one exposed method.
type MethodDecl struct {
	// Name is the RPC method name.
	Name string
	// GoName is the Go method implementing Name. When empty it is Name with
	// its first letter upper-cased.
	GoName string
	Params []ParamDescriptor
}

// Expose declares an RPC method with the given parameters.
func Expose(name string, params ...ParamDescriptor) MethodDecl {
	return MethodDecl{Name: name, Params: params}
}

// As binds the declaration to the Go method goName.
func (d MethodDecl) As(goName string) MethodDecl {
	d.GoName = goName
	return d
}

// ParamDescriptor describes one method parameter.
type ParamDescriptor struct {
	Name     string `json:"name"`
	Type     Kind   `json:"type"`
	Optional bool   `json:"optional"`
	// Default is substituted when an optional parameter is omitted.
	Default any `json:"default,omitempty"`
}

// Required declares a parameter that callers must supply.
func Required(name string, kind Kind) ParamDescriptor {
	return ParamDescriptor{Name: name, Type: kind}
}

// Optional declares a parameter that takes def when omitted.
func Optional(name string, kind Kind, def any) ParamDescriptor {
	return ParamDescriptor{Name: name, Type: kind, Optional: true, Default: def}
}

type resultShape uint8

const (
	resultNone resultShape = iota
	resultValue
	resultError
	resultValueError
)

// MethodDescriptor is the immutable record of an exposed method, built once
// by Discover.
type MethodDescriptor struct {
	name   string
	params []ParamDescriptor
	// declared is the set of parameter names.
	declared map[string]struct{}

	index    int
	hasCtx   bool
	argTypes []reflect.Type
	result   resultShape
}

// Name returns the RPC method name.
func (m *MethodDescriptor) Name() string {
	return m.name
}

// Params returns a copy of the parameter list in declaration order.
func (m *MethodDescriptor) Params() []ParamDescriptor {
	out := make([]ParamDescriptor, len(m.params))
	for i, p := range m.params {
		p.Default = cloneValue(p.Default)
		out[i] = p
	}
	return out
}

// cloneValue deep-copies the container types produced by decoding so that
// handing a value out never exposes shared state.
func cloneValue(v any) any {
	switch v := v.(type) {
	case []any:
		if v == nil {
			return v
		}
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = cloneValue(elem)
		}
		return out
	case map[string]any:
		if v == nil {
			return v
		}
		out := make(map[string]any, len(v))
		for k, elem := range v {
			out[k] = cloneValue(elem)
		}
		return out
	}
	return v
}
