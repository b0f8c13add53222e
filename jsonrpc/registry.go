package jsonrpc

import (
	"context"
	"maps"
	"reflect"
	"sync"
	"unicode"
	"unicode/utf8"
)

var (
	contextType = reflect.TypeFor[context.Context]()
	errorType   = reflect.TypeFor[error]()
	anySlice    = reflect.TypeFor[[]any]()
	anyMap      = reflect.TypeFor[map[string]any]()
)

// descriptorCache holds discovery results keyed by handler type. Entries are
// never modified after insertion.
var descriptorCache sync.Map // reflect.Type -> map[string]*MethodDescriptor

// Discover builds the descriptors of every method h exposes, keyed by RPC
// name. Results are cached per handler type; the returned map is a fresh copy
// that callers may modify, but the descriptors themselves are shared and
// immutable.
//
// Discover fails with an ErrDiscovery error when a declaration cannot be
// matched against the handler's Go methods.
func Discover(h Handler) (map[string]*MethodDescriptor, error) {
	if h == nil {
		return nil, discoveryError("", "nil handler")
	}
	rv := reflect.ValueOf(h)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, discoveryError("", "nil %s handler", rv.Type())
	}

	typ := rv.Type()
	if cached, ok := descriptorCache.Load(typ); ok {
		return maps.Clone(cached.(map[string]*MethodDescriptor)), nil
	}

	methods, err := describeHandler(typ, h.RPCMethods())
	if err != nil {
		return nil, err
	}
	actual, _ := descriptorCache.LoadOrStore(typ, methods)
	return maps.Clone(actual.(map[string]*MethodDescriptor)), nil
}

func describeHandler(typ reflect.Type, decls []MethodDecl) (map[string]*MethodDescriptor, error) {
	methods := make(map[string]*MethodDescriptor, len(decls))
	for _, decl := range decls {
		if decl.Name == "" {
			return nil, discoveryError("", "empty method name on %s", typ)
		}
		if _, dup := methods[decl.Name]; dup {
			return nil, discoveryError(decl.Name, "declared twice")
		}

		goName := decl.GoName
		if goName == "" {
			goName = exportedName(decl.Name)
		}
		// MethodByName only sees exported methods.
		method, ok := typ.MethodByName(goName)
		if !ok {
			return nil, discoveryError(decl.Name, "%s has no exported method %s", typ, goName)
		}

		desc, err := describeMethod(decl, method)
		if err != nil {
			return nil, err
		}
		methods[decl.Name] = desc
	}
	return methods, nil
}

// describeMethod matches a declaration against the Go method signature:
//
//	func(recv, [ctx context.Context,] args...) [result] [error]
func describeMethod(decl MethodDecl, method reflect.Method) (*MethodDescriptor, error) {
	ft := method.Type
	if ft.IsVariadic() {
		return nil, discoveryError(decl.Name, "variadic method %s is not supported", method.Name)
	}

	// In(0) is the receiver.
	first := 1
	hasCtx := ft.NumIn() > 1 && ft.In(1) == contextType
	if hasCtx {
		first = 2
	}
	if got := ft.NumIn() - first; got != len(decl.Params) {
		return nil, discoveryError(decl.Name, "declares %d parameters but %s takes %d", len(decl.Params), method.Name, got)
	}

	desc := &MethodDescriptor{
		name:     decl.Name,
		params:   make([]ParamDescriptor, len(decl.Params)),
		declared: make(map[string]struct{}, len(decl.Params)),
		index:    method.Index,
		hasCtx:   hasCtx,
		argTypes: make([]reflect.Type, len(decl.Params)),
	}

	for i, p := range decl.Params {
		if p.Name == "" {
			return nil, discoveryError(decl.Name, "parameter %d has no name", i)
		}
		if _, dup := desc.declared[p.Name]; dup {
			return nil, discoveryError(decl.Name, "parameter (%s) declared twice", p.Name)
		}
		if p.Type == KindInvalid || p.Type == KindNull || p.Type > KindObject {
			return nil, discoveryError(decl.Name, "parameter (%s) has unusable type %s", p.Name, p.Type)
		}

		argType := ft.In(first + i)
		if !acceptsKind(argType, p.Type) {
			return nil, discoveryError(decl.Name, "parameter (%s) declared %s cannot be passed as %s", p.Name, p.Type, argType)
		}

		if !p.Optional && p.Default != nil {
			return nil, discoveryError(decl.Name, "required parameter (%s) has a default", p.Name)
		}
		if p.Optional && p.Default != nil {
			if k := KindOf(p.Default); k != p.Type {
				return nil, discoveryError(decl.Name, "default of parameter (%s) must be %s, got %s", p.Name, p.Type, k)
			}
			if _, ok := convertArg(p.Default, argType); !ok {
				return nil, discoveryError(decl.Name, "default of parameter (%s) does not fit %s", p.Name, argType)
			}
		}

		p.Default = cloneValue(p.Default)
		desc.params[i] = p
		desc.declared[p.Name] = struct{}{}
		desc.argTypes[i] = argType
	}

	switch {
	case ft.NumOut() == 0:
		desc.result = resultNone
	case ft.NumOut() == 1 && ft.Out(0) == errorType:
		desc.result = resultError
	case ft.NumOut() == 1:
		desc.result = resultValue
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
		desc.result = resultValueError
	default:
		return nil, discoveryError(decl.Name, "%s must return (result, error), result, error or nothing", method.Name)
	}
	return desc, nil
}

// acceptsKind reports whether values of kind k can be passed as t.
func acceptsKind(t reflect.Type, k Kind) bool {
	if t.Kind() == reflect.Interface && t.NumMethod() == 0 {
		return true
	}
	switch k {
	case KindString:
		return t.Kind() == reflect.String
	case KindInt:
		return t.Kind() == reflect.Int || t.Kind() == reflect.Int64
	case KindFloat:
		return t.Kind() == reflect.Float64 || t.Kind() == reflect.Float32
	case KindBool:
		return t.Kind() == reflect.Bool
	case KindArray:
		return t == anySlice
	case KindObject:
		return t == anyMap
	}
	return false
}

func exportedName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}
