package jsonrpc

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"slices"

	"github.com/mnehpets/apirpc/envelope"
)

const logPrefix = "jsonrpc:dispatcher"

// Dispatcher validates named parameters and invokes the exposed methods of a
// single Handler.
//
// A Dispatcher is safe for concurrent use; its method table is read-only
// after New. The handler's own methods are responsible for their own
// synchronization.
type Dispatcher struct {
	receiver reflect.Value
	methods  map[string]*MethodDescriptor
	logger   *slog.Logger
	codec    envelope.Codec
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithCodec sets the envelope codec used by Handle. Defaults to envelope.JSON.
func WithCodec(c envelope.Codec) Option {
	return func(d *Dispatcher) {
		d.codec = c
	}
}

// New discovers the methods h exposes and returns a Dispatcher serving them.
func New(h Handler, opts ...Option) (*Dispatcher, error) {
	methods, err := Discover(h)
	if err != nil {
		return nil, err
	}
	d := &Dispatcher{
		receiver: reflect.ValueOf(h),
		methods:  methods,
		logger:   slog.Default(),
		codec:    envelope.JSON,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Resolve validates params for method and returns the arguments in the
// method's declared parameter order. params is not modified.
func (d *Dispatcher) Resolve(method string, params map[string]any) ([]any, error) {
	m, ok := d.methods[method]
	if !ok {
		return nil, methodNotFound(method)
	}
	return m.resolve(params)
}

// Invoke resolves params and calls method, returning its result unchanged.
//
// Errors returned by the method are passed through as is. A panic inside the
// method is recovered and reported as an ErrInternal error.
func (d *Dispatcher) Invoke(ctx context.Context, method string, params map[string]any) (any, error) {
	m, ok := d.methods[method]
	if !ok {
		d.logger.Debug(fmt.Sprintf("%s - method not found: %s", logPrefix, method))
		return nil, methodNotFound(method)
	}
	args, err := m.resolve(params)
	if err != nil {
		d.logger.Debug(fmt.Sprintf("%s - rejected %s: %v", logPrefix, method, err))
		return nil, err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	in := make([]reflect.Value, 0, len(args)+1)
	if m.hasCtx {
		in = append(in, reflect.ValueOf(&ctx).Elem())
	}
	for i, arg := range args {
		v, ok := convertArg(arg, m.argTypes[i])
		if !ok {
			return nil, overflow(m.params[i].Name, m.params[i].Type)
		}
		in = append(in, v)
	}

	d.logger.Debug(fmt.Sprintf("%s - invoke %s with %d args", logPrefix, method, len(args)))
	return d.call(m, in)
}

func (d *Dispatcher) call(m *MethodDescriptor, in []reflect.Value) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error(fmt.Sprintf("%s - panic in %s: %v", logPrefix, m.name, r))
			result = nil
			err = internalError(m.name, fmt.Errorf("panic: %v", r))
		}
	}()

	out := d.receiver.Method(m.index).Call(in)

	switch m.result {
	case resultValue:
		return out[0].Interface(), nil
	case resultError:
		return nil, asError(out[0])
	case resultValueError:
		if err := asError(out[1]); err != nil {
			return nil, err
		}
		return out[0].Interface(), nil
	}
	return nil, nil
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}
	return v.Interface().(error)
}

// Handle parses raw with the configured codec, invokes the requested method
// and encodes the response envelope.
func (d *Dispatcher) Handle(ctx context.Context, raw []byte) ([]byte, error) {
	req, err := d.codec.Parse(raw)
	if err != nil {
		return nil, err
	}
	result, err := d.Invoke(ctx, req.Method, req.Params)
	if err != nil {
		return nil, err
	}
	return d.codec.Format(result, req)
}

// Catalog returns the parameters of every exposed method, keyed by method
// name. The result is a copy.
func (d *Dispatcher) Catalog() map[string][]ParamDescriptor {
	out := make(map[string][]ParamDescriptor, len(d.methods))
	for name, m := range d.methods {
		out[name] = m.Params()
	}
	return out
}

// Methods returns the exposed method names in sorted order.
func (d *Dispatcher) Methods() []string {
	return slices.Sorted(maps.Keys(d.methods))
}
