// Package jsonrpc dispatches JSON-RPC 2.0 calls with named parameters to the
// methods of a Go value.
//
// # Basic Usage
//
// Declare the exposed methods, create a Dispatcher and hand it raw requests:
//
//	d, err := jsonrpc.New(&API{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	resp, err := d.Handle(ctx, []byte(`{"jsonrpc":"2.0","method":"add","params":{"a":2,"b":3},"id":"1"}`))
//
// # Exposing Methods
//
// A handler lists its callable methods in RPCMethods. Parameters are declared
// in the same order as the Go method takes them; this order, not the order
// of keys in the request, determines the arguments passed:
//
//	type API struct{}
//
//	func (a *API) RPCMethods() []jsonrpc.MethodDecl {
//	    return []jsonrpc.MethodDecl{
//	        jsonrpc.Expose("add",
//	            jsonrpc.Required("a", jsonrpc.KindInt),
//	            jsonrpc.Optional("b", jsonrpc.KindInt, 1),
//	        ),
//	    }
//	}
//
//	func (a *API) Add(ctx context.Context, x, y int) (int, error) {
//	    return x + y, nil
//	}
//
// The Go method defaults to the RPC name with an upper-case first letter; use
// MethodDecl.As to bind a different one. Exported methods that are not
// declared cannot be called.
//
// # Method Signatures
//
// Methods may take a leading context.Context, followed by one argument per
// declared parameter:
//
//	string  -> KindString
//	int, int64 -> KindInt
//	float64, float32 -> KindFloat
//	bool    -> KindBool
//	[]any   -> KindArray
//	map[string]any -> KindObject
//	any     -> any kind
//
// They may return (result, error), result, error or nothing. Signatures are
// checked once, by Discover; mismatches are reported as ErrDiscovery.
//
// # Validation
//
// Every supplied name must be declared (ErrUnknownParameter), every required
// parameter must be present (ErrMissingRequiredParameter) and every supplied
// value must have exactly the declared kind (ErrTypeMismatch). There is no
// coercion: "2" is not an int. Omitted optional parameters take their
// declared default.
//
// # Error Handling
//
// All failures are returned as *Error values carrying a numeric code:
//   - CodeMethodNotFound (1)
//   - CodeUnknownParameter (2)
//   - CodeMissingRequiredParameter (3)
//   - CodeTypeMismatch (4)
//   - CodeMalformedEnvelope (5)
//   - CodeMissingField (6)
//   - CodeDiscovery (7)
//   - CodeInternalError (8)
//
// Test for a kind with errors.Is against the Err* sentinels, and use Code to
// read the code of any error produced by this package or package envelope.
// Errors returned by handler methods are passed through unchanged.
package jsonrpc
