package jsonrpc

import (
	"errors"
	"fmt"

	"github.com/mnehpets/apirpc/envelope"
)

const (
	CodeMethodNotFound           = 1
	CodeUnknownParameter         = 2
	CodeMissingRequiredParameter = 3
	CodeTypeMismatch             = 4
	CodeMalformedEnvelope        = envelope.CodeMalformedEnvelope
	CodeMissingField             = envelope.CodeMissingField
	CodeDiscovery                = 7
	CodeInternalError            = 8
)

// Error is returned for every request the dispatcher rejects.
//
// Two Errors match under errors.Is when their codes are equal, so the
// exported sentinels can be used to test the kind of a failure while
// errors.As gives access to the details.
type Error struct {
	Code    int
	Message string
	// Name is the method or parameter the error refers to.
	Name string
	// Expected and Actual are set for CodeTypeMismatch.
	Expected Kind
	Actual   Kind
	Cause    error
}

func (e *Error) Error() string {
	if e == nil {
		return "jsonrpc: error: <nil>"
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t != nil && e != nil && t.Code == e.Code
}

// NewError creates an Error with the given code and message.
func NewError(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

var (
	ErrMethodNotFound           = NewError(CodeMethodNotFound, "method not defined")
	ErrUnknownParameter         = NewError(CodeUnknownParameter, "parameter not found")
	ErrMissingRequiredParameter = NewError(CodeMissingRequiredParameter, "required parameter not found")
	ErrTypeMismatch             = NewError(CodeTypeMismatch, "parameter type mismatch")
	ErrDiscovery                = NewError(CodeDiscovery, "method discovery failed")
	ErrInternal                 = NewError(CodeInternalError, "internal error")

	// The envelope errors are defined by the envelope package.
	ErrMalformedEnvelope = envelope.ErrMalformedEnvelope
	ErrMissingField      = envelope.ErrMissingField
)

// Code returns the numeric code carried by err, for errors produced by this
// package or by the envelope package.
func Code(err error) (int, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	var ee *envelope.Error
	if errors.As(err, &ee) {
		return ee.Code, true
	}
	return 0, false
}

func methodNotFound(name string) error {
	return &Error{Code: CodeMethodNotFound, Message: "method not defined: " + name, Name: name}
}

func unknownParameter(name string) error {
	return &Error{Code: CodeUnknownParameter, Message: fmt.Sprintf("parameter (%s) not found", name), Name: name}
}

func missingRequiredParameter(name string) error {
	return &Error{Code: CodeMissingRequiredParameter, Message: fmt.Sprintf("required parameter (%s) not found", name), Name: name}
}

func typeMismatch(name string, expected, actual Kind) error {
	return &Error{
		Code:     CodeTypeMismatch,
		Message:  fmt.Sprintf("parameter (%s) type must be (%s), got (%s)", name, expected, actual),
		Name:     name,
		Expected: expected,
		Actual:   actual,
	}
}

func overflow(name string, kind Kind) error {
	return &Error{
		Code:     CodeTypeMismatch,
		Message:  fmt.Sprintf("parameter (%s) value does not fit the method's %s type", name, kind),
		Name:     name,
		Expected: kind,
		Actual:   kind,
	}
}

func discoveryError(method, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if method != "" {
		msg = "method (" + method + "): " + msg
	}
	return &Error{Code: CodeDiscovery, Message: "jsonrpc: discover: " + msg, Name: method}
}

func internalError(method string, cause error) error {
	// Avoid double-wrapping.
	var e *Error
	if errors.As(cause, &e) {
		return cause
	}
	return &Error{Code: CodeInternalError, Message: "internal error in " + method, Name: method, Cause: cause}
}
