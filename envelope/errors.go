package envelope

import "errors"

const (
	CodeMalformedEnvelope = 5
	CodeMissingField      = 6
)

// Error is returned by Parse when a payload is not a usable request envelope.
//
// Errors compare equal under errors.Is when their codes match, so callers can
// test against ErrMalformedEnvelope or ErrMissingField.
type Error struct {
	Code    int
	Message string
	// Name is the missing field for CodeMissingField errors.
	Name  string
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return "envelope: error: <nil>"
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

var (
	ErrMalformedEnvelope = &Error{Code: CodeMalformedEnvelope, Message: "json format is not valid"}
	ErrMissingField      = &Error{Code: CodeMissingField, Message: "parameter not found"}
)

func malformed(message string, cause error) error {
	// Avoid double-wrapping.
	var ee *Error
	if errors.As(cause, &ee) {
		return cause
	}
	return &Error{Code: CodeMalformedEnvelope, Message: message, Cause: cause}
}

func missingField(name string) error {
	return &Error{Code: CodeMissingField, Message: "parameter (" + name + ") not found", Name: name}
}
