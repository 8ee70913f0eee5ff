package errors

import (
	stdErrors "errors"
	"fmt"
)

// TransportError wraps a network, HTTP status or decode failure.
// The wrapped error is for logs only and must not be shown to users.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: unexpected status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a TransportError for the named operation.
func NewTransportError(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: err}
}

// NewStatusError creates a TransportError for a non-2xx response.
func NewStatusError(op string, statusCode int, body string) *TransportError {
	return &TransportError{Op: op, StatusCode: statusCode, Err: stdErrors.New(body)}
}

// IsTransportError reports whether err is a TransportError (even when wrapped).
func IsTransportError(err error) bool {
	var tErr *TransportError
	return stdErrors.As(err, &tErr)
}
