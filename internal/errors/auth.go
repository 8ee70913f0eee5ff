package errors

import stdErrors "errors"

// AuthError represents a rejected login or registration.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// NewAuthError creates an AuthError with the given message
func NewAuthError(message string) *AuthError {
	return &AuthError{Message: message}
}

// IsAuthError reports whether err is an AuthError (even when wrapped).
func IsAuthError(err error) bool {
	var authErr *AuthError
	return stdErrors.As(err, &authErr)
}
