package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidInput       = errors.New("invalid_input")
)

// AuthError reports a token whose claims cannot identify the caller.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

func authError(msg string) error { return &AuthError{Message: msg} }
