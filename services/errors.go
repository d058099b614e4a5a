package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for the service-layer taxonomy. Handlers translate them into
// HTTP statuses with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Error carries a caller-facing message alongside the taxonomy sentinel it
// unwraps to, so err.Error() reads cleanly in the JSON {message} body.
type Error struct {
	kind    error
	message string
}

func (e *Error) Error() string { return e.message }

func (e *Error) Unwrap() error { return e.kind }

func notFoundf(format string, args ...any) error {
	return &Error{kind: ErrNotFound, message: fmt.Sprintf(format, args...)}
}

func forbiddenf(format string, args ...any) error {
	return &Error{kind: ErrForbidden, message: fmt.Sprintf(format, args...)}
}

func invalidInputf(format string, args ...any) error {
	return &Error{kind: ErrInvalidInput, message: fmt.Sprintf(format, args...)}
}

func serviceErrorf(kind error, format string, args ...any) error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...)}
}
