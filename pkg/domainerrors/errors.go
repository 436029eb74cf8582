// Package domainerrors defines the error vocabulary services use at their
// boundary. Infrastructure packages return pkg/platform/sentinel errors;
// services translate those into coded domain errors that the HTTP layer can
// render without knowing where they came from.
package domainerrors

import "fmt"

// Code identifies the class of a domain error.
type Code string

const (
	CodeBadRequest   Code = "bad_request"
	CodeValidation   Code = "validation_error"
	CodeUnauthorized Code = "unauthorized"
	CodeNotFound     Code = "not_found"
	CodeUnavailable  Code = "unavailable"
	CodeInternal     Code = "internal_error"
)

// Error is a coded domain error safe to surface to clients. The message is
// client-facing; wrap the underlying cause with Wrap when it matters for logs.
type Error struct {
	Code    Code
	Message string
	cause   error
}

// New builds a domain error with a client-facing message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap builds a domain error that keeps the underlying cause for errors.Is/As.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }
