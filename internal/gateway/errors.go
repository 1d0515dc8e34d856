package gateway

import "net/http"

// Error is a failure with an HTTP status attached. Handlers raise these
// so the error middleware can map them onto the response envelope; any
// other error defaults to 500 with a generic message.
type Error struct {
	Status  int
	Message string
	// Fields carries field-level validation detail for 400 responses.
	Fields map[string]string
	cause  error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// WithCause attaches the underlying error for logging without exposing
// it in the response.
func (e *Error) WithCause(cause error) *Error {
	e.cause = cause
	return e
}

// NotFound builds a 404 failure.
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// MethodNotAllowed builds a 405 failure.
func MethodNotAllowed(message string) *Error {
	return &Error{Status: http.StatusMethodNotAllowed, Message: message}
}

// Invalid builds a 400 failure, optionally with field-level detail.
func Invalid(message string, fields map[string]string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message, Fields: fields}
}

// Conflict builds a 409 failure.
func Conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Message: message}
}

// Internal builds a 500 failure with a caller-safe message.
func Internal(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message}
}
