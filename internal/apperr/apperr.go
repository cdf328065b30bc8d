// Package apperr defines the typed application error that flows from the
// service layer to the HTTP terminal error handler.
//
// An *Error carries the HTTP status to answer with, a client-safe message and
// optional structured details. The wrapped Cause is for server-side logging
// only and is never serialized.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the canonical typed error of the application.
type Error struct {
	// Status is the HTTP status code the error translates to.
	Status int `json:"-"`
	// Message is safe to show to clients.
	Message string `json:"error"`
	// Details carries structured, client-safe context (e.g. field violations).
	Details any `json:"details,omitempty"`
	// Cause is the underlying error. Logged, never sent.
	Cause error `json:"-"`
}

// Error returns the client-safe message, with the cause appended when present.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the cause to errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// Is matches another *Error with the same status and message, so that
// sentinel values keep matching after being wrapped with a cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Status == t.Status && e.Message == t.Message
}

// WithCause returns a copy of e that wraps cause.
func (e *Error) WithCause(cause error) *Error {
	cp := *e
	cp.Cause = cause
	return &cp
}

// New builds a typed error with an explicit status.
func New(status int, msg string) *Error {
	return &Error{Status: status, Message: msg}
}

// Validation builds a 400 error carrying field-level details.
func Validation(details any) *Error {
	return &Error{Status: http.StatusBadRequest, Message: "ValidationError", Details: details}
}

// NotFound builds a 404 error with a domain message.
func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

// Conflict builds a 409 error, used for store constraint violations.
func Conflict(msg string) *Error {
	return &Error{Status: http.StatusConflict, Message: msg}
}

// Internal builds an opaque 500 error. cause is kept for logs.
func Internal(msg string, cause error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: msg, Cause: cause}
}

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// StatusOf returns the HTTP status for err: the typed status when err is (or
// wraps) an *Error, 500 otherwise.
func StatusOf(err error) int {
	if ae, ok := As(err); ok && ae.Status > 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}
