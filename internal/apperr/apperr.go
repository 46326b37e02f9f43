// Package apperr is the error taxonomy shared by every module. Services and
// repositories return *Error values; handlers translate them into an HTTP
// status and a JSON body with an "error" field.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind uint8

const (
	// Invalid marks missing or malformed request fields.
	Invalid Kind = iota + 1
	// Unauthenticated marks a missing, malformed, or expired token.
	Unauthenticated
	// Forbidden marks a role policy violation.
	Forbidden
	// NotFound marks a referenced entity that does not exist.
	NotFound
	// Conflict marks a state-machine violation, e.g. delivering a
	// completed restock order.
	Conflict
	// Generation marks a failure to obtain SQL from the language model.
	Generation
	// QueryFailed marks a failure executing generated SQL.
	QueryFailed
	// TimedOut marks an expired remote call deadline.
	TimedOut
	// Store marks an underlying datastore failure.
	Store
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an error of the given kind with a caller-facing message.
func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap keeps the underlying cause for logs while exposing message to callers.
func Wrap(kind Kind, message string, err error) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of err, or 0 when err carries no *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Message returns the caller-facing message without the wrapped cause.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Status maps an error to its HTTP status code. Unclassified errors are
// treated as datastore failures.
func Status(err error) int {
	switch KindOf(err) {
	case Invalid:
		return http.StatusBadRequest
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
