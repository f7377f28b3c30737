package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// AuthenticationError signals bad credentials or a missing session.
// The message is intentionally generic: callers must not be able to tell
// which factor failed.
type AuthenticationError struct {
	message string
}

func NewAuthenticationError(msg ...string) error {
	m := "authentication failed"
	if len(msg) > 0 {
		m = msg[0]
	}
	return &AuthenticationError{message: m}
}

func (err AuthenticationError) Error() string {
	return err.message
}

// ConflictError signals a write rejected by a store uniqueness constraint,
// e.g. a duplicate quiz attempt for the same (student, quiz).
type ConflictError struct {
	message string
}

func NewConflictError(msg string) error {
	return &ConflictError{message: msg}
}

func (err ConflictError) Error() string {
	return err.message
}

// NotFoundError signals a reference to an unknown or non-active record.
type NotFoundError struct {
	message string
}

func NewNotFoundError(msg string) error {
	return &NotFoundError{message: msg}
}

func (err NotFoundError) Error() string {
	return err.message
}

// PersistenceError wraps a low-level store failure not classified above.
// The cause is for logs only and is never echoed to callers.
type PersistenceError struct {
	Err     error
	message string
}

func NewPersistenceError(err error, msg string) error {
	return &PersistenceError{Err: err, message: msg}
}

func (err PersistenceError) Error() string {
	if err.Err == nil {
		return err.message
	}
	return err.message + ": " + err.Err.Error()
}

func (err PersistenceError) Unwrap() error {
	return err.Err
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
