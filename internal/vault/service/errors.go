package service

import (
	"errors"
	"fmt"
)

var (
	ErrNoSession      = errors.New("no session")
	ErrSessionExpired = errors.New("session expired")
	ErrNotFound       = errors.New("not found")
)

// ErrorKind groups failures by how the caller should react to them.
type ErrorKind string

const (
	KindValidation     ErrorKind = "validation"
	KindAuthentication ErrorKind = "authentication"
	KindLockout        ErrorKind = "lockout"
	KindResource       ErrorKind = "resource"
	KindPersistence    ErrorKind = "persistence"
	KindNotFound       ErrorKind = "not_found"
)

// Error is the user-facing failure every service operation returns. Message
// is safe to show; Err carries the internal cause for logs.
type Error struct {
	Kind             ErrorKind
	Message          string
	RemainingMinutes int
	Err              error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// AsError extracts a *Error from err.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func validationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func authError(msg string) *Error {
	return &Error{Kind: KindAuthentication, Message: msg}
}

func persistenceError(msg string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: msg, Err: err}
}

func notFoundError(msg string, err error) *Error {
	return &Error{Kind: KindNotFound, Message: msg, Err: err}
}
