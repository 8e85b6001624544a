package service

import (
	"errors"
	"fmt"
)

// Kind classifies a failed collaborator call.
type Kind int

const (
	// KindUnknown is reported for errors that are not *Error.
	KindUnknown Kind = iota

	// KindUnauthorized means the credential was rejected on a task call (401).
	KindUnauthorized

	// KindRequestFailed covers transport errors and non-2xx responses.
	KindRequestFailed

	// KindValidation means input was rejected locally; no call was made.
	KindValidation

	// KindRejected is a structured auth failure such as bad credentials
	// or a duplicate account. Message carries the server's text.
	KindRejected
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindRequestFailed:
		return "request failed"
	case KindValidation:
		return "validation"
	case KindRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// ErrNoCredential is returned by a token source when nobody is signed in.
var ErrNoCredential = errors.New("not logged in")

// Error is the structured error returned by the remote clients.
type Error struct {
	Kind    Kind
	Op      string // e.g. "list tasks"
	Status  int    // HTTP status, 0 for transport or local errors
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	switch {
	case e.Op == "":
		return msg
	case e.Status != 0:
		return fmt.Sprintf("%s: %d %s", e.Op, e.Status, msg)
	default:
		return fmt.Sprintf("%s: %s", e.Op, msg)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or KindUnknown if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsUnauthorized reports whether err signals an invalid credential.
func IsUnauthorized(err error) bool {
	return KindOf(err) == KindUnauthorized
}

// Validation returns a KindValidation error.
func Validation(op, msg string) error {
	return &Error{Kind: KindValidation, Op: op, Message: msg}
}
