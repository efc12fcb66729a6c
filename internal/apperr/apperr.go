// Package apperr defines the error kinds shared by the pipeline and the admin API.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks bad input shape or a policy ceiling; nothing was applied.
	ErrValidation = errors.New("validation error")
	// ErrInvalidTransition marks a review state machine misuse; nothing was applied.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrNotFound marks a missing record.
	ErrNotFound = errors.New("not found")
	// ErrPersistence marks an unavailable or failing store.
	ErrPersistence = errors.New("persistence error")
	// ErrPublish marks a serialization or artifact write failure.
	ErrPublish = errors.New("publish error")
)

// Error carries a kind sentinel, a message and an optional cause.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	case e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.Error()
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func Validation(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

func InvalidTransition(format string, args ...any) error {
	return &Error{Kind: ErrInvalidTransition, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Persistence wraps a store failure.
func Persistence(msg string, err error) error {
	return &Error{Kind: ErrPersistence, Msg: msg, Err: err}
}

// Publish wraps an artifact serialization or write failure.
func Publish(msg string, err error) error {
	return &Error{Kind: ErrPublish, Msg: msg, Err: err}
}
