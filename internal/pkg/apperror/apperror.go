package apperror

import (
	"context"
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a top-level operation unwraps to exactly one of these.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrAlreadyProcessed  = errors.New("already processed")
	ErrUpstreamFailure   = errors.New("upstream failure")
)

// Error is a domain error carrying its kind and a caller-facing message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// New creates a domain error of the given kind.
func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Upstream wraps a storage or transport failure so it is distinguishable from an empty result.
func Upstream(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrUpstreamFailure, err)
}

// Code returns the wire code for the error kind.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "INVALID_INPUT"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrInvalidTransition):
		return "INVALID_TRANSITION"
	case errors.Is(err, ErrAlreadyProcessed):
		return "ALREADY_PROCESSED"
	case errors.Is(err, ErrUpstreamFailure), errors.Is(err, context.DeadlineExceeded):
		return "UPSTREAM_FAILURE"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}

// InvalidInput builds an InvalidInput error with a formatted message.
func InvalidInput(format string, args ...any) error {
	return New(ErrInvalidInput, fmt.Sprintf(format, args...))
}
