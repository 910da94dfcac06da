package domain

import (
	"context"
	"errors"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrNotFound             = errors.New("order not found")
	ErrDuplicateOrderNumber = errors.New("duplicate order number")
	ErrInvalidTransition    = errors.New("status transition not allowed")
)

// ValidationError carries the client-facing message of a rejected request.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func Invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// Kind classifies err for transport mapping and logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""

	case errors.Is(err, ErrValidation):
		return "validation"

	case errors.Is(err, ErrNotFound):
		return "not_found"

	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"

	case errors.Is(err, ErrDuplicateOrderNumber):
		return "duplicate"

	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"

	case errors.Is(err, context.Canceled):
		return "canceled"

	default:
		return "internal"
	}
}

// Message returns the text shown to API callers. Validation errors expose
// their own message; everything else exposes the wrapped error chain.
func Message(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	if errors.Is(err, ErrNotFound) {
		return "Order not found"
	}
	return err.Error()
}
