package errors

import (
	"errors"
	"strings"
)

var (
	ErrValidation             = errors.New("validation failure")
	ErrNotFound               = errors.New("not found")
	ErrForbidden              = errors.New("forbidden")
	ErrConflict               = errors.New("conflict")
	ErrOrderCreationExhausted = errors.New("order number generation exhausted")
	ErrAlreadyExists          = errors.New("already exists")
	ErrInvalidCredentials     = errors.New("invalid credentials")
)

// Kind is a stable, client-facing classification of a failure.
type Kind string

const (
	KindValidation             Kind = "validation_failure"
	KindNotFound               Kind = "not_found"
	KindForbidden              Kind = "forbidden"
	KindConflict               Kind = "conflict"
	KindOrderCreationExhausted Kind = "order_creation_exhausted"
	KindUnauthorized           Kind = "unauthorized"
	KindUnexpected             Kind = "unexpected"
)

// KindOf classifies err. Unknown errors are reported as unexpected.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrConflict), errors.Is(err, ErrAlreadyExists):
		return KindConflict
	case errors.Is(err, ErrOrderCreationExhausted):
		return KindOrderCreationExhausted
	case errors.Is(err, ErrInvalidCredentials):
		return KindUnauthorized
	default:
		return KindUnexpected
	}
}

// FieldError describes a single invalid input field.
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError aggregates field level problems and matches ErrValidation.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Reason: reason}}}
}

// Add appends a field problem.
func (e *ValidationError) Add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

// OrNil returns nil when no field problems were collected.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
