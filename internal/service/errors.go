package service

import (
	"errors"
	"fmt"
)

var (
	ErrSourceUnavailable = errors.New("knowledge source unavailable")
	ErrMalformedRow      = errors.New("malformed knowledge row")
	ErrUnknownIssueType  = errors.New("unknown issue type")
	ErrValidation        = errors.New("invalid request")
)

// ValidationError names the request field that failed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func unavailable(source string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, source, err)
}
