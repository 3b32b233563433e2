package restaurant

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateSubmission = errors.New("order already submitted")
	ErrConflict            = errors.New("record changed by someone else")
	ErrTableOccupied       = errors.New("table is occupied")
	ErrTableUnassigned     = errors.New("no table assigned")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrNoTableBound        = errors.New("no table bound to session")
	ErrSessionNotFound     = errors.New("session not found")
)

// ValidationError is reported inline; no call to the record store was made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NetworkError wraps a failed call to the record store. Callers restore
// their pre-attempt state and the operator may retry.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("cannot %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ParseError marks session state that could not be decoded. It is logged and
// replaced by an empty value, never returned to HTTP callers.
type ParseError struct {
	Key string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse session %s: %v", e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
