package domain

import (
	"errors"
	"fmt"
)

// ErrDuplicateLoss is returned when an append would violate the
// one-loss-per-ingredient-per-day rule.
var ErrDuplicateLoss = errors.New("loss already recorded for ingredient on this day")

// ValidationError reports a malformed loss event candidate. Detection is
// best-effort, so callers skip the bad item and continue.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid loss event: %s %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// PersistenceError wraps a storage read/write failure. The ledger does
// not retry; retry policy belongs to the caller.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("ledger persistence failed during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}
