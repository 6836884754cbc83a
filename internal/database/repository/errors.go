package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no budget row has the requested id.
var ErrNotFound = errors.New("budget entry not found")

// ErrBadAmount is wrapped in a StoreError when a stored amount is NaN or
// infinite.
var ErrBadAmount = errors.New("stored amount is not a finite number")

// ValidationError reports user input that cannot be stored.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StoreError wraps a failure of the underlying database.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return "store " + e.Op + ": " + e.Err.Error() }

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
