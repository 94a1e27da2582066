package core

import (
	"errors"
	"fmt"
)

var (
	// ErrBusy is returned when an operation of the same kind is still in flight.
	ErrBusy = errors.New("operation already in progress")

	// ErrNoDocument is returned by Submit when nothing is staged.
	ErrNoDocument = errors.New("no document staged")
)

// ValidationError rejects user input before any remote call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// describe returns the error text, or fallback when there is none.
func describe(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
