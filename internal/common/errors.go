// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"

	"github.com/Veraticus/binder/internal/model"
)

// Common application errors.
var (
	// Storage errors.
	ErrNotFound = errors.New("not found")

	// Record validation errors.
	ErrNotMapping     = errors.New("record is not an object")
	ErrMissingField   = errors.New("missing required field")
	ErrMalformedField = errors.New("malformed field")

	// Expansion resolution errors.
	ErrUnknownExpansion = errors.New("expansion not in table")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ValidationError reports a raw inventory record that cannot be normalized.
type ValidationError struct {
	Err   error
	Field string
	Index int
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("record %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("record %d: field %q: %v", e.Index, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ResolutionError reports a blueprint whose expansion name could not be found.
type ResolutionError struct {
	Err         error
	BlueprintID model.BlueprintID
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve expansion for blueprint %s: %v", e.BlueprintID, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
