// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Category errors.
	ErrDuplicateCategory = errors.New("category already exists")
	ErrCategoryNotFound  = errors.New("category not found")

	// Record validation errors.
	ErrInvalidAmount  = errors.New("amount must be a positive number")
	ErrInvalidDate    = errors.New("invalid date")
	ErrRecordNotFound = errors.New("record not found")
	ErrOutOfRange     = errors.New("selection out of range")

	// Storage errors.
	ErrPersistence = errors.New("persistence failure")

	// Authentication errors.
	ErrDuplicateUser = errors.New("username already exists")
	ErrAuthFailed    = errors.New("authentication failed")
)

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

// IsRecoverable reports whether an error is a validation or lookup failure
// the caller can recover from by re-prompting, as opposed to a storage
// failure that should end the current operation.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrDuplicateCategory) ||
		errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrRecordNotFound) ||
		errors.Is(err, ErrOutOfRange)
}
