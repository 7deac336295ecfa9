// Package storage provides the data persistence layer for the tracker.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/securityinshadows/sish/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrInvalidNamespace = errors.New("invalid namespace")
	ErrInvalidRecord    = errors.New("invalid record")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateNamespace ensures ns names one of the two category domains.
func validateNamespace(ns model.Namespace) error {
	if !ns.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidNamespace, ns)
	}
	return nil
}

// validateRecord validates a record before it is written.
func validateRecord(rec model.Record) error {
	if rec.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidRecord)
	}
	if strings.TrimSpace(rec.Category) == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidRecord)
	}
	if strings.TrimSpace(rec.Date) == "" {
		return fmt.Errorf("%w: missing date", ErrInvalidRecord)
	}
	if rec.UserID == 0 {
		return fmt.Errorf("%w: missing user", ErrInvalidRecord)
	}
	return nil
}

// categoryTable returns the category table for a namespace.
func categoryTable(ns model.Namespace) string {
	if ns == model.NamespaceIncome {
		return "income_categories"
	}
	return "expense_categories"
}

// recordTable returns the record table for a namespace.
func recordTable(ns model.Namespace) string {
	if ns == model.NamespaceIncome {
		return "income"
	}
	return "expenses"
}
