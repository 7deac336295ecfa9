// Package service defines the interfaces between the ledger core and its
// collaborators.
package service

import (
	"context"

	"github.com/securityinshadows/sish/internal/model"
)

// Storage defines the persistence operations the tracker needs. The
// in-memory ledger is a cache over this interface; every mutation here is
// durable before the cache observes it.
type Storage interface {
	CategoryStore
	RecordStore
	UserStore

	// Migrate brings the schema to the expected version.
	Migrate(ctx context.Context) error
	// Close releases the underlying database handle.
	Close() error
}

// CategoryStore persists the two category namespaces.
type CategoryStore interface {
	// GetCategories returns a namespace's categories in creation order
	// (ascending ID), which is the order display ordinals are assigned in.
	GetCategories(ctx context.Context, ns model.Namespace) ([]model.Category, error)
	// GetCategoryByName returns the named category, or nil if absent.
	GetCategoryByName(ctx context.Context, ns model.Namespace, name string) (*model.Category, error)
	// CreateCategory inserts a new category into one namespace.
	CreateCategory(ctx context.Context, ns model.Namespace, name string) (*model.Category, error)
	// DeleteExpenseCategory re-points every expense referencing name to the
	// sentinel category (creating the sentinel if needed) and removes the
	// category, all in one transaction. It returns the sentinel category.
	DeleteExpenseCategory(ctx context.Context, name, sentinel string) (*model.Category, error)
}

// RecordStore persists expense and income records.
type RecordStore interface {
	// GetRecords returns all of a namespace's records joined with their
	// category name, in ascending ID order.
	GetRecords(ctx context.Context, ns model.Namespace) ([]model.Record, error)
	// InsertRecord persists a record and returns its generated ID.
	InsertRecord(ctx context.Context, ns model.Namespace, rec model.Record) (int64, error)
	// UpdateRecordAmount updates the amount of the row identified by id.
	UpdateRecordAmount(ctx context.Context, ns model.Namespace, id, amount int64) error
	// UpdateRecordCategory re-files the row under the named category.
	UpdateRecordCategory(ctx context.Context, ns model.Namespace, id int64, category string) error
	// UpdateRecordDate updates the date of the row identified by id.
	UpdateRecordDate(ctx context.Context, ns model.Namespace, id int64, date string) error
	// DeleteRecord removes the row identified by id.
	DeleteRecord(ctx context.Context, ns model.Namespace, id int64) error
}

// UserStore persists accounts for the authentication collaborator.
type UserStore interface {
	// CreateUser inserts a new user with the given password hash.
	CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error)
	// GetUserByUsername returns the named user, or nil if absent.
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}
