package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/securityinshadows/sish/internal/common"
	"github.com/securityinshadows/sish/internal/model"
)

// GetCategories returns a namespace's categories in creation order.
// Ascending ID is the order display ordinals are assigned in, so it must
// stay deterministic.
func (s *SQLiteStorage) GetCategories(ctx context.Context, ns model.Namespace) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateNamespace(ns); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, category_name
		FROM %s
		ORDER BY id ASC`, categoryTable(ns))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query categories: %v", common.ErrPersistence, err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.ID, &cat.Name); err != nil {
			return nil, fmt.Errorf("%w: failed to scan category: %v", common.ErrPersistence, err)
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating categories: %v", common.ErrPersistence, err)
	}

	slog.Debug("retrieved categories", "namespace", ns, "count", len(categories))
	return categories, nil
}

// GetCategoryByName returns a category by its name, or nil if absent.
func (s *SQLiteStorage) GetCategoryByName(ctx context.Context, ns model.Namespace, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateNamespace(ns); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	return getCategoryByName(ctx, s.db, ns, name)
}

func getCategoryByName(ctx context.Context, q queryable, ns model.Namespace, name string) (*model.Category, error) {
	query := fmt.Sprintf(`
		SELECT id, category_name
		FROM %s
		WHERE category_name = ?`, categoryTable(ns))

	var cat model.Category
	err := q.QueryRowContext(ctx, query, name).Scan(&cat.ID, &cat.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Category not found
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query category: %v", common.ErrPersistence, err)
	}

	return &cat, nil
}

// CreateCategory inserts a new category into one namespace. The name is
// expected to be normalized already; a name that exists in the namespace
// fails with common.ErrDuplicateCategory.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, ns model.Namespace, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateNamespace(ns); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	existing, err := getCategoryByName(ctx, s.db, ns, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %q in %s namespace", common.ErrDuplicateCategory, name, ns)
	}

	query := fmt.Sprintf(`INSERT INTO %s (category_name) VALUES (?)`, categoryTable(ns))
	result, err := s.db.ExecContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create category: %v", common.ErrPersistence, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get category ID: %v", common.ErrPersistence, err)
	}

	slog.Info("created category", "namespace", ns, "name", name, "id", id)
	return &model.Category{ID: id, Name: name}, nil
}

// DeleteExpenseCategory re-points every expense referencing name to the
// sentinel category, creating the sentinel first if it does not exist, then
// removes the category row. The whole sequence runs in one transaction so
// no observer can see an expense referencing a deleted category.
func (s *SQLiteStorage) DeleteExpenseCategory(ctx context.Context, name, sentinel string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}
	if err := validateString(sentinel, "sentinel"); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to begin transaction: %v", common.ErrPersistence, err)
	}
	defer func() { _ = tx.Rollback() }()

	doomed, err := getCategoryByName(ctx, tx, model.NamespaceExpense, name)
	if err != nil {
		return nil, err
	}
	if doomed == nil {
		return nil, fmt.Errorf("%w: %q in expense namespace", common.ErrCategoryNotFound, name)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO expense_categories (category_name) VALUES (?)`, sentinel,
	); err != nil {
		return nil, fmt.Errorf("%w: failed to ensure sentinel category: %v", common.ErrPersistence, err)
	}

	sent, err := getCategoryByName(ctx, tx, model.NamespaceExpense, sentinel)
	if err != nil {
		return nil, err
	}
	if sent == nil {
		return nil, fmt.Errorf("%w: sentinel category %q missing after insert", common.ErrPersistence, sentinel)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE expenses SET category_id = ? WHERE category_id = ?`, sent.ID, doomed.ID,
	); err != nil {
		return nil, fmt.Errorf("%w: failed to re-point expenses: %v", common.ErrPersistence, err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM expense_categories WHERE id = ?`, doomed.ID,
	); err != nil {
		return nil, fmt.Errorf("%w: failed to delete category: %v", common.ErrPersistence, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: failed to commit category delete: %v", common.ErrPersistence, err)
	}

	slog.Info("deleted category", "name", name, "repointed_to", sentinel)
	return sent, nil
}
