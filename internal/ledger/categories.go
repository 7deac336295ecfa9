package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/securityinshadows/sish/internal/common"
	"github.com/securityinshadows/sish/internal/model"
	"github.com/securityinshadows/sish/internal/service"
)

// ErrEmptyCategoryName is returned when a category name normalizes to the
// empty string.
var ErrEmptyCategoryName = errors.New("category name cannot be empty")

// CategorySet caches the expense and income category namespaces in
// creation order and mediates creation against the store. The two
// namespaces are independent; creation always targets exactly one of them.
type CategorySet struct {
	store   service.CategoryStore
	expense []model.Category
	income  []model.Category
}

// NewCategorySet loads both namespaces from storage.
func NewCategorySet(ctx context.Context, store service.CategoryStore) (*CategorySet, error) {
	cs := &CategorySet{store: store}
	if err := cs.Reload(ctx); err != nil {
		return nil, err
	}
	return cs, nil
}

// Reload re-reads both namespaces from storage in creation order.
func (c *CategorySet) Reload(ctx context.Context) error {
	expense, err := c.store.GetCategories(ctx, model.NamespaceExpense)
	if err != nil {
		return err
	}
	income, err := c.store.GetCategories(ctx, model.NamespaceIncome)
	if err != nil {
		return err
	}

	c.expense = expense
	c.income = income
	return nil
}

// Create normalizes name and inserts it into one namespace, failing with
// common.ErrDuplicateCategory if it already exists there. The store is
// written first; the cache grows only on success.
func (c *CategorySet) Create(ctx context.Context, ns model.Namespace, name string) (model.Category, error) {
	name = NormalizeCategory(name)
	if name == "" {
		return model.Category{}, ErrEmptyCategoryName
	}
	if c.Contains(ns, name) {
		return model.Category{}, fmt.Errorf("%w: %q in %s namespace", common.ErrDuplicateCategory, name, ns)
	}

	cat, err := c.store.CreateCategory(ctx, ns, name)
	if err != nil {
		return model.Category{}, err
	}

	cache := c.cache(ns)
	*cache = append(*cache, *cat)
	return *cat, nil
}

// Names returns a namespace's category names in creation order, the order
// display ordinals are assigned in.
func (c *CategorySet) Names(ns model.Namespace) []string {
	cache := c.cache(ns)
	names := make([]string, len(*cache))
	for i, cat := range *cache {
		names[i] = cat.Name
	}
	return names
}

// Contains reports whether the normalized name exists in the namespace.
func (c *CategorySet) Contains(ns model.Namespace, name string) bool {
	name = NormalizeCategory(name)
	for _, cat := range *c.cache(ns) {
		if cat.Name == name {
			return true
		}
	}
	return false
}

func (c *CategorySet) cache(ns model.Namespace) *[]model.Category {
	if ns == model.NamespaceIncome {
		return &c.income
	}
	return &c.expense
}

// DeleteCategory removes an expense category. Storage re-points every
// expense referencing it to the sentinel category and deletes it in one
// transaction; both caches are updated only after the commit, so no record
// is ever observed referencing a deleted category.
//
// This lives on Ledger rather than CategorySet because the re-point also
// rewrites cached expense records.
func (l *Ledger) DeleteCategory(ctx context.Context, name string) error {
	name = NormalizeCategory(name)
	if name == model.SentinelCategory {
		return fmt.Errorf("%w: %q is reserved", common.ErrCategoryNotFound, name)
	}
	if !l.cats.Contains(model.NamespaceExpense, name) {
		return fmt.Errorf("%w: %q in expense namespace", common.ErrCategoryNotFound, name)
	}

	sentinel, err := l.store.DeleteExpenseCategory(ctx, name, model.SentinelCategory)
	if err != nil {
		return err
	}

	// Drop the doomed category, keeping creation order, and make sure the
	// sentinel is cached.
	cache := &l.cats.expense
	kept := (*cache)[:0]
	haveSentinel := false
	for _, cat := range *cache {
		if cat.Name == name {
			continue
		}
		if cat.ID == sentinel.ID {
			haveSentinel = true
		}
		kept = append(kept, cat)
	}
	if !haveSentinel {
		kept = append(kept, *sentinel)
	}
	*cache = kept

	for i := range l.expenses {
		if l.expenses[i].Category == name {
			l.expenses[i].Category = sentinel.Name
		}
	}

	return nil
}
