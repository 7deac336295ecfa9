package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/securityinshadows/sish/internal/common"
	"github.com/securityinshadows/sish/internal/model"
)

func TestCreateCategory(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	cat, err := store.CreateCategory(ctx, model.NamespaceExpense, "food")
	if err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	if cat.ID == 0 {
		t.Error("Expected generated category ID")
	}

	// Duplicate in the same namespace fails.
	if _, err := store.CreateCategory(ctx, model.NamespaceExpense, "food"); !errors.Is(err, common.ErrDuplicateCategory) {
		t.Errorf("Expected ErrDuplicateCategory, got %v", err)
	}

	// Same name in the other namespace is fine: namespaces are independent.
	if _, err := store.CreateCategory(ctx, model.NamespaceIncome, "food"); err != nil {
		t.Errorf("Cross-namespace create failed: %v", err)
	}
}

func TestGetCategoriesCreationOrder(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if _, err := store.CreateCategory(ctx, model.NamespaceExpense, name); err != nil {
			t.Fatalf("Failed to create %q: %v", name, err)
		}
	}

	cats, err := store.GetCategories(ctx, model.NamespaceExpense)
	if err != nil {
		t.Fatalf("Failed to get categories: %v", err)
	}

	// Creation order, not alphabetical: ordinals must stay stable.
	want := []string{"zeta", "alpha", "mid"}
	if len(cats) != len(want) {
		t.Fatalf("Expected %d categories, got %d", len(want), len(cats))
	}
	for i, cat := range cats {
		if cat.Name != want[i] {
			t.Errorf("Category %d = %q, want %q", i, cat.Name, want[i])
		}
	}
}

func TestDeleteExpenseCategoryRepoints(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := store.CreateCategory(ctx, model.NamespaceExpense, "food"); err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	rec := model.Record{UserID: model.DefaultUserID, Amount: 50, Category: "food", Date: "2024-01-01"}
	if _, err := store.InsertRecord(ctx, model.NamespaceExpense, rec); err != nil {
		t.Fatalf("Failed to insert record: %v", err)
	}

	sentinel, err := store.DeleteExpenseCategory(ctx, "food", model.SentinelCategory)
	if err != nil {
		t.Fatalf("Failed to delete category: %v", err)
	}
	if sentinel.Name != model.SentinelCategory {
		t.Errorf("Sentinel name = %q, want %q", sentinel.Name, model.SentinelCategory)
	}

	records, err := store.GetRecords(ctx, model.NamespaceExpense)
	if err != nil {
		t.Fatalf("Failed to get records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record after repoint, got %d", len(records))
	}
	if records[0].Category != model.SentinelCategory {
		t.Errorf("Record category = %q, want %q", records[0].Category, model.SentinelCategory)
	}

	// The doomed category is gone; the sentinel remains.
	gone, err := store.GetCategoryByName(ctx, model.NamespaceExpense, "food")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if gone != nil {
		t.Error("Deleted category still present")
	}
}

func TestDeleteExpenseCategoryNotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.DeleteExpenseCategory(context.Background(), "ghost", model.SentinelCategory)
	if !errors.Is(err, common.ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}

	// A failed delete must not leave the sentinel behind.
	sent, err := store.GetCategoryByName(context.Background(), model.NamespaceExpense, model.SentinelCategory)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if sent != nil {
		t.Error("Sentinel created by rolled-back delete")
	}
}
