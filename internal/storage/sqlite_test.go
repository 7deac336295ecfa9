package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/securityinshadows/sish/internal/common"
	"github.com/securityinshadows/sish/internal/model"
)

// Helper function to create migrated test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func TestMigrateSeedsFixedData(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	cats, err := store.GetCategories(ctx, model.NamespaceIncome)
	if err != nil {
		t.Fatalf("Failed to get income categories: %v", err)
	}
	if len(cats) != 3 {
		t.Fatalf("Expected 3 seeded income categories, got %d", len(cats))
	}
	want := []string{"salary", "freelance", "other"}
	for i, cat := range cats {
		if cat.Name != want[i] {
			t.Errorf("Seeded category %d = %q, want %q", i, cat.Name, want[i])
		}
	}

	user, err := store.GetUserByUsername(ctx, "default")
	if err != nil {
		t.Fatalf("Failed to get default user: %v", err)
	}
	if user == nil {
		t.Fatal("Expected seeded default user")
	}
	if user.ID != model.DefaultUserID {
		t.Errorf("Default user ID = %d, want %d", user.ID, model.DefaultUserID)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Second migrate failed: %v", err)
	}
}

func TestCreateUser(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	user, err := store.CreateUser(ctx, "ayoub", "hash-1")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	if user.ID == 0 {
		t.Error("Expected generated user ID")
	}
	if user.Role != "user" {
		t.Errorf("Role = %q, want %q", user.Role, "user")
	}

	if _, err := store.CreateUser(ctx, "ayoub", "hash-2"); !errors.Is(err, common.ErrDuplicateUser) {
		t.Errorf("Expected ErrDuplicateUser, got %v", err)
	}

	missing, err := store.GetUserByUsername(ctx, "nobody")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for unknown user, got %+v", missing)
	}
}
