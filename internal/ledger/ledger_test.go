package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securityinshadows/sish/internal/common"
	"github.com/securityinshadows/sish/internal/model"
	"github.com/securityinshadows/sish/internal/service"
	"github.com/securityinshadows/sish/internal/storage"
)

func newTestLedger(t *testing.T) (*Ledger, service.Storage) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := storage.NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))

	l, err := New(ctx, store, model.DefaultUserID)
	require.NoError(t, err)
	return l, store
}

func TestAddReloadRoundTrip(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := l.Categories().Create(ctx, model.NamespaceExpense, "food")
	require.NoError(t, err)

	rec, err := l.Add(ctx, model.NamespaceExpense, 50, "Food", "2024/01/01")
	require.NoError(t, err)
	assert.NotZero(t, rec.ID, "ID comes from the store")
	assert.Equal(t, "food", rec.Category, "category is normalized")
	assert.Equal(t, "2024-01-01", rec.Date, "date is normalized to ISO")

	require.NoError(t, l.Reload(ctx))

	records := l.Records(model.NamespaceExpense)
	require.Len(t, records, 1)
	assert.Equal(t, rec, records[0], "reload round-trips the persisted record")
}

func TestAddValidation(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := l.Categories().Create(ctx, model.NamespaceExpense, "food")
	require.NoError(t, err)

	tests := []struct {
		wantErr  error
		name     string
		category string
		date     string
		amount   int64
	}{
		{name: "zero amount", amount: 0, category: "food", date: "2024-01-01", wantErr: common.ErrInvalidAmount},
		{name: "negative amount", amount: -5, category: "food", date: "2024-01-01", wantErr: common.ErrInvalidAmount},
		{name: "unknown category", amount: 10, category: "ghost", date: "2024-01-01", wantErr: common.ErrCategoryNotFound},
		{name: "malformed date", amount: 10, category: "food", date: "01-01-2024", wantErr: common.ErrInvalidDate},
		{name: "impossible date", amount: 10, category: "food", date: "2024-02-30", wantErr: common.ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.Add(ctx, model.NamespaceExpense, tt.amount, tt.category, tt.date)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// Nothing was persisted or cached by the failed adds.
	assert.Empty(t, l.Records(model.NamespaceExpense))
}

func TestTotalsAndBalance(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	assert.Zero(t, l.TotalExpense(), "empty ledger totals 0")
	assert.Zero(t, l.TotalIncome())
	assert.Zero(t, l.Balance())

	_, err := l.Categories().Create(ctx, model.NamespaceExpense, "food")
	require.NoError(t, err)

	for _, amount := range []int64{100, 250, 75} {
		_, err := l.Add(ctx, model.NamespaceExpense, amount, "food", "2024-01-01")
		require.NoError(t, err)
	}
	_, err = l.Add(ctx, model.NamespaceIncome, 500, "salary", "2024-01-05")
	require.NoError(t, err)

	assert.Equal(t, int64(425), l.TotalExpense())
	assert.Equal(t, int64(500), l.TotalIncome())
	assert.Equal(t, int64(75), l.Balance())
}

func TestEditAmount(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := l.Categories().Create(ctx, model.NamespaceExpense, "food")
	require.NoError(t, err)
	_, err = l.Add(ctx, model.NamespaceExpense, 50, "food", "2024-01-01")
	require.NoError(t, err)

	rec, err := l.Edit(ctx, model.NamespaceExpense, 1, FieldAmount, "80")
	require.NoError(t, err)
	assert.Equal(t, int64(80), rec.Amount)

	// Cache and store agree after the edit.
	require.NoError(t, l.Reload(ctx))
	assert.Equal(t, int64(80), l.Records(model.NamespaceExpense)[0].Amount)
}

func TestEditInvalidAmountLeavesRecordUnchanged(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := l.Categories().Create(ctx, model.NamespaceExpense, "food")
	require.NoError(t, err)
	_, err = l.Add(ctx, model.NamespaceExpense, 50, "food", "2024-01-01")
	require.NoError(t, err)

	for _, bad := range []string{"0", "-10", "lots"} {
		_, err := l.Edit(ctx, model.NamespaceExpense, 1, FieldAmount, bad)
		assert.ErrorIs(t, err, common.ErrInvalidAmount, "value %q", bad)
	}

	// Unchanged in cache.
	assert.Equal(t, int64(50), l.Records(model.NamespaceExpense)[0].Amount)

	// Unchanged in the store.
	require.NoError(t, l.Reload(ctx))
	assert.Equal(t, int64(50), l.Records(model.NamespaceExpense)[0].Amount)
}

func TestEditCategoryAndDate(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	for _, name := range []string{"food", "rent"} {
		_, err := l.Categories().Create(ctx, model.NamespaceExpense, name)
		require.NoError(t, err)
	}
	_, err := l.Add(ctx, model.NamespaceExpense, 50, "food", "2024-01-01")
	require.NoError(t, err)

	_, err = l.Edit(ctx, model.NamespaceExpense, 1, FieldCategory, "Rent")
	require.NoError(t, err)
	_, err = l.Edit(ctx, model.NamespaceExpense, 1, FieldDate, "2024/02/02")
	require.NoError(t, err)

	_, err = l.Edit(ctx, model.NamespaceExpense, 1, FieldCategory, "ghost")
	assert.ErrorIs(t, err, common.ErrCategoryNotFound)

	require.NoError(t, l.Reload(ctx))
	rec := l.Records(model.NamespaceExpense)[0]
	assert.Equal(t, "rent", rec.Category)
	assert.Equal(t, "2024-02-02", rec.Date)
}

func TestEditAndDeleteOutOfRange(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := l.Edit(ctx, model.NamespaceExpense, 1, FieldAmount, "10")
	assert.ErrorIs(t, err, common.ErrRecordNotFound)

	_, err = l.Delete(ctx, model.NamespaceIncome, 3)
	assert.ErrorIs(t, err, common.ErrRecordNotFound)
}

func TestDeleteRecord(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := l.Categories().Create(ctx, model.NamespaceExpense, "food")
	require.NoError(t, err)
	first, err := l.Add(ctx, model.NamespaceExpense, 10, "food", "2024-01-01")
	require.NoError(t, err)
	second, err := l.Add(ctx, model.NamespaceExpense, 20, "food", "2024-01-02")
	require.NoError(t, err)

	deleted, err := l.Delete(ctx, model.NamespaceExpense, 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, deleted.ID)

	records := l.Records(model.NamespaceExpense)
	require.Len(t, records, 1)
	assert.Equal(t, second.ID, records[0].ID)

	// The survivor is now ordinal #1.
	require.NoError(t, l.Reload(ctx))
	records = l.Records(model.NamespaceExpense)
	require.Len(t, records, 1)
	assert.Equal(t, second.ID, records[0].ID)
}

func TestSearch(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := l.Categories().Create(ctx, model.NamespaceExpense, "food")
	require.NoError(t, err)
	_, err = l.Add(ctx, model.NamespaceExpense, 50, "food", "2024-01-01")
	require.NoError(t, err)
	_, err = l.Add(ctx, model.NamespaceExpense, 75, "food", "2024-01-02")
	require.NoError(t, err)

	collect := func(q Query) []model.Record {
		var out []model.Record
		for rec := range l.Search(model.NamespaceExpense, q) {
			out = append(out, rec)
		}
		return out
	}

	amount := collect(Query{ByAmount: true, Amount: 50})
	require.Len(t, amount, 1)
	assert.Equal(t, int64(50), amount[0].Amount)

	// Category matching is case-insensitive.
	assert.Len(t, collect(Query{Category: "FOOD"}), 2)

	assert.Len(t, collect(Query{Date: "2024-01-02"}), 1)
	assert.Empty(t, collect(Query{Date: "2030-01-01"}), "no matches is empty, not an error")

	// A fresh search sees current cache state.
	_, err = l.Delete(ctx, model.NamespaceExpense, 1)
	require.NoError(t, err)
	assert.Empty(t, collect(Query{ByAmount: true, Amount: 50}))
}

func TestSearchEmptyLedger(t *testing.T) {
	l, _ := newTestLedger(t)

	for rec := range l.Search(model.NamespaceExpense, Query{Category: "anything"}) {
		t.Fatalf("unexpected match %+v", rec)
	}
}

func TestCategoryDeleteScenario(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	for _, name := range []string{"food", "rent"} {
		_, err := l.Categories().Create(ctx, model.NamespaceExpense, name)
		require.NoError(t, err)
	}
	_, err := l.Add(ctx, model.NamespaceExpense, 50, "food", "2024-01-01")
	require.NoError(t, err)
	_, err = l.Add(ctx, model.NamespaceExpense, 75, "rent", "2024-01-02")
	require.NoError(t, err)

	require.NoError(t, l.DeleteCategory(ctx, "food"))

	records := l.Records(model.NamespaceExpense)
	require.Len(t, records, 2)
	assert.Equal(t, model.SentinelCategory, records[0].Category, "expense #1 moved to the sentinel")
	assert.Equal(t, "rent", records[1].Category)
	assert.Equal(t, int64(125), l.TotalExpense())

	// No record references the deleted name, in cache or store.
	require.NoError(t, l.Reload(ctx))
	for _, rec := range l.Records(model.NamespaceExpense) {
		assert.NotEqual(t, "food", rec.Category)
	}
	assert.False(t, l.Categories().Contains(model.NamespaceExpense, "food"))
	assert.True(t, l.Categories().Contains(model.NamespaceExpense, model.SentinelCategory))
}
