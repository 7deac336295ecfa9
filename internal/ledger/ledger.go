// Package ledger implements the tracker's core: in-memory record and
// category caches kept in lockstep with persistent storage, ordinal-based
// record selection, searching, and running totals.
//
// Every mutation is written to storage first and applied to the cache only
// on success, so the cache never diverges from the store. The ledger is not
// safe for concurrent use; the tracker runs strictly one operation at a
// time on behalf of its single user.
package ledger

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/securityinshadows/sish/internal/common"
	"github.com/securityinshadows/sish/internal/model"
	"github.com/securityinshadows/sish/internal/service"
)

// Field names a record attribute that can be edited.
type Field string

const (
	// FieldAmount edits a record's amount.
	FieldAmount Field = "amount"
	// FieldCategory re-files a record under another category.
	FieldCategory Field = "category"
	// FieldDate edits a record's date.
	FieldDate Field = "date"
)

// Ledger owns the cached expense and income collections and the category
// taxonomy, synchronizing every mutation with the backing store.
type Ledger struct {
	store    service.Storage
	cats     *CategorySet
	expenses []model.Record
	income   []model.Record
	userID   int64
}

// New constructs a Ledger by loading categories and records from storage.
func New(ctx context.Context, store service.Storage, userID int64) (*Ledger, error) {
	cats, err := NewCategorySet(ctx, store)
	if err != nil {
		return nil, err
	}

	l := &Ledger{
		store:  store,
		cats:   cats,
		userID: userID,
	}
	if err := l.Reload(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

// Categories exposes the category taxonomy.
func (l *Ledger) Categories() *CategorySet {
	return l.cats
}

// Records returns a snapshot of a namespace's records in cache order.
// Ordinals handed to Edit and Delete are 1-based positions in this order.
func (l *Ledger) Records(ns model.Namespace) []model.Record {
	cache := l.cache(ns)
	out := make([]model.Record, len(*cache))
	copy(out, *cache)
	return out
}

// Add validates and persists a new record, then appends it to the cache.
// The record's ID is assigned by the store.
func (l *Ledger) Add(ctx context.Context, ns model.Namespace, amount int64, category, date string) (model.Record, error) {
	if amount <= 0 {
		return model.Record{}, fmt.Errorf("%w: got %d", common.ErrInvalidAmount, amount)
	}

	category = NormalizeCategory(category)
	if !l.cats.Contains(ns, category) {
		return model.Record{}, fmt.Errorf("%w: %q in %s namespace", common.ErrCategoryNotFound, category, ns)
	}

	date, err := NormalizeDate(date)
	if err != nil {
		return model.Record{}, err
	}

	rec := model.Record{
		UserID:   l.userID,
		Amount:   amount,
		Category: category,
		Date:     date,
	}

	// Durable write first; the cache only ever sees records that exist in
	// the store.
	id, err := l.store.InsertRecord(ctx, ns, rec)
	if err != nil {
		return model.Record{}, err
	}
	rec.ID = id

	cache := l.cache(ns)
	*cache = append(*cache, rec)
	return rec, nil
}

// Edit resolves a 1-based ordinal to a record and updates one field, in
// the store first and in the cache only once the write is confirmed. A
// failed write leaves both unchanged.
func (l *Ledger) Edit(ctx context.Context, ns model.Namespace, ordinal int, field Field, value string) (model.Record, error) {
	snapshot := l.Records(ns)
	rec, err := Resolve(ordinal, snapshot)
	if err != nil {
		return model.Record{}, fmt.Errorf("%w: no %s record #%d", common.ErrRecordNotFound, ns, ordinal)
	}

	switch field {
	case FieldAmount:
		amount, perr := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if perr != nil || amount <= 0 {
			return model.Record{}, fmt.Errorf("%w: got %q", common.ErrInvalidAmount, value)
		}
		if err := l.store.UpdateRecordAmount(ctx, ns, rec.ID, amount); err != nil {
			return model.Record{}, err
		}
		rec.Amount = amount

	case FieldCategory:
		category := NormalizeCategory(value)
		if !l.cats.Contains(ns, category) {
			return model.Record{}, fmt.Errorf("%w: %q in %s namespace", common.ErrCategoryNotFound, category, ns)
		}
		if err := l.store.UpdateRecordCategory(ctx, ns, rec.ID, category); err != nil {
			return model.Record{}, err
		}
		rec.Category = category

	case FieldDate:
		date, derr := NormalizeDate(value)
		if derr != nil {
			return model.Record{}, derr
		}
		if err := l.store.UpdateRecordDate(ctx, ns, rec.ID, date); err != nil {
			return model.Record{}, err
		}
		rec.Date = date

	default:
		return model.Record{}, fmt.Errorf("unknown field %q", field)
	}

	(*l.cache(ns))[ordinal-1] = rec
	return rec, nil
}

// Delete resolves a 1-based ordinal, removes the persisted row by its
// durable ID, then drops the record from the cache.
func (l *Ledger) Delete(ctx context.Context, ns model.Namespace, ordinal int) (model.Record, error) {
	snapshot := l.Records(ns)
	rec, err := Resolve(ordinal, snapshot)
	if err != nil {
		return model.Record{}, fmt.Errorf("%w: no %s record #%d", common.ErrRecordNotFound, ns, ordinal)
	}

	if err := l.store.DeleteRecord(ctx, ns, rec.ID); err != nil {
		return model.Record{}, err
	}

	cache := l.cache(ns)
	*cache = append((*cache)[:ordinal-1], (*cache)[ordinal:]...)
	return rec, nil
}

// Reload clears both caches and re-populates them from storage in
// ascending ID order.
func (l *Ledger) Reload(ctx context.Context) error {
	expenses, err := l.store.GetRecords(ctx, model.NamespaceExpense)
	if err != nil {
		return err
	}
	income, err := l.store.GetRecords(ctx, model.NamespaceIncome)
	if err != nil {
		return err
	}

	l.expenses = expenses
	l.income = income
	return nil
}

func (l *Ledger) cache(ns model.Namespace) *[]model.Record {
	if ns == model.NamespaceIncome {
		return &l.income
	}
	return &l.expenses
}

// NormalizeCategory canonicalizes a category name: trimmed and lowercased.
func NormalizeCategory(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DateLayout is the ISO calendar-date form records are stored in.
const DateLayout = "2006-01-02"

// NormalizeDate validates s as a calendar date and returns it in ISO form.
// Slashes are accepted in place of hyphens (2024/01/31).
func NormalizeDate(s string) (string, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "/", "-")
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q (want YYYY-MM-DD)", common.ErrInvalidDate, s)
	}
	return t.Format(DateLayout), nil
}
