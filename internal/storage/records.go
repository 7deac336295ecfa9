package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/securityinshadows/sish/internal/common"
	"github.com/securityinshadows/sish/internal/model"
)

// GetRecords returns all of a namespace's records joined with their
// category name, in ascending ID order. The order is part of the contract:
// the in-memory cache mirrors it and display ordinals are derived from it.
func (s *SQLiteStorage) GetRecords(ctx context.Context, ns model.Namespace) ([]model.Record, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateNamespace(ns); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT r.id, r.user_id, r.amount, c.category_name, r.date
		FROM %s r
		JOIN %s c ON r.category_id = c.id
		ORDER BY r.id ASC`, recordTable(ns), categoryTable(ns))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query records: %v", common.ErrPersistence, err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.Record
	for rows.Next() {
		var rec model.Record
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Amount, &rec.Category, &rec.Date); err != nil {
			return nil, fmt.Errorf("%w: failed to scan record: %v", common.ErrPersistence, err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating records: %v", common.ErrPersistence, err)
	}

	slog.Debug("retrieved records", "namespace", ns, "count", len(records))
	return records, nil
}

// InsertRecord persists a record and returns its generated ID. The record's
// category must already exist in the matching namespace.
func (s *SQLiteStorage) InsertRecord(ctx context.Context, ns model.Namespace, rec model.Record) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateNamespace(ns); err != nil {
		return 0, err
	}
	if err := validateRecord(rec); err != nil {
		return 0, err
	}

	cat, err := getCategoryByName(ctx, s.db, ns, rec.Category)
	if err != nil {
		return 0, err
	}
	if cat == nil {
		return 0, fmt.Errorf("%w: %q in %s namespace", common.ErrCategoryNotFound, rec.Category, ns)
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (user_id, amount, category_id, date) VALUES (?, ?, ?, ?)`,
		recordTable(ns))
	result, err := s.db.ExecContext(ctx, query, rec.UserID, rec.Amount, cat.ID, rec.Date)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to insert record: %v", common.ErrPersistence, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: failed to get record ID: %v", common.ErrPersistence, err)
	}

	slog.Info("inserted record", "namespace", ns, "id", id, "amount", rec.Amount, "category", rec.Category)
	return id, nil
}

// UpdateRecordAmount updates the amount of the row identified by id.
func (s *SQLiteStorage) UpdateRecordAmount(ctx context.Context, ns model.Namespace, id, amount int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateNamespace(ns); err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET amount = ? WHERE id = ?`, recordTable(ns))
	return s.execOnRecord(ctx, ns, id, query, amount, id)
}

// UpdateRecordCategory re-files the row under the named category, which
// must exist in the matching namespace.
func (s *SQLiteStorage) UpdateRecordCategory(ctx context.Context, ns model.Namespace, id int64, category string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateNamespace(ns); err != nil {
		return err
	}
	if err := validateString(category, "category"); err != nil {
		return err
	}

	cat, err := getCategoryByName(ctx, s.db, ns, category)
	if err != nil {
		return err
	}
	if cat == nil {
		return fmt.Errorf("%w: %q in %s namespace", common.ErrCategoryNotFound, category, ns)
	}

	query := fmt.Sprintf(`UPDATE %s SET category_id = ? WHERE id = ?`, recordTable(ns))
	return s.execOnRecord(ctx, ns, id, query, cat.ID, id)
}

// UpdateRecordDate updates the date of the row identified by id.
func (s *SQLiteStorage) UpdateRecordDate(ctx context.Context, ns model.Namespace, id int64, date string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateNamespace(ns); err != nil {
		return err
	}
	if err := validateString(date, "date"); err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET date = ? WHERE id = ?`, recordTable(ns))
	return s.execOnRecord(ctx, ns, id, query, date, id)
}

// DeleteRecord removes the row identified by id.
func (s *SQLiteStorage) DeleteRecord(ctx context.Context, ns model.Namespace, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateNamespace(ns); err != nil {
		return err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, recordTable(ns))
	if err := s.execOnRecord(ctx, ns, id, query, id); err != nil {
		return err
	}

	slog.Info("deleted record", "namespace", ns, "id", id)
	return nil
}

// execOnRecord runs a mutation that must touch exactly one existing row.
func (s *SQLiteStorage) execOnRecord(ctx context.Context, ns model.Namespace, id int64, query string, args ...any) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: failed to update record: %v", common.ErrPersistence, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to check affected rows: %v", common.ErrPersistence, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s id %d", common.ErrRecordNotFound, ns, id)
	}

	return nil
}
