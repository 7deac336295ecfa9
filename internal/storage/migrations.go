package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a
// fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS users (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					username TEXT UNIQUE NOT NULL,
					password_hash TEXT NOT NULL,
					role TEXT DEFAULT 'user'
				)`,

				`CREATE TABLE IF NOT EXISTS expense_categories (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					category_name TEXT UNIQUE NOT NULL
				)`,

				`CREATE TABLE IF NOT EXISTS income_categories (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					category_name TEXT UNIQUE NOT NULL
				)`,

				`CREATE TABLE IF NOT EXISTS expenses (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					user_id INTEGER NOT NULL,
					amount INTEGER NOT NULL,
					category_id INTEGER NOT NULL,
					date TEXT NOT NULL,
					FOREIGN KEY (user_id) REFERENCES users(id),
					FOREIGN KEY (category_id) REFERENCES expense_categories(id)
				)`,
				`CREATE INDEX idx_expenses_category ON expenses(category_id)`,
				`CREATE INDEX idx_expenses_date ON expenses(date)`,

				`CREATE TABLE IF NOT EXISTS income (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					user_id INTEGER NOT NULL,
					amount INTEGER NOT NULL,
					category_id INTEGER NOT NULL,
					date TEXT NOT NULL,
					FOREIGN KEY (user_id) REFERENCES users(id),
					FOREIGN KEY (category_id) REFERENCES income_categories(id)
				)`,
				`CREATE INDEX idx_income_category ON income(category_id)`,
				`CREATE INDEX idx_income_date ON income(date)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Seed fixed income categories and default user",
		Up: func(tx *sql.Tx) error {
			for _, name := range []string{"salary", "freelance", "other"} {
				if _, err := tx.Exec(
					`INSERT OR IGNORE INTO income_categories (category_name) VALUES (?)`, name,
				); err != nil {
					return fmt.Errorf("failed to seed income category %q: %w", name, err)
				}
			}
			// The acting user every record is owned by. The hash is empty
			// until someone registers over it; login is optional.
			_, err := tx.Exec(
				`INSERT OR IGNORE INTO users (id, username, password_hash, role)
				 VALUES (1, 'default', '', 'user')`,
			)
			if err != nil {
				return fmt.Errorf("failed to seed default user: %w", err)
			}
			return nil
		},
	},
}

// Migrate applies all pending migrations inside transactions, tracking the
// current version with PRAGMA user_version.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var current int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration transaction: %w", err)
		}

		if err := m.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Description, err)
		}

		// PRAGMA does not accept bind parameters.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to set schema version %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}

		slog.Info("applied migration", "version", m.Version, "description", m.Description)
		current = m.Version
	}

	if current != ExpectedSchemaVersion {
		return fmt.Errorf("schema version %d does not match expected version %d", current, ExpectedSchemaVersion)
	}

	return nil
}
