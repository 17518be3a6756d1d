package store

import (
	"context"
	"database/sql"
	"fmt"
)

// expectedSchemaVersion is the latest schema version the application expects.
const expectedSchemaVersion = 2

// migration is one database schema step, applied inside a transaction.
type migration struct {
	up          func(*sql.Tx) error
	description string
	version     int
}

var migrations = []migration{
	{
		version:     1,
		description: "initial schema",
		up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS accounts (
					id TEXT PRIMARY KEY,
					user_id TEXT NOT NULL,
					name TEXT NOT NULL,
					type TEXT NOT NULL,
					currency TEXT NOT NULL,
					bank_name TEXT,
					last_four_digits TEXT,
					is_active INTEGER NOT NULL DEFAULT 1,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_accounts_user ON accounts(user_id)`,

				`CREATE TABLE IF NOT EXISTS import_batches (
					id TEXT PRIMARY KEY,
					user_id TEXT NOT NULL,
					account_id TEXT NOT NULL,
					file_name TEXT NOT NULL,
					bank_type TEXT NOT NULL,
					row_count INTEGER NOT NULL DEFAULT 0,
					imported_count INTEGER NOT NULL DEFAULT 0,
					duplicate_count INTEGER NOT NULL DEFAULT 0,
					error_count INTEGER NOT NULL DEFAULT 0,
					status TEXT NOT NULL,
					errors TEXT,
					started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					completed_at DATETIME,
					FOREIGN KEY (account_id) REFERENCES accounts(id)
				)`,
				`CREATE INDEX idx_import_batches_user ON import_batches(user_id)`,

				`CREATE TABLE IF NOT EXISTS transactions (
					id TEXT PRIMARY KEY,
					user_id TEXT NOT NULL,
					account_id TEXT NOT NULL,
					category_id TEXT,
					amount TEXT NOT NULL,
					direction TEXT NOT NULL,
					transaction_date TEXT NOT NULL,
					description TEXT NOT NULL,
					merchant TEXT,
					notes TEXT,
					kind TEXT NOT NULL,
					canonical_id TEXT NOT NULL,
					import_id TEXT,
					is_recurring INTEGER NOT NULL DEFAULT 0,
					is_excluded_from_analytics INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (account_id) REFERENCES accounts(id)
				)`,
				`CREATE INDEX idx_transactions_user_date ON transactions(user_id, transaction_date)`,
				`CREATE INDEX idx_transactions_import ON transactions(import_id)`,

				`CREATE TABLE IF NOT EXISTS categories (
					id TEXT PRIMARY KEY,
					user_id TEXT NOT NULL,
					name TEXT NOT NULL,
					type TEXT NOT NULL,
					parent_id TEXT,
					icon TEXT,
					color TEXT,
					is_system INTEGER NOT NULL DEFAULT 0,
					sort_order INTEGER NOT NULL DEFAULT 0
				)`,
				`CREATE INDEX idx_categories_user ON categories(user_id)`,
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
		version:     2,
		description: "unique canonical id per user",
		up: func(tx *sql.Tx) error {
			// Backstop for the check-then-insert dedup in the importer, so a
			// concurrent import of the same file cannot double-insert.
			_, err := tx.Exec(
				`CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_canonical
				 ON transactions(user_id, canonical_id)`)
			if err != nil {
				return fmt.Errorf("failed to create canonical index: %w", err)
			}
			return nil
		},
	},
}

// Migrate brings the database schema up to the expected version. It is safe
// to call on every startup; already-applied versions are skipped.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	var currentVersion int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.version, err)
		}

		if err := m.up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.description, err)
		}
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.version, err)
		}

		s.logger.Info("applied schema migration",
			fieldInt("version", m.version), fieldStr("description", m.description))
	}

	var finalVersion int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion); err != nil {
		return fmt.Errorf("failed to verify schema version: %w", err)
	}
	if finalVersion != expectedSchemaVersion {
		return fmt.Errorf("schema version %d after migration, expected %d", finalVersion, expectedSchemaVersion)
	}
	return nil
}
