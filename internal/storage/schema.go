package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		// Single row keyed 'main'; each save replaces the previous payload.
		`CREATE TABLE IF NOT EXISTS snapshots (
			key TEXT PRIMARY KEY,
			schema_version INTEGER NOT NULL,
			payload BLOB NOT NULL,
			saved_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS xp_journal (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			at DATETIME NOT NULL,
			date_key TEXT NOT NULL,
			action TEXT NOT NULL,
			ref TEXT,
			delta INTEGER NOT NULL,
			repaid INTEGER DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_xp_journal_date_key ON xp_journal(date_key);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	return nil
}
