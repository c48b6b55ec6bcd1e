package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const snapshotKey = "main"

type SnapshotRepo struct {
	db *sql.DB
}

func NewSnapshotRepo(db *sql.DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

// Get returns the stored snapshot, or nil when nothing was saved yet.
func (r *SnapshotRepo) Get(ctx context.Context) (*Snapshot, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT schema_version, payload, saved_at
		FROM snapshots
		WHERE key = ?
	`, snapshotKey)
	var s Snapshot
	if err := row.Scan(&s.SchemaVersion, &s.Payload, &s.SavedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("snapshot get: %w", err)
	}
	return &s, nil
}

func (r *SnapshotRepo) PutTx(ctx context.Context, tx *sql.Tx, s Snapshot) error {
	if s.SavedAt.IsZero() {
		s.SavedAt = time.Now()
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots (key, schema_version, payload, saved_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			schema_version = excluded.schema_version,
			payload = excluded.payload,
			saved_at = excluded.saved_at
	`, snapshotKey, s.SchemaVersion, s.Payload, s.SavedAt)
	if err != nil {
		return fmt.Errorf("snapshot put: %w", err)
	}
	return nil
}
