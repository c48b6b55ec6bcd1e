package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type JournalRepo struct {
	db *sql.DB
}

func NewJournalRepo(db *sql.DB) *JournalRepo {
	return &JournalRepo{db: db}
}

func (r *JournalRepo) InsertTx(ctx context.Context, tx *sql.Tx, e JournalEntry) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO xp_journal (at, date_key, action, ref, delta, repaid)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.At, e.DateKey, e.Action, e.Ref, e.Delta, e.Repaid)
	if err != nil {
		return 0, fmt.Errorf("journal insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("journal last insert id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit entries, newest first.
func (r *JournalRepo) Recent(ctx context.Context, limit int) ([]JournalEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, at, date_key, action, COALESCE(ref, ''), delta, COALESCE(repaid, 0)
		FROM xp_journal
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("journal recent: %w", err)
	}
	defer rows.Close()

	var out []JournalEntry
	for rows.Next() {
		var e JournalEntry
		if err := rows.Scan(&e.ID, &e.At, &e.DateKey, &e.Action, &e.Ref, &e.Delta, &e.Repaid); err != nil {
			return nil, fmt.Errorf("journal scan: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal rows: %w", err)
	}
	return out, nil
}

// SumSince totals the XP delta recorded at or after since.
func (r *JournalRepo) SumSince(ctx context.Context, since time.Time) (int, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(delta), 0)
		FROM xp_journal
		WHERE at >= ?
	`, since)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("journal sum: %w", err)
	}
	return n, nil
}
