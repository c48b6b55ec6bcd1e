package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Store is the SQLite-backed snapshot store with its XP journal.
type Store struct {
	db        *sql.DB
	snapshots *SnapshotRepo
	journal   *JournalRepo
}

// Open opens the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewStore(db), nil
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:        db,
		snapshots: NewSnapshotRepo(db),
		journal:   NewJournalRepo(db),
	}
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}


func (s *Store) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	return s.snapshots.Get(ctx)
}

// SaveSnapshot replaces the stored snapshot and appends journal entries in one
// transaction, so a failed write leaves the previous snapshot in place.
func (s *Store) SaveSnapshot(ctx context.Context, snap Snapshot, entries []JournalEntry) error {
	err := WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.snapshots.PutTx(ctx, tx, snap); err != nil {
			return err
		}
		for _, e := range entries {
			if _, err := s.journal.InsertTx(ctx, tx, e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *Store) RecentJournal(ctx context.Context, limit int) ([]JournalEntry, error) {
	return s.journal.Recent(ctx, limit)
}

// SumSince totals the journaled XP delta recorded at or after since.
func (s *Store) SumSince(ctx context.Context, since time.Time) (int, error) {
	return s.journal.SumSince(ctx, since)
}
