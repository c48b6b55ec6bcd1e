// Package bolt provides a BoltDB-backed alternative to the SQLite store.
package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"questrank/internal/storage"
)

const (
	snapshotBucket = "snapshot"
	journalBucket  = "xp_journal"
)

var snapshotKey = []byte("main")

// Store provides a BoltDB-backed snapshot store.
type Store struct {
	db *bbolt.DB
}

// Open opens a BoltDB-backed store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

type snapshotRecord struct {
	SchemaVersion int             `json:"schemaVersion"`
	SavedAt       time.Time       `json:"savedAt"`
	Payload       json.RawMessage `json:"payload"`
}

type journalRecord struct {
	At      time.Time `json:"at"`
	DateKey string    `json:"dateKey"`
	Action  string    `json:"action"`
	Ref     string    `json:"ref,omitempty"`
	Delta   int       `json:"delta"`
	Repaid  int       `json:"repaid,omitempty"`
}

// LoadSnapshot returns the stored snapshot, or nil when nothing was saved yet.
func (s *Store) LoadSnapshot(ctx context.Context) (*storage.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	var out *storage.Snapshot
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(snapshotBucket))
		if bucket == nil {
			return fmt.Errorf("snapshot bucket is missing")
		}
		raw := bucket.Get(snapshotKey)
		if raw == nil {
			return nil
		}
		var rec snapshotRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("unmarshal snapshot: %w", err)
		}
		out = &storage.Snapshot{
			SchemaVersion: rec.SchemaVersion,
			SavedAt:       rec.SavedAt,
			Payload:       append([]byte(nil), rec.Payload...),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SaveSnapshot replaces the snapshot and appends journal entries in one
// update transaction.
func (s *Store) SaveSnapshot(ctx context.Context, snap storage.Snapshot, entries []storage.JournalEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	if snap.SavedAt.IsZero() {
		snap.SavedAt = time.Now()
	}
	if !json.Valid(snap.Payload) {
		return fmt.Errorf("snapshot payload is not valid json")
	}

	payload, err := json.Marshal(snapshotRecord{
		SchemaVersion: snap.SchemaVersion,
		SavedAt:       snap.SavedAt,
		Payload:       snap.Payload,
	})
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(snapshotBucket))
		if bucket == nil {
			return fmt.Errorf("snapshot bucket is missing")
		}
		if err := bucket.Put(snapshotKey, payload); err != nil {
			return fmt.Errorf("put snapshot: %w", err)
		}

		journal := tx.Bucket([]byte(journalBucket))
		if journal == nil {
			return fmt.Errorf("journal bucket is missing")
		}
		for _, e := range entries {
			seq, err := journal.NextSequence()
			if err != nil {
				return fmt.Errorf("journal sequence: %w", err)
			}
			raw, err := json.Marshal(journalRecord{
				At: e.At, DateKey: e.DateKey, Action: e.Action, Ref: e.Ref, Delta: e.Delta, Repaid: e.Repaid,
			})
			if err != nil {
				return fmt.Errorf("marshal journal entry: %w", err)
			}
			if err := journal.Put(sequenceKey(seq), raw); err != nil {
				return fmt.Errorf("put journal entry: %w", err)
			}
		}
		return nil
	})
}

// RecentJournal returns up to limit entries, newest first.
func (s *Store) RecentJournal(ctx context.Context, limit int) ([]storage.JournalEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = 20
	}

	var out []storage.JournalEntry
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(journalBucket))
		if bucket == nil {
			return fmt.Errorf("journal bucket is missing")
		}
		c := bucket.Cursor()
		for k, v := c.Last(); k != nil && len(out) < limit; k, v = c.Prev() {
			var rec journalRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("unmarshal journal entry: %w", err)
			}
			out = append(out, storage.JournalEntry{
				ID:      int64(binary.BigEndian.Uint64(k)),
				At:      rec.At,
				DateKey: rec.DateKey,
				Action:  rec.Action,
				Ref:     rec.Ref,
				Delta:   rec.Delta,
				Repaid:  rec.Repaid,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SumSince totals the journaled XP delta recorded at or after since.
func (s *Store) SumSince(ctx context.Context, since time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.db == nil {
		return 0, fmt.Errorf("storage is not configured")
	}

	total := 0
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(journalBucket))
		if bucket == nil {
			return fmt.Errorf("journal bucket is missing")
		}
		return bucket.ForEach(func(_, v []byte) error {
			var rec journalRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("unmarshal journal entry: %w", err)
			}
			if !rec.At.Before(since) {
				total += rec.Delta
			}
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{snapshotBucket, journalBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}

// sequenceKey encodes big-endian so cursor order matches insertion order.
func sequenceKey(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}
