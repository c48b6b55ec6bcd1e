package storage

import "time"

// Snapshot is one persisted copy of the full engine state.
type Snapshot struct {
	SchemaVersion int
	Payload       []byte
	SavedAt       time.Time
}

// JournalEntry records one XP movement applied by the engine.
type JournalEntry struct {
	ID      int64
	At      time.Time
	DateKey string
	Action  string
	Ref     string
	Delta   int
	Repaid  int
}
