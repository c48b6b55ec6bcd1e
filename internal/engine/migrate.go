package engine

import (
	"encoding/json"
	"fmt"
)

// CurrentSchemaVersion is the version written by this engine.
const CurrentSchemaVersion = 2

// migrations[v] upgrades a snapshot from version v to v+1.
var migrations = map[int]func(AppState) AppState{
	1: migrateV1toV2,
}

// Migrate upgrades a snapshot to CurrentSchemaVersion by composing the
// per-version steps left to right. A missing version reads as 1. Snapshots
// from a newer engine are returned unchanged.
func Migrate(st AppState) AppState {
	if st.SchemaVersion <= 0 {
		st.SchemaVersion = 1
	}
	for st.SchemaVersion < CurrentSchemaVersion {
		step, ok := migrations[st.SchemaVersion]
		if !ok {
			break
		}
		st = step(st)
		st.SchemaVersion++
	}
	return repair(st)
}

// migrateV1toV2 re-derives quest taxonomy and back-fills xpByDay from the day
// ledger when a v1 snapshot has none.
func migrateV1toV2(st AppState) AppState {
	next := st.Clone()
	for i, q := range next.Quests {
		c := Classify(ClassifyInput{
			Name:            q.Name,
			Domain:          string(q.Domain),
			ActivityKind:    string(q.ActivityKind),
			MeasurementType: string(q.MeasurementType),
			Unit:            q.Unit,
		})
		q.Domain = c.Domain
		q.ActivityKind = c.ActivityKind
		q.MeasurementType = c.MeasurementType
		q.Unit = c.Unit
		next.Quests[i] = q
	}
	if len(st.XPByDay) == 0 {
		next.XPByDay = make(map[string]int, len(next.Days))
		for k, d := range next.Days {
			if d.EarnedXP != 0 {
				next.XPByDay[k] = d.EarnedXP
			}
		}
	}
	return next
}

// repair fills nil collections and re-normalizes every quest and the settings
// so a loaded snapshot satisfies the aggregate invariants.
func repair(st AppState) AppState {
	if st.Quests == nil {
		st.Quests = []Quest{}
	}
	if st.Days == nil {
		st.Days = map[string]DayEntry{}
	}
	for k, d := range st.Days {
		if d.Completed == nil {
			d.Completed = map[string]Completion{}
			st.Days[k] = d
		}
	}
	if st.XPByDay == nil {
		st.XPByDay = map[string]int{}
	}
	for i := range st.Quests {
		st.Quests[i] = NormalizeQuest(st.Quests[i])
	}
	if st.Settings == (Settings{}) {
		st.Settings = DefaultSettings()
	}
	st.Settings = NormalizeSettings(st.Settings)
	st.TotalXP = max(0, st.TotalXP)
	return st
}

// DecodeState parses and migrates a persisted snapshot.
func DecodeState(payload []byte) (AppState, error) {
	if len(payload) == 0 {
		return AppState{}, fmt.Errorf("decode state: empty snapshot")
	}
	var st AppState
	if err := json.Unmarshal(payload, &st); err != nil {
		return AppState{}, fmt.Errorf("decode state: %w", err)
	}
	return Migrate(st), nil
}

// EncodeState serializes a snapshot for persistence.
func EncodeState(st AppState) ([]byte, error) {
	data, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return data, nil
}
