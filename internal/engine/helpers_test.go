package engine

import (
	"testing"
	"time"
)

// monday is 2024-01-01, a Monday, at 09:00 UTC.
var monday = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

// seqRand replays scripted values, each reduced modulo n.
type seqRand struct {
	vals []int
	i    int
}

func (r *seqRand) Intn(n int) int {
	if len(r.vals) == 0 {
		return 0
	}
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

func testQuest(id string, current, sTarget int) Quest {
	return NormalizeQuest(Quest{
		ID:                 id,
		Name:               "Push-ups",
		Domain:             DomainBody,
		ActivityKind:       KindStrength,
		MeasurementType:    MeasureReps,
		CurrentTargetValue: current,
		STargetValue:       sTarget,
		BaselineValue:      current,
		Priority:           PriorityMain,
		Frequency:          FrequencyDaily,
	})
}

func stateWith(quests ...Quest) AppState {
	st := DefaultState()
	st.Quests = append(st.Quests, quests...)
	return st
}

func mustQuest(t *testing.T, st AppState, id string) Quest {
	t.Helper()
	i := st.QuestIndex(id)
	if i < 0 {
		t.Fatalf("quest %s not found", id)
	}
	return st.Quests[i]
}
