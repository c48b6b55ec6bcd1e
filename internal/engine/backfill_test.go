package engine

import (
	"testing"
	"time"
)

func TestRolloverBackfillsMissedDays(t *testing.T) {
	st := stateWith(testQuest("q", 20, 100))
	st.LastActiveDate = "2024-01-01"
	now := time.Date(2024, 1, 4, 9, 0, 0, 0, time.UTC)

	next, res := Rollover(st, now)
	if !res.Changed {
		t.Fatalf("expected rollover to change state")
	}
	for _, key := range []string{"2024-01-02", "2024-01-03"} {
		e, ok := next.Days[key]
		if !ok {
			t.Fatalf("missing entry for %s", key)
		}
		if e.XPDebt != MissedDayDebt || e.Note != MissedNote || !e.DebtApplied {
			t.Fatalf("unexpected entry for %s: %+v", key, e)
		}
	}
	if _, ok := next.Days["2024-01-04"]; !ok {
		t.Fatalf("today's entry should exist")
	}
	if next.LastActiveDate != "2024-01-04" {
		t.Fatalf("lastActiveDate=%s", next.LastActiveDate)
	}
	if OutstandingDebt(next) != 100 {
		t.Fatalf("outstanding debt=%d, want 100", OutstandingDebt(next))
	}

	again, res := Rollover(next, now.Add(time.Hour))
	if res.Changed || OutstandingDebt(again) != 100 {
		t.Fatalf("rollover on the same day must be a no-op")
	}
}

func TestRolloverSkipsActiveDaysAndDisabledDebt(t *testing.T) {
	st := stateWith(testQuest("q", 20, 100))
	st.LastActiveDate = "2024-01-01"
	e := st.Day("2024-01-02")
	e.EarnedXP = 40
	st.Days["2024-01-02"] = e
	now := time.Date(2024, 1, 4, 9, 0, 0, 0, time.UTC)

	next, _ := Rollover(st, now)
	if next.Days["2024-01-02"].XPDebt != 0 {
		t.Fatalf("active day should not accrue debt")
	}
	if next.Days["2024-01-03"].XPDebt != MissedDayDebt {
		t.Fatalf("empty day should accrue debt")
	}

	st.Settings.XPDebtEnabled = false
	next, _ = Rollover(st, now)
	if OutstandingDebt(next) != 0 {
		t.Fatalf("debt disabled should not accrue, got %d", OutstandingDebt(next))
	}
	if _, ok := next.Days["2024-01-03"]; !ok {
		t.Fatalf("entries should still be back-filled")
	}
}

func TestRolloverResetsCompletedTimers(t *testing.T) {
	q := timeQuest("t", 30, 0)
	q.TimerStatus = TimerCompleted
	q.ElapsedMs = 1000
	st := stateWith(q)
	st.LastActiveDate = "2024-01-01"

	next, _ := Rollover(st, time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC))
	if got := mustQuest(t, next, "t"); got.TimerStatus != TimerIdle || got.ElapsedMs != 0 {
		t.Fatalf("timer should reset on a new day: %+v", got)
	}
}

func TestApplyBedtimePenaltyOnce(t *testing.T) {
	st := stateWith(testQuest("q", 20, 100))
	late := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)

	next, res := ApplyBedtimePenalty(st, late)
	if !res.Changed {
		t.Fatalf("expected penalty after bedtime with open quests")
	}
	e := next.Days["2024-01-01"]
	if e.XPDebt != MissedDayDebt || !e.DebtApplied {
		t.Fatalf("unexpected entry: %+v", e)
	}

	again, res := ApplyBedtimePenalty(next, late.Add(10*time.Minute))
	if res.Changed || again.Days["2024-01-01"].XPDebt != MissedDayDebt {
		t.Fatalf("penalty must apply at most once per day")
	}

	// Not yet bedtime.
	if _, res := ApplyBedtimePenalty(st, monday); res.Changed {
		t.Fatalf("no penalty inside the window")
	}
}

func TestApplyBedtimePenaltyFloorsExistingDebt(t *testing.T) {
	st := stateWith(testQuest("q", 20, 100))
	e := st.Day("2024-01-01")
	e.XPDebt = 80
	st.Days["2024-01-01"] = e

	next, _ := ApplyBedtimePenalty(st, time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC))
	if next.Days["2024-01-01"].XPDebt != 80 {
		t.Fatalf("existing larger debt should be kept, got %d", next.Days["2024-01-01"].XPDebt)
	}
}

func TestApplyBedtimePenaltySkipsWhenAllDone(t *testing.T) {
	st := stateWith(testQuest("q", 20, 100))
	st, _, err := ToggleQuest(st, "q", monday)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, res := ApplyBedtimePenalty(st, time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)); res.Changed {
		t.Fatalf("no penalty when every scheduled quest is done")
	}
}

func TestStreak(t *testing.T) {
	st := stateWith()
	for _, key := range []string{"2023-12-30", "2024-01-01", "2024-01-02", "2024-01-03"} {
		e := st.Day(key)
		e.EarnedXP = 10
		st.Days[key] = e
	}
	now := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
	if got := Streak(st, now); got != 3 {
		t.Fatalf("streak=%d, want 3", got)
	}
	if got := Streak(st, now.AddDate(0, 0, 1)); got != 0 {
		t.Fatalf("today without activity should break the streak, got %d", got)
	}

	// A completion alone counts as activity.
	e := st.Day("2024-01-04")
	e.Completed["q"] = Completion{Done: true}
	st.Days["2024-01-04"] = e
	if got := Streak(st, now.AddDate(0, 0, 1)); got != 4 {
		t.Fatalf("streak=%d, want 4", got)
	}
	if got := LongestStreak(st); got != 4 {
		t.Fatalf("longest streak=%d, want 4", got)
	}
}
