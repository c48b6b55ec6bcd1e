package engine

import (
	"errors"
	"testing"
	"time"
)

func TestToggleRoundTripRestoresTotals(t *testing.T) {
	st := stateWith(testQuest("q", 20, 100))
	key := DateKey(monday)

	on, res, err := ToggleQuest(st, "q", monday)
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if !res.Done || res.Credited != 60 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got := mustQuest(t, on, "q").XP; got != 60 {
		t.Fatalf("quest xp=%d, want 60", got)
	}
	if on.TotalXP != 60 || on.Days[key].EarnedXP != 60 || on.XPByDay[key] != 60 {
		t.Fatalf("unexpected totals after toggle on: total=%d day=%d byDay=%d", on.TotalXP, on.Days[key].EarnedXP, on.XPByDay[key])
	}

	off, res, err := ToggleQuest(on, "q", monday)
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if res.Done || res.Credited != -60 {
		t.Fatalf("unexpected undo result: %+v", res)
	}
	if mustQuest(t, off, "q").XP != 0 || off.TotalXP != 0 || off.Days[key].EarnedXP != 0 || off.XPByDay[key] != 0 {
		t.Fatalf("round trip did not restore totals")
	}

	// The input snapshot is never mutated.
	if st.TotalXP != 0 || len(st.Days) != 0 {
		t.Fatalf("original state was mutated")
	}
}

func TestToggleRepaysDebtFirstAndUndoKeepsRepayment(t *testing.T) {
	st := stateWith(testQuest("q", 20, 100))
	key := DateKey(monday)
	e := st.Day(key)
	e.XPDebt = 50
	st.Days[key] = e

	on, res, err := ToggleQuest(st, "q", monday)
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if res.Repaid != 50 || res.Credited != 10 {
		t.Fatalf("expected 50 repaid and 10 credited, got %+v", res)
	}
	if on.Days[key].XPDebt != 0 || on.TotalXP != 10 || on.Days[key].Completed["q"].XP != 10 {
		t.Fatalf("unexpected state after repayment: %+v", on.Days[key])
	}

	off, _, err := ToggleQuest(on, "q", monday)
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	// Undo removes exactly what was credited; the repaid debt stays repaid.
	if off.TotalXP != 0 || off.Days[key].XPDebt != 0 || mustQuest(t, off, "q").XP != 0 {
		t.Fatalf("unexpected state after undo: total=%d debt=%d", off.TotalXP, off.Days[key].XPDebt)
	}
}

func TestToggleUnknownQuestIsNoop(t *testing.T) {
	st := stateWith(testQuest("q", 20, 100))
	next, res, err := ToggleQuest(st, "missing", monday)
	if err != nil || res.Changed || next.TotalXP != 0 || len(next.Days) != 0 {
		t.Fatalf("expected silent no-op, got res=%+v err=%v", res, err)
	}
}

func TestToggleBlockedAfterBedtime(t *testing.T) {
	st := stateWith(testQuest("q", 20, 100))
	st.Settings.BlockAfterBedtime = true
	late := monday.Add(15 * time.Hour) // 00:00 next day

	_, _, err := ToggleQuest(st, "q", late)
	var rej *RejectedError
	if !errors.As(err, &rej) || rej.Reason != ReasonOutsideWindow {
		t.Fatalf("expected outside_window rejection, got %v", err)
	}
}

func TestToggleNeverExceedsCap(t *testing.T) {
	q := testQuest("q", 20, 100)
	q.XP = XPCap(RankD) - 5
	st := stateWith(q)
	next, res, err := ToggleQuest(st, "q", monday)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if res.Credited != 5 || mustQuest(t, next, "q").XP != XPCap(RankD) {
		t.Fatalf("expected cap-limited credit, got %+v", res)
	}
}

func TestToggleUpdatesBaselineOnFreshCompletion(t *testing.T) {
	q := testQuest("q", 50, 100)
	q.BaselineValue = 40
	st := stateWith(q)
	next, res, err := ToggleQuest(st, "q", monday)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	// C rank: 85 + round(85*1.5)=128 bonus.
	if res.Credited != 85+128 {
		t.Fatalf("credited=%d, want %d", res.Credited, 85+128)
	}
	if mustQuest(t, next, "q").BaselineValue != 50 {
		t.Fatalf("baseline should move to the current target")
	}
}

func TestToggleBoss(t *testing.T) {
	st := stateWith()
	next, res, err := ToggleBoss(st, monday)
	if err != nil {
		t.Fatalf("boss: %v", err)
	}
	if res.Credited != BossBaseXP || !BossDefeated(next, monday) {
		t.Fatalf("unexpected boss result: %+v", res)
	}
	if !next.Days[DateKey(monday)].Completed["2024-01-01_boss"].Done {
		t.Fatalf("boss key missing from day entry")
	}

	// A later day of the same week cannot defeat it again.
	wed := monday.AddDate(0, 0, 2)
	_, _, err = ToggleBoss(next, wed)
	var rej *RejectedError
	if !errors.As(err, &rej) || rej.Reason != ReasonBossDefeated {
		t.Fatalf("expected boss_already_defeated, got %v", err)
	}

	// Undo on the same day restores the totals.
	undone, _, err := ToggleBoss(next, monday)
	if err != nil || undone.TotalXP != 0 {
		t.Fatalf("boss undo failed: total=%d err=%v", undone.TotalXP, err)
	}

	st.Settings.WeeklyBossEnabled = false
	if _, _, err := ToggleBoss(st, monday); !errors.As(err, &rej) || rej.Reason != ReasonBossDisabled {
		t.Fatalf("expected boss_disabled, got %v", err)
	}
}

func TestLateNightCompletionBelongsToWindowDate(t *testing.T) {
	st := stateWith(testQuest("q", 20, 100))
	st.Settings.BedTime = "01:00"
	st, _ = Rollover(st, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	late := time.Date(2024, 1, 2, 0, 30, 0, 0, time.UTC)
	on, res, err := ToggleQuest(st, "q", late)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if res.Credited != 60 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !on.Days["2024-01-01"].Completed["q"].Done || on.XPByDay["2024-01-01"] != 60 {
		t.Fatalf("completion should land on 2024-01-01: %+v", on.Days)
	}
	if on.Days["2024-01-02"].Completed["q"].Done {
		t.Fatalf("completion must not use up the next day")
	}

	after, res := ApplyBedtimePenalty(on, time.Date(2024, 1, 2, 1, 30, 0, 0, time.UTC))
	if res.Changed || after.Days["2024-01-01"].XPDebt != 0 {
		t.Fatalf("no penalty expected when every quest was done in the window: %+v", after.Days["2024-01-01"])
	}

	morning := time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)
	if ViewQuest(after, mustQuest(t, after, "q"), morning).DoneToday {
		t.Fatalf("quest should be open again on the next day")
	}
	if _, res, err := ToggleQuest(after, "q", morning); err != nil || !res.Done {
		t.Fatalf("next-day toggle should complete: res=%+v err=%v", res, err)
	}
}
