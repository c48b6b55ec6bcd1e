package engine

import (
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/exp/rand"
)

func TestWeeklyChallengeForRankC(t *testing.T) {
	st := stateWith(testQuest("q", 50, 100))
	next, res := RefreshWeeklyChallenge(st, monday, &seqRand{})
	if !res.Changed || next.WeeklyChallenge == nil {
		t.Fatalf("expected a weekly challenge")
	}
	wc := next.WeeklyChallenge
	if wc.XPReward != 213 {
		t.Fatalf("reward=%d, want 213", wc.XPReward)
	}
	if wc.Target != "hit 60 reps in one session" {
		t.Fatalf("target=%q", wc.Target)
	}
	if !strings.Contains(wc.Title, "C → B") || wc.TaskID != "q" || wc.Status != ChallengeActive {
		t.Fatalf("unexpected challenge: %+v", wc)
	}
	wantExpiry := time.Date(2024, 1, 8, 7, 0, 0, 0, time.UTC)
	if !wc.ExpiresAt.Equal(wantExpiry) {
		t.Fatalf("expiresAt=%v, want %v", wc.ExpiresAt, wantExpiry)
	}

	// Regeneration is suppressed within the same window.
	again, res := RefreshWeeklyChallenge(next, monday.AddDate(0, 0, 3), &seqRand{})
	if res.Changed || again.WeeklyChallenge.ID != wc.ID {
		t.Fatalf("weekly challenge should be stable within its window")
	}
}

func TestWeeklyTargetValue(t *testing.T) {
	// Next threshold must exceed the current target by at least one unit.
	q := testQuest("q", 59, 100)
	if v, ok := WeeklyTargetValue(q); !ok || v != 60 {
		t.Fatalf("target=%d ok=%v, want 60", v, ok)
	}
	q = testQuest("q", 74, 100)
	if v, _ := WeeklyTargetValue(q); v != 75 {
		t.Fatalf("target=%d, want 75", v)
	}
	q = testQuest("q", 95, 100)
	if v, _ := WeeklyTargetValue(q); v != 96 {
		t.Fatalf("target at S should still grow by one unit, got %d", v)
	}
	q = testQuest("q", 99, 100)
	if v, _ := WeeklyTargetValue(q); v != 100 {
		t.Fatalf("target should clamp to sTarget, got %d", v)
	}
	q = testQuest("q", 100, 100)
	if _, ok := WeeklyTargetValue(q); ok {
		t.Fatalf("capped quest should fall back to a constraint target")
	}
}

func TestWeeklyConstraintFallbackForHabits(t *testing.T) {
	habit := NormalizeQuest(Quest{ID: "h", Name: "Journal", MeasurementType: MeasureHabit})
	next, _ := RefreshWeeklyChallenge(stateWith(habit), monday, &seqRand{})
	if next.WeeklyChallenge.Target != WeeklyConstraintTarget {
		t.Fatalf("target=%q", next.WeeklyChallenge.Target)
	}
	// Habit at S: 200 x 3.
	if next.WeeklyChallenge.XPReward != 600 {
		t.Fatalf("reward=%d, want 600", next.WeeklyChallenge.XPReward)
	}
}

func TestWeeklyCompleteAndExpire(t *testing.T) {
	st, _ := RefreshWeeklyChallenge(stateWith(testQuest("q", 50, 100)), monday, &seqRand{})
	done, res, err := CompleteWeeklyChallenge(st, monday.Add(time.Hour))
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if res.Credited != 213 || done.TotalXP != 213 || done.WeeklyChallenge.Status != ChallengeCompleted {
		t.Fatalf("unexpected completion: res=%+v total=%d", res, done.TotalXP)
	}
	// Challenge rewards do not count toward the quest's own xp.
	if mustQuest(t, done, "q").XP != 0 {
		t.Fatalf("quest xp should be untouched")
	}

	var rej *RejectedError
	if _, _, err := CompleteWeeklyChallenge(done, monday.Add(2*time.Hour)); !errors.As(err, &rej) || rej.Reason != ReasonWeeklyDone {
		t.Fatalf("expected weekly_done, got %v", err)
	}
	late := st.WeeklyChallenge.ExpiresAt.Add(time.Minute)
	if _, _, err := CompleteWeeklyChallenge(st, late); !errors.As(err, &rej) || rej.Reason != ReasonWeeklyExpired {
		t.Fatalf("expected weekly_expired, got %v", err)
	}

	rolled, res := RefreshWeeklyChallenge(st, late, &seqRand{})
	if !res.Changed || rolled.WeeklyChallenge.ID == st.WeeklyChallenge.ID || rolled.WeeklyChallenge.Status != ChallengeActive {
		t.Fatalf("a new window should generate a new challenge")
	}
}

func TestMysteryBoxSeededReproducible(t *testing.T) {
	quests := []Quest{testQuest("a", 20, 100), timeQuest("b", 30, 0), NormalizeQuest(Quest{ID: "c", Name: "Journal"})}
	gen := func() *MysteryBox {
		next, _ := RefreshMysteryBox(stateWith(quests...), monday, rand.New(rand.NewSource(42)))
		return next.MysteryBox
	}
	a, b := gen(), gen()
	if a.BaseTaskID != b.BaseTaskID || a.TemplateID != b.TemplateID || a.DescriptionRevealed != b.DescriptionRevealed || a.XPReward != b.XPReward {
		t.Fatalf("same seed produced different boxes: %+v vs %+v", a, b)
	}
	if a.IsRevealed || a.RerollUsed || a.Status != ChallengeActive {
		t.Fatalf("new box should be hidden and active: %+v", a)
	}
	if !a.ExpiresAt.Equal(time.Date(2024, 1, 2, 7, 0, 0, 0, time.UTC)) {
		t.Fatalf("expiresAt=%v", a.ExpiresAt)
	}
}

func TestMysteryGuardSubstitutesConstraintTemplate(t *testing.T) {
	q := timeQuest("t", 30, 0)
	q.Unit = "reps"
	next, _ := RefreshMysteryBox(stateWith(q), monday, &seqRand{})
	mb := next.MysteryBox
	if mb.TemplateID != "streak-blocks" {
		t.Fatalf("template=%s, want constraint substitute", mb.TemplateID)
	}
	if mb.XPReward != 119 {
		t.Fatalf("reward=%d, want round(85*1.4)=119", mb.XPReward)
	}
	if wordingMismatch(q, mb.DescriptionRevealed) {
		t.Fatalf("substituted text still mismatches: %q", mb.DescriptionRevealed)
	}
}

func TestMysteryTemplatesMatchMeasurement(t *testing.T) {
	habit := NormalizeQuest(Quest{ID: "h", Name: "Journal", MeasurementType: MeasureHabit})
	for _, tpl := range templatePool(habit) {
		if !tpl.constraint {
			t.Fatalf("habit quest got quantitative template %s", tpl.id)
		}
	}
	run := NormalizeQuest(Quest{ID: "r", Name: "Run", Domain: DomainBody, ActivityKind: KindCardio, MeasurementType: MeasureDistance, CurrentTargetValue: 5, STargetValue: 10})
	for _, tpl := range templatePool(run) {
		if text := tpl.describe(run); wordingMismatch(run, text) {
			t.Fatalf("template %s mismatches distance wording: %q", tpl.id, text)
		}
	}
}

func TestMysteryStateMachine(t *testing.T) {
	st, _ := RefreshMysteryBox(stateWith(testQuest("a", 20, 100), testQuest("b", 50, 100)), monday, &seqRand{vals: []int{0, 0, 1, 0}})
	var rej *RejectedError

	if _, _, err := CompleteMysteryBox(st, monday); !errors.As(err, &rej) || rej.Reason != ReasonMysteryHidden {
		t.Fatalf("expected mystery_hidden, got %v", err)
	}

	rerolled, _, err := RerollMysteryBox(st, monday, &seqRand{vals: []int{1, 0}})
	if err != nil {
		t.Fatalf("reroll: %v", err)
	}
	if !rerolled.MysteryBox.RerollUsed || rerolled.MysteryBox.BaseTaskID != "b" {
		t.Fatalf("unexpected reroll: %+v", rerolled.MysteryBox)
	}
	if !rerolled.MysteryBox.ExpiresAt.Equal(st.MysteryBox.ExpiresAt) {
		t.Fatalf("reroll must keep the window")
	}
	if _, _, err := RerollMysteryBox(rerolled, monday, &seqRand{}); !errors.As(err, &rej) || rej.Reason != ReasonRerollUsed {
		t.Fatalf("expected reroll_used, got %v", err)
	}

	revealed, _, err := RevealMysteryBox(st, monday)
	if err != nil || !revealed.MysteryBox.IsRevealed {
		t.Fatalf("reveal: %v", err)
	}
	if _, _, err := RevealMysteryBox(revealed, monday); !errors.As(err, &rej) || rej.Reason != ReasonMysteryRevealed {
		t.Fatalf("expected mystery_revealed on second reveal, got %v", err)
	}
	if _, _, err := RerollMysteryBox(revealed, monday, &seqRand{}); !errors.As(err, &rej) || rej.Reason != ReasonMysteryRevealed {
		t.Fatalf("reroll after reveal should be rejected, got %v", err)
	}

	done, res, err := CompleteMysteryBox(revealed, monday.Add(time.Hour))
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if res.Credited != revealed.MysteryBox.XPReward || done.MysteryBox.Status != ChallengeCompleted {
		t.Fatalf("unexpected completion: %+v", res)
	}
	if _, _, err := CompleteMysteryBox(done, monday.Add(2*time.Hour)); !errors.As(err, &rej) || rej.Reason != ReasonMysteryDone {
		t.Fatalf("expected mystery_done, got %v", err)
	}

	late := revealed.MysteryBox.ExpiresAt
	if _, _, err := CompleteMysteryBox(revealed, late); !errors.As(err, &rej) || rej.Reason != ReasonMysteryExpired {
		t.Fatalf("expected mystery_expired, got %v", err)
	}
}

func TestTickComposesSweeps(t *testing.T) {
	st := stateWith(testQuest("q", 20, 100))
	st.LastActiveDate = "2023-12-30"
	next, res := Tick(st, monday, &seqRand{})
	if !res.Changed {
		t.Fatalf("tick should change state")
	}
	if next.Days["2023-12-31"].XPDebt != MissedDayDebt {
		t.Fatalf("rollover did not run")
	}
	if next.WeeklyChallenge == nil || next.MysteryBox == nil {
		t.Fatalf("challenges were not generated")
	}
	again, res := Tick(next, monday.Add(time.Minute), &seqRand{})
	if res.Changed || again.MysteryBox.ID != next.MysteryBox.ID {
		t.Fatalf("second tick in the same windows should be a no-op")
	}
}

func TestChallengeRewardsRepayDebtFirst(t *testing.T) {
	type complete func(AppState) (AppState, Result, error)
	boss := func(st AppState) (AppState, Result, error) { return ToggleBoss(st, monday) }
	weekly := func(st AppState) (AppState, Result, error) {
		return CompleteWeeklyChallenge(st, monday.Add(time.Hour))
	}
	mystery := func(st AppState) (AppState, Result, error) {
		revealed, _, err := RevealMysteryBox(st, monday)
		if err != nil {
			return st, Result{}, err
		}
		return CompleteMysteryBox(revealed, monday.Add(time.Hour))
	}

	weeklyState, _ := RefreshWeeklyChallenge(stateWith(testQuest("q", 50, 100)), monday, &seqRand{})
	mysteryState, _ := RefreshMysteryBox(stateWith(testQuest("a", 20, 100), testQuest("b", 50, 100)), monday, &seqRand{vals: []int{0, 0, 1, 0}})

	cases := []struct {
		name   string
		st     AppState
		reward int
		run    complete
	}{
		{"boss", stateWith(), BossBaseXP, boss},
		{"weekly", weeklyState, 213, weekly},
		{"mystery", mysteryState, mysteryState.MysteryBox.XPReward, mystery},
	}

	key := DateKey(monday)
	for _, tc := range cases {
		for _, debt := range []int{30, 1000} {
			st := tc.st.Clone()
			e := st.Day(key)
			e.XPDebt = debt
			st.Days[key] = e

			next, res, err := tc.run(st)
			if err != nil {
				t.Fatalf("%s debt=%d: %v", tc.name, debt, err)
			}
			wantRepaid := min(debt, tc.reward)
			wantCredited := tc.reward - wantRepaid
			if res.Repaid != wantRepaid || res.Credited != wantCredited {
				t.Fatalf("%s debt=%d: got %+v, want repaid=%d credited=%d", tc.name, debt, res, wantRepaid, wantCredited)
			}
			if next.Days[key].XPDebt != debt-wantRepaid {
				t.Fatalf("%s debt=%d: remaining debt=%d", tc.name, debt, next.Days[key].XPDebt)
			}
			if next.TotalXP != wantCredited || next.XPByDay[key] != wantCredited || next.Days[key].EarnedXP != wantCredited {
				t.Fatalf("%s debt=%d: total=%d byDay=%d earned=%d, want %d", tc.name, debt, next.TotalXP, next.XPByDay[key], next.Days[key].EarnedXP, wantCredited)
			}
		}
	}
}
