package engine

import "testing"

func TestAddQuestClassifiesAndDefaults(t *testing.T) {
	st, q := AddQuest(DefaultState(), QuestDraft{Name: "  Push-ups "}, monday)
	if len(st.Quests) != 1 || st.Quests[0].ID != q.ID || q.ID == "" {
		t.Fatalf("quest not appended: %+v", st.Quests)
	}
	if q.Name != "Push-ups" || q.MeasurementType != MeasureReps || q.Unit != "reps" {
		t.Fatalf("unexpected classification: %+v", q)
	}
	// Default S target of 100 reps starts on the E rung.
	if q.STargetValue != 100 || q.CurrentTargetValue != 10 || q.BaselineValue != 10 {
		t.Fatalf("unexpected targets: %+v", q)
	}
	if q.Frequency != FrequencyDaily || len(q.DaysOfWeek) != 7 || !q.CreatedAt.Equal(monday) {
		t.Fatalf("unexpected schedule: %+v", q)
	}
}

func TestAddQuestHabitAndEmptyName(t *testing.T) {
	_, q := AddQuest(DefaultState(), QuestDraft{Name: "", CurrentTargetValue: 7, STargetValue: 9}, monday)
	if q.Name != DefaultQuestName || q.MeasurementType != MeasureHabit {
		t.Fatalf("unexpected quest: %+v", q)
	}
	if q.CurrentTargetValue != 1 || q.STargetValue != 1 || q.Unit != "" {
		t.Fatalf("habit targets must be fixed at 1: %+v", q)
	}
}

func TestNormalizeQuestClamps(t *testing.T) {
	q := NormalizeQuest(Quest{
		Name:               "Squats",
		Domain:             "nope",
		ActivityKind:       "nope",
		MeasurementType:    MeasureReps,
		CurrentTargetValue: -4,
		STargetValue:       0,
		Frequency:          FrequencyWeekly,
		DaysOfWeek:         []int{9, 4, 4, 1, -1},
		XP:                 999999,
	})
	if q.Domain != DomainLife || q.ActivityKind != KindAdmin {
		t.Fatalf("unknown enums should coerce: %+v", q)
	}
	if q.CurrentTargetValue != 1 || q.STargetValue != 1 {
		t.Fatalf("targets should clamp to 1: %+v", q)
	}
	if len(q.DaysOfWeek) != 2 || q.DaysOfWeek[0] != 1 || q.DaysOfWeek[1] != 4 {
		t.Fatalf("days should be deduped and sorted: %v", q.DaysOfWeek)
	}
	if q.XP != XPCap(QuestRank(q)) {
		t.Fatalf("xp should clamp to cap, got %d", q.XP)
	}
	if q.TimerStatus != "" || q.TargetMinutes != 0 {
		t.Fatalf("non-time quests carry no timer: %+v", q)
	}
}

func TestUpdateQuestRaisesBaseline(t *testing.T) {
	st := stateWith(testQuest("q", 20, 100))
	v := 30
	next, res := UpdateQuest(st, "q", QuestPatch{CurrentTargetValue: &v})
	if !res.Changed {
		t.Fatalf("expected change")
	}
	q := mustQuest(t, next, "q")
	if q.CurrentTargetValue != 30 || q.BaselineValue != 20 {
		t.Fatalf("unexpected targets: %+v", q)
	}
	if ImprovementBonus(q) == 0 {
		t.Fatalf("raised target should earn an improvement bonus")
	}
}

func TestUpdateQuestDomainAndMeasurement(t *testing.T) {
	st := stateWith(testQuest("q", 20, 100))
	domain, measure := "mind", "time"
	next, _ := UpdateQuest(st, "q", QuestPatch{Domain: &domain, MeasurementType: &measure})
	q := mustQuest(t, next, "q")
	if q.Domain != DomainMind || q.ActivityKind != KindLearning {
		t.Fatalf("kind should follow the new domain: %+v", q)
	}
	if q.MeasurementType != MeasureTime || q.Unit != "min" || q.TimerStatus != TimerIdle {
		t.Fatalf("unexpected measurement change: %+v", q)
	}

	kind := "yoga"
	next, _ = UpdateQuest(next, "q", QuestPatch{ActivityKind: &kind})
	if q := mustQuest(t, next, "q"); q.Domain != DomainBody || q.ActivityKind != KindMobility {
		t.Fatalf("kind alone should move the domain: %+v", q)
	}

	if _, res := UpdateQuest(st, "missing", QuestPatch{}); res.Changed {
		t.Fatalf("unknown id should be a no-op")
	}
}

func TestDeleteQuestRemovesXP(t *testing.T) {
	st := stateWith(testQuest("q", 20, 100), testQuest("r", 20, 100))
	st, _, _ = ToggleQuest(st, "q", monday)
	st, _, _ = ToggleQuest(st, "r", monday)
	next, _ := DeleteQuest(st, "q")
	if len(next.Quests) != 1 || next.QuestIndex("q") >= 0 {
		t.Fatalf("quest not removed")
	}
	if next.TotalXP != 60 {
		t.Fatalf("totalXP=%d, want 60", next.TotalXP)
	}
	if len(st.Quests) != 2 {
		t.Fatalf("original quest list was mutated")
	}
}

func TestUpdateSettingsClamps(t *testing.T) {
	wake, bed, mins, pct, theme := "6:75", "", 9999, 500, "neon"
	next, _ := UpdateSettings(DefaultState(), SettingsPatch{
		WakeTime: &wake, BedTime: &bed, NoPhonePenaltyMinutes: &mins, MaxStreakBonusPct: &pct, ThemeMode: &theme,
	})
	s := next.Settings
	if s.WakeTime != "06:59" || s.BedTime != "23:00" {
		t.Fatalf("unexpected clocks: %+v", s)
	}
	if s.NoPhonePenaltyMinutes != 720 || s.MaxStreakBonusPct != 100 || s.ThemeMode != "dark" {
		t.Fatalf("unexpected clamps: %+v", s)
	}
}

func TestPresets(t *testing.T) {
	if len(Presets()) != 6 {
		t.Fatalf("expected 6 presets")
	}
	st, q, err := AddPreset(DefaultState(), " WATER ", monday)
	if err != nil {
		t.Fatalf("AddPreset: %v", err)
	}
	if q.MeasurementType != MeasureCount || q.Unit != "cups" || q.CurrentTargetValue != 4 || len(st.Quests) != 1 {
		t.Fatalf("unexpected water preset: %+v", q)
	}
	_, q, err = AddPreset(DefaultState(), "run", monday)
	if err != nil || q.MeasurementType != MeasureDistance || len(q.DaysOfWeek) != 3 {
		t.Fatalf("unexpected run preset: %+v err=%v", q, err)
	}
	if _, _, err := AddPreset(DefaultState(), "levitate", monday); err == nil {
		t.Fatalf("expected unknown preset error")
	}
	if _, _, err := AddPreset(DefaultState(), "", monday); err == nil {
		t.Fatalf("expected empty preset error")
	}
}
