package engine

import "strings"

// QuestPatch carries optional quest edits; nil fields are left unchanged.
type QuestPatch struct {
	Name            *string
	Domain          *string
	ActivityKind    *string
	MeasurementType *string
	Unit            *string

	CurrentTargetValue *int
	STargetValue       *int

	Priority   *string
	Frequency  *string
	DaysOfWeek []int

	TargetMinutes *int
	GraceMinutes  *int
}

// UpdateQuest applies a patch and re-normalizes the quest. Raising the current
// target records the previous target as the improvement baseline.
func UpdateQuest(st AppState, id string, p QuestPatch) (AppState, Result) {
	idx := st.QuestIndex(id)
	if idx < 0 {
		return st, Result{}
	}
	next := st.Clone()
	q := next.Quests[idx]

	if p.Name != nil {
		q.Name = *p.Name
	}
	if p.Domain != nil {
		q.Domain = ParseDomain(*p.Domain)
		if p.ActivityKind == nil && !q.ActivityKind.ValidFor(q.Domain) {
			q.ActivityKind = KindsFor(q.Domain)[0]
		}
	}
	if p.ActivityKind != nil {
		kind := strings.ToLower(strings.TrimSpace(*p.ActivityKind))
		if p.Domain == nil {
			if d, ok := DomainOf(kindAliases[kind]); ok {
				q.Domain = d
			}
		}
		q.ActivityKind = ParseActivityKind(kind, q.Domain)
	}
	if p.MeasurementType != nil {
		m := ParseMeasurementType(*p.MeasurementType)
		if m != q.MeasurementType && p.Unit == nil {
			q.Unit = DefaultUnit(m)
		}
		if q.MeasurementType == MeasureHabit && m != MeasureHabit {
			q.CurrentTargetValue = defaultSTarget(m) / 10
			q.STargetValue = defaultSTarget(m)
			q.BaselineValue = q.CurrentTargetValue
		}
		q.MeasurementType = m
	}
	if p.Unit != nil {
		q.Unit = *p.Unit
	}
	if p.STargetValue != nil {
		q.STargetValue = *p.STargetValue
	}
	if p.CurrentTargetValue != nil {
		v := max(1, *p.CurrentTargetValue)
		if v > q.CurrentTargetValue {
			q.BaselineValue = q.CurrentTargetValue
		}
		q.CurrentTargetValue = v
	}
	if p.Priority != nil {
		q.Priority = ParsePriority(*p.Priority)
	}
	if p.Frequency != nil {
		q.Frequency = ParseFrequency(*p.Frequency)
	}
	if p.DaysOfWeek != nil {
		q.DaysOfWeek = p.DaysOfWeek
	}
	if p.TargetMinutes != nil {
		q.TargetMinutes = *p.TargetMinutes
	}
	if p.GraceMinutes != nil {
		q.GraceMinutes = *p.GraceMinutes
	}

	next.Quests[idx] = NormalizeQuest(q)
	return next, Result{Changed: true}
}

// DeleteQuest removes a quest and takes its accumulated xp out of totalXP.
func DeleteQuest(st AppState, id string) (AppState, Result) {
	idx := st.QuestIndex(id)
	if idx < 0 {
		return st, Result{}
	}
	next := st.Clone()
	removed := next.Quests[idx]
	next.Quests = append(next.Quests[:idx], next.Quests[idx+1:]...)
	next.TotalXP = max(0, next.TotalXP-removed.XP)
	return next, Result{Changed: true, Credited: -removed.XP}
}

// SettingsPatch carries optional settings edits; nil fields are left unchanged.
type SettingsPatch struct {
	WakeTime              *string
	BedTime               *string
	XPDebtEnabled         *bool
	BlockAfterBedtime     *bool
	NoPhonePenaltyEnabled *bool
	NoPhonePenaltyMinutes *int
	StreakBonusPctPerDay  *int
	MaxStreakBonusPct     *int
	WeeklyBossEnabled     *bool
	ThemeMode             *string
}

// UpdateSettings applies a patch with every numeric value clamped to its domain.
func UpdateSettings(st AppState, p SettingsPatch) (AppState, Result) {
	next := st.Clone()
	s := &next.Settings
	if p.WakeTime != nil {
		s.WakeTime = *p.WakeTime
	}
	if p.BedTime != nil {
		s.BedTime = *p.BedTime
	}
	if p.XPDebtEnabled != nil {
		s.XPDebtEnabled = *p.XPDebtEnabled
	}
	if p.BlockAfterBedtime != nil {
		s.BlockAfterBedtime = *p.BlockAfterBedtime
	}
	if p.NoPhonePenaltyEnabled != nil {
		s.NoPhonePenaltyEnabled = *p.NoPhonePenaltyEnabled
	}
	if p.NoPhonePenaltyMinutes != nil {
		s.NoPhonePenaltyMinutes = *p.NoPhonePenaltyMinutes
	}
	if p.StreakBonusPctPerDay != nil {
		s.StreakBonusPctPerDay = *p.StreakBonusPctPerDay
	}
	if p.MaxStreakBonusPct != nil {
		s.MaxStreakBonusPct = *p.MaxStreakBonusPct
	}
	if p.WeeklyBossEnabled != nil {
		s.WeeklyBossEnabled = *p.WeeklyBossEnabled
	}
	if p.ThemeMode != nil {
		s.ThemeMode = *p.ThemeMode
	}
	next.Settings = NormalizeSettings(next.Settings)
	return next, Result{Changed: true}
}

// NormalizeSettings clamps clock strings and numeric settings.
func NormalizeSettings(s Settings) Settings {
	if strings.TrimSpace(s.WakeTime) == "" {
		s.WakeTime = DefaultSettings().WakeTime
	}
	if strings.TrimSpace(s.BedTime) == "" {
		s.BedTime = DefaultSettings().BedTime
	}
	s.WakeTime = NormalizeClock(s.WakeTime)
	s.BedTime = NormalizeClock(s.BedTime)
	s.NoPhonePenaltyMinutes = clampInt(s.NoPhonePenaltyMinutes, 0, 720)
	s.StreakBonusPctPerDay = clampInt(s.StreakBonusPctPerDay, 0, 100)
	s.MaxStreakBonusPct = clampInt(s.MaxStreakBonusPct, 0, 100)
	switch strings.ToLower(strings.TrimSpace(s.ThemeMode)) {
	case "light":
		s.ThemeMode = "light"
	case "system":
		s.ThemeMode = "system"
	default:
		s.ThemeMode = "dark"
	}
	return s
}
