package engine

import "time"

// BossBaseXP is the fixed weekly boss reward; it has no rank lookup.
const BossBaseXP = 100

// Completion keys of non-quest rewards in a day entry.
const (
	bossSuffix    = "_boss"
	weeklyMarker  = "weekly:"
	mysteryMarker = "mystery:"
)

// Result describes what an applied transition did.
type Result struct {
	Changed  bool
	Done     bool // completion state after a toggle
	Credited int  // XP credited net of debt repayment (negative on undo)
	Repaid   int  // debt repaid by this transition
}

// creditXP applies delta to the day entry, repaying that day's debt first when
// the credit is positive and debt is enabled. It updates earnedXP, totalXP and
// xpByDay, each floored at zero, and returns the credited and repaid amounts.
func creditXP(st *AppState, key string, delta int) (credited, repaid int) {
	entry := st.Day(key)
	credited = delta
	if delta > 0 && st.Settings.XPDebtEnabled && entry.XPDebt > 0 {
		repaid = min(entry.XPDebt, delta)
		entry.XPDebt -= repaid
		credited = delta - repaid
	}
	entry.EarnedXP = max(0, entry.EarnedXP+credited)
	st.Days[key] = entry

	st.TotalXP = max(0, st.TotalXP+credited)
	if st.XPByDay == nil {
		st.XPByDay = map[string]int{}
	}
	st.XPByDay[key] = max(0, st.XPByDay[key]+credited)
	return credited, repaid
}

func windowGate(st AppState, action string, now time.Time) error {
	if st.Settings.BlockAfterBedtime && !IsWithinDayWindow(st.Settings, now) {
		return reject(action, ReasonOutsideWindow)
	}
	return nil
}

// ToggleQuest flips today's completion of a quest. A fresh completion credits
// the quest's current award (repaying debt first); an undo removes exactly the
// XP that was credited. Unknown ids are a silent no-op.
func ToggleQuest(st AppState, id string, now time.Time) (AppState, Result, error) {
	if st.QuestIndex(id) < 0 {
		return st, Result{}, nil
	}
	if err := windowGate(st, "toggle", now); err != nil {
		return st, Result{}, err
	}
	next := st.Clone()
	res := toggleQuestAt(&next, next.QuestIndex(id), DayKey(st.Settings, now))
	return next, res, nil
}

func toggleQuestAt(st *AppState, idx int, key string) Result {
	q := st.Quests[idx]
	entry := st.Day(key)
	prev := entry.Completed[q.ID]
	was := prev.Done

	award := CompletionAward(q)
	delta := award
	if was {
		delta = -prev.XP
	}
	credited, repaid := creditXP(st, key, delta)

	entry = st.Days[key]
	if was {
		entry.Completed[q.ID] = Completion{Done: false, XP: 0}
	} else {
		entry.Completed[q.ID] = Completion{Done: true, XP: credited}
	}
	st.Days[key] = entry

	q.XP = clampInt(q.XP+credited, 0, XPCap(QuestRank(q)))
	if !was && q.CurrentTargetValue > q.BaselineValue {
		q.BaselineValue = q.CurrentTargetValue
	}
	st.Quests[idx] = q

	return Result{Changed: true, Done: !was, Credited: credited, Repaid: repaid}
}

// BossKey is the completion key of the weekly boss for the week containing t.
func BossKey(t time.Time) string {
	return DateKey(ISOWeekStart(t)) + bossSuffix
}

// ToggleBoss flips the weekly boss completion with the same debt-first rule as
// quests and a fixed reward.
func ToggleBoss(st AppState, now time.Time) (AppState, Result, error) {
	if !st.Settings.WeeklyBossEnabled {
		return st, Result{}, reject("boss", ReasonBossDisabled)
	}
	if err := windowGate(st, "boss", now); err != nil {
		return st, Result{}, err
	}

	day := WindowDate(st.Settings, now)
	key := DateKey(day)
	bossKey := BossKey(day)
	prev := st.Days[key].Completed[bossKey]
	if !prev.Done && bossDefeatedEarlier(st, now) {
		return st, Result{}, reject("boss", ReasonBossDefeated)
	}

	next := st.Clone()
	delta := BossBaseXP
	if prev.Done {
		delta = -prev.XP
	}
	credited, repaid := creditXP(&next, key, delta)
	entry := next.Days[key]
	if prev.Done {
		entry.Completed[bossKey] = Completion{Done: false}
	} else {
		entry.Completed[bossKey] = Completion{Done: true, XP: credited}
	}
	next.Days[key] = entry
	return next, Result{Changed: true, Done: !prev.Done, Credited: credited, Repaid: repaid}, nil
}

func bossDefeatedEarlier(st AppState, now time.Time) bool {
	day := WindowDate(st.Settings, now)
	bossKey := BossKey(day)
	today := DateKey(day)
	for d := ISOWeekStart(day); DateKey(d) < today; d = d.AddDate(0, 0, 1) {
		if st.Days[DateKey(d)].Completed[bossKey].Done {
			return true
		}
	}
	return false
}

// BossDefeated reports whether the boss of the current window's week has been
// completed.
func BossDefeated(st AppState, now time.Time) bool {
	day := WindowDate(st.Settings, now)
	if st.Days[DateKey(day)].Completed[BossKey(day)].Done {
		return true
	}
	return bossDefeatedEarlier(st, now)
}
