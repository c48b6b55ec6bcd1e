package engine

import "time"

const (
	// MissedDayDebt is the penalty accrued for a day without activity.
	MissedDayDebt = 50
	MissedNote    = "(missed)"
)

// Rollover back-fills every date strictly between lastActiveDate and the
// current window date, accruing missed-day debt on empty days, then advances
// lastActiveDate.
// Finished live timers are reset for the new day.
func Rollover(st AppState, now time.Time) (AppState, Result) {
	today := DayKey(st.Settings, now)
	if st.LastActiveDate == today {
		return st, Result{}
	}
	next := st.Clone()

	if st.LastActiveDate != "" && st.LastActiveDate < today {
		last, err := ParseDateKey(st.LastActiveDate, now.Location())
		if err == nil {
			for d := last.AddDate(0, 0, 1); DateKey(d) < today; d = d.AddDate(0, 0, 1) {
				key := DateKey(d)
				entry := next.Day(key)
				if !entry.HasActivity() && next.Settings.XPDebtEnabled && !entry.DebtApplied {
					entry.XPDebt += MissedDayDebt
					entry.Note = MissedNote
					entry.DebtApplied = true
				}
				next.Days[key] = entry
			}
		}
	}

	next.Day(today)
	for i := range next.Quests {
		if next.Quests[i].TimerStatus == TimerCompleted {
			next.Quests[i].TimerStatus = TimerIdle
			next.Quests[i].ElapsedMs = 0
			next.Quests[i].StartedAt = nil
		}
	}
	next.LastActiveDate = today
	return next, Result{Changed: true}
}

// AllScheduledDone reports whether every quest due on date was completed.
func AllScheduledDone(st AppState, date time.Time) bool {
	entry := st.Days[DateKey(date)]
	wd := Weekday(date)
	for _, q := range st.Quests {
		if !q.ScheduledOn(wd) {
			continue
		}
		if !entry.Completed[q.ID].Done {
			return false
		}
	}
	return true
}

// ApplyBedtimePenalty floors the debt of the window's day at MissedDayDebt once
// now has passed bedtime with quests still open. It applies at most once per day.
func ApplyBedtimePenalty(st AppState, now time.Time) (AppState, Result) {
	if !st.Settings.XPDebtEnabled {
		return st, Result{}
	}
	w := ComputeDayWindow(st.Settings.WakeTime, st.Settings.BedTime, now)
	if !w.PastBedtime() {
		return st, Result{}
	}
	date := WindowDate(st.Settings, now)
	key := DateKey(date)
	if st.Days[key].DebtApplied || AllScheduledDone(st, date) {
		return st, Result{}
	}

	next := st.Clone()
	entry := next.Day(key)
	entry.XPDebt = max(entry.XPDebt, MissedDayDebt)
	entry.DebtApplied = true
	next.Days[key] = entry
	return next, Result{Changed: true}
}

// Streak counts consecutive days with activity, walking back from the current
// window date.
func Streak(st AppState, now time.Time) int {
	n := 0
	for d := WindowDate(st.Settings, now); ; d = d.AddDate(0, 0, -1) {
		entry, ok := st.Days[DateKey(d)]
		if !ok || !entry.HasActivity() {
			return n
		}
		n++
	}
}

// OutstandingDebt sums xpDebt across every recorded day.
func OutstandingDebt(st AppState) int {
	total := 0
	for _, e := range st.Days {
		total += e.XPDebt
	}
	return total
}
