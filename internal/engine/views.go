package engine

import (
	"fmt"
	"math"
	"time"
)

type QuestView struct {
	Quest            Quest
	Rank             Rank
	ProgressFraction float64
	XPCap            int
	XPToCap          int
	NextAwardPreview int
	IsCapped         bool
	DoneToday        bool
	ScheduledToday   bool
	TimerElapsed     time.Duration
}

// ViewQuest derives the per-quest values the presentation layer renders.
func ViewQuest(st AppState, q Quest, now time.Time) QuestView {
	rank := QuestRank(q)
	cap := XPCap(rank)
	return QuestView{
		Quest:            q,
		Rank:             rank,
		ProgressFraction: QuestProgress(q),
		XPCap:            cap,
		XPToCap:          max(0, cap-q.XP),
		NextAwardPreview: CompletionAward(q),
		IsCapped:         IsCapped(q),
		DoneToday:        st.Days[DayKey(st.Settings, now)].Completed[q.ID].Done,
		ScheduledToday:   q.ScheduledOn(Weekday(WindowDate(st.Settings, now))),
		TimerElapsed:     Elapsed(q, now),
	}
}

// ViewQuests derives views for every quest in list order.
func ViewQuests(st AppState, now time.Time) []QuestView {
	out := make([]QuestView, 0, len(st.Quests))
	for _, q := range st.Quests {
		out = append(out, ViewQuest(st, q, now))
	}
	return out
}

type DayWindowView struct {
	WithinWindow     bool
	MinutesLeft      int
	ProgressFraction float64
	TimeLeft         string
	// PhoneCutoffMinutesLeft counts down to bedtime minus the no-phone
	// period; -1 when the no-phone penalty is off.
	PhoneCutoffMinutesLeft int
}

func ViewDayWindow(s Settings, now time.Time) DayWindowView {
	w := ComputeDayWindow(s.WakeTime, s.BedTime, now)
	v := DayWindowView{
		WithinWindow:           w.WithinWindow,
		MinutesLeft:            w.MinutesLeft(),
		ProgressFraction:       w.Progress,
		TimeLeft:               FormatRemaining(time.Duration(w.MinutesLeft()) * time.Minute),
		PhoneCutoffMinutesLeft: -1,
	}
	if s.NoPhonePenaltyEnabled {
		cutoff := float64(w.BedMin - s.NoPhonePenaltyMinutes)
		v.PhoneCutoffMinutesLeft = 0
		if w.WithinWindow && w.NowMin < cutoff {
			v.PhoneCutoffMinutesLeft = int(cutoff - w.NowMin)
		}
	}
	return v
}

type Summary struct {
	StreakDays         int
	StreakBonusPct     int
	OverallRank        Rank
	OverallProgressPct int
	TotalXP            int
	TodayEarnedXP      int
	TodayDebt          int
	OutstandingDebt    int
	BossDefeated       bool
}

func Summarize(st AppState, now time.Time) Summary {
	streak := Streak(st, now)
	overall := OverallProgress(st.Quests)
	today := st.Days[DayKey(st.Settings, now)]
	return Summary{
		StreakDays:         streak,
		StreakBonusPct:     StreakBonusPct(streak, st.Settings),
		OverallRank:        RankFromProgress(overall),
		OverallProgressPct: int(math.Round(overall * 100)),
		TotalXP:            st.TotalXP,
		TodayEarnedXP:      today.EarnedXP,
		TodayDebt:          today.XPDebt,
		OutstandingDebt:    OutstandingDebt(st),
		BossDefeated:       BossDefeated(st, now),
	}
}

type WeeklyView struct {
	Challenge     WeeklyChallenge
	QuestName     string
	TimeRemaining string
	Claimable     bool
}

// ViewWeekly returns nil when there is no weekly challenge.
func ViewWeekly(st AppState, now time.Time) *WeeklyView {
	wc := st.WeeklyChallenge
	if wc == nil {
		return nil
	}
	v := &WeeklyView{
		Challenge:     *wc,
		TimeRemaining: FormatRemaining(wc.ExpiresAt.Sub(now)),
		Claimable:     wc.Status == ChallengeActive && now.Before(wc.ExpiresAt),
	}
	if i := st.QuestIndex(wc.TaskID); i >= 0 {
		v.QuestName = st.Quests[i].Name
	}
	return v
}

type MysteryView struct {
	Box           MysteryBox
	QuestName     string
	Description   string
	TimeRemaining string
	CanReveal     bool
	CanReroll     bool
	CanComplete   bool
}

// ViewMystery returns nil when there is no mystery box. The description is the
// revealed text only after reveal.
func ViewMystery(st AppState, now time.Time) *MysteryView {
	mb := st.MysteryBox
	if mb == nil {
		return nil
	}
	open := mb.Status == ChallengeActive && now.Before(mb.ExpiresAt)
	v := &MysteryView{
		Box:           *mb,
		Description:   mb.DescriptionHidden,
		TimeRemaining: FormatRemaining(mb.ExpiresAt.Sub(now)),
		CanReveal:     open && !mb.IsRevealed,
		CanReroll:     open && !mb.IsRevealed && !mb.RerollUsed,
		CanComplete:   open && mb.IsRevealed,
	}
	if mb.IsRevealed {
		v.Description = mb.DescriptionRevealed
	}
	if i := st.QuestIndex(mb.BaseTaskID); i >= 0 {
		v.QuestName = st.Quests[i].Name
	}
	return v
}

// FormatRemaining renders a countdown as "2d 4h", "3h 12m", "12m" or "expired".
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return "expired"
	}
	mins := int(d / time.Minute)
	days := mins / minutesPerDay
	hours := (mins % minutesPerDay) / 60
	m := mins % 60
	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, m)
	default:
		return fmt.Sprintf("%dm", m)
	}
}
