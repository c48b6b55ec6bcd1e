package engine

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Rand is the random source used for challenge picks. *rand.Rand from
// golang.org/x/exp/rand satisfies it; tests inject seeded or scripted sources.
type Rand interface {
	Intn(n int) int
}

// newID mints challenge and quest ids.
var newID = uuid.NewString

// WeeklyConstraintTarget is the fallback target for habit-type or capped quests.
const WeeklyConstraintTarget = "complete on 3 days this week"

// weeklyMultipliers is keyed by the current rank of the rank transition.
var weeklyMultipliers = map[Rank]float64{
	RankE: 2,
	RankD: 2.25,
	RankC: 2.5,
	RankB: 3,
	RankA: 4,
	RankS: 3,
}

// WeeklyMultiplier returns the reward multiplier for the transition out of r.
func WeeklyMultiplier(r Rank) float64 {
	if m, ok := weeklyMultipliers[r]; ok {
		return m
	}
	return weeklyMultipliers[RankE]
}

// WeeklyWindow returns [Monday at wake time, +7 days) containing now.
func WeeklyWindow(s Settings, now time.Time) (time.Time, time.Time) {
	monday := ISOWeekStart(now)
	start := WakeOn(s, monday)
	if now.Before(start) {
		start = WakeOn(s, monday.AddDate(0, 0, -7))
	}
	return start, start.AddDate(0, 0, 7)
}

// WeeklyTargetValue computes the next-rank threshold for a quantitative quest
// below its S target. ok is false when the constraint fallback applies.
func WeeklyTargetValue(q Quest) (value int, ok bool) {
	if !q.MeasurementType.Quantitative() || q.CurrentTargetValue >= q.STargetValue {
		return 0, false
	}
	next := NextRank(QuestRank(q))
	v := int(math.Round(float64(q.STargetValue) * RankMin(next)))
	v = max(v, q.CurrentTargetValue+1)
	v = min(v, q.STargetValue)
	return v, true
}

// WeeklyReward is round(baseXP(rank) x transition multiplier).
func WeeklyReward(q Quest) int {
	r := QuestRank(q)
	return int(math.Round(float64(BaseXP(r)) * WeeklyMultiplier(r)))
}

func buildWeeklyChallenge(q Quest, now, expires time.Time) *WeeklyChallenge {
	rank := QuestRank(q)
	target := WeeklyConstraintTarget
	if v, ok := WeeklyTargetValue(q); ok {
		target = strings.TrimSpace(fmt.Sprintf("hit %d %s in one session", v, q.Unit))
	}
	return &WeeklyChallenge{
		ID:        newID(),
		CreatedAt: now,
		ExpiresAt: expires,
		TaskID:    q.ID,
		Title:     fmt.Sprintf("%s: %s → %s", q.Name, rank, NextRank(rank)),
		Target:    target,
		XPReward:  WeeklyReward(q),
		Status:    ChallengeActive,
	}
}

// RefreshWeeklyChallenge expires an overdue challenge and generates one for
// the current window when none exists yet. It is idempotent per window.
func RefreshWeeklyChallenge(st AppState, now time.Time, rng Rand) (AppState, Result) {
	start, end := WeeklyWindow(st.Settings, now)
	wc := st.WeeklyChallenge
	expire := wc != nil && wc.Status == ChallengeActive && !now.Before(wc.ExpiresAt)
	current := wc != nil && !wc.CreatedAt.Before(start) && wc.CreatedAt.Before(end)
	generate := !current && len(st.Quests) > 0
	if !expire && !generate {
		return st, Result{}
	}

	next := st.Clone()
	if expire {
		next.WeeklyChallenge.Status = ChallengeExpired
	}
	if generate {
		q := next.Quests[rng.Intn(len(next.Quests))]
		next.WeeklyChallenge = buildWeeklyChallenge(q, now, end)
	}
	return next, Result{Changed: true}
}

// CompleteWeeklyChallenge claims the active weekly challenge and credits its
// reward through the debt-aware ledger.
func CompleteWeeklyChallenge(st AppState, now time.Time) (AppState, Result, error) {
	wc := st.WeeklyChallenge
	switch {
	case wc == nil:
		return st, Result{}, reject("weekly", ReasonNoWeekly)
	case wc.Status == ChallengeCompleted:
		return st, Result{}, reject("weekly", ReasonWeeklyDone)
	case wc.Status == ChallengeExpired || !now.Before(wc.ExpiresAt):
		return st, Result{}, reject("weekly", ReasonWeeklyExpired)
	}
	if err := windowGate(st, "weekly", now); err != nil {
		return st, Result{}, err
	}

	next := st.Clone()
	key := DayKey(st.Settings, now)
	credited, repaid := creditXP(&next, key, wc.XPReward)
	entry := next.Days[key]
	entry.Completed[weeklyMarker+wc.ID] = Completion{Done: true, XP: credited}
	next.Days[key] = entry
	next.WeeklyChallenge.Status = ChallengeCompleted
	return next, Result{Changed: true, Done: true, Credited: credited, Repaid: repaid}, nil
}
