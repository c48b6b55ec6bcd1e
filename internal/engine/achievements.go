package engine

import (
	"strings"
	"time"
)

// Achievement represents a badge the player can earn.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Earned      bool
}

// AchievementChecker derives badges from a state snapshot.
type AchievementChecker struct {
	st  AppState
	now time.Time
}

func NewAchievementChecker(st AppState, now time.Time) *AchievementChecker {
	return &AchievementChecker{st: st, now: now}
}

// GetAchievements returns all achievements with their earned status.
func (c *AchievementChecker) GetAchievements() []Achievement {
	return []Achievement{
		c.firstCompletion("first_completion", "First Quest", "Complete any quest", "✓"),

		// Rank milestones
		c.rankAchievement("rank_c", "Climbing", "Reach rank C on any quest", "🌿", RankC),
		c.rankAchievement("rank_a", "Elite", "Reach rank A on any quest", "🌟", RankA),
		c.rankAchievement("rank_s", "S-Rank", "Reach rank S on any quest", "💫", RankS),

		// Streak milestones
		c.streakAchievement("streak_3", "Warming Up", "Keep a 3 day streak", "🔥", 3),
		c.streakAchievement("streak_7", "On Fire", "Keep a 7 day streak", "🔥", 7),
		c.streakAchievement("streak_30", "Unstoppable", "Keep a 30 day streak", "🏆", 30),

		c.debtFreeWeek("debt_free_week", "Clean Slate", "Finish a week with no xp debt", "🧾"),
		c.bossAchievement("boss_defeated", "Boss Slayer", "Defeat a weekly boss", "⚔"),
		c.mysteryAchievement("mystery_opened", "Curious", "Complete a mystery box", "🎁"),
	}
}

// CountEarned returns how many achievements have been earned.
func (c *AchievementChecker) CountEarned() int {
	count := 0
	for _, a := range c.GetAchievements() {
		if a.Earned {
			count++
		}
	}
	return count
}

// CountTotal returns total number of achievements.
func (c *AchievementChecker) CountTotal() int {
	return len(c.GetAchievements())
}

func (c *AchievementChecker) firstCompletion(id, name, desc, icon string) Achievement {
	earned := false
	for _, e := range c.st.Days {
		for k, comp := range e.Completed {
			if comp.Done && c.st.QuestIndex(k) >= 0 {
				earned = true
				break
			}
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) rankAchievement(id, name, desc, icon string, r Rank) Achievement {
	earned := false
	for _, q := range c.st.Quests {
		if RankMin(QuestRank(q)) >= RankMin(r) {
			earned = true
			break
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) streakAchievement(id, name, desc, icon string, days int) Achievement {
	earned := LongestStreak(c.st) >= days
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

// debtFreeWeek looks for a completed ISO week with recorded activity and no
// outstanding debt on any of its days.
func (c *AchievementChecker) debtFreeWeek(id, name, desc, icon string) Achievement {
	weeks := map[string]bool{}
	active := map[string]bool{}
	for key, e := range c.st.Days {
		d, err := ParseDateKey(key, c.now.Location())
		if err != nil {
			continue
		}
		wk := DateKey(ISOWeekStart(d))
		if _, seen := weeks[wk]; !seen {
			weeks[wk] = true
		}
		if e.XPDebt > 0 {
			weeks[wk] = false
		}
		if e.HasActivity() {
			active[wk] = true
		}
	}
	current := DateKey(ISOWeekStart(c.now))
	earned := false
	for wk, clean := range weeks {
		if clean && active[wk] && wk < current {
			earned = true
			break
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) bossAchievement(id, name, desc, icon string) Achievement {
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: c.hasMarker(func(k string) bool {
		return strings.HasSuffix(k, bossSuffix)
	})}
}

func (c *AchievementChecker) mysteryAchievement(id, name, desc, icon string) Achievement {
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: c.hasMarker(func(k string) bool {
		return strings.HasPrefix(k, mysteryMarker)
	})}
}

func (c *AchievementChecker) hasMarker(match func(string) bool) bool {
	for _, e := range c.st.Days {
		for k, comp := range e.Completed {
			if comp.Done && match(k) {
				return true
			}
		}
	}
	return false
}

// LongestStreak is the longest run of consecutive active days in the ledger.
func LongestStreak(st AppState) int {
	best := 0
	for key, e := range st.Days {
		if !e.HasActivity() {
			continue
		}
		d, err := ParseDateKey(key, time.Local)
		if err != nil {
			continue
		}
		// Only count runs from their first day.
		if prev, ok := st.Days[DateKey(d.AddDate(0, 0, -1))]; ok && prev.HasActivity() {
			continue
		}
		n := 0
		for cur := d; ; cur = cur.AddDate(0, 0, 1) {
			e, ok := st.Days[DateKey(cur)]
			if !ok || !e.HasActivity() {
				break
			}
			n++
		}
		best = max(best, n)
	}
	return best
}

// GetAchievements is a convenience wrapper over the service snapshot.
func GetAchievements(svc *Service) []Achievement {
	now := svc.Now()
	return NewAchievementChecker(svc.State(), now).GetAchievements()
}
