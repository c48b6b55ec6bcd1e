package engine

import "math"

type Rank string

const (
	RankE Rank = "E"
	RankD Rank = "D"
	RankC Rank = "C"
	RankB Rank = "B"
	RankA Rank = "A"
	RankS Rank = "S"
)

// Ranks lists every rank in ascending order.
var Ranks = []Rank{RankE, RankD, RankC, RankB, RankA, RankS}

type rankBand struct {
	rank   Rank
	min    float64
	cap    int
	baseXP int
}

// rankBands partitions [0,1]; a fraction belongs to the last band whose min it reaches.
var rankBands = []rankBand{
	{RankE, 0.00, 10000, 40},
	{RankD, 0.20, 25000, 60},
	{RankC, 0.40, 50000, 85},
	{RankB, 0.60, 90000, 115},
	{RankA, 0.75, 150000, 150},
	{RankS, 0.90, 250000, 200},
}

const (
	// ImprovementBonusRate scales base XP when the target rose since the baseline.
	ImprovementBonusRate = 1.5

	MainPriorityMultiplier  = 1.0
	MinorPriorityMultiplier = 0.6
)

func band(r Rank) rankBand {
	for _, b := range rankBands {
		if b.rank == r {
			return b
		}
	}
	return rankBands[0]
}

func (r Rank) IsValid() bool {
	for _, b := range rankBands {
		if b.rank == r {
			return true
		}
	}
	return false
}

// ProgressFraction is currentTarget / sTarget clamped to [0,1]; 0 when sTarget <= 0.
func ProgressFraction(current, sTarget int) float64 {
	if sTarget <= 0 {
		return 0
	}
	return clampFloat(float64(current)/float64(sTarget), 0, 1)
}

// QuestProgress returns the progress fraction of a quest.
func QuestProgress(q Quest) float64 {
	return ProgressFraction(q.CurrentTargetValue, q.STargetValue)
}

// RankFromProgress maps a progress fraction to its rank band.
func RankFromProgress(p float64) Rank {
	r := RankE
	for _, b := range rankBands {
		if p >= b.min {
			r = b.rank
		}
	}
	return r
}

// QuestRank returns the rank implied by a quest's current progress.
func QuestRank(q Quest) Rank {
	return RankFromProgress(QuestProgress(q))
}

// XPCap is the maximum XP a quest may hold at the rank.
func XPCap(r Rank) int { return band(r).cap }

// BaseXP is the per-completion base award at the rank.
func BaseXP(r Rank) int { return band(r).baseXP }

// RankMin is the inclusive lower progress bound of the rank.
func RankMin(r Rank) float64 { return band(r).min }

// NextRank returns the following rank; S maps to itself.
func NextRank(r Rank) Rank {
	for i, b := range rankBands {
		if b.rank == r && i+1 < len(rankBands) {
			return rankBands[i+1].rank
		}
	}
	return RankS
}

func PriorityMultiplier(p Priority) float64 {
	if p == PriorityMinor {
		return MinorPriorityMultiplier
	}
	return MainPriorityMultiplier
}

// ImprovementBonus returns round(base * 1.5) when the target rose above the baseline.
func ImprovementBonus(q Quest) int {
	if q.CurrentTargetValue <= q.BaselineValue {
		return 0
	}
	return int(math.Round(float64(BaseXP(QuestRank(q))) * ImprovementBonusRate))
}

// RawAward is the per-completion award before the cap is applied.
func RawAward(q Quest) int {
	base := BaseXP(QuestRank(q))
	return int(math.Round(float64(base+ImprovementBonus(q)) * PriorityMultiplier(q.Priority)))
}

// CompletionAward is the XP a completion of q would credit now: the raw award
// limited to the headroom left under the rank cap.
func CompletionAward(q Quest) int {
	headroom := XPCap(QuestRank(q)) - q.XP
	return max(0, min(RawAward(q), headroom))
}

// IsCapped reports whether the quest can earn no more XP at its current rank.
func IsCapped(q Quest) bool {
	return q.XP >= XPCap(QuestRank(q))
}

// StreakBonusPct is the display bonus for a streak, limited by the configured maximum.
func StreakBonusPct(streak int, s Settings) int {
	if streak <= 0 || s.StreakBonusPctPerDay <= 0 {
		return 0
	}
	return max(0, min(streak*s.StreakBonusPctPerDay, s.MaxStreakBonusPct))
}

// OverallProgress averages progress fractions across quests.
func OverallProgress(quests []Quest) float64 {
	if len(quests) == 0 {
		return 0
	}
	sum := 0.0
	for _, q := range quests {
		sum += QuestProgress(q)
	}
	return sum / float64(len(quests))
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
