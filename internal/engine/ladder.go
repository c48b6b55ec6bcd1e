package engine

import "math"

const (
	DefaultSessionsPerWeek = 7
	DefaultSessionsToS     = 84
)

var ladderFractions = [6]float64{0.10, 0.25, 0.40, 0.60, 0.80, 1.00}

type ProgressionInput struct {
	SRankTarget     int
	StartTarget     int // optional; 0 means use the E rung
	SessionsPerWeek int // default 7, clamped 1..7
	SessionsToS     int // default 84
}

// Ladder holds one target threshold per rank.
type Ladder struct {
	E, D, C, B, A, S int
}

// Values returns the rungs in rank order.
func (l Ladder) Values() [6]int {
	return [6]int{l.E, l.D, l.C, l.B, l.A, l.S}
}

// GrowthPlan is the session-based plan from the start target to the S target.
type GrowthPlan struct {
	RecommendedStartTarget int
	IncreasePerSession     int
	WeeklyIncrease         int
	EstimatedWeeksToS      int
	SessionsPerWeek        int
	SessionsToS            int
}

type Progression struct {
	Ladder Ladder
	Plan   GrowthPlan
}

// BuildQuestProgression derives a six-rung target ladder and a growth plan for a
// long-term S-rank target. It does not persist anything.
func BuildQuestProgression(in ProgressionInput) Progression {
	s := max(1, in.SRankTarget)
	perWeek := in.SessionsPerWeek
	if perWeek <= 0 {
		perWeek = DefaultSessionsPerWeek
	}
	perWeek = clampInt(perWeek, 1, 7)
	toS := in.SessionsToS
	if toS <= 0 {
		toS = DefaultSessionsToS
	}

	var rungs [6]int
	for i, f := range ladderFractions {
		rungs[i] = int(math.Round(f * float64(s)))
	}
	prev := 0
	for i := 0; i < len(rungs)-1; i++ {
		remaining := len(rungs) - 1 - i
		v := max(rungs[i], prev+1)
		v = min(v, s-remaining)
		// Targets below six cannot hold six strictly increasing rungs.
		v = clampInt(v, max(1, prev), s)
		rungs[i] = v
		prev = v
	}
	rungs[5] = s

	ladder := Ladder{E: rungs[0], D: rungs[1], C: rungs[2], B: rungs[3], A: rungs[4], S: rungs[5]}

	start := ladder.E
	if in.StartTarget > 0 {
		start = clampInt(in.StartTarget, 1, s)
	}
	inc := max(1, int(math.Round(float64(s-start)/float64(toS))))

	return Progression{
		Ladder: ladder,
		Plan: GrowthPlan{
			RecommendedStartTarget: start,
			IncreasePerSession:     inc,
			WeeklyIncrease:         inc * perWeek,
			EstimatedWeeksToS:      int(math.Ceil(float64(toS) / float64(perWeek))),
			SessionsPerWeek:        perWeek,
			SessionsToS:            toS,
		},
	}
}

// NextMilestone returns the first ladder rung above the current target, or the
// S rung when the target already reached it.
func (l Ladder) NextMilestone(current int) (Rank, int) {
	vals := l.Values()
	for i, v := range vals {
		if v > current {
			return Ranks[i], v
		}
	}
	return RankS, l.S
}
