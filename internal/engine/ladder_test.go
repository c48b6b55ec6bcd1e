package engine

import "testing"

func TestBuildQuestProgressionStrictlyIncreasing(t *testing.T) {
	p := BuildQuestProgression(ProgressionInput{SRankTarget: 100})
	vals := p.Ladder.Values()
	want := [6]int{10, 25, 40, 60, 80, 100}
	if vals != want {
		t.Fatalf("ladder=%v, want %v", vals, want)
	}
	for i := 1; i < len(vals); i++ {
		if vals[i] <= vals[i-1] {
			t.Fatalf("ladder not strictly increasing: %v", vals)
		}
	}
	if p.Ladder.S != 100 {
		t.Fatalf("S rung=%d, want 100", p.Ladder.S)
	}
}

func TestBuildQuestProgressionPlan(t *testing.T) {
	p := BuildQuestProgression(ProgressionInput{SRankTarget: 100})
	if p.Plan.RecommendedStartTarget != 10 {
		t.Fatalf("start=%d, want 10", p.Plan.RecommendedStartTarget)
	}
	if p.Plan.IncreasePerSession != 1 || p.Plan.WeeklyIncrease != 7 || p.Plan.EstimatedWeeksToS != 12 {
		t.Fatalf("unexpected plan: %+v", p.Plan)
	}

	p = BuildQuestProgression(ProgressionInput{SRankTarget: 500, StartTarget: 80, SessionsPerWeek: 12, SessionsToS: 42})
	if p.Plan.SessionsPerWeek != 7 {
		t.Fatalf("sessions per week should clamp to 7, got %d", p.Plan.SessionsPerWeek)
	}
	if p.Plan.RecommendedStartTarget != 80 || p.Plan.IncreasePerSession != 10 || p.Plan.EstimatedWeeksToS != 6 {
		t.Fatalf("unexpected plan: %+v", p.Plan)
	}
}

func TestBuildQuestProgressionSmallTargets(t *testing.T) {
	for s := 1; s <= 12; s++ {
		vals := BuildQuestProgression(ProgressionInput{SRankTarget: s}).Ladder.Values()
		if vals[5] != s {
			t.Fatalf("s=%d: S rung=%d", s, vals[5])
		}
		for i := 1; i < len(vals); i++ {
			if vals[i] < vals[i-1] {
				t.Fatalf("s=%d: ladder decreases: %v", s, vals)
			}
			if s >= 6 && vals[i] <= vals[i-1] {
				t.Fatalf("s=%d: ladder not strictly increasing: %v", s, vals)
			}
		}
		if vals[0] < 1 {
			t.Fatalf("s=%d: rung below 1: %v", s, vals)
		}
	}
}

func TestNextMilestone(t *testing.T) {
	l := BuildQuestProgression(ProgressionInput{SRankTarget: 100}).Ladder
	r, v := l.NextMilestone(30)
	if r != RankC || v != 40 {
		t.Fatalf("next milestone=%s/%d, want C/40", r, v)
	}
	r, v = l.NextMilestone(100)
	if r != RankS || v != 100 {
		t.Fatalf("next milestone=%s/%d, want S/100", r, v)
	}
}
