package engine

import "testing"

func TestRankBandBoundaries(t *testing.T) {
	cases := []struct {
		p    float64
		want Rank
	}{
		{0, RankE}, {0.19, RankE}, {0.20, RankD}, {0.39, RankD}, {0.40, RankC},
		{0.59, RankC}, {0.60, RankB}, {0.74, RankB}, {0.75, RankA}, {0.89, RankA},
		{0.90, RankS}, {1.0, RankS},
	}
	for _, tc := range cases {
		if got := RankFromProgress(tc.p); got != tc.want {
			t.Fatalf("RankFromProgress(%v)=%s, want %s", tc.p, got, tc.want)
		}
	}
}

func TestRankBandsPartitionWithoutGaps(t *testing.T) {
	prev := -1
	for i := 0; i <= 100; i++ {
		r := RankFromProgress(float64(i) / 100)
		idx := -1
		for j, rr := range Ranks {
			if rr == r {
				idx = j
			}
		}
		if idx < 0 {
			t.Fatalf("no rank for %d%%", i)
		}
		if idx < prev || idx > prev+1 && prev >= 0 {
			t.Fatalf("rank jumped from %d to %d at %d%%", prev, idx, i)
		}
		prev = idx
	}
	if prev != len(Ranks)-1 {
		t.Fatalf("expected to end at S, ended at %s", Ranks[prev])
	}
}

func TestProgressFractionClampsAndGuardsZero(t *testing.T) {
	if got := ProgressFraction(5, 0); got != 0 {
		t.Fatalf("sTarget 0 should yield 0, got %v", got)
	}
	if got := ProgressFraction(5, -3); got != 0 {
		t.Fatalf("negative sTarget should yield 0, got %v", got)
	}
	if got := ProgressFraction(300, 100); got != 1 {
		t.Fatalf("expected clamp to 1, got %v", got)
	}
}

func TestCompletionAwardExample(t *testing.T) {
	q := testQuest("q", 20, 100)
	if got := QuestRank(q); got != RankD {
		t.Fatalf("rank=%s, want D", got)
	}
	if got := CompletionAward(q); got != 60 {
		t.Fatalf("award=%d, want 60", got)
	}

	q.XP = 24990
	if got := CompletionAward(q); got != 10 {
		t.Fatalf("award near cap=%d, want 10", got)
	}
	q.XP = 25000
	if got := CompletionAward(q); got != 0 || !IsCapped(q) {
		t.Fatalf("capped quest should award 0, got %d", got)
	}
}

func TestImprovementBonusAndPriority(t *testing.T) {
	q := testQuest("q", 20, 100)
	q.BaselineValue = 10
	if got := ImprovementBonus(q); got != 90 {
		t.Fatalf("bonus=%d, want 90", got)
	}
	if got := RawAward(q); got != 150 {
		t.Fatalf("raw=%d, want 150", got)
	}
	q.Priority = PriorityMinor
	if got := RawAward(q); got != 90 {
		t.Fatalf("minor raw=%d, want 90", got)
	}
}

func TestNextRankAndStreakBonus(t *testing.T) {
	if NextRank(RankC) != RankB || NextRank(RankS) != RankS {
		t.Fatalf("unexpected next rank sequence")
	}
	s := DefaultSettings()
	if got := StreakBonusPct(5, s); got != 10 {
		t.Fatalf("bonus=%d, want 10", got)
	}
	if got := StreakBonusPct(40, s); got != 30 {
		t.Fatalf("bonus=%d, want capped 30", got)
	}
	if got := StreakBonusPct(0, s); got != 0 {
		t.Fatalf("bonus=%d, want 0", got)
	}
}

func TestOverallProgress(t *testing.T) {
	if got := OverallProgress(nil); got != 0 {
		t.Fatalf("empty progress=%v", got)
	}
	got := OverallProgress([]Quest{testQuest("a", 20, 100), testQuest("b", 60, 100)})
	if got < 0.399 || got > 0.401 {
		t.Fatalf("overall=%v, want 0.4", got)
	}
}
