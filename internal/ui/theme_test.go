package ui

import (
	"strings"
	"testing"
)

func TestFormatXPGroupsThousands(t *testing.T) {
	if got := FormatXP(1234567); got != "1,234,567 XP" {
		t.Fatalf("FormatXP=%q", got)
	}
	if got := FormatXP(85); got != "85 XP" {
		t.Fatalf("FormatXP=%q", got)
	}
}

func TestProgressBar(t *testing.T) {
	cases := []struct {
		f    float64
		want string
	}{
		{0, "[----------]"},
		{0.5, "[#####-----]"},
		{1, "[##########]"},
		{2, "[##########]"},
		{-1, "[----------]"},
	}
	for _, tc := range cases {
		if got := ProgressBar(tc.f, 10); got != tc.want {
			t.Fatalf("ProgressBar(%v)=%q, want %q", tc.f, got, tc.want)
		}
	}
}

func TestRankBadgeContainsLetter(t *testing.T) {
	if got := RankBadge("S"); !strings.Contains(got, "[S]") {
		t.Fatalf("RankBadge=%q", got)
	}
}
