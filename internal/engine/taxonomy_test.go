package engine

import "testing"

func TestClassifyByName(t *testing.T) {
	cases := []struct {
		name    string
		domain  Domain
		kind    ActivityKind
		measure MeasurementType
		unit    string
	}{
		{"Push-ups", DomainBody, KindStrength, MeasureReps, "reps"},
		{"Morning run", DomainBody, KindCardio, MeasureTime, "min"},
		{"Run 5km", DomainBody, KindCardio, MeasureDistance, "km"},
		{"Drink water", DomainLife, KindHydration, MeasureCount, "cups"},
		{"Read 20 pages", DomainMind, KindReading, MeasureCount, "pages"},
		{"Meditate", DomainMind, KindMeditation, MeasureTime, "min"},
		{"Guitar practice", DomainHobbies, KindMusic, MeasureTime, "min"},
		{"No phone after 9", DomainLife, KindDigital, MeasureHabit, ""},
		{"Something unusual", DomainLife, KindAdmin, MeasureHabit, ""},
	}
	for _, tc := range cases {
		got := Classify(ClassifyInput{Name: tc.name})
		if got.Domain != tc.domain || got.ActivityKind != tc.kind || got.MeasurementType != tc.measure || got.Unit != tc.unit {
			t.Fatalf("Classify(%q)=%+v, want %s/%s/%s/%q", tc.name, got, tc.domain, tc.kind, tc.measure, tc.unit)
		}
	}
}

func TestClassifyPriorityOrderIsDeterministic(t *testing.T) {
	// Matches both the distance and the cardio pattern; distance ranks higher.
	got := Classify(ClassifyInput{Name: "run 10 km"})
	if got.MeasurementType != MeasureDistance {
		t.Fatalf("expected distance, got %s", got.MeasurementType)
	}
	// Matches hydration and nutrition; hydration ranks higher.
	got = Classify(ClassifyInput{Name: "drink water with breakfast"})
	if got.ActivityKind != KindHydration {
		t.Fatalf("expected hydration, got %s", got.ActivityKind)
	}
}

func TestClassifyOverrides(t *testing.T) {
	got := Classify(ClassifyInput{Name: "Jumping jacks", Domain: "body", ActivityKind: "cardio", MeasurementType: "reps"})
	if got.MeasurementType != MeasureTime || got.Unit != "min" {
		t.Fatalf("cardio reps should become time, got %+v", got)
	}

	got = Classify(ClassifyInput{Name: "Hydrate", Domain: "life", ActivityKind: "hydration", MeasurementType: "time"})
	if got.MeasurementType != MeasureCount {
		t.Fatalf("life hydration should become count, got %s", got.MeasurementType)
	}

	got = Classify(ClassifyInput{Name: "Avoid sugar", MeasurementType: "count"})
	if got.MeasurementType != MeasureHabit || got.Unit != "" {
		t.Fatalf("negative habit phrasing should force habit, got %+v", got)
	}
}

func TestClassifyCoercesUnknownHints(t *testing.T) {
	got := Classify(ClassifyInput{Name: "x", Domain: "galaxy", ActivityKind: "teleport", MeasurementType: "parsecs"})
	if got.Domain != DomainLife || got.ActivityKind != KindAdmin || got.MeasurementType != MeasureHabit {
		t.Fatalf("unexpected coercion: %+v", got)
	}

	// A kind from another domain falls back to the domain default.
	got = Classify(ClassifyInput{Name: "x", Domain: "mind", ActivityKind: "strength"})
	if got.Domain != DomainMind || got.ActivityKind != KindLearning {
		t.Fatalf("unexpected coercion: %+v", got)
	}

	// A kind alone implies its domain.
	got = Classify(ClassifyInput{Name: "x", ActivityKind: "yoga"})
	if got.Domain != DomainBody || got.ActivityKind != KindMobility {
		t.Fatalf("unexpected kind-implied domain: %+v", got)
	}
}

func TestClassifyKeepsExplicitUnit(t *testing.T) {
	got := Classify(ClassifyInput{Name: "Drink water", Unit: "glasses"})
	if got.Unit != "glasses" {
		t.Fatalf("expected explicit unit, got %q", got.Unit)
	}
}

func TestParseActivityKindFallsBackToDomainDefault(t *testing.T) {
	for _, d := range []Domain{DomainBody, DomainMind, DomainHobbies, DomainLife} {
		kinds := KindsFor(d)
		if len(kinds) == 0 {
			t.Fatalf("domain %s has no kinds", d)
		}
		if got := ParseActivityKind("nonsense", d); got != kinds[0] {
			t.Fatalf("ParseActivityKind(nonsense, %s)=%s, want %s", d, got, kinds[0])
		}
		for _, k := range kinds {
			if !k.ValidFor(d) {
				t.Fatalf("%s should be valid for %s", k, d)
			}
		}
	}
}
