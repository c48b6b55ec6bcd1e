package engine

import (
	"regexp"
	"strings"
)

// ClassifyInput is a quest name plus optional explicit taxonomy hints.
type ClassifyInput struct {
	Name            string
	Domain          string
	ActivityKind    string
	MeasurementType string
	Unit            string
}

// Classification is the normalized taxonomy of a quest.
type Classification struct {
	Domain          Domain
	ActivityKind    ActivityKind
	MeasurementType MeasurementType
	Unit            string
}

type taxonomyRule struct {
	tag     string
	pattern *regexp.Regexp
	domain  Domain
	kind    ActivityKind
	measure MeasurementType
}

// taxonomyRules is ordered by priority: the first matching rule wins.
// Specific phrasing sits above the generic activity buckets.
var taxonomyRules = []taxonomyRule{
	{"screen", regexp.MustCompile(`phone|screen|social media|scroll|instagram|tiktok|youtube`), DomainLife, KindDigital, MeasureHabit},
	{"hydration", regexp.MustCompile(`water|hydrat|\bdrink`), DomainLife, KindHydration, MeasureCount},
	{"distance", regexp.MustCompile(`\d+\s?(km|mi|miles|k)\b|kilomet|distance`), DomainBody, KindCardio, MeasureDistance},
	{"strength", regexp.MustCompile(`\b(push|pull|sit|squat|plank|lunge|burpee|dip|crunch|curl|press|deadlift|lift|chin)`), DomainBody, KindStrength, MeasureReps},
	{"cardio", regexp.MustCompile(`\b(run|jog|cycl|bike|swim|row|walk|cardio|hiit|skip|jump rope)`), DomainBody, KindCardio, MeasureTime},
	{"mobility", regexp.MustCompile(`stretch|yoga|mobility|foam roll|pilates`), DomainBody, KindMobility, MeasureTime},
	{"sport", regexp.MustCompile(`football|soccer|basketball|tennis|climb|boxing|martial|padel|golf`), DomainBody, KindSport, MeasureTime},
	{"meditation", regexp.MustCompile(`meditat|mindful|breath`), DomainMind, KindMeditation, MeasureTime},
	{"reading", regexp.MustCompile(`\bread|book|pages|novel`), DomainMind, KindReading, MeasureCount},
	{"journaling", regexp.MustCompile(`journal|diary|gratitude`), DomainMind, KindJournaling, MeasureHabit},
	{"learning", regexp.MustCompile(`study|learn|course|duolingo|language|flashcard|leetcode|lecture`), DomainMind, KindLearning, MeasureTime},
	{"music", regexp.MustCompile(`guitar|piano|sing|drum|music|violin|ukulele`), DomainHobbies, KindMusic, MeasureTime},
	{"creative", regexp.MustCompile(`draw|paint|sketch|photo|design|write a|poem`), DomainHobbies, KindCreative, MeasureTime},
	{"craft", regexp.MustCompile(`knit|sew|wood|craft|garden|lego`), DomainHobbies, KindCraft, MeasureTime},
	{"gaming", regexp.MustCompile(`chess|puzzle|sudoku|gaming`), DomainHobbies, KindGaming, MeasureHabit},
	{"sleep", regexp.MustCompile(`sleep|bed by|wake up|nap`), DomainLife, KindSleep, MeasureHabit},
	{"chores", regexp.MustCompile(`clean|tidy|laundry|dishes|vacuum|chore`), DomainLife, KindChores, MeasureHabit},
	{"nutrition", regexp.MustCompile(`cook|meal|\beat|vegetable|fruit|protein|breakfast|vitamin`), DomainLife, KindNutrition, MeasureHabit},
	{"admin", regexp.MustCompile(`email|inbox|budget|bill|admin|plan|calendar`), DomainLife, KindAdmin, MeasureHabit},
}

var negativeHabitPattern = regexp.MustCompile(`no[- ]?phone|no[- ]?social|no[- ]?sugar|no[- ]?alcohol|no[- ]?smok|\bavoid|\blimit|\bquit|\bstop|\bskip the|\bwithout`)

var (
	waterUnitPattern   = regexp.MustCompile(`water|hydrat|drink|glass`)
	readingUnitPattern = regexp.MustCompile(`\bread|book|pages|novel`)
)

func matchTaxonomy(name string) (taxonomyRule, bool) {
	for _, r := range taxonomyRules {
		if r.pattern.MatchString(name) {
			return r, true
		}
	}
	return taxonomyRule{}, false
}

// Classify infers a quest's domain, activity kind, measurement type and unit.
// Explicit hints win over the name match field by field; unknown hints are
// coerced to the nearest valid member.
func Classify(in ClassifyInput) Classification {
	name := strings.ToLower(strings.TrimSpace(in.Name))
	rule, matched := matchTaxonomy(name)

	hintDomain := strings.TrimSpace(in.Domain)
	hintKind := strings.TrimSpace(in.ActivityKind)
	hintMeasure := strings.TrimSpace(in.MeasurementType)

	var out Classification
	switch {
	case hintDomain != "":
		out.Domain = ParseDomain(hintDomain)
	case hintKind != "":
		if d, ok := DomainOf(kindAliases[strings.ToLower(hintKind)]); ok {
			out.Domain = d
		} else if matched {
			out.Domain = rule.domain
		} else {
			out.Domain = DomainLife
		}
	case matched:
		out.Domain = rule.domain
	default:
		out.Domain = DomainLife
	}

	switch {
	case hintKind != "":
		out.ActivityKind = ParseActivityKind(hintKind, out.Domain)
	case matched && rule.kind.ValidFor(out.Domain):
		out.ActivityKind = rule.kind
	default:
		out.ActivityKind = KindsFor(out.Domain)[0]
	}

	switch {
	case hintMeasure != "":
		out.MeasurementType = ParseMeasurementType(hintMeasure)
	case matched:
		out.MeasurementType = rule.measure
	default:
		out.MeasurementType = MeasureHabit
	}

	if out.ActivityKind == KindCardio && out.MeasurementType == MeasureReps {
		out.MeasurementType = MeasureTime
	}
	if out.Domain == DomainLife && out.ActivityKind == KindHydration {
		out.MeasurementType = MeasureCount
	}
	if negativeHabitPattern.MatchString(name) {
		out.MeasurementType = MeasureHabit
	}

	out.Unit = unitFor(out.MeasurementType, name, in.Unit)
	return out
}

// DefaultUnit returns the display unit for a measurement type.
func DefaultUnit(m MeasurementType) string {
	switch m {
	case MeasureReps:
		return "reps"
	case MeasureTime:
		return "min"
	case MeasureDistance:
		return "km"
	case MeasureCount:
		return "x"
	default:
		return ""
	}
}

func unitFor(m MeasurementType, name, explicit string) string {
	if m == MeasureHabit {
		return ""
	}
	if u := strings.TrimSpace(explicit); u != "" {
		return u
	}
	if m == MeasureCount {
		switch {
		case waterUnitPattern.MatchString(name):
			return "cups"
		case readingUnitPattern.MatchString(name):
			return "pages"
		}
	}
	return DefaultUnit(m)
}
