package engine

import (
	"fmt"
	"math"
	"regexp"
)

type mysteryTemplate struct {
	id         string
	constraint bool
	measures   []MeasurementType // empty matches any
	kinds      []ActivityKind    // empty matches any
	multiplier float64
	describe   func(q Quest) string
}

func (t mysteryTemplate) fits(q Quest) bool {
	if len(t.measures) > 0 && !containsMeasure(t.measures, q.MeasurementType) {
		return false
	}
	if len(t.kinds) > 0 && !containsKind(t.kinds, q.ActivityKind) {
		return false
	}
	return true
}

func containsMeasure(list []MeasurementType, m MeasurementType) bool {
	for _, x := range list {
		if x == m {
			return true
		}
	}
	return false
}

func containsKind(list []ActivityKind, k ActivityKind) bool {
	for _, x := range list {
		if x == k {
			return true
		}
	}
	return false
}

func amount(q Quest) string {
	if q.Unit == "" {
		return fmt.Sprintf("%d", q.CurrentTargetValue)
	}
	return fmt.Sprintf("%d %s", q.CurrentTargetValue, q.Unit)
}

var quantitativeTemplates = []mysteryTemplate{
	{
		id: "tempo", measures: []MeasurementType{MeasureReps}, multiplier: 1.4,
		describe: func(q Quest) string {
			return fmt.Sprintf("Slow it down: do all %s with a 3-second lowering phase on every rep.", amount(q))
		},
	},
	{
		id: "sets", measures: []MeasurementType{MeasureReps, MeasureTime, MeasureDistance}, multiplier: 1.3,
		describe: func(q Quest) string {
			sets := 3
			if q.CurrentTargetValue >= 40 {
				sets = 4
			}
			return fmt.Sprintf("Split today's %s into %d equal blocks with a short rest between them.", amount(q), sets)
		},
	},
	{
		id: "ladder", measures: []MeasurementType{MeasureReps}, multiplier: 1.5,
		describe: func(q Quest) string {
			return fmt.Sprintf("Climb a ladder: 1 rep, then 2, then 3, and keep climbing until you pass %s.", amount(q))
		},
	},
	{
		id: "timebox", measures: []MeasurementType{MeasureReps, MeasureDistance}, multiplier: 1.45,
		describe: func(q Quest) string {
			limit := max(5, q.CurrentTargetValue/2)
			if q.MeasurementType == MeasureDistance {
				limit = max(10, q.CurrentTargetValue*7)
			}
			return fmt.Sprintf("Beat the clock: finish %s within %d minutes.", amount(q), limit)
		},
	},
	{
		id: "no-music", measures: []MeasurementType{MeasureTime, MeasureDistance}, multiplier: 1.25,
		describe: func(q Quest) string {
			return fmt.Sprintf("Go unplugged: %s with no music, podcasts or videos.", amount(q))
		},
	},
	{
		id: "perfect-form", measures: []MeasurementType{MeasureReps}, kinds: []ActivityKind{KindStrength, KindMobility}, multiplier: 1.6,
		describe: func(q Quest) string {
			return fmt.Sprintf("Perfect form only: all %s must be strict; restart the set on any sloppy rep.", amount(q))
		},
	},
	{
		id: "pause-reps", measures: []MeasurementType{MeasureReps}, kinds: []ActivityKind{KindStrength}, multiplier: 1.5,
		describe: func(q Quest) string {
			return fmt.Sprintf("Pause for 2 seconds at the bottom of each of your %s.", amount(q))
		},
	},
	{
		id: "even-odd", measures: []MeasurementType{MeasureReps, MeasureTime, MeasureDistance}, multiplier: 1.35,
		describe: func(q Quest) string {
			more := max(q.CurrentTargetValue+1, int(math.Round(float64(q.CurrentTargetValue)*1.1)))
			moreQ := q
			moreQ.CurrentTargetValue = more
			return fmt.Sprintf("Even-odd: on an even date go for %s; on an odd date finish %s in one unbroken go.", amount(moreQ), amount(q))
		},
	},
}

var constraintTemplates = []mysteryTemplate{
	{
		id: "streak-blocks", constraint: true, multiplier: 1.4,
		describe: func(q Quest) string {
			return fmt.Sprintf("Stack it: do %q back to back with one other quest in a single block.", q.Name)
		},
	},
	{
		id: "timing-window", constraint: true, multiplier: 1.35,
		describe: func(q Quest) string {
			return fmt.Sprintf("Early bird: finish %q within 2 hours of waking up.", q.Name)
		},
	},
	{
		id: "environment", constraint: true, multiplier: 1.25,
		describe: func(q Quest) string {
			return fmt.Sprintf("Change of scenery: do %q somewhere you don't usually do it.", q.Name)
		},
	},
	{
		id: "replacement", constraint: true, multiplier: 1.5,
		describe: func(q Quest) string {
			return fmt.Sprintf("Swap it in: replace 15 minutes of scrolling with %q today.", q.Name)
		},
	},
	{
		id: "double-down", constraint: true, multiplier: 1.6,
		describe: func(q Quest) string {
			return fmt.Sprintf("Double down: complete %q twice today, once before noon and once after.", q.Name)
		},
	},
}

// mysteryQuantitative reports whether a quest gets a quantitative twist.
func mysteryQuantitative(m MeasurementType) bool {
	return m == MeasureReps || m == MeasureTime || m == MeasureDistance
}

func templatePool(q Quest) []mysteryTemplate {
	if !mysteryQuantitative(q.MeasurementType) {
		return constraintTemplates
	}
	var pool []mysteryTemplate
	for _, t := range quantitativeTemplates {
		if t.fits(q) {
			pool = append(pool, t)
		}
	}
	if len(pool) == 0 {
		return constraintTemplates
	}
	return pool
}

// wordingGuards flags description wording that contradicts a measurement type.
var wordingGuards = map[MeasurementType]*regexp.Regexp{
	MeasureReps:     regexp.MustCompile(`(?i)\b(km|kilometers?|miles?)\b`),
	MeasureTime:     regexp.MustCompile(`(?i)\b(reps?|km|kilometers?|miles?)\b`),
	MeasureDistance: regexp.MustCompile(`(?i)\breps?\b`),
	MeasureCount:    regexp.MustCompile(`(?i)\b(reps?|km|kilometers?|miles?)\b`),
	MeasureHabit:    regexp.MustCompile(`(?i)\b(reps?|km|kilometers?|miles?)\b`),
}

// wordingMismatch reports whether text uses phrasing foreign to the quest's measurement.
func wordingMismatch(q Quest, text string) bool {
	g, ok := wordingGuards[q.MeasurementType]
	return ok && g.MatchString(text)
}
