package engine

import "strings"

// ParseDomain coerces user input to a Domain.
// Unknown input falls back to the nearest alias, then to DomainLife.
func ParseDomain(input string) Domain {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "body", "fitness", "health", "physical", "sport", "sports", "exercise":
		return DomainBody
	case "mind", "mental", "study", "learning", "brain":
		return DomainMind
	case "hobbies", "hobby", "fun", "art", "creative":
		return DomainHobbies
	case "life", "home", "chores", "admin", "":
		return DomainLife
	}
	if k, ok := kindAliases[s]; ok {
		if d, ok := DomainOf(k); ok {
			return d
		}
	}
	return DomainLife
}

var kindAliases = map[string]ActivityKind{
	"strength": KindStrength, "lifting": KindStrength, "weights": KindStrength, "calisthenics": KindStrength,
	"cardio": KindCardio, "running": KindCardio, "run": KindCardio, "cycling": KindCardio, "endurance": KindCardio,
	"mobility": KindMobility, "stretching": KindMobility, "yoga": KindMobility, "flexibility": KindMobility,
	"sport": KindSport, "sports": KindSport, "game": KindSport,
	"reading": KindReading, "read": KindReading, "books": KindReading,
	"learning": KindLearning, "study": KindLearning, "language": KindLearning, "course": KindLearning,
	"meditation": KindMeditation, "mindfulness": KindMeditation, "breathing": KindMeditation,
	"journaling": KindJournaling, "journal": KindJournaling, "writing": KindJournaling,
	"creative": KindCreative, "art": KindCreative, "drawing": KindCreative, "painting": KindCreative,
	"music": KindMusic, "instrument": KindMusic, "practice": KindMusic,
	"craft": KindCraft, "crafts": KindCraft, "woodwork": KindCraft, "knitting": KindCraft,
	"gaming": KindGaming, "games": KindGaming, "chess": KindGaming,
	"admin": KindAdmin, "errands": KindAdmin, "finance": KindAdmin,
	"hydration": KindHydration, "water": KindHydration, "drink": KindHydration,
	"sleep": KindSleep, "rest": KindSleep, "bedtime": KindSleep,
	"chores": KindChores, "cleaning": KindChores, "tidy": KindChores, "laundry": KindChores,
	"nutrition": KindNutrition, "diet": KindNutrition, "food": KindNutrition, "meal": KindNutrition,
	"digital": KindDigital, "screen": KindDigital, "phone": KindDigital, "detox": KindDigital,
}

// ParseActivityKind coerces user input to a kind valid for the domain.
// Input naming a kind of another domain, or nothing recognisable, yields the
// domain's default kind.
func ParseActivityKind(input string, d Domain) ActivityKind {
	if !d.IsValid() {
		d = DomainLife
	}
	s := strings.TrimSpace(strings.ToLower(input))
	if k, ok := kindAliases[s]; ok && k.ValidFor(d) {
		return k
	}
	return KindsFor(d)[0]
}

// ParseMeasurementType coerces user input to a MeasurementType; default is habit.
func ParseMeasurementType(input string) MeasurementType {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "reps", "rep", "repetitions", "sets":
		return MeasureReps
	case "time", "minutes", "min", "mins", "duration", "hours", "seconds":
		return MeasureTime
	case "distance", "km", "kilometers", "miles", "mi", "meters", "m":
		return MeasureDistance
	case "count", "times", "x", "cups", "pages", "glasses":
		return MeasureCount
	default:
		return MeasureHabit
	}
}

// ParsePriority coerces input to a Priority; default is main.
func ParsePriority(input string) Priority {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "minor", "low", "secondary", "side", "optional":
		return PriorityMinor
	default:
		return PriorityMain
	}
}

// ParseFrequency coerces input to a Frequency; default is daily.
func ParseFrequency(input string) Frequency {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "weekly", "week", "custom", "days":
		return FrequencyWeekly
	default:
		return FrequencyDaily
	}
}
