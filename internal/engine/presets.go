package engine

import (
	"fmt"
	"strings"
	"time"
)

// Preset is a built-in starter quest.
type Preset struct {
	Code  string
	Draft QuestDraft
}

func builtinPresets() []Preset {
	return []Preset{
		{
			Code: "pushups",
			Draft: QuestDraft{
				Name:               "Push-ups",
				Domain:             string(DomainBody),
				ActivityKind:       string(KindStrength),
				MeasurementType:    string(MeasureReps),
				CurrentTargetValue: 20,
				STargetValue:       100,
				Priority:           string(PriorityMain),
			},
		},
		{
			Code: "run",
			Draft: QuestDraft{
				Name:               "Run",
				Domain:             string(DomainBody),
				ActivityKind:       string(KindCardio),
				MeasurementType:    string(MeasureDistance),
				Unit:               "km",
				CurrentTargetValue: 2,
				STargetValue:       10,
				Priority:           string(PriorityMain),
				Frequency:          string(FrequencyWeekly),
				DaysOfWeek:         []int{0, 2, 4},
			},
		},
		{
			Code: "read",
			Draft: QuestDraft{
				Name:               "Read",
				Domain:             string(DomainMind),
				ActivityKind:       string(KindReading),
				MeasurementType:    string(MeasureTime),
				CurrentTargetValue: 15,
				STargetValue:       60,
				Priority:           string(PriorityMain),
				TargetMinutes:      15,
				GraceMinutes:       10,
			},
		},
		{
			Code: "water",
			Draft: QuestDraft{
				Name:               "Drink water",
				Domain:             string(DomainLife),
				ActivityKind:       string(KindHydration),
				MeasurementType:    string(MeasureCount),
				Unit:               "cups",
				CurrentTargetValue: 4,
				STargetValue:       8,
				Priority:           string(PriorityMinor),
			},
		},
		{
			Code: "meditate",
			Draft: QuestDraft{
				Name:               "Meditate",
				Domain:             string(DomainMind),
				ActivityKind:       string(KindMeditation),
				MeasurementType:    string(MeasureTime),
				CurrentTargetValue: 5,
				STargetValue:       30,
				Priority:           string(PriorityMinor),
				TargetMinutes:      5,
				GraceMinutes:       5,
			},
		},
		{
			Code: "no-phone",
			Draft: QuestDraft{
				Name:            "No phone before bed",
				Domain:          string(DomainLife),
				ActivityKind:    string(KindDigital),
				MeasurementType: string(MeasureHabit),
				Priority:        string(PriorityMinor),
			},
		},
	}
}

// Presets lists the built-in starter quests.
func Presets() []Preset {
	return builtinPresets()
}

func normalizePresetCode(code string) (string, error) {
	c := strings.TrimSpace(strings.ToLower(code))
	if c == "" {
		return "", fmt.Errorf("preset code is required")
	}
	return c, nil
}

// LookupPreset finds a built-in preset by code.
func LookupPreset(code string) (Preset, error) {
	c, err := normalizePresetCode(code)
	if err != nil {
		return Preset{}, err
	}
	for _, p := range builtinPresets() {
		if p.Code == c {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("unknown preset: %s", c)
}

// AddPreset instantiates a preset as a new quest.
func AddPreset(st AppState, code string, now time.Time) (AppState, Quest, error) {
	p, err := LookupPreset(code)
	if err != nil {
		return st, Quest{}, err
	}
	next, q := AddQuest(st, p.Draft, now)
	return next, q, nil
}
