package engine

import (
	"sort"
	"strings"
	"time"
)

const DefaultQuestName = "New Quest"

type QuestDraft struct {
	Name            string
	Domain          string
	ActivityKind    string
	MeasurementType string
	Unit            string

	CurrentTargetValue int
	STargetValue       int

	Priority   string
	Frequency  string
	DaysOfWeek []int

	TargetMinutes int
	GraceMinutes  int
}

// defaultSTarget is the long-term goal suggested when a draft leaves it empty.
func defaultSTarget(m MeasurementType) int {
	switch m {
	case MeasureReps:
		return 100
	case MeasureTime:
		return 60
	case MeasureDistance:
		return 10
	case MeasureCount:
		return 10
	default:
		return 1
	}
}

// AddQuest classifies and normalizes a draft and appends it to the quest list.
// Missing targets come from the progression ladder of the S target.
func AddQuest(st AppState, in QuestDraft, now time.Time) (AppState, Quest) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = DefaultQuestName
	}
	c := Classify(ClassifyInput{
		Name:            name,
		Domain:          in.Domain,
		ActivityKind:    in.ActivityKind,
		MeasurementType: in.MeasurementType,
		Unit:            in.Unit,
	})

	sTarget := in.STargetValue
	if sTarget <= 0 {
		sTarget = max(defaultSTarget(c.MeasurementType), in.CurrentTargetValue)
	}
	current := in.CurrentTargetValue
	if current <= 0 {
		current = BuildQuestProgression(ProgressionInput{SRankTarget: sTarget}).Plan.RecommendedStartTarget
	}

	q := Quest{
		ID:                 newID(),
		Name:               name,
		CreatedAt:          now,
		Domain:             c.Domain,
		ActivityKind:       c.ActivityKind,
		MeasurementType:    c.MeasurementType,
		Unit:               c.Unit,
		CurrentTargetValue: current,
		STargetValue:       sTarget,
		BaselineValue:      current,
		Priority:           ParsePriority(in.Priority),
		Frequency:          ParseFrequency(in.Frequency),
		DaysOfWeek:         in.DaysOfWeek,
		TargetMinutes:      in.TargetMinutes,
		GraceMinutes:       in.GraceMinutes,
	}
	q = NormalizeQuest(q)

	next := st.Clone()
	next.Quests = append(next.Quests, q)
	return next, q
}

var allDays = []int{0, 1, 2, 3, 4, 5, 6}

// NormalizeQuest coerces enums, clamps targets and schedules, and clamps xp to
// the cap of the quest's rank. Every quest write goes through it.
func NormalizeQuest(q Quest) Quest {
	q.Name = strings.TrimSpace(q.Name)
	if q.Name == "" {
		q.Name = DefaultQuestName
	}

	if !q.Domain.IsValid() {
		q.Domain = ParseDomain(string(q.Domain))
	}
	if !q.ActivityKind.ValidFor(q.Domain) {
		q.ActivityKind = ParseActivityKind(string(q.ActivityKind), q.Domain)
	}
	if !q.MeasurementType.IsValid() {
		q.MeasurementType = ParseMeasurementType(string(q.MeasurementType))
	}
	if !q.Priority.IsValid() {
		q.Priority = ParsePriority(string(q.Priority))
	}
	if !q.Frequency.IsValid() {
		q.Frequency = ParseFrequency(string(q.Frequency))
	}

	if q.MeasurementType == MeasureHabit {
		q.CurrentTargetValue = 1
		q.STargetValue = 1
		q.Unit = ""
	} else {
		q.CurrentTargetValue = max(1, q.CurrentTargetValue)
		q.STargetValue = max(1, q.STargetValue)
		q.Unit = strings.TrimSpace(q.Unit)
		if q.Unit == "" {
			q.Unit = DefaultUnit(q.MeasurementType)
		}
	}
	q.BaselineValue = max(0, q.BaselineValue)

	q.DaysOfWeek = normalizeDays(q.Frequency, q.DaysOfWeek)

	if q.MeasurementType == MeasureTime {
		if q.TimerStatus == "" {
			q.TimerStatus = TimerIdle
		}
		q.TargetMinutes = clampInt(q.TargetMinutes, 0, minutesPerDay)
		q.GraceMinutes = clampInt(q.GraceMinutes, 0, 240)
	} else {
		q.TimerStatus = ""
		q.StartedAt = nil
		q.ElapsedMs = 0
		q.TargetMinutes = 0
		q.GraceMinutes = 0
	}

	q.XP = clampInt(q.XP, 0, XPCap(QuestRank(q)))
	return q
}

func normalizeDays(f Frequency, days []int) []int {
	if f == FrequencyDaily {
		return append([]int(nil), allDays...)
	}
	seen := map[int]bool{}
	var out []int
	for _, d := range days {
		if d < 0 || d > 6 || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	if len(out) == 0 {
		return []int{0}
	}
	sort.Ints(out)
	return out
}
