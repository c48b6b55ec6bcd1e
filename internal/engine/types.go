package engine

import "time"

type Domain string

const (
	DomainBody    Domain = "body"
	DomainMind    Domain = "mind"
	DomainHobbies Domain = "hobbies"
	DomainLife    Domain = "life"
)

func (d Domain) IsValid() bool {
	switch d {
	case DomainBody, DomainMind, DomainHobbies, DomainLife:
		return true
	default:
		return false
	}
}

type ActivityKind string

const (
	KindStrength ActivityKind = "strength"
	KindCardio   ActivityKind = "cardio"
	KindMobility ActivityKind = "mobility"
	KindSport    ActivityKind = "sport"

	KindReading    ActivityKind = "reading"
	KindLearning   ActivityKind = "learning"
	KindMeditation ActivityKind = "meditation"
	KindJournaling ActivityKind = "journaling"

	KindCreative ActivityKind = "creative"
	KindMusic    ActivityKind = "music"
	KindCraft    ActivityKind = "craft"
	KindGaming   ActivityKind = "gaming"

	KindAdmin     ActivityKind = "admin"
	KindHydration ActivityKind = "hydration"
	KindSleep     ActivityKind = "sleep"
	KindChores    ActivityKind = "chores"
	KindNutrition ActivityKind = "nutrition"
	KindDigital   ActivityKind = "digital"
)

// domainKinds lists the activity kinds of each domain; the first entry is the
// domain default.
var domainKinds = map[Domain][]ActivityKind{
	DomainBody:    {KindStrength, KindCardio, KindMobility, KindSport},
	DomainMind:    {KindLearning, KindReading, KindMeditation, KindJournaling},
	DomainHobbies: {KindCreative, KindMusic, KindCraft, KindGaming},
	DomainLife:    {KindAdmin, KindHydration, KindSleep, KindChores, KindNutrition, KindDigital},
}

// KindsFor returns the activity kinds valid for a domain.
func KindsFor(d Domain) []ActivityKind {
	return domainKinds[d]
}

// DomainOf returns the domain an activity kind belongs to.
func DomainOf(k ActivityKind) (Domain, bool) {
	for d, kinds := range domainKinds {
		for _, kk := range kinds {
			if kk == k {
				return d, true
			}
		}
	}
	return "", false
}

func (k ActivityKind) ValidFor(d Domain) bool {
	for _, kk := range domainKinds[d] {
		if kk == k {
			return true
		}
	}
	return false
}

type MeasurementType string

const (
	MeasureReps     MeasurementType = "reps"
	MeasureTime     MeasurementType = "time"
	MeasureDistance MeasurementType = "distance"
	MeasureCount    MeasurementType = "count"
	MeasureHabit    MeasurementType = "habit"
)

func (m MeasurementType) IsValid() bool {
	switch m {
	case MeasureReps, MeasureTime, MeasureDistance, MeasureCount, MeasureHabit:
		return true
	default:
		return false
	}
}

// Quantitative reports whether the measurement has a numeric target that can grow.
func (m MeasurementType) Quantitative() bool {
	switch m {
	case MeasureReps, MeasureTime, MeasureDistance, MeasureCount:
		return true
	default:
		return false
	}
}

type Priority string

const (
	PriorityMain  Priority = "main"
	PriorityMinor Priority = "minor"
)

func (p Priority) IsValid() bool {
	return p == PriorityMain || p == PriorityMinor
}

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

func (f Frequency) IsValid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

type TimerStatus string

const (
	TimerIdle      TimerStatus = "idle"
	TimerActive    TimerStatus = "active"
	TimerPaused    TimerStatus = "paused"
	TimerCompleted TimerStatus = "completed"
)

type ChallengeStatus string

const (
	ChallengeActive    ChallengeStatus = "active"
	ChallengeCompleted ChallengeStatus = "completed"
	ChallengeExpired   ChallengeStatus = "expired"
)

// Quest is a recurring, user-defined habit.
type Quest struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`

	Domain          Domain          `json:"domain"`
	ActivityKind    ActivityKind    `json:"activityKind"`
	MeasurementType MeasurementType `json:"measurementType"`
	Unit            string          `json:"unit"`

	CurrentTargetValue int `json:"currentTargetValue"`
	STargetValue       int `json:"sTargetValue"`
	BaselineValue      int `json:"baselineValue"`

	Priority   Priority  `json:"priority"`
	Frequency  Frequency `json:"frequency"`
	DaysOfWeek []int     `json:"daysOfWeek"`

	XP int `json:"xp"`

	// Live timer, only meaningful for time-measured quests.
	TimerStatus   TimerStatus `json:"timerStatus,omitempty"`
	StartedAt     *time.Time  `json:"startedAt,omitempty"`
	ElapsedMs     int64       `json:"elapsedMs,omitempty"`
	TargetMinutes int         `json:"targetMinutes,omitempty"`
	GraceMinutes  int         `json:"graceMinutes,omitempty"`
}

// ScheduledOn reports whether the quest is due on the given weekday (Mon=0).
func (q Quest) ScheduledOn(weekday int) bool {
	for _, d := range q.DaysOfWeek {
		if d == weekday {
			return true
		}
	}
	return false
}

type Completion struct {
	Done bool `json:"done"`
	XP   int  `json:"xp"`
}

// DayEntry is the ledger for a single local calendar date.
type DayEntry struct {
	Completed   map[string]Completion `json:"completed"`
	EarnedXP    int                   `json:"earnedXP"`
	XPDebt      int                   `json:"xpDebt"`
	Note        string                `json:"note"`
	DebtApplied bool                  `json:"debtApplied"`
}

// HasActivity reports whether the day recorded any XP or completion.
func (e DayEntry) HasActivity() bool {
	if e.EarnedXP > 0 {
		return true
	}
	for _, c := range e.Completed {
		if c.Done {
			return true
		}
	}
	return false
}

type Settings struct {
	WakeTime              string `json:"wakeTime"`
	BedTime               string `json:"bedTime"`
	XPDebtEnabled         bool   `json:"xpDebtEnabled"`
	BlockAfterBedtime     bool   `json:"blockAfterBedtime"`
	NoPhonePenaltyEnabled bool   `json:"noPhonePenaltyEnabled"`
	NoPhonePenaltyMinutes int    `json:"noPhonePenaltyMinutes"`
	StreakBonusPctPerDay  int    `json:"streakBonusPctPerDay"`
	MaxStreakBonusPct     int    `json:"maxStreakBonusPct"`
	WeeklyBossEnabled     bool   `json:"weeklyBossEnabled"`
	ThemeMode             string `json:"themeMode"`
}

type WeeklyChallenge struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	ExpiresAt time.Time       `json:"expiresAt"`
	TaskID    string          `json:"taskId"`
	Title     string          `json:"title"`
	Target    string          `json:"target"`
	XPReward  int             `json:"xpReward"`
	Status    ChallengeStatus `json:"status"`
}

type MysteryBox struct {
	ID                  string          `json:"id"`
	CreatedAt           time.Time       `json:"createdAt"`
	ExpiresAt           time.Time       `json:"expiresAt"`
	BaseTaskID          string          `json:"baseTaskId"`
	DescriptionHidden   string          `json:"descriptionHidden"`
	DescriptionRevealed string          `json:"descriptionRevealed"`
	XPReward            int             `json:"xpReward"`
	TemplateID          string          `json:"templateId"`
	IsRevealed          bool            `json:"isRevealed"`
	RerollUsed          bool            `json:"rerollUsed"`
	Status              ChallengeStatus `json:"status"`
}

// AppState is the aggregate root owned by the engine.
type AppState struct {
	SchemaVersion   int                 `json:"schemaVersion"`
	Quests          []Quest             `json:"quests"`
	Settings        Settings            `json:"settings"`
	Days            map[string]DayEntry `json:"days"`
	TotalXP         int                 `json:"totalXP"`
	LastActiveDate  string              `json:"lastActiveDate"`
	WeeklyChallenge *WeeklyChallenge    `json:"weeklyChallenge"`
	MysteryBox      *MysteryBox         `json:"mysteryBox"`
	XPByDay         map[string]int      `json:"xpByDay"`
}

func DefaultSettings() Settings {
	return Settings{
		WakeTime:              "07:00",
		BedTime:               "23:00",
		XPDebtEnabled:         true,
		BlockAfterBedtime:     false,
		NoPhonePenaltyEnabled: false,
		NoPhonePenaltyMinutes: 60,
		StreakBonusPctPerDay:  2,
		MaxStreakBonusPct:     30,
		WeeklyBossEnabled:     true,
		ThemeMode:             "dark",
	}
}

// DefaultState returns a fresh, empty aggregate at the current schema version.
func DefaultState() AppState {
	return AppState{
		SchemaVersion: CurrentSchemaVersion,
		Quests:        []Quest{},
		Settings:      DefaultSettings(),
		Days:          map[string]DayEntry{},
		XPByDay:       map[string]int{},
	}
}

// Clone deep-copies the aggregate so transitions never alias the previous snapshot.
func (s AppState) Clone() AppState {
	out := s
	out.Quests = make([]Quest, len(s.Quests))
	for i, q := range s.Quests {
		out.Quests[i] = q.clone()
	}
	out.Days = make(map[string]DayEntry, len(s.Days))
	for k, d := range s.Days {
		out.Days[k] = d.clone()
	}
	out.XPByDay = make(map[string]int, len(s.XPByDay))
	for k, v := range s.XPByDay {
		out.XPByDay[k] = v
	}
	if s.WeeklyChallenge != nil {
		wc := *s.WeeklyChallenge
		out.WeeklyChallenge = &wc
	}
	if s.MysteryBox != nil {
		mb := *s.MysteryBox
		out.MysteryBox = &mb
	}
	return out
}

func (q Quest) clone() Quest {
	out := q
	if q.DaysOfWeek != nil {
		out.DaysOfWeek = append([]int(nil), q.DaysOfWeek...)
	}
	if q.StartedAt != nil {
		t := *q.StartedAt
		out.StartedAt = &t
	}
	return out
}

func (e DayEntry) clone() DayEntry {
	out := e
	out.Completed = make(map[string]Completion, len(e.Completed))
	for k, v := range e.Completed {
		out.Completed[k] = v
	}
	return out
}

// QuestIndex returns the slice index of the quest with the given id, or -1.
func (s AppState) QuestIndex(id string) int {
	for i := range s.Quests {
		if s.Quests[i].ID == id {
			return i
		}
	}
	return -1
}

// Day returns the entry for a date key, creating it lazily.
func (s *AppState) Day(key string) DayEntry {
	if s.Days == nil {
		s.Days = map[string]DayEntry{}
	}
	e, ok := s.Days[key]
	if !ok {
		e = DayEntry{Completed: map[string]Completion{}}
		s.Days[key] = e
	}
	if e.Completed == nil {
		e.Completed = map[string]Completion{}
		s.Days[key] = e
	}
	return e
}
