package engine

import (
	"fmt"
	"math"
	"time"
)

// MysteryWindow returns [today at wake time, +1 day) containing now.
func MysteryWindow(s Settings, now time.Time) (time.Time, time.Time) {
	start := WakeOn(s, now)
	if now.Before(start) {
		start = WakeOn(s, now.AddDate(0, 0, -1))
	}
	return start, start.AddDate(0, 0, 1)
}

// buildMysteryBox picks a quest and a fitting template. A revealed text that
// fails the wording guard is replaced by a constraint template.
func buildMysteryBox(quests []Quest, rng Rand, created, expires time.Time) *MysteryBox {
	q := quests[rng.Intn(len(quests))]
	pool := templatePool(q)
	tpl := pool[rng.Intn(len(pool))]
	text := tpl.describe(q)
	if !tpl.constraint && wordingMismatch(q, text) {
		tpl = constraintTemplates[rng.Intn(len(constraintTemplates))]
		text = tpl.describe(q)
	}
	return &MysteryBox{
		ID:                  newID(),
		CreatedAt:           created,
		ExpiresAt:           expires,
		BaseTaskID:          q.ID,
		DescriptionHidden:   fmt.Sprintf("A sealed box tied to %q. Reveal it to see today's twist.", q.Name),
		DescriptionRevealed: text,
		XPReward:            int(math.Round(float64(BaseXP(QuestRank(q))) * tpl.multiplier)),
		TemplateID:          tpl.id,
		Status:              ChallengeActive,
	}
}

// RefreshMysteryBox expires an overdue box and generates one for the current
// daily window when none exists yet.
func RefreshMysteryBox(st AppState, now time.Time, rng Rand) (AppState, Result) {
	start, end := MysteryWindow(st.Settings, now)
	mb := st.MysteryBox
	expire := mb != nil && mb.Status == ChallengeActive && !now.Before(mb.ExpiresAt)
	current := mb != nil && !mb.CreatedAt.Before(start) && mb.CreatedAt.Before(end)
	generate := !current && len(st.Quests) > 0
	if !expire && !generate {
		return st, Result{}
	}

	next := st.Clone()
	if expire {
		next.MysteryBox.Status = ChallengeExpired
	}
	if generate {
		next.MysteryBox = buildMysteryBox(next.Quests, rng, now, end)
	}
	return next, Result{Changed: true}
}

func mysteryGate(st AppState, action string, now time.Time) error {
	mb := st.MysteryBox
	switch {
	case mb == nil:
		return reject(action, ReasonNoMystery)
	case mb.Status == ChallengeCompleted:
		return reject(action, ReasonMysteryDone)
	case mb.Status == ChallengeExpired || !now.Before(mb.ExpiresAt):
		return reject(action, ReasonMysteryExpired)
	}
	return nil
}

// RevealMysteryBox moves the box from hidden to revealed, once.
func RevealMysteryBox(st AppState, now time.Time) (AppState, Result, error) {
	if err := mysteryGate(st, "reveal", now); err != nil {
		return st, Result{}, err
	}
	if st.MysteryBox.IsRevealed {
		return st, Result{}, reject("reveal", ReasonMysteryRevealed)
	}
	next := st.Clone()
	next.MysteryBox.IsRevealed = true
	return next, Result{Changed: true}, nil
}

// RerollMysteryBox regenerates the pick of a still-hidden box. Only one reroll
// is allowed per box, and never after reveal.
func RerollMysteryBox(st AppState, now time.Time, rng Rand) (AppState, Result, error) {
	if err := mysteryGate(st, "reroll", now); err != nil {
		return st, Result{}, err
	}
	mb := st.MysteryBox
	switch {
	case mb.RerollUsed:
		return st, Result{}, reject("reroll", ReasonRerollUsed)
	case mb.IsRevealed:
		return st, Result{}, reject("reroll", ReasonMysteryRevealed)
	case len(st.Quests) == 0:
		return st, Result{}, reject("reroll", ReasonNoQuests)
	}
	next := st.Clone()
	box := buildMysteryBox(next.Quests, rng, mb.CreatedAt, mb.ExpiresAt)
	box.RerollUsed = true
	next.MysteryBox = box
	return next, Result{Changed: true}, nil
}

// CompleteMysteryBox claims a revealed box and credits its reward through the
// debt-aware ledger.
func CompleteMysteryBox(st AppState, now time.Time) (AppState, Result, error) {
	if err := mysteryGate(st, "mystery", now); err != nil {
		return st, Result{}, err
	}
	if !st.MysteryBox.IsRevealed {
		return st, Result{}, reject("mystery", ReasonMysteryHidden)
	}
	if err := windowGate(st, "mystery", now); err != nil {
		return st, Result{}, err
	}

	next := st.Clone()
	key := DayKey(st.Settings, now)
	credited, repaid := creditXP(&next, key, next.MysteryBox.XPReward)
	entry := next.Days[key]
	entry.Completed[mysteryMarker+next.MysteryBox.ID] = Completion{Done: true, XP: credited}
	next.Days[key] = entry
	next.MysteryBox.Status = ChallengeCompleted
	return next, Result{Changed: true, Done: true, Credited: credited, Repaid: repaid}, nil
}
