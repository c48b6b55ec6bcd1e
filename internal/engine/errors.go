package engine

import "fmt"

// Reason codes carried by RejectedError.
type Reason string

const (
	ReasonOutsideWindow   Reason = "outside_window"
	ReasonGraceExceeded   Reason = "grace_exceeded"
	ReasonNotTimed        Reason = "not_timed"
	ReasonTimerState      Reason = "timer_state"
	ReasonBossDisabled    Reason = "boss_disabled"
	ReasonBossDefeated    Reason = "boss_already_defeated"
	ReasonNoWeekly        Reason = "no_weekly_challenge"
	ReasonWeeklyExpired   Reason = "weekly_expired"
	ReasonWeeklyDone      Reason = "weekly_done"
	ReasonNoMystery       Reason = "no_mystery_box"
	ReasonMysteryExpired  Reason = "mystery_expired"
	ReasonMysteryRevealed Reason = "mystery_revealed"
	ReasonMysteryHidden   Reason = "mystery_hidden"
	ReasonRerollUsed      Reason = "reroll_used"
	ReasonMysteryDone     Reason = "mystery_done"
	ReasonNoQuests        Reason = "no_quests"
)

// RejectedError reports an action the rules refused. State is left unchanged.
type RejectedError struct {
	Action string
	Reason Reason
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s rejected: %s", e.Action, e.Reason)
}

func reject(action string, reason Reason) error {
	return &RejectedError{Action: action, Reason: reason}
}
