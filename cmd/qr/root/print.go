package root

import (
	"errors"
	"fmt"
	"io"

	"questrank/internal/engine"
	"questrank/internal/ui"
)

// printResult reports a transition outcome in one line.
func printResult(out io.Writer, label string, res engine.Result) {
	if !res.Changed {
		fmt.Fprintln(out, ui.Muted.Render(label+": nothing changed"))
		return
	}
	line := fmt.Sprintf("%s %s", ui.Good.Render(ui.IconDone+" "+label), ui.SignedXP(res.Credited))
	if res.Repaid > 0 {
		line += " " + ui.Muted.Render(fmt.Sprintf("(repaid %d debt)", res.Repaid))
	}
	fmt.Fprintln(out, line)
}

// explain turns a rules refusal into a readable error.
func explain(err error) error {
	var rej *engine.RejectedError
	if !errors.As(err, &rej) {
		return err
	}
	msg, ok := reasonText[rej.Reason]
	if !ok {
		msg = string(rej.Reason)
	}
	return fmt.Errorf("%s: %s", rej.Action, msg)
}

var reasonText = map[engine.Reason]string{
	engine.ReasonOutsideWindow:   "outside your day window (block after bedtime is on)",
	engine.ReasonGraceExceeded:   "the grace period for this timer has passed",
	engine.ReasonNotTimed:        "only time-measured quests have a timer",
	engine.ReasonTimerState:      "the timer is not in a state that allows this",
	engine.ReasonBossDisabled:    "the weekly boss is disabled in settings",
	engine.ReasonBossDefeated:    "the boss was already defeated earlier this week",
	engine.ReasonNoWeekly:        "there is no weekly challenge yet",
	engine.ReasonWeeklyExpired:   "the weekly challenge has expired",
	engine.ReasonWeeklyDone:      "the weekly challenge is already claimed",
	engine.ReasonNoMystery:       "there is no mystery box today",
	engine.ReasonMysteryExpired:  "the mystery box has expired",
	engine.ReasonMysteryRevealed: "the mystery box is already revealed",
	engine.ReasonMysteryHidden:   "reveal the mystery box first",
	engine.ReasonRerollUsed:      "the reroll was already used",
	engine.ReasonMysteryDone:     "the mystery box is already claimed",
	engine.ReasonNoQuests:        "add a quest first",
}

func printQuestRow(out io.Writer, v engine.QuestView) {
	q := v.Quest
	target := fmt.Sprintf("%d/%d %s", q.CurrentTargetValue, q.STargetValue, q.Unit)
	if !q.MeasurementType.Quantitative() {
		target = "habit"
	}
	next := ui.Muted.Render(fmt.Sprintf("next +%d", v.NextAwardPreview))
	if v.IsCapped {
		next = ui.Gold.Render("capped")
	}
	fmt.Fprintf(out, "%s %s %s %s %s %s %s\n",
		ui.Check(v.DoneToday),
		ui.RankBadge(string(v.Rank)),
		ui.Muted.Render(shortID(q.ID)),
		q.Name,
		ui.Muted.Render(target),
		ui.ProgressBar(v.ProgressFraction, 10),
		next,
	)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
