package root

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"questrank/internal/engine"
	"questrank/internal/ui"
)

func newLadderCmd() *cobra.Command {
	var start, perWeek, sessions int

	cmd := &cobra.Command{
		Use:   "ladder <s-target>",
		Short: "Preview the rank ladder and growth plan for a target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := strconv.Atoi(args[0])
			if err != nil || s <= 0 {
				return fmt.Errorf("s-target must be a positive integer")
			}
			p := engine.BuildQuestProgression(engine.ProgressionInput{
				SRankTarget:     s,
				StartTarget:     start,
				SessionsPerWeek: perWeek,
				SessionsToS:     sessions,
			})

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Ladder"))
			for i, v := range p.Ladder.Values() {
				fmt.Fprintf(out, "- %s %d\n", ui.RankBadge(string(engine.Ranks[i])), v)
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.H2.Render("Plan"))
			fmt.Fprintln(out, ui.LabelValue("Start at", p.Plan.RecommendedStartTarget))
			fmt.Fprintln(out, ui.LabelValue("Per session", fmt.Sprintf("+%d", p.Plan.IncreasePerSession)))
			fmt.Fprintln(out, ui.LabelValue("Per week", fmt.Sprintf("+%d over %d sessions", p.Plan.WeeklyIncrease, p.Plan.SessionsPerWeek)))
			fmt.Fprintln(out, ui.LabelValue("Weeks to S", p.Plan.EstimatedWeeksToS))
			if start > 0 {
				r, v := p.Ladder.NextMilestone(start)
				fmt.Fprintln(out, ui.LabelValue("Next milestone", fmt.Sprintf("%s at %d", ui.RankBadge(string(r)), v)))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&start, "start", 0, "Current target (defaults to the E rung)")
	cmd.Flags().IntVar(&perWeek, "per-week", engine.DefaultSessionsPerWeek, "Sessions per week (1-7)")
	cmd.Flags().IntVar(&sessions, "sessions", engine.DefaultSessionsToS, "Sessions to reach S")
	return cmd
}
