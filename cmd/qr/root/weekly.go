package root

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"questrank/internal/engine"
	"questrank/internal/ui"
)

func newWeeklyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Show this week's challenge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			printWeekly(cmd.OutOrStdout(), engine.ViewWeekly(svc.State(), svc.Now()))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "complete",
		Short: "Claim the weekly challenge reward",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.CompleteWeekly(cmdContext(cmd))
			if err != nil {
				return explain(err)
			}
			printResult(cmd.OutOrStdout(), "Weekly challenge claimed", res)
			return nil
		},
	})
	return cmd
}

func printWeekly(out io.Writer, v *engine.WeeklyView) {
	fmt.Fprintln(out, ui.H2.Render(ui.IconTrophy+" Weekly challenge"))
	if v == nil {
		fmt.Fprintln(out, ui.Muted.Render("- none yet, add a quest first"))
		return
	}
	fmt.Fprintf(out, "- %s\n", v.Challenge.Title)
	fmt.Fprintf(out, "- %s\n", v.Challenge.Target)
	fmt.Fprintf(out, "- %s %s %s\n", ui.FormatXP(v.Challenge.XPReward), ui.StatusText(string(v.Challenge.Status)), ui.Muted.Render(v.TimeRemaining))
}
