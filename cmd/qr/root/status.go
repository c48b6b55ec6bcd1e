package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"questrank/internal/engine"
	"questrank/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show rank, streak, debt and today's challenges",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			st := svc.State()
			now := svc.Now()
			sum := engine.Summarize(st, now)
			win := engine.ViewDayWindow(st.Settings, now)

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Status"))
			fmt.Fprintln(out, ui.LabelValue("Overall rank", fmt.Sprintf("%s %d%%", ui.RankBadge(string(sum.OverallRank)), sum.OverallProgressPct)))
			fmt.Fprintln(out, ui.LabelValue("Total", ui.FormatXP(sum.TotalXP)))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d days (+%d%% bonus)", ui.IconFire, sum.StreakDays, sum.StreakBonusPct)))
			fmt.Fprintln(out, ui.LabelValue("Today", fmt.Sprintf("%s earned, %d debt", ui.FormatXP(sum.TodayEarnedXP), sum.TodayDebt)))
			week, err := svc.XPThisWeek(cmdContext(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.LabelValue("This week", ui.FormatXP(week)))
			if sum.OutstandingDebt > 0 {
				fmt.Fprintln(out, ui.LabelValue("Outstanding debt", ui.Warn.Render(fmt.Sprint(sum.OutstandingDebt))))
			}
			boss := ui.Muted.Render("waiting")
			if sum.BossDefeated {
				boss = ui.Good.Render("defeated")
			}
			if !st.Settings.WeeklyBossEnabled {
				boss = ui.Muted.Render("disabled")
			}
			fmt.Fprintln(out, ui.LabelValue("Boss", boss))

			if win.WithinWindow {
				fmt.Fprintln(out, ui.LabelValue("Day window", fmt.Sprintf("%s left %s", win.TimeLeft, ui.ProgressBar(win.ProgressFraction, 20))))
			} else {
				fmt.Fprintln(out, ui.LabelValue("Day window", ui.Warn.Render("outside ("+st.Settings.WakeTime+" to "+st.Settings.BedTime+")")))
			}
			if win.PhoneCutoffMinutesLeft >= 0 {
				fmt.Fprintln(out, ui.LabelValue("Phone cutoff", fmt.Sprintf("%dm", win.PhoneCutoffMinutesLeft)))
			}
			fmt.Fprintln(out, "")

			printWeekly(out, engine.ViewWeekly(st, now))
			fmt.Fprintln(out, "")
			printMystery(out, engine.ViewMystery(st, now))
			return nil
		},
	}
	return cmd
}
