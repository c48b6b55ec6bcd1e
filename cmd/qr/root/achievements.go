package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"questrank/internal/engine"
	"questrank/internal/ui"
)

func newAchievementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "List earned and locked badges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			c := engine.NewAchievementChecker(svc.State(), svc.Now())
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, fmt.Sprintf("Achievements %d/%d", c.CountEarned(), c.CountTotal())))
			for _, a := range c.GetAchievements() {
				if a.Earned {
					fmt.Fprintf(out, "%s %s %s\n", a.Icon, ui.Good.Render(a.Name), ui.Muted.Render(a.Description))
					continue
				}
				fmt.Fprintf(out, "%s %s %s\n", ui.Dim.Render("🔒"), ui.Dim.Render(a.Name), ui.Muted.Render(a.Description))
			}
			return nil
		},
	}
	return cmd
}
