package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"questrank/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent XP changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			entries, err := svc.History(cmdContext(cmd), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "History"))
			if len(entries) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no XP changes yet)"))
				return nil
			}
			for _, e := range entries {
				ref := e.Ref
				if q, err := svc.FindQuest(e.Ref); err == nil {
					ref = q.Name
				}
				line := fmt.Sprintf("%s %-8s %s %s", ui.Muted.Render(e.At.Local().Format("2006-01-02 15:04")), e.Action, ui.SignedXP(e.Delta), ref)
				if e.Repaid > 0 {
					line += ui.Muted.Render(fmt.Sprintf(" (repaid %d)", e.Repaid))
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries")
	return cmd
}
