package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"questrank/internal/engine"
	"questrank/internal/ui"
)

func newListCmd() *cobra.Command {
	var today bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List quests with rank and progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			views := engine.ViewQuests(svc.State(), svc.Now())
			if len(views) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No quests yet. Try `qr add --preset pushups`."))
				return nil
			}
			fmt.Fprintln(out, ui.Heading(ui.IconQuest, "Quests"))
			for _, v := range views {
				if today && !v.ScheduledToday {
					continue
				}
				printQuestRow(out, v)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&today, "today", false, "Only quests scheduled today")
	return cmd
}
