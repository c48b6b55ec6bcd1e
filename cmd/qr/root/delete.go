package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"questrank/internal/ui"
)

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <quest>",
		Aliases: []string{"rm"},
		Short:   "Delete a quest (earned XP is kept)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			q, err := svc.FindQuest(args[0])
			if err != nil {
				return err
			}
			if err := svc.DeleteQuest(cmdContext(cmd), q.ID); err != nil {
				return explain(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render(ui.IconWarn+" Deleted"), q.Name)
			return nil
		},
	}
	return cmd
}
