package root

import (
	"github.com/spf13/cobra"

	"questrank/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the live TUI dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(cmdContext(cmd), svc, cmd.OutOrStdout())
		},
	}

	return cmd
}
