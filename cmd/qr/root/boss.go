package root

import (
	"github.com/spf13/cobra"
)

func newBossCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boss",
		Short: "Toggle this week's boss fight",
		Long: `Toggle this week's boss fight. The boss can be defeated once per week
and pays a fixed reward; running it again on the same day undoes it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.ToggleBoss(cmdContext(cmd))
			if err != nil {
				return explain(err)
			}
			label := "Boss defeated"
			if !res.Done {
				label = "Boss fight undone"
			}
			printResult(cmd.OutOrStdout(), label, res)
			return nil
		},
	}
	return cmd
}
