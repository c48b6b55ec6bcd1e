package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"questrank/internal/engine"
	"questrank/internal/ui"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <quest>",
		Short: "Mark a quest done for today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return toggleTo(cmd, args[0], true)
		},
	}
	return cmd
}

func newUndoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo <quest>",
		Short: "Undo today's completion of a quest",
		Long: `Undo today's completion of a quest.

This removes exactly the XP that the completion credited, so an undo after a
debt repayment gives back only the net amount.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return toggleTo(cmd, args[0], false)
		},
	}
	return cmd
}

// toggleTo toggles a quest only when it is not already in the wanted state.
func toggleTo(cmd *cobra.Command, ref string, done bool) error {
	svc, cleanup, err := openService(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	q, err := svc.FindQuest(ref)
	if err != nil {
		return err
	}
	v := engine.ViewQuest(svc.State(), q, svc.Now())
	if v.DoneToday == done {
		state := "not done"
		if done {
			state = "already done"
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(q.Name+" is "+state+" today"))
		return nil
	}

	res, err := svc.ToggleQuest(cmdContext(cmd), q.ID)
	if err != nil {
		return explain(err)
	}
	label := "Completed " + q.Name
	if !done {
		label = "Undid " + q.Name
	}
	printResult(cmd.OutOrStdout(), label, res)
	return nil
}
