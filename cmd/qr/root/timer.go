package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"questrank/internal/engine"
	"questrank/internal/ui"
)

func newTimerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Control the live timer of a time-measured quest",
		Long: `Control the live timer of a time-measured quest.

A timed session is only credited when finished within its target plus grace
minutes. Finishing late is refused; start again to retry.`,
	}

	type op struct {
		use, short string
		run        func(*engine.Service, context.Context, string) (engine.Result, error)
	}
	ops := []op{
		{"start", "Start the timer from zero", (*engine.Service).StartTimer},
		{"pause", "Pause a running timer", (*engine.Service).PauseTimer},
		{"resume", "Resume a paused timer", (*engine.Service).ResumeTimer},
		{"finish", "Finish the session and credit it", (*engine.Service).CompleteQuest},
	}
	for _, o := range ops {
		cmd.AddCommand(&cobra.Command{
			Use:   o.use + " <quest>",
			Short: o.short,
			Args:  cobra.ExactArgs(1),
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
				res, err := o.run(svc, cmdContext(cmd), q.ID)
				if err != nil {
					return explain(err)
				}
				if o.use == "finish" {
					printResult(cmd.OutOrStdout(), "Finished "+q.Name, res)
					return nil
				}
				q, _ = svc.FindQuest(q.ID)
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
					ui.H2.Render(ui.IconTimer+" "+q.Name),
					ui.StatusText(string(q.TimerStatus)),
					ui.Muted.Render(fmt.Sprintf("(%s of %dm)", engine.Elapsed(q, svc.Now()).Round(time.Second), engine.TargetMinutes(q))))
				return nil
			},
		})
	}
	return cmd
}
