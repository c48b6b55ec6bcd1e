package root

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"questrank/internal/engine"
	"questrank/internal/ui"
)

func newMysteryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mystery",
		Short: "Show today's mystery box",
		Long: `Show today's mystery box.

The box is sealed until revealed. While it is still sealed you may reroll it
once for a different quest and twist.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			printMystery(cmd.OutOrStdout(), engine.ViewMystery(svc.State(), svc.Now()))
			return nil
		},
	}

	type op struct {
		use, short, label string
		run               func(*engine.Service, context.Context) (engine.Result, error)
	}
	ops := []op{
		{"reveal", "Reveal the mystery box", "Revealed", (*engine.Service).RevealMystery},
		{"reroll", "Swap the sealed box for a new one (once)", "Rerolled", (*engine.Service).RerollMystery},
		{"complete", "Claim the revealed box's reward", "Mystery box claimed", (*engine.Service).CompleteMystery},
	}
	for _, o := range ops {
		cmd.AddCommand(&cobra.Command{
			Use:   o.use,
			Short: o.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, cleanup, err := openService(cmd)
				if err != nil {
					return err
				}
				defer cleanup()

				res, err := o.run(svc, cmdContext(cmd))
				if err != nil {
					return explain(err)
				}
				if o.use == "complete" {
					printResult(cmd.OutOrStdout(), o.label, res)
					return nil
				}
				printMystery(cmd.OutOrStdout(), engine.ViewMystery(svc.State(), svc.Now()))
				return nil
			},
		})
	}
	return cmd
}

func printMystery(out io.Writer, v *engine.MysteryView) {
	fmt.Fprintln(out, ui.H2.Render(ui.IconBox+" Mystery box"))
	if v == nil {
		fmt.Fprintln(out, ui.Muted.Render("- none yet, add a quest first"))
		return
	}
	if v.QuestName != "" {
		fmt.Fprintf(out, "- quest: %s\n", v.QuestName)
	}
	fmt.Fprintf(out, "- %s\n", v.Description)
	fmt.Fprintf(out, "- %s %s %s\n", ui.FormatXP(v.Box.XPReward), ui.StatusText(string(v.Box.Status)), ui.Muted.Render(v.TimeRemaining))
	var hints []string
	if v.CanReveal {
		hints = append(hints, "qr mystery reveal")
	}
	if v.CanReroll {
		hints = append(hints, "qr mystery reroll")
	}
	if v.CanComplete {
		hints = append(hints, "qr mystery complete")
	}
	for _, h := range hints {
		fmt.Fprintf(out, "  %s\n", ui.Key.Render(h))
	}
}
