package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"questrank/internal/engine"
	"questrank/internal/ui"
)

var editFlags = []string{"name", "domain", "kind", "measure", "unit", "current", "target", "priority", "frequency", "days", "minutes", "grace"}

func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, n := range names {
		if cmd.Flags().Changed(n) {
			return true
		}
	}
	return false
}

func newEditCmd() *cobra.Command {
	var flags questFlags
	var name string

	cmd := &cobra.Command{
		Use:   "edit <quest>",
		Short: "Edit a quest",
		Long: `Edit a quest's fields. Only the flags you pass are changed.

Raising --current records the previous target as the improvement baseline,
so the next completion earns the improvement bonus.`,
		Args: cobra.ExactArgs(1),
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

			var p engine.QuestPatch
			fl := cmd.Flags()
			if fl.Changed("name") {
				p.Name = &name
			}
			if fl.Changed("domain") {
				p.Domain = &flags.domain
			}
			if fl.Changed("kind") {
				p.ActivityKind = &flags.kind
			}
			if fl.Changed("measure") {
				p.MeasurementType = &flags.measure
			}
			if fl.Changed("unit") {
				p.Unit = &flags.unit
			}
			if fl.Changed("current") {
				p.CurrentTargetValue = &flags.current
			}
			if fl.Changed("target") {
				p.STargetValue = &flags.target
			}
			if fl.Changed("priority") {
				p.Priority = &flags.priority
			}
			if fl.Changed("frequency") {
				p.Frequency = &flags.frequency
			}
			if fl.Changed("days") {
				p.DaysOfWeek = flags.days
			}
			if fl.Changed("minutes") {
				p.TargetMinutes = &flags.minutes
			}
			if fl.Changed("grace") {
				p.GraceMinutes = &flags.grace
			}
			if !anyChanged(cmd, editFlags...) {
				return errors.New("nothing to change")
			}

			updated, err := svc.UpdateQuest(cmdContext(cmd), q.ID, p)
			if err != nil {
				return explain(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconSparkle+" Updated"), ui.RankBadge(string(engine.QuestRank(updated))), updated.Name)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&name, "name", "n", "", "New name")
	return cmd
}
