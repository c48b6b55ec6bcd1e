package root

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"questrank/internal/engine"
	"questrank/internal/ui"
)

type questFlags struct {
	domain    string
	kind      string
	measure   string
	unit      string
	current   int
	target    int
	priority  string
	frequency string
	days      []int
	minutes   int
	grace     int
}

func (f *questFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.domain, "domain", "", "Domain (body|mind|hobbies|life)")
	cmd.Flags().StringVar(&f.kind, "kind", "", "Activity kind (e.g. strength, reading, hydration)")
	cmd.Flags().StringVarP(&f.measure, "measure", "m", "", "Measurement (reps|time|distance|count|habit)")
	cmd.Flags().StringVarP(&f.unit, "unit", "u", "", "Unit label")
	cmd.Flags().IntVarP(&f.current, "current", "c", 0, "Current target value")
	cmd.Flags().IntVarP(&f.target, "target", "t", 0, "S-rank target value")
	cmd.Flags().StringVarP(&f.priority, "priority", "p", "", "Priority (main|minor)")
	cmd.Flags().StringVarP(&f.frequency, "frequency", "f", "", "Frequency (daily|weekly)")
	cmd.Flags().IntSliceVar(&f.days, "days", nil, "Weekdays for weekly quests, Mon=0 (e.g. 0,2,4)")
	cmd.Flags().IntVar(&f.minutes, "minutes", 0, "Timer target minutes (time quests)")
	cmd.Flags().IntVar(&f.grace, "grace", 0, "Timer grace minutes (time quests)")
}

func (f *questFlags) draft(name string) engine.QuestDraft {
	return engine.QuestDraft{
		Name:               name,
		Domain:             f.domain,
		ActivityKind:       f.kind,
		MeasurementType:    f.measure,
		Unit:               f.unit,
		CurrentTargetValue: f.current,
		STargetValue:       f.target,
		Priority:           f.priority,
		Frequency:          f.frequency,
		DaysOfWeek:         f.days,
		TargetMinutes:      f.minutes,
		GraceMinutes:       f.grace,
	}
}

func newAddCmd() *cobra.Command {
	var flags questFlags
	var preset string

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a quest (or a built-in preset)",
		Args: func(cmd *cobra.Command, args []string) error {
			if preset == "" && len(args) == 0 {
				return errors.New("name is required (or use --preset)")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			ctx := cmdContext(cmd)

			var q engine.Quest
			if preset != "" {
				q, err = svc.AddPreset(ctx, preset)
			} else {
				q, err = svc.AddQuest(ctx, flags.draft(strings.Join(args, " ")))
			}
			if err != nil {
				return explain(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconPlus+" Added"),
				ui.RankBadge(string(engine.QuestRank(q))),
				q.Name,
				ui.Muted.Render(fmt.Sprintf("(%s, %s/%s, %s)", shortID(q.ID), q.Domain, q.ActivityKind, q.MeasurementType)))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&preset, "preset", "", "Create from a built-in preset (see `qr presets`)")
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List built-in starter quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Presets"))
			for _, p := range engine.Presets() {
				d := p.Draft
				fmt.Fprintf(out, "- %s %s %s\n", ui.Key.Render(p.Code), d.Name, ui.Muted.Render(fmt.Sprintf("(%s, %d/%d %s)", d.MeasurementType, d.CurrentTargetValue, d.STargetValue, d.Unit)))
			}
			return nil
		},
	}
}
