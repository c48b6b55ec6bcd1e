package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"questrank/internal/engine"
	"questrank/internal/ui"
)

func newSettingsCmd() *cobra.Command {
	var wake, bed, theme string
	var debt, block, noPhone, boss bool
	var noPhoneMin, perDay, mx int

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
		Long: `Show or change settings. Without flags the current settings are printed.

Times use HH:MM. A bedtime earlier than the wake time wraps past midnight.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			var p engine.SettingsPatch
			fl := cmd.Flags()
			if fl.Changed("wake") {
				p.WakeTime = &wake
			}
			if fl.Changed("bed") {
				p.BedTime = &bed
			}
			if fl.Changed("debt") {
				p.XPDebtEnabled = &debt
			}
			if fl.Changed("block-after-bedtime") {
				p.BlockAfterBedtime = &block
			}
			if fl.Changed("no-phone") {
				p.NoPhonePenaltyEnabled = &noPhone
			}
			if fl.Changed("no-phone-minutes") {
				p.NoPhonePenaltyMinutes = &noPhoneMin
			}
			if fl.Changed("streak-bonus") {
				p.StreakBonusPctPerDay = &perDay
			}
			if fl.Changed("max-streak-bonus") {
				p.MaxStreakBonusPct = &mx
			}
			if fl.Changed("boss") {
				p.WeeklyBossEnabled = &boss
			}
			if fl.Changed("theme") {
				p.ThemeMode = &theme
			}

			s := svc.State().Settings
			if p != (engine.SettingsPatch{}) {
				s, err = svc.UpdateSettings(cmdContext(cmd), p)
				if err != nil {
					return explain(err)
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconInfo, "Settings"))
			fmt.Fprintln(out, ui.LabelValue("Wake", s.WakeTime))
			fmt.Fprintln(out, ui.LabelValue("Bed", s.BedTime))
			fmt.Fprintln(out, ui.LabelValue("XP debt", onOff(s.XPDebtEnabled)))
			fmt.Fprintln(out, ui.LabelValue("Block after bedtime", onOff(s.BlockAfterBedtime)))
			fmt.Fprintln(out, ui.LabelValue("No-phone penalty", fmt.Sprintf("%s (%dm before bed)", onOff(s.NoPhonePenaltyEnabled), s.NoPhonePenaltyMinutes)))
			fmt.Fprintln(out, ui.LabelValue("Streak bonus", fmt.Sprintf("%d%%/day, max %d%%", s.StreakBonusPctPerDay, s.MaxStreakBonusPct)))
			fmt.Fprintln(out, ui.LabelValue("Weekly boss", onOff(s.WeeklyBossEnabled)))
			fmt.Fprintln(out, ui.LabelValue("Theme", s.ThemeMode))
			return nil
		},
	}

	def := engine.DefaultSettings()
	cmd.Flags().StringVar(&wake, "wake", def.WakeTime, "Wake time (HH:MM)")
	cmd.Flags().StringVar(&bed, "bed", def.BedTime, "Bedtime (HH:MM)")
	cmd.Flags().BoolVar(&debt, "debt", def.XPDebtEnabled, "Accrue XP debt for missed days")
	cmd.Flags().BoolVar(&block, "block-after-bedtime", def.BlockAfterBedtime, "Refuse completions outside the day window")
	cmd.Flags().BoolVar(&noPhone, "no-phone", def.NoPhonePenaltyEnabled, "Enable the no-phone-before-bed cutoff")
	cmd.Flags().IntVar(&noPhoneMin, "no-phone-minutes", def.NoPhonePenaltyMinutes, "Minutes before bed for the phone cutoff")
	cmd.Flags().IntVar(&perDay, "streak-bonus", def.StreakBonusPctPerDay, "Streak bonus percent per day")
	cmd.Flags().IntVar(&mx, "max-streak-bonus", def.MaxStreakBonusPct, "Streak bonus cap in percent")
	cmd.Flags().BoolVar(&boss, "boss", def.WeeklyBossEnabled, "Enable the weekly boss")
	cmd.Flags().StringVar(&theme, "theme", def.ThemeMode, "Theme (dark|light)")
	return cmd
}

func onOff(b bool) string {
	if b {
		return ui.Good.Render("on")
	}
	return ui.Muted.Render("off")
}
