package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"questrank/internal/ui"
)

const Version = "0.2.0"

// NewRootCmd builds the qr command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "qr",
		Short:         "questrank: rank up your daily habits",
		Long:          "questrank is a local-first CLI/TUI habit tracker. Quests climb from rank E to S as their targets grow, and every completion earns XP.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	rootCmd.PersistentFlags().String("db", "", "Store path (overrides QUESTRANK_DB_PATH)")

	rootCmd.AddCommand(
		newAddCmd(),
		newPresetsCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newListCmd(),
		newDoCmd(),
		newUndoCmd(),
		newTimerCmd(),
		newBossCmd(),
		newWeeklyCmd(),
		newMysteryCmd(),
		newStatusCmd(),
		newSettingsCmd(),
		newLadderCmd(),
		newHistoryCmd(),
		newAchievementsCmd(),
		newExportCmd(),
		newBoardCmd(),
	)
	return rootCmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
