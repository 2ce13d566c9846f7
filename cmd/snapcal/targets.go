package snapcal

import (
	"fmt"

	"github.com/snapcal/snapcal/internal/service"
	"github.com/snapcal/snapcal/internal/store"
	"github.com/spf13/cobra"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Show daily calorie and macro targets for the current profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(func(repo *store.Repository) error {
			profile, err := service.CurrentProfile(repo)
			if err != nil {
				return err
			}
			targets := service.ComputeDailyTargets(profile)
			if profile == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No profile configured; showing default targets")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Calories: %d kcal\n", targets.MaxCalories)
			fmt.Fprintf(cmd.OutOrStdout(), "Carbs: %dg\n", targets.MacroTargets.CarbsG)
			fmt.Fprintf(cmd.OutOrStdout(), "Protein: %dg\n", targets.MacroTargets.ProteinG)
			fmt.Fprintf(cmd.OutOrStdout(), "Fat: %dg\n", targets.MacroTargets.FatG)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(targetsCmd)
}
