package snapcal

import (
	"fmt"
	"strings"

	"github.com/snapcal/snapcal/internal/service"
	"github.com/snapcal/snapcal/internal/store"
	"github.com/spf13/cobra"
)

var dayDate string

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Show a day's intake, remaining budget, and food log",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := service.ParseDate(dayDate)
		if err != nil {
			return err
		}
		return withRepo(func(repo *store.Repository) error {
			targets, err := service.CurrentTargets(repo)
			if err != nil {
				return err
			}
			day, err := service.NewLedger(repo).LoadDay(date)
			if err != nil {
				return err
			}
			board := service.Project(day, targets)

			fmt.Fprintf(cmd.OutOrStdout(), "Date: %s\n", board.Date)
			fmt.Fprintf(cmd.OutOrStdout(), "Eaten: %.0f / %d kcal\n", board.EatenCalories, board.MaxCalories)
			fmt.Fprintf(cmd.OutOrStdout(), "Remaining: %.0f kcal\n", board.RemainingCalories)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %.0f%%\n", completionBar(board.CompletionPercent, 24), board.CompletionPercent)
			fmt.Fprintf(cmd.OutOrStdout(), "Carbs: %.0fg of %dg (%d%% of intake)\n", board.Carbs.Grams, board.Carbs.TargetGrams, board.Carbs.PercentOfConsumed)
			fmt.Fprintf(cmd.OutOrStdout(), "Protein: %.0fg of %dg (%d%% of intake)\n", board.Protein.Grams, board.Protein.TargetGrams, board.Protein.PercentOfConsumed)
			fmt.Fprintf(cmd.OutOrStdout(), "Fat: %.0fg of %dg (%d%% of intake)\n", board.Fat.Grams, board.Fat.TargetGrams, board.Fat.PercentOfConsumed)

			if len(board.Entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No food entries for this day")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "TIME\tNAME\tKCAL\tC\tP\tF")
			for _, e := range board.Entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.0f\t%.0f\t%.0f\t%.0f\n",
					e.RecordedAt.Local().Format("15:04"), e.Name, e.Calories, e.CarbsG, e.ProteinG, e.FatG)
			}
			return nil
		})
	},
}

func completionBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func init() {
	rootCmd.AddCommand(dayCmd)
	dayCmd.Flags().StringVar(&dayDate, "date", "", "Date YYYY-MM-DD (default today)")
}
