package snapcal

import (
	"fmt"

	"github.com/snapcal/snapcal/internal/service"
	"github.com/snapcal/snapcal/internal/store"
	"github.com/spf13/cobra"
)

var resetDate string

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete a day's food log",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := service.ParseDate(resetDate)
		if err != nil {
			return err
		}
		return withRepo(func(repo *store.Repository) error {
			if err := service.NewLedger(repo).ResetDay(date); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset day %s\n", date.Format("2006-01-02"))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().StringVar(&resetDate, "date", "", "Date YYYY-MM-DD (default today)")
}
