package snapcal

import (
	"github.com/spf13/cobra"
)

// Check mode: show what would be logged without touching the ledger.
var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate a food item without adding it to the log",
	RunE: func(cmd *cobra.Command, args []string) error {
		est, source, err := resolveEstimation(cmd)
		if err != nil {
			return err
		}
		printEstimation(cmd, est, source)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(estimateCmd)
	addEstimationFlags(estimateCmd)
}
