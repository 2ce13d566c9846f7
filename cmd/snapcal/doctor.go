package snapcal

import (
	"database/sql"
	"fmt"

	"github.com/snapcal/snapcal/internal/service"
	"github.com/spf13/cobra"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check stored day records for corruption and aggregate drift",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(sqldb, doctorFix)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Day records: %d\n", report.DayRecords)
			fmt.Fprintf(cmd.OutOrStdout(), "Malformed records: %d\n", report.MalformedRecords)
			fmt.Fprintf(cmd.OutOrStdout(), "Aggregate mismatches: %d\n", report.InvariantViolations)
			if doctorFix {
				fmt.Fprintf(cmd.OutOrStdout(), "Fixed records: %d\n", report.FixedRecords)
			} else if report.MalformedRecords+report.InvariantViolations > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Run with --fix to repair")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Repair malformed and drifted records")
}
