package snapcal

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "snapcal",
	Short: "snapcal tracks calories and macros from food photos",
	Long:  "snapcal is a local-first calorie tracker: it estimates the nutrition of a photographed food item, lets you confirm or correct the estimate, and keeps a daily ledger against targets derived from your profile.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
}
