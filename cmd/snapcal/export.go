package snapcal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/snapcal/snapcal/internal/service"
	"github.com/snapcal/snapcal/internal/store"
	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the profile and all day logs as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			data, err := service.ExportSnapshot(sqldb, store.New(sqldb))
			if err != nil {
				return err
			}
			encoded, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return fmt.Errorf("encode export: %w", err)
			}
			encoded = append(encoded, '\n')
			if exportOut == "" {
				_, err := cmd.OutOrStdout().Write(encoded)
				return err
			}
			if err := os.WriteFile(exportOut, encoded, 0o644); err != nil {
				return fmt.Errorf("write export file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d day(s) to %s\n", len(data.Days), exportOut)
			return nil
		})
	},
}

var (
	importFile   string
	importMode   string
	importDryRun bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a previously exported JSON snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		if importFile == "" {
			return fmt.Errorf("--file is required")
		}
		raw, err := os.ReadFile(importFile)
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}
		var data service.ExportData
		if err := json.Unmarshal(raw, &data); err != nil {
			return fmt.Errorf("parse import file: %w", err)
		}

		return withRepo(func(repo *store.Repository) error {
			report, err := service.ImportSnapshot(repo, &data, service.ImportOptions{
				Mode:   service.ImportMode(importMode),
				DryRun: importDryRun,
			})
			if err != nil {
				return err
			}
			prefix := "Imported"
			if importDryRun {
				prefix = "Would import"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d record(s), skipped %d\n", prefix, report.Imported, report.Skipped)
			for _, w := range report.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Write to file instead of stdout")
	importCmd.Flags().StringVar(&importFile, "file", "", "Exported JSON file to import")
	importCmd.Flags().StringVar(&importMode, "mode", string(service.ImportModeSkip), "Conflict handling: skip or replace")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Report what would change without writing")
}
