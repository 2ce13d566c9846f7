package snapcal

import (
	"fmt"
	"strings"

	"github.com/snapcal/snapcal/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage snapcal configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Config file: %s\n", config.ConfigPath())
		fmt.Fprintf(cmd.OutOrStdout(), "DB path: %s\n", valueOrDefault(cfg.General.DBPath))
		fmt.Fprintf(cmd.OutOrStdout(), "Oracle URL: %s\n", valueOrDefault(config.OracleBaseURL(cfg)))
		key := "unset"
		if config.OracleAPIKey(cfg) != "" {
			key = "set"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Oracle API key: %s\n", key)
		fmt.Fprintf(cmd.OutOrStdout(), "Oracle timeout: %ds\n", cfg.Oracle.TimeoutSeconds)
		return nil
	},
}

var (
	configOracleURL     string
	configOracleKey     string
	configOracleTimeout int
	configDBPath        string
)

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update configuration values",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("oracle-url") {
			cfg.Oracle.BaseURL = strings.TrimSpace(configOracleURL)
		}
		if cmd.Flags().Changed("oracle-key") {
			cfg.Oracle.APIKey = strings.TrimSpace(configOracleKey)
		}
		if cmd.Flags().Changed("oracle-timeout") {
			if configOracleTimeout <= 0 {
				return fmt.Errorf("--oracle-timeout must be > 0")
			}
			cfg.Oracle.TimeoutSeconds = configOracleTimeout
		}
		if cmd.Flags().Changed("db-path") {
			cfg.General.DBPath = strings.TrimSpace(configDBPath)
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", config.ConfigPath())
		return nil
	},
}

func valueOrDefault(v string) string {
	if v == "" {
		return "(default)"
	}
	return v
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configSetCmd)

	configSetCmd.Flags().StringVar(&configOracleURL, "oracle-url", "", "Estimation service base URL")
	configSetCmd.Flags().StringVar(&configOracleKey, "oracle-key", "", "Estimation service API key")
	configSetCmd.Flags().IntVar(&configOracleTimeout, "oracle-timeout", 0, "Estimation request timeout in seconds")
	configSetCmd.Flags().StringVar(&configDBPath, "db-path", "", "SQLite database path")
}
