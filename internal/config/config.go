// Package config loads snapcal settings from a TOML file under the user
// config dir, with environment (and .env) overrides for oracle credentials.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all snapcal configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Oracle  OracleConfig  `toml:"oracle"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DBPath string `toml:"db_path,omitempty"`
}

// OracleConfig holds remote estimation service settings.
type OracleConfig struct {
	BaseURL        string `toml:"base_url,omitempty"`
	APIKey         string `toml:"api_key,omitempty"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Oracle: OracleConfig{
			TimeoutSeconds: 12,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "snapcal")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "snapcal")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// A .env file in the working directory is honored before env lookups.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Oracle.TimeoutSeconds <= 0 {
		cfg.Oracle.TimeoutSeconds = DefaultConfig().Oracle.TimeoutSeconds
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// OracleAPIKey returns the oracle API key from env var or config, in that order.
func OracleAPIKey(cfg Config) string {
	if key := os.Getenv("SNAPCAL_ORACLE_KEY"); key != "" {
		return key
	}
	return cfg.Oracle.APIKey
}

// OracleBaseURL returns the oracle base URL from env var or config, in that order.
func OracleBaseURL(cfg Config) string {
	if url := os.Getenv("SNAPCAL_ORACLE_URL"); url != "" {
		return url
	}
	return cfg.Oracle.BaseURL
}
