package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP Server
	Port string

	// Backend selection
	Backend string

	// Database
	SQLiteDBPath string

	// Flat-file backend
	CSVLedgerPath string
	CSVRulesPath  string

	// Settings file (theme, currency, date format)
	SettingsPath string

	// Backups
	BackupDir     string
	BackupEnabled bool
}

func Load() *Config {
	return &Config{
		Port:    getEnv("PORT", "8081"),
		Backend: getEnv("DAYBOOK_BACKEND", "sqlite"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/daybook.db"),

		CSVLedgerPath: getEnv("CSV_LEDGER_PATH", "./data/daybook.csv"),
		CSVRulesPath:  getEnv("CSV_RULES_PATH", "./data/recurring.csv"),

		SettingsPath: getEnv("CONFIG_FILE", "./config.json"),

		BackupDir:     getEnv("BACKUP_DIR", "./backups"),
		BackupEnabled: getEnvBool("BACKUP_ENABLED", true),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validBackends := []string{"sqlite", "csv"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.Backend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid backend '%s': must be one of %v", c.Backend, validBackends))
	}

	switch c.Backend {
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if err := ensureDir(c.SQLiteDBPath); err != nil {
			errors = append(errors, err.Error())
		}
	case "csv":
		if c.CSVLedgerPath == "" {
			errors = append(errors, "CSV ledger path cannot be empty when using csv backend")
		} else if err := ensureDir(c.CSVLedgerPath); err != nil {
			errors = append(errors, err.Error())
		}
	}

	if c.SettingsPath == "" {
		errors = append(errors, "settings file path cannot be empty")
	}

	if c.BackupEnabled && c.BackupDir == "" {
		errors = append(errors, "backup directory cannot be empty when backups are enabled")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// ensureDir creates the parent directory of a data file if it is missing.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create data directory '%s': %v", dir, err)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
