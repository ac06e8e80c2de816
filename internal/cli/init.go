// Package cli provides common initialization shared by the daybook
// binaries: environment loading, logging, configuration, settings and
// store construction.
package cli

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"

	"daybook/internal/backend"
	"daybook/internal/config"
	"daybook/internal/log"
	"daybook/internal/services"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging and sets it as the default.
func SetupLogger() *log.Logger {
	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// LoadSettings reads the user settings file, creating defaults on first
// run. A corrupt settings file is a fatal startup error: the process
// cannot run meaningfully with unknown settings.
func LoadSettings(logger *log.Logger, cfg *config.Config) config.Settings {
	settings, err := config.LoadSettings(cfg.SettingsPath)
	if err != nil {
		if errors.Is(err, config.ErrConfigCorrupt) {
			logger.Error("Settings file is corrupt; fix or remove it to start",
				"path", cfg.SettingsPath,
				log.FieldError, err)
		} else {
			logger.Error("Failed to load settings",
				"path", cfg.SettingsPath,
				log.FieldError, err)
		}
		os.Exit(1)
	}
	return settings
}

// RunStartupBackup copies the backing ledger file into the backup
// directory before the store opens. Backup failure is a warning, not a
// startup failure.
func RunStartupBackup(logger *log.Logger, cfg *config.Config) {
	if !cfg.BackupEnabled {
		return
	}

	src := cfg.SQLiteDBPath
	if backend.Type(cfg.Backend) == backend.CSVBackend {
		src = cfg.CSVLedgerPath
	}

	dst, err := services.BackupFile(src, cfg.BackupDir, time.Now())
	if err != nil {
		logger.Warn("Startup backup failed", "source", src, log.FieldError, err)
		return
	}
	if dst != "" {
		logger.Info("Startup backup written", "path", dst)
	}
}

// OpenStore builds the configured backend store or exits the process.
func OpenStore(logger *log.Logger, cfg *config.Config) backend.Store {
	store, err := backend.Open(cfg, logger.Logger)
	if err != nil {
		logger.Error("Failed to initialize storage backend",
			log.FieldBackend, cfg.Backend,
			log.FieldError, err)
		os.Exit(1)
	}
	return store
}
