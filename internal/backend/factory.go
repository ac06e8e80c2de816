package backend

import (
	"fmt"
	"log/slog"

	"daybook/internal/config"
	"daybook/internal/storage"
	"daybook/internal/storage/csvfile"
)

// Open builds the store named by the configuration. The caller owns the
// returned store and must Close it.
func Open(cfg *config.Config, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	t := Type(cfg.Backend)
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Backend)
	}

	switch t {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return repo, nil

	case CSVBackend:
		store, err := csvfile.Open(cfg.CSVLedgerPath, cfg.CSVRulesPath)
		if err != nil {
			return nil, fmt.Errorf("initialize csv backend: %w", err)
		}
		logger.Info("Initialized CSV backend",
			"ledger_path", cfg.CSVLedgerPath,
			"rules_path", cfg.CSVRulesPath)
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", t)
	}
}
