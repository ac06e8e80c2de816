// recurring-check runs the recurring rule materialization once and
// exits. Useful when the ledger is managed through files or scripts and
// the server is not running.
package main

import (
	"context"
	"os"
	"time"

	"daybook/internal/cli"
	"daybook/internal/log"
	"daybook/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger().WithComponent(log.ComponentRecurring)

	cfg := cli.LoadAndValidateConfig(logger)
	settings := cli.LoadSettings(logger, cfg)

	cli.RunStartupBackup(logger, cfg)

	store := cli.OpenStore(logger, cfg)
	defer store.Close()

	ledger := services.NewLedger(store, settings)

	n, err := ledger.RunRecurringCheck(context.Background(), time.Now())
	if err != nil {
		logger.Error("Recurring check failed", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Recurring check done", "materialized", n)
}
