package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"daybook/internal/cli"
	apphttp "daybook/internal/http"
	"daybook/internal/log"
	"daybook/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	cfg := cli.LoadAndValidateConfig(logger)
	settings := cli.LoadSettings(logger, cfg)

	// Backup runs before the store opens so the copy is a clean snapshot.
	cli.RunStartupBackup(logger, cfg)

	store := cli.OpenStore(logger, cfg)
	defer store.Close()

	ledger := services.NewLedger(store, settings)

	// Recurring rules materialize once, synchronously, before the server
	// starts taking requests.
	n, err := ledger.RunRecurringCheck(context.Background(), time.Now())
	if err != nil {
		logger.Error("Recurring check failed", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Recurring check done", "materialized", n)

	srv := apphttp.NewServer(":"+cfg.Port, ledger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting daybook server",
			"port", cfg.Port,
			log.FieldBackend, cfg.Backend,
			"theme", settings.Theme,
			"currency", settings.Currency)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
