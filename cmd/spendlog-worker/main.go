package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"spendlog/internal/amqp"
	"spendlog/internal/cli"
	"spendlog/internal/ledger/csvfile"
	"spendlog/internal/log"
	"spendlog/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger().WithComponent(log.ComponentWorker)
	logger.Info("Starting spendlog-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	// The worker exists to mirror AMQP entry events; without a broker
	// there is nothing for it to do.
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the mirror worker")
		os.Exit(1)
	}

	sqliteRepo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer sqliteRepo.Close()

	// Read-only view of the ledger for reconciliation. The capture app
	// owns file creation, so a missing file just reads as empty.
	ledgerStore := csvfile.New(cfg.LedgerPath)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	mirror := worker.NewMirror(sqliteRepo, ledgerStore, cfg.MirrorBatchSize)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// On startup, mirror any rows that were written while the worker
	// was down or whose events were lost.
	logger.Info("Performing startup reconcile check...")
	if err := mirror.StartupCheck(ctx); err != nil {
		logger.Error("Startup reconcile failed", log.FieldError, err)
		// Don't exit - the periodic reconcile will retry
	}

	g, gctx := errgroup.WithContext(ctx)

	// Consume entry events from the broker
	g.Go(func() error {
		err := amqpClient.ConsumeEntryRecorded(gctx, func(msg *amqp.EntryRecordedMessage) error {
			return mirror.HandleEntryMessage(gctx, msg)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Message consumption failed", log.FieldError, err)
			return err
		}
		return nil
	})

	// Periodic reconcile for any missed events
	g.Go(func() error {
		ticker := time.NewTicker(cfg.MirrorInterval)
		defer ticker.Stop()

		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if err := mirror.Reconcile(gctx); err != nil {
					logger.Error("Periodic reconcile failed", log.FieldError, err)
				}
			}
		}
	})

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-gctx.Done():
		logger.Info("Worker context cancelled")
	}

	logger.Info("Shutting down worker...")
	cancel()

	// Wait for in-flight work, but never hang shutdown
	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			logger.Error("Worker stopped with error", log.FieldError, err)
		} else {
			logger.Info("Worker shutdown complete")
		}
	case <-time.After(30 * time.Second):
		logger.Warn("Shutdown timeout reached")
	}
}
