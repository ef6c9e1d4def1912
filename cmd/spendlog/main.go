package main

import (
	"context"
	"os"

	"spendlog/internal/backend"
	"spendlog/internal/cli"
	"spendlog/internal/log"
	"spendlog/internal/menu"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	backendConfig, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	if err := backendConfig.Validate(); err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}

	ctx := context.Background()

	factory := backend.NewFactory(logger.Logger)
	result, err := factory.CreateBackend(ctx, backendConfig)
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}

	logger.Info("Starting spendlog", log.FieldBackend, cfg.DataBackend)

	// No signal handling here: the loop blocks on stdin, and an
	// interrupted session has nothing to flush because every entry is
	// written as soon as it is captured.
	runner := menu.NewRunner(os.Stdin, os.Stdout, result.Backend, logger)
	runErr := runner.Run(ctx)

	if result.Cleanup != nil {
		if err := result.Cleanup(); err != nil {
			logger.Error("Backend cleanup failed", log.FieldError, err)
		}
	}

	if runErr != nil {
		logger.Error("Menu session failed", log.FieldError, runErr)
		os.Exit(1)
	}
}
