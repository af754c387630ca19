package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Adda-Baaj/petstore-client/internal/app"
	"github.com/Adda-Baaj/petstore-client/internal/config"
	"github.com/Adda-Baaj/petstore-client/internal/logger"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "petstore-checker failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config.AddFlags(pflag.CommandLine)
	pflag.Parse()

	cfg, err := config.LoadWithFlags(pflag.CommandLine)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if _, err := logger.Init(cfg); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("petstore-checker starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checker, err := app.NewChecker(ctx, cfg, logger.Obj())
	if err != nil {
		logger.ErrorObj("failed to initialize checker", "error", err.Error())
		return err
	}

	if err := checker.Run(ctx); err != nil {
		return fmt.Errorf("checker run: %w", err)
	}

	return nil
}
