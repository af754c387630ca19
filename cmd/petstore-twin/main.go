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
		fmt.Fprintf(os.Stderr, "petstore-twin start failed: %v\n", err)
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

	logger.InfoObj("petstore-twin starting", "config", map[string]any{
		"addr":      cfg.TwinAddr,
		"seed_file": cfg.TwinSeedFile,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tw, err := app.NewTwin(cfg, logger.Obj())
	if err != nil {
		logger.ErrorObj("failed to initialize twin", "error", err.Error())
		return err
	}

	return tw.Run(ctx)
}
