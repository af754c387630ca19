package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/Adda-Baaj/petstore-client/internal/config"
	"github.com/Adda-Baaj/petstore-client/internal/logger"
	"github.com/Adda-Baaj/petstore-client/internal/runner"
	"github.com/Adda-Baaj/petstore-client/internal/storage"
	"github.com/Adda-Baaj/petstore-client/pkg/checks"
	"github.com/Adda-Baaj/petstore-client/pkg/petstore"
	"github.com/Adda-Baaj/petstore-client/pkg/publishers"
)

// Checker runs the contract checks against a pet-store deployment, once or
// on an interval, journaling outcomes and publishing state changes.
type Checker struct {
	cfg      *config.Config
	checks   *checks.Registry
	fanout   *publishers.Fanout
	runner   *runner.Runner
	interval time.Duration
	log      logger.Logger
	store    storage.Store
}

// NewChecker builds a checker runtime from config files.
func NewChecker(ctx context.Context, cfg *config.Config, log logger.Logger) (*Checker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	checkReg, err := checks.Load(cfg.ChecksFile)
	if err != nil {
		return nil, fmt.Errorf("load checks registry: %w", err)
	}
	checkIDs := make([]string, 0, checkReg.Len())
	for _, c := range checkReg.All() {
		checkIDs = append(checkIDs, c.ID)
	}
	log.InfoObj("checks registry loaded", "checks_meta", map[string]any{
		"count": len(checkIDs),
		"ids":   checkIDs,
	})

	fanout, err := buildFanout(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	storeOpts := storage.Options{
		RecordTTL:       cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	}
	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storeOpts)
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"record_ttl_seconds":       int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	client := petstore.New(cfg.Petstore(), petstore.WithLogger(log))
	log.InfoObj("petstore client ready", "petstore_config", map[string]any{
		"base_url":         client.BaseURL(),
		"timeout_ms":       cfg.RequestTimeout.Milliseconds(),
		"retry_count":      cfg.RetryCount,
		"legacy_user_path": cfg.LegacyUserPath,
	})

	return &Checker{
		cfg:      cfg,
		checks:   checkReg,
		fanout:   fanout,
		runner:   runner.New(client, store, fanout, log),
		interval: cfg.CheckInterval,
		log:      log,
		store:    store,
	}, nil
}

// buildFanout loads the publishers file. A missing file means no publishers.
func buildFanout(ctx context.Context, cfg *config.Config, log logger.Logger) (*publishers.Fanout, error) {
	if strings.TrimSpace(cfg.PublishersFile) == "" {
		return publishers.NewFanout(nil), nil
	}

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.WarnObj("publishers file not found; state changes will only be logged", "publishers_file", cfg.PublishersFile)
		return publishers.NewFanout(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}

	enabled := publisherReg.Enabled()
	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, pubCfg := range enabled {
		summaries = append(summaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return publishers.NewFanout(pubClients), nil
}

// Run executes the checks. With no interval configured it runs once and
// returns the run's error; otherwise it repeats until ctx is cancelled.
func (c *Checker) Run(ctx context.Context) error {
	if c == nil || c.runner == nil {
		return fmt.Errorf("checker is not initialized")
	}
	defer c.close()

	list := c.checks.All()
	if c.interval <= 0 {
		return c.runOnce(ctx, list)
	}

	c.log.InfoObj("checker loop starting", "checker_state", map[string]any{
		"checks_count":     len(list),
		"publishers_count": c.fanout.Size(),
		"check_interval":   c.interval.String(),
	})

	if err := c.runOnce(ctx, list); err != nil {
		c.log.ErrorObj("initial check run failed", "error", err.Error())
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.log.InfoObj("checker loop exiting", "reason", ctx.Err().Error())
			return nil
		case <-ticker.C:
			if err := c.runOnce(ctx, list); err != nil {
				c.log.ErrorObj("scheduled check run failed", "error", err.Error())
			}
		}
	}
}

// runOnce performs a single pass over all checks.
func (c *Checker) runOnce(ctx context.Context, list []checks.Check) error {
	start := time.Now()
	c.log.InfoObj("check run started", "run_meta", map[string]any{
		"checks_count": len(list),
		"started_at":   start.UTC(),
	})

	outcomes, err := c.runner.Run(ctx, list)

	passed := 0
	for _, o := range outcomes {
		if o.Passed {
			passed++
		}
	}
	c.log.InfoObj("check run completed", "run_meta", map[string]any{
		"checks_count": len(list),
		"executed":     len(outcomes),
		"passed":       passed,
		"failed":       len(outcomes) - passed,
		"elapsed_ms":   time.Since(start).Milliseconds(),
	})
	return err
}

// close releases the journal and publisher connections, logging any errors.
func (c *Checker) close() {
	if err := c.store.Close(); err != nil {
		c.log.ErrorObj("storage close failed", "error", err.Error())
	}
	if err := c.fanout.Close(); err != nil {
		c.log.ErrorObj("publishers close failed", "error", err.Error())
	}
}
