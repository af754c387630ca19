package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Adda-Baaj/petstore-client/internal/config"
	"github.com/Adda-Baaj/petstore-client/internal/logger"
	"github.com/Adda-Baaj/petstore-client/internal/twin"
)

// Twin serves the in-memory pet-store fake.
type Twin struct {
	addr    string
	handler http.Handler
	log     logger.Logger
}

// NewTwin builds the fake's router, loading the seed file when configured.
func NewTwin(cfg *config.Config, log logger.Logger) (*Twin, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}

	store := twin.NewMemoryStore()
	if cfg.TwinSeedFile != "" {
		seed, err := twin.LoadSeed(cfg.TwinSeedFile)
		if err != nil {
			return nil, fmt.Errorf("load twin seed: %w", err)
		}
		if err := seed.Apply(store); err != nil {
			return nil, fmt.Errorf("apply twin seed: %w", err)
		}
		log.InfoObj("twin seed loaded", "seed_meta", map[string]any{
			"file":   cfg.TwinSeedFile,
			"pets":   len(seed.Pets),
			"orders": len(seed.Orders),
			"users":  len(seed.Users),
		})
	}

	return &Twin{
		addr:    cfg.TwinAddr,
		handler: twin.NewRouter(store, log),
		log:     log,
	}, nil
}

// Handler exposes the router, e.g. for httptest servers.
func (t *Twin) Handler() http.Handler { return t.handler }

// Run serves until ctx is cancelled.
func (t *Twin) Run(ctx context.Context) error {
	return twin.Serve(ctx, t.addr, t.handler, t.log)
}
