package app

import (
	"context"
	"fmt"

	"backoffice/internal/config"
	"backoffice/internal/core"
	"backoffice/internal/db"
	"backoffice/internal/fixture"
	"backoffice/internal/logging"
	"backoffice/internal/memstore"
)

// Open builds the ApplicationService for the configured data backend. The
// returned close function releases the backend and is safe to call once.
func Open(ctx context.Context, cfg *config.Config) (ApplicationService, func(), error) {
	logger := logging.Logger(logging.SourceDB)

	switch cfg.DataBackend {
	case config.BackendMemory:
		store := memstore.New()
		if cfg.MemstoreSeedFile != "" {
			f, err := fixture.Load(cfg.MemstoreSeedFile)
			if err != nil {
				return nil, nil, err
			}
			if store, err = memstore.FromFixture(f); err != nil {
				return nil, nil, fmt.Errorf("failed to seed memory store: %w", err)
			}
			logger.Info("memory store seeded", "file", cfg.MemstoreSeedFile, "entities", len(f.Entities))
		}
		reporting := core.NewReportingService(store, store)
		return NewAppService(reporting, store), func() {}, nil

	case config.BackendPostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
		if err != nil {
			return nil, nil, fmt.Errorf("database: %w", err)
		}
		logger.Info("connected to postgres", "max_conns", pool.Config().MaxConns)
		reporting := core.NewReportingService(core.NewRecordStore(pool), core.NewCatalog(pool))
		return NewAppService(reporting, pool), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported data backend %q", cfg.DataBackend)
	}
}
