package cmd

import (
	"context"
	"errors"
	"fmt"

	"specy-indexer/core/config"
	"specy-indexer/core/database"
	"specy-indexer/core/indexer"
	"specy-indexer/core/logger"
	"specy-indexer/core/store"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime holds the components shared by every command.
type runtime struct {
	cfg      *config.Config
	logger   *zap.Logger
	db       *gorm.DB
	registry *store.Registry
	repo     store.Repository
	metrics  *prometheus.Registry
	indexer  *indexer.Indexer

	closers []func() error
}

// newRuntime loads configuration and opens the store selected by it.
func newRuntime() (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logg)

	rt := &runtime{
		cfg:      cfg,
		logger:   logg,
		registry: indexer.NewRegistry(),
		metrics:  prometheus.NewRegistry(),
	}

	if cfg.Store.Backend == store.BackendDatabase {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, err
		}
		rt.db = db
		rt.closers = append(rt.closers, func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		})
		logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
	}

	repo, closeRepo, err := store.Open(cfg.Store, rt.db, rt.registry)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	rt.repo = repo
	rt.closers = append(rt.closers, closeRepo)

	rt.metrics.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	ix, err := indexer.New(repo, logg, cfg.Indexer, indexer.NewMetrics(rt.metrics))
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	rt.indexer = ix

	logg.Info("Store ready",
		zap.String("backend", cfg.Store.Backend),
		zap.Int("cache_ttl_seconds", cfg.Store.CacheTTLSeconds),
	)
	return rt, nil
}

// migrate creates the entity tables when the database backend is used.
func (rt *runtime) migrate(ctx context.Context) error {
	gormRepo, ok := unwrapGorm(rt.repo)
	if !ok {
		return nil
	}
	return gormRepo.Migrate(ctx)
}

func unwrapGorm(repo store.Repository) (*store.GormRepository, bool) {
	if cached, ok := repo.(*store.CachedRepository); ok {
		repo = cached.Inner()
	}
	g, ok := repo.(*store.GormRepository)
	return g, ok
}

// Close releases connections in reverse order of opening.
func (rt *runtime) Close() error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	_ = rt.logger.Sync()
	return errors.Join(errs...)
}
