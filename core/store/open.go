package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Open builds the repository selected by cfg. db is required for the database
// backend and ignored otherwise. The returned close function releases the
// backend's connections.
func Open(cfg Config, db *gorm.DB, registry *Registry) (Repository, func() error, error) {
	var (
		repo    Repository
		closeFn = func() error { return nil }
	)

	switch cfg.Backend {
	case BackendDatabase:
		if db == nil {
			return nil, nil, errors.New("database backend requires a database connection")
		}
		repo = NewGormRepository(db, registry)
	case BackendRedis:
		client := NewRedisClient(cfg.Redis)
		repo = NewRedisRepository(client, registry, cfg.Redis.Prefix)
		closeFn = client.Close
	case BackendMemory:
		repo = NewMemoryRepository()
	default:
		return nil, nil, fmt.Errorf("unsupported store backend %q", cfg.Backend)
	}

	if cfg.CacheTTLSeconds > 0 {
		repo = NewCachedRepository(repo, time.Duration(cfg.CacheTTLSeconds)*time.Second)
	}
	return repo, closeFn, nil
}
