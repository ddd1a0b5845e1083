// Package store provides the keyed entity repository the reconcilers write to.
//
// Every derived entity implements Entity: it reports its Kind and its natural
// key. Repositories expose three operations only, Load, Save and Remove, and are
// always passed explicitly to the code that needs them.
//
// # Implementations
//
//   - MemoryRepository: map-backed, used by tests and the memory backend.
//   - GormRepository: relational persistence through GORM (MySQL, Postgres, SQLite).
//   - RedisRepository: JSON documents stored under "<prefix>:<kind>:<key>".
//   - CachedRepository: write-through TTL cache in front of any of the above.
//   - Overlay: stages writes over a read-only base for dry runs.
//
// Open builds the backend selected by the store configuration section.
//
// # Absence
//
// Load returns (nil, nil) when no entity exists for the key. Remove on an
// absent key is not an error.
//
// # Registry
//
// Backends that materialise entities from bytes or rows need a factory per kind.
// Features register their models on a Registry at startup:
//
//	reg := store.NewRegistry()
//	reg.Register(store.KindRule, func() store.Entity { return &models.Rule{} })
//	repo := store.NewGormRepository(db, reg)
package store
