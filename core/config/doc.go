// Package config loads the application configuration.
//
// Values come from the environment, optionally seeded from a .env file, with
// defaults taken from the `default` struct tags of each section. Nested keys
// map to upper-case environment variables joined by underscores
// (store.redis.addr -> STORE_REDIS_ADDR).
//
// # Sections
//
//   - server: HTTP port, API key, body limit, processing mode
//   - database: driver (mysql, postgres, sqlite), connection, query tracing
//   - storage: block archive bucket on S3/MinIO
//   - log: level and format
//   - store: repository backend (database, redis, memory) and cache TTL
//   - indexer: event types routed to each reconciler
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
