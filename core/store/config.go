package store

// Config selects and configures the entity repository backend.
type Config struct {
	// Backend is one of "database", "redis" or "memory".
	Backend string `mapstructure:"backend" default:"database"`
	// CacheTTLSeconds enables the write-through cache when greater than zero.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"0"`
	// Redis holds settings for the redis backend.
	Redis RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds connection settings for the redis backend.
type RedisConfig struct {
	// Addr is the host:port of the Redis server.
	Addr string `mapstructure:"addr" default:"localhost:6379"`
	// Password is the Redis password.
	Password string `mapstructure:"password" default:""`
	// DB is the Redis logical database.
	DB int `mapstructure:"db" default:"0"`
	// Prefix namespaces all keys written by the indexer.
	Prefix string `mapstructure:"prefix" default:"specy"`
}

const (
	BackendDatabase = "database"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// IsValidBackend checks if the configured backend is supported.
func (c Config) IsValidBackend() bool {
	switch c.Backend {
	case BackendDatabase, BackendRedis, BackendMemory:
		return true
	default:
		return false
	}
}
