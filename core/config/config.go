package config

import (
	"fmt"
	"reflect"
	"strings"

	"specy-indexer/core/database"
	"specy-indexer/core/indexer"
	"specy-indexer/core/logger"
	"specy-indexer/core/server"
	"specy-indexer/core/storage"
	"specy-indexer/core/store"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application, one section per concern.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the block archive.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Store selects the entity repository backend.
	Store store.Config `mapstructure:"store"`
	// Indexer maps event types to reconcilers.
	Indexer indexer.Config `mapstructure:"indexer"`
}

// LoadConfig loads configuration from environment variables and the .env file in path.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// A missing .env is normal outside development.
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// SERVER_PORT -> server.port
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects unsupported enumerated settings.
func (c *Config) Validate() error {
	if !c.Server.IsValidMode() {
		return fmt.Errorf("invalid server.mode %q", c.Server.Mode)
	}
	if !c.Store.IsValidBackend() {
		return fmt.Errorf("invalid store.backend %q", c.Store.Backend)
	}
	if c.Store.Backend == store.BackendDatabase && !c.Database.IsValidDriver() {
		return fmt.Errorf("invalid database.driver %q", c.Database.Driver)
	}
	return c.Indexer.Validate()
}

// bindValues registers every mapstructure key with its default tag value so
// AutomaticEnv can resolve nested keys.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Set even empty defaults so the key is known to AutomaticEnv.
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
