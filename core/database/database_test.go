package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Driver:         DriverMySQL,
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "specy",
			TimeoutSeconds: 2,
		}

		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("Unsupported Driver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "oracle"})
		assert.ErrorContains(t, err, "unsupported database driver")
		assert.Nil(t, db)
	})

	t.Run("SQLite With Tracing", func(t *testing.T) {
		db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:", Tracing: true})
		require.NoError(t, err)
		assert.NoError(t, db.Exec("SELECT 1").Error)
	})
}

func TestDialector(t *testing.T) {
	for _, driver := range []string{DriverMySQL, DriverPostgres, DriverSQLite} {
		d, err := Dialector(Config{Driver: driver, Host: "db", Port: 1, User: "u", Password: "p@ss", Name: "specy"})
		require.NoError(t, err, driver)
		assert.Equal(t, driver, d.Name())
	}
}

func TestConfig_IsValidDriver(t *testing.T) {
	assert.True(t, Config{Driver: "postgres"}.IsValidDriver())
	assert.False(t, Config{Driver: "mssql"}.IsValidDriver())
}
