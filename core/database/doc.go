// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure MySQL, PostgreSQL or SQLite connections from the
// application's configuration. Query tracing through the OpenTelemetry GORM
// plugin is enabled with database.tracing.
//
// # Schema Inspection
//
// GetTableColumns reads the live column list of a table and VerifyModels
// compares it with the entity models, so migrate can report drift.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//
//	issues, err := database.VerifyModels(db, registry.Models()...)
package database
