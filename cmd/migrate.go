package cmd

import (
	"context"
	"errors"
	"fmt"

	"specy-indexer/core/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateVerifyOnly bool

// migrateCmd creates the entity tables and verifies the live schema.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the entity tables",
	Long: `Runs GORM auto-migration for every entity model, then compares the live
schema with the models and reports missing tables or columns.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateVerifyOnly, "verify-only", false, "Only report schema drift")
	RootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	if rt.db == nil {
		return errors.New("migrate requires store.backend=database")
	}

	ctx := context.Background()
	if !migrateVerifyOnly {
		if err := rt.migrate(ctx); err != nil {
			return err
		}
		rt.logger.Info("Migrated entity tables", zap.Int("models", len(rt.registry.Models())))
	}

	issues, err := database.VerifyModels(rt.db.WithContext(ctx), rt.registry.Models()...)
	if err != nil {
		return err
	}
	for _, issue := range issues {
		rt.logger.Warn("Schema drift", zap.String("issue", issue.String()))
	}
	if len(issues) > 0 {
		return fmt.Errorf("%d schema issues found", len(issues))
	}
	rt.logger.Info("Schema matches entity models")
	return nil
}
