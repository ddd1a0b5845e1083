package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"specy-indexer/core/feed"
	"specy-indexer/core/loader"
	"specy-indexer/core/logger"
	"specy-indexer/core/middleware/auth"
	"specy-indexer/core/middleware/rayid"
	"specy-indexer/core/server"
	"specy-indexer/core/storage"
	"specy-indexer/feature/ingest"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// @title Specy Indexer API
// @version 1.0
// @description Block delivery and entity lookup for the Specy chain indexer.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the indexer HTTP server",
	Long:  `Migrates the entity tables, then serves block delivery and entity lookups until interrupted.`,
	RunE:  runStart,
}

func init() {
	RootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()
	logg := rt.logger
	ctx := context.Background()

	if err := rt.migrate(ctx); err != nil {
		return err
	}

	archiver, err := newArchiver(ctx, rt)
	if err != nil {
		return err
	}

	dryRun := rt.cfg.Server.Mode == server.ModeDryRun
	svc := ingest.NewService(rt.indexer, rt.repo, rt.registry, archiver, dryRun, logg)

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             rt.cfg.Server.BodyLimit(),
	})

	// RayID first so every later log line carries it.
	app.Use(rayid.New())
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Debug("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})
	app.Use(auth.New(auth.Config{
		ApiKey: rt.cfg.Server.ApiKey,
		Next: func(c *fiber.Ctx) bool {
			return slices.Contains(ingest.PublicPaths, c.Path())
		},
	}))

	mgr := loader.NewManager()
	mgr.Register(ingest.NewFeature(svc, rt.metrics))
	loaded, err := mgr.LoadAll(app)
	if err != nil {
		return err
	}
	logg.Info("Loaded features", zap.Strings("features", loaded), zap.Bool("dry_run", dryRun))

	errCh := make(chan error, 1)
	go func() {
		logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port))
		errCh <- app.Listen(":" + rt.cfg.Server.Port)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-sig:
	}

	logg.Info("Shutting down server...")
	return app.Shutdown()
}

// newArchiver returns nil when archiving is disabled.
func newArchiver(ctx context.Context, rt *runtime) (*feed.Archiver, error) {
	cfg := rt.cfg.Storage
	if !cfg.Enabled {
		return nil, nil
	}
	client, err := storage.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if err := storage.EnsureBucket(ctx, client, cfg.Bucket, cfg.Region); err != nil {
		return nil, err
	}
	rt.logger.Info("Archiving delivered blocks", zap.String("bucket", cfg.Bucket), zap.String("prefix", cfg.Prefix))
	return feed.NewArchiver(client, cfg.Bucket, cfg.Prefix), nil
}
