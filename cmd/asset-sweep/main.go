package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mr1hm/go-evacuation-tracker/internal/assets"
	"github.com/mr1hm/go-evacuation-tracker/internal/config"
	"github.com/mr1hm/go-evacuation-tracker/internal/logging"
	"github.com/mr1hm/go-evacuation-tracker/internal/repository"
)

// asset-sweep deletes photo assets that no missing-person report references.
func main() {
	dryRun := flag.Bool("dry-run", false, "list orphaned assets without deleting them")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bucket, err := assets.OpenBucket(ctx, cfg.Assets.Driver, cfg.Assets.Dir)
	if err != nil {
		logging.Fatalf("Failed to open asset bucket: %v", err)
	}
	defer bucket.Close()

	sweeper := assets.NewSweeper(assets.NewManager(bucket), db, assets.SweepConfig{
		Workers:    cfg.Sweep.Workers,
		BufferSize: cfg.Sweep.BufferSize,
		MinAge:     cfg.Sweep.MinAge,
		DryRun:     *dryRun,
	})

	result, err := sweeper.Run(ctx)
	if err != nil {
		logging.Fatalf("Asset sweep failed: %v", err)
	}
	slog.Info("done", "orphaned", result.Orphaned, "deleted", result.Deleted, "failed", result.Failed)
	if result.Failed > 0 {
		os.Exit(1)
	}
}
