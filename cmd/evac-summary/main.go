package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mr1hm/go-evacuation-tracker/internal/config"
	"github.com/mr1hm/go-evacuation-tracker/internal/dashboard"
	"github.com/mr1hm/go-evacuation-tracker/internal/logging"
	"github.com/mr1hm/go-evacuation-tracker/internal/repository"
)

// evac-summary prints the dashboard summary as JSON.
func main() {
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	summary, err := dashboard.NewAggregator(db).ComputeSummary(ctx)
	if err != nil {
		logging.Fatalf("Failed to compute summary: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		logging.Fatalf("Failed to write summary: %v", err)
	}
}
