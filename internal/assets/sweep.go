package assets

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/mr1hm/go-evacuation-tracker/internal/models"
	"github.com/mr1hm/go-evacuation-tracker/internal/worker"
)

type ReportLister interface {
	ListReports(ctx context.Context) ([]models.Report, error)
}

type SweepConfig struct {
	Workers    int
	BufferSize int
	MinAge     time.Duration // younger assets may belong to an in-flight create
	DryRun     bool
}

type SweepResult struct {
	Scanned  int
	Orphaned int
	Deleted  int64
	Failed   int64
}

// Sweeper removes assets that no report references.
type Sweeper struct {
	assets  *Manager
	reports ReportLister
	cfg     SweepConfig
	now     func() time.Time
}

func NewSweeper(assets *Manager, reports ReportLister, cfg SweepConfig) *Sweeper {
	return &Sweeper{
		assets:  assets,
		reports: reports,
		cfg:     cfg,
		now:     time.Now,
	}
}

func (s *Sweeper) Run(ctx context.Context) (SweepResult, error) {
	var result SweepResult

	reports, err := s.reports.ListReports(ctx)
	if err != nil {
		return result, fmt.Errorf("error listing reports: %w", err)
	}
	referenced := make(map[string]struct{}, len(reports))
	for _, r := range reports {
		if !r.HasPhoto() {
			continue
		}
		if key, ok := KeyFromRef(*r.PhotoURL); ok {
			referenced[key] = struct{}{}
		}
	}

	infos, err := s.assets.List(ctx)
	if err != nil {
		return result, err
	}
	result.Scanned = len(infos)

	cutoff := s.now().Add(-s.cfg.MinAge)
	var orphans []string
	for _, info := range infos {
		if _, ok := referenced[info.Key]; ok {
			continue
		}
		if info.ModTime.After(cutoff) {
			continue
		}
		orphans = append(orphans, info.Key)
	}
	result.Orphaned = len(orphans)

	if s.cfg.DryRun || len(orphans) == 0 {
		for _, key := range orphans {
			slog.Info("orphaned asset", "asset", key)
		}
		return result, nil
	}

	var deleted, failed atomic.Int64
	pool := worker.NewWorkerPool(s.cfg.Workers, s.cfg.BufferSize, func(ctx context.Context, key string) error {
		if err := s.assets.Delete(ctx, key); err != nil {
			return err
		}
		deleted.Add(1)
		slog.Debug("deleted orphaned asset", "asset", key)
		return nil
	})
	pool.OnError(func(key string, err error) {
		failed.Add(1)
		slog.Warn("failed to delete orphaned asset", "asset", key, "error", err)
	})
	pool.Start(ctx)

	for _, key := range orphans {
		if !pool.Submit(ctx, key) {
			break
		}
	}
	pool.Stop()

	result.Deleted = deleted.Load()
	result.Failed = failed.Load()
	slog.Info("asset sweep complete", "scanned", result.Scanned, "orphaned", result.Orphaned,
		"deleted", result.Deleted, "failed", result.Failed)

	return result, ctx.Err()
}
