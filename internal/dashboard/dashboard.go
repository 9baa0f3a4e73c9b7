// Package dashboard derives summary statistics from the record store.
package dashboard

import (
	"context"
	"fmt"

	"github.com/mr1hm/go-evacuation-tracker/internal/models"
	"github.com/mr1hm/go-evacuation-tracker/internal/repository"
)

// Source is the read-only slice of the record store the aggregator needs.
type Source interface {
	CountSites(ctx context.Context) (int, error)
	ListFamilies(ctx context.Context, opts repository.FamilyFilter) ([]models.Family, error)
	CountReportsByStatus(ctx context.Context, status string) (int, error)
}

type Aggregator struct {
	src Source
}

func NewAggregator(src Source) *Aggregator {
	return &Aggregator{src: src}
}

// ComputeSummary scans the store on every call. Reports whose status is
// neither "Missing" nor "Found" are counted in neither bucket.
func (a *Aggregator) ComputeSummary(ctx context.Context) (models.Summary, error) {
	var s models.Summary

	sites, err := a.src.CountSites(ctx)
	if err != nil {
		return s, storageErr(err)
	}

	families, err := a.src.ListFamilies(ctx, repository.FamilyFilter{})
	if err != nil {
		return s, storageErr(err)
	}

	missing, err := a.src.CountReportsByStatus(ctx, models.StatusMissing)
	if err != nil {
		return s, storageErr(err)
	}

	found, err := a.src.CountReportsByStatus(ctx, models.StatusFound)
	if err != nil {
		return s, storageErr(err)
	}

	s.TotalSites = sites
	s.TotalFamilies = len(families)
	s.MissingCount = missing
	s.TotalMissing = missing
	s.FoundCount = found
	s.FamiliesPerZone = make(map[string]int)

	for i := range families {
		f := &families[i]
		s.FamiliesPerZone[f.Zone()]++
		s.EvacuatedCount += f.Members()
	}
	s.SafeCount = s.EvacuatedCount - s.MissingCount

	return s, nil
}

func storageErr(err error) error {
	return fmt.Errorf("%w: computing summary: %w", models.ErrStorage, err)
}
