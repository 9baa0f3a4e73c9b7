package repository

import (
	"context"

	"github.com/mr1hm/go-evacuation-tracker/internal/models"
)

// ErrNotFound is returned when an id-targeted operation matches no row.
var ErrNotFound = models.ErrNotFound

type FamilyFilter struct {
	MappingID *int64 // only families referencing this site id
}

type SiteRepository interface {
	CreateSite(ctx context.Context, s *models.Site) error
	GetSite(ctx context.Context, id int64) (*models.Site, error)
	UpdateSite(ctx context.Context, s *models.Site) error
	DeleteSite(ctx context.Context, id int64) (bool, error)
	ListSites(ctx context.Context) ([]models.Site, error)
	CountSites(ctx context.Context) (int, error)
}

type FamilyRepository interface {
	CreateFamily(ctx context.Context, f *models.Family) error
	GetFamily(ctx context.Context, id int64) (*models.Family, error)
	UpdateFamily(ctx context.Context, f *models.Family) error
	DeleteFamily(ctx context.Context, id int64) (bool, error)
	ListFamilies(ctx context.Context, opts FamilyFilter) ([]models.Family, error)
	CountFamilies(ctx context.Context) (int, error)
}

type ReportRepository interface {
	CreateReport(ctx context.Context, r *models.Report) error
	GetReport(ctx context.Context, id int64) (*models.Report, error)
	UpdateReport(ctx context.Context, r *models.Report) error
	DeleteReport(ctx context.Context, id int64) (bool, error)
	ListReports(ctx context.Context) ([]models.Report, error)
	CountReports(ctx context.Context) (int, error)
	CountReportsByStatus(ctx context.Context, status string) (int, error)
}

// Store is the full record store backing the registry and the dashboard.
type Store interface {
	SiteRepository
	FamilyRepository
	ReportRepository
}
