package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mr1hm/go-evacuation-tracker/internal/models"
)

// CreateSite places a new evacuation site. Coordinates must be valid.
func (r *Registry) CreateSite(ctx context.Context, site *models.Site) (*models.Site, error) {
	if site == nil {
		return nil, fmt.Errorf("%w: site is required", models.ErrInvalidInput)
	}
	if err := r.validateStruct(site); err != nil {
		return nil, err
	}

	site.ID = 0
	if err := r.store.CreateSite(ctx, site); err != nil {
		return nil, storeErr(err)
	}

	slog.Info("site created", "site_id", site.ID, "lat", site.Latitude, "lng", site.Longitude)
	return site, nil
}

// UpdateSite overwrites name, type, capacity and facilities. Coordinates are
// kept unless the details carry both of them. A missing site is reported
// before any validation failure.
func (r *Registry) UpdateSite(ctx context.Context, id int64, details models.SiteDetails) (*models.Site, error) {
	site, err := r.store.GetSite(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}

	if err := r.validateStruct(details); err != nil {
		return nil, err
	}
	if (details.Latitude == nil) != (details.Longitude == nil) {
		return nil, fmt.Errorf("%w: latitude and longitude must be supplied together", models.ErrInvalidInput)
	}

	site.Name = details.Name
	site.Type = details.Type
	site.Capacity = details.Capacity
	site.Facilities = details.Facilities
	if details.Latitude != nil {
		site.Latitude = *details.Latitude
		site.Longitude = *details.Longitude
	}

	if err := r.store.UpdateSite(ctx, site); err != nil {
		return nil, storeErr(err)
	}

	slog.Info("site updated", "site_id", id)
	return site, nil
}

// DeleteSite reports false when no site matched. Families referencing the
// site are left untouched.
func (r *Registry) DeleteSite(ctx context.Context, id int64) (bool, error) {
	deleted, err := r.store.DeleteSite(ctx, id)
	if err != nil {
		return false, storeErr(err)
	}
	if deleted {
		slog.Info("site deleted", "site_id", id)
	}
	return deleted, nil
}

func (r *Registry) GetSite(ctx context.Context, id int64) (*models.Site, error) {
	site, err := r.store.GetSite(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	return site, nil
}

func (r *Registry) ListSites(ctx context.Context) ([]models.Site, error) {
	sites, err := r.store.ListSites(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return sites, nil
}
