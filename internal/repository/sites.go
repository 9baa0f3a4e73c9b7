package repository

import (
	"context"
	"fmt"

	"github.com/mr1hm/go-evacuation-tracker/internal/models"
)

const siteColumns = `id, latitude, longitude, name, type, capacity, facilities, created_at, updated_at`

func (s *SQLiteDB) CreateSite(ctx context.Context, site *models.Site) error {
	site.CreatedAt = now()
	site.UpdatedAt = site.CreatedAt

	id, err := s.insert(ctx, `
		INSERT INTO evacuation_sites (latitude, longitude, name, type, capacity, facilities, created_at, updated_at)
		VALUES (:latitude, :longitude, :name, :type, :capacity, :facilities, :created_at, :updated_at)`, site)
	if err != nil {
		return fmt.Errorf("error inserting site: %w", err)
	}
	site.ID = id
	return nil
}

func (s *SQLiteDB) GetSite(ctx context.Context, id int64) (*models.Site, error) {
	var site models.Site
	if err := s.get(ctx, &site, `SELECT `+siteColumns+` FROM evacuation_sites WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("error fetching site %d: %w", id, err)
	}
	return &site, nil
}

func (s *SQLiteDB) UpdateSite(ctx context.Context, site *models.Site) error {
	site.UpdatedAt = now()

	ok, err := s.exec(ctx, `
		UPDATE evacuation_sites
		SET latitude = :latitude, longitude = :longitude, name = :name, type = :type,
			capacity = :capacity, facilities = :facilities, updated_at = :updated_at
		WHERE id = :id`, site)
	if err != nil {
		return fmt.Errorf("error updating site %d: %w", site.ID, err)
	}
	if !ok {
		return fmt.Errorf("error updating site %d: %w", site.ID, ErrNotFound)
	}
	return nil
}

func (s *SQLiteDB) DeleteSite(ctx context.Context, id int64) (bool, error) {
	ok, err := s.exec(ctx, `DELETE FROM evacuation_sites WHERE id = :id`, map[string]any{"id": id})
	if err != nil {
		return false, fmt.Errorf("error deleting site %d: %w", id, err)
	}
	return ok, nil
}

func (s *SQLiteDB) ListSites(ctx context.Context) ([]models.Site, error) {
	sites := []models.Site{}
	if err := s.db.SelectContext(ctx, &sites, `SELECT `+siteColumns+` FROM evacuation_sites ORDER BY id`); err != nil {
		return nil, fmt.Errorf("error listing sites: %w", err)
	}
	return sites, nil
}

func (s *SQLiteDB) CountSites(ctx context.Context) (int, error) {
	n, err := s.count(ctx, `SELECT COUNT(*) FROM evacuation_sites`)
	if err != nil {
		return 0, fmt.Errorf("error counting sites: %w", err)
	}
	return n, nil
}
