package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mr1hm/go-evacuation-tracker/internal/models"
	"github.com/mr1hm/go-evacuation-tracker/internal/repository"
)

func (r *Registry) CreateFamily(ctx context.Context, f *models.Family) (*models.Family, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: family is required", models.ErrInvalidInput)
	}
	if err := r.validateStruct(f); err != nil {
		return nil, err
	}

	f.ID = 0
	if err := r.store.CreateFamily(ctx, f); err != nil {
		return nil, storeErr(err)
	}

	slog.Info("family registered", "family_id", f.ID, "zone", f.Zone())
	return f, nil
}

// UpdateFamily replaces the whole stored field set with f.
func (r *Registry) UpdateFamily(ctx context.Context, id int64, f *models.Family) (*models.Family, error) {
	existing, err := r.store.GetFamily(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}

	if f == nil {
		return nil, fmt.Errorf("%w: family is required", models.ErrInvalidInput)
	}
	if err := r.validateStruct(f); err != nil {
		return nil, err
	}

	f.ID = id
	f.CreatedAt = existing.CreatedAt
	if err := r.store.UpdateFamily(ctx, f); err != nil {
		return nil, storeErr(err)
	}

	slog.Info("family updated", "family_id", id)
	return f, nil
}

func (r *Registry) DeleteFamily(ctx context.Context, id int64) (bool, error) {
	deleted, err := r.store.DeleteFamily(ctx, id)
	if err != nil {
		return false, storeErr(err)
	}
	if deleted {
		slog.Info("family deleted", "family_id", id)
	}
	return deleted, nil
}

func (r *Registry) GetFamily(ctx context.Context, id int64) (*models.Family, error) {
	f, err := r.store.GetFamily(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	return f, nil
}

// ListFamilies returns every family, or only those whose MappingID equals
// mappingID when it is set.
func (r *Registry) ListFamilies(ctx context.Context, mappingID *int64) ([]models.Family, error) {
	families, err := r.store.ListFamilies(ctx, repository.FamilyFilter{MappingID: mappingID})
	if err != nil {
		return nil, storeErr(err)
	}
	return families, nil
}
