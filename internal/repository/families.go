package repository

import (
	"context"
	"fmt"

	"github.com/mr1hm/go-evacuation-tracker/internal/models"
)

const familyColumns = `id, head_of_family, seniors, pwd, children, total_members, evacuation_center_assigned,
	address, contact_number, disaster_type, mapping_id, created_at, updated_at`

func (s *SQLiteDB) CreateFamily(ctx context.Context, f *models.Family) error {
	f.CreatedAt = now()
	f.UpdatedAt = f.CreatedAt

	id, err := s.insert(ctx, `
		INSERT INTO evacuees (head_of_family, seniors, pwd, children, total_members, evacuation_center_assigned,
			address, contact_number, disaster_type, mapping_id, created_at, updated_at)
		VALUES (:head_of_family, :seniors, :pwd, :children, :total_members, :evacuation_center_assigned,
			:address, :contact_number, :disaster_type, :mapping_id, :created_at, :updated_at)`, f)
	if err != nil {
		return fmt.Errorf("error inserting family: %w", err)
	}
	f.ID = id
	return nil
}

func (s *SQLiteDB) GetFamily(ctx context.Context, id int64) (*models.Family, error) {
	var f models.Family
	if err := s.get(ctx, &f, `SELECT `+familyColumns+` FROM evacuees WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("error fetching family %d: %w", id, err)
	}
	return &f, nil
}

// UpdateFamily replaces every mutable column with the values in f.
func (s *SQLiteDB) UpdateFamily(ctx context.Context, f *models.Family) error {
	f.UpdatedAt = now()

	ok, err := s.exec(ctx, `
		UPDATE evacuees
		SET head_of_family = :head_of_family, seniors = :seniors, pwd = :pwd, children = :children,
			total_members = :total_members, evacuation_center_assigned = :evacuation_center_assigned,
			address = :address, contact_number = :contact_number, disaster_type = :disaster_type,
			mapping_id = :mapping_id, updated_at = :updated_at
		WHERE id = :id`, f)
	if err != nil {
		return fmt.Errorf("error updating family %d: %w", f.ID, err)
	}
	if !ok {
		return fmt.Errorf("error updating family %d: %w", f.ID, ErrNotFound)
	}
	return nil
}

func (s *SQLiteDB) DeleteFamily(ctx context.Context, id int64) (bool, error) {
	ok, err := s.exec(ctx, `DELETE FROM evacuees WHERE id = :id`, map[string]any{"id": id})
	if err != nil {
		return false, fmt.Errorf("error deleting family %d: %w", id, err)
	}
	return ok, nil
}

func (s *SQLiteDB) ListFamilies(ctx context.Context, opts FamilyFilter) ([]models.Family, error) {
	query := `SELECT ` + familyColumns + ` FROM evacuees`
	args := []any{}

	if opts.MappingID != nil {
		query += ` WHERE mapping_id = ?`
		args = append(args, *opts.MappingID)
	}
	query += ` ORDER BY id`

	families := []models.Family{}
	if err := s.db.SelectContext(ctx, &families, query, args...); err != nil {
		return nil, fmt.Errorf("error listing families: %w", err)
	}
	return families, nil
}

func (s *SQLiteDB) CountFamilies(ctx context.Context) (int, error) {
	n, err := s.count(ctx, `SELECT COUNT(*) FROM evacuees`)
	if err != nil {
		return 0, fmt.Errorf("error counting families: %w", err)
	}
	return n, nil
}
