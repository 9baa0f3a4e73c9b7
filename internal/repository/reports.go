package repository

import (
	"context"
	"fmt"

	"github.com/mr1hm/go-evacuation-tracker/internal/models"
)

const reportColumns = `id, name, age, date_missing, status, photo_url, gender, last_seen_location,
	description, address, contact_number, created_at, updated_at`

func (s *SQLiteDB) CreateReport(ctx context.Context, r *models.Report) error {
	r.CreatedAt = now()
	r.UpdatedAt = r.CreatedAt

	id, err := s.insert(ctx, `
		INSERT INTO missing_reports (name, age, date_missing, status, photo_url, gender, last_seen_location,
			description, address, contact_number, created_at, updated_at)
		VALUES (:name, :age, :date_missing, :status, :photo_url, :gender, :last_seen_location,
			:description, :address, :contact_number, :created_at, :updated_at)`, r)
	if err != nil {
		return fmt.Errorf("error inserting report: %w", err)
	}
	r.ID = id
	return nil
}

func (s *SQLiteDB) GetReport(ctx context.Context, id int64) (*models.Report, error) {
	var r models.Report
	if err := s.get(ctx, &r, `SELECT `+reportColumns+` FROM missing_reports WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("error fetching report %d: %w", id, err)
	}
	return &r, nil
}

func (s *SQLiteDB) UpdateReport(ctx context.Context, r *models.Report) error {
	r.UpdatedAt = now()

	ok, err := s.exec(ctx, `
		UPDATE missing_reports
		SET name = :name, age = :age, date_missing = :date_missing, status = :status, photo_url = :photo_url,
			gender = :gender, last_seen_location = :last_seen_location, description = :description,
			address = :address, contact_number = :contact_number, updated_at = :updated_at
		WHERE id = :id`, r)
	if err != nil {
		return fmt.Errorf("error updating report %d: %w", r.ID, err)
	}
	if !ok {
		return fmt.Errorf("error updating report %d: %w", r.ID, ErrNotFound)
	}
	return nil
}

func (s *SQLiteDB) DeleteReport(ctx context.Context, id int64) (bool, error) {
	ok, err := s.exec(ctx, `DELETE FROM missing_reports WHERE id = :id`, map[string]any{"id": id})
	if err != nil {
		return false, fmt.Errorf("error deleting report %d: %w", id, err)
	}
	return ok, nil
}

func (s *SQLiteDB) ListReports(ctx context.Context) ([]models.Report, error) {
	reports := []models.Report{}
	if err := s.db.SelectContext(ctx, &reports, `SELECT `+reportColumns+` FROM missing_reports ORDER BY id`); err != nil {
		return nil, fmt.Errorf("error listing reports: %w", err)
	}
	return reports, nil
}

func (s *SQLiteDB) CountReports(ctx context.Context) (int, error) {
	n, err := s.count(ctx, `SELECT COUNT(*) FROM missing_reports`)
	if err != nil {
		return 0, fmt.Errorf("error counting reports: %w", err)
	}
	return n, nil
}

// CountReportsByStatus matches status exactly; "missing" does not count as "Missing".
func (s *SQLiteDB) CountReportsByStatus(ctx context.Context, status string) (int, error) {
	n, err := s.count(ctx, `SELECT COUNT(*) FROM missing_reports WHERE status = ?`, status)
	if err != nil {
		return 0, fmt.Errorf("error counting reports by status: %w", err)
	}
	return n, nil
}
