package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mr1hm/go-evacuation-tracker/internal/assets"
	"github.com/mr1hm/go-evacuation-tracker/internal/models"
)

func (r *Registry) normalizeReport(report *models.Report) error {
	if report == nil {
		return fmt.Errorf("%w: report is required", models.ErrInvalidInput)
	}
	report.Name = strings.TrimSpace(report.Name)
	report.Status = strings.TrimSpace(report.Status)
	if report.Status == "" {
		report.Status = models.StatusMissing
	}
	if report.DateMissing.IsZero() {
		report.DateMissing = time.Now().UTC()
	}
	return r.validateStruct(report)
}

// storePhoto writes photo and returns its reference, or "" when there is
// nothing to store.
func (r *Registry) storePhoto(ctx context.Context, photo *models.Photo) (string, error) {
	if photo == nil || photo.Data == nil {
		return "", nil
	}
	ref, err := r.assets.Store(ctx, photo)
	if errors.Is(err, assets.ErrEmptyPayload) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", models.ErrStorage, err)
	}
	return ref, nil
}

// discardPhoto removes an asset without failing the calling operation.
func (r *Registry) discardPhoto(ctx context.Context, ref string, reportID int64) {
	if ref == "" {
		return
	}
	if err := r.assets.Delete(ctx, ref); err != nil {
		slog.Warn("failed to delete photo asset", "report_id", reportID, "asset", ref, "error", err)
	}
}

// CreateReport files a missing-person report. A photo is stored before the
// record; if either step fails nothing is left behind.
func (r *Registry) CreateReport(ctx context.Context, report *models.Report, photo *models.Photo) (*models.Report, error) {
	if err := r.normalizeReport(report); err != nil {
		return nil, err
	}

	report.ID = 0
	report.PhotoURL = nil

	ref, err := r.storePhoto(ctx, photo)
	if err != nil {
		return nil, err
	}
	if ref != "" {
		report.PhotoURL = &ref
	}

	if err := r.store.CreateReport(ctx, report); err != nil {
		r.discardPhoto(ctx, ref, 0)
		report.PhotoURL = nil
		return nil, storeErr(err)
	}

	slog.Info("report filed", "report_id", report.ID, "status", report.Status, "photo", ref != "")
	return report, nil
}

// UpdateReport replaces every field of the stored report. Without a new
// photo the current photo reference is kept; with one, the previous asset is
// removed once the record points at the new one. A missing report is
// reported before any validation failure.
func (r *Registry) UpdateReport(ctx context.Context, id int64, report *models.Report, photo *models.Photo) (*models.Report, error) {
	existing, err := r.store.GetReport(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}

	if err := r.normalizeReport(report); err != nil {
		return nil, err
	}

	report.ID = id
	report.CreatedAt = existing.CreatedAt
	report.PhotoURL = existing.PhotoURL

	ref, err := r.storePhoto(ctx, photo)
	if err != nil {
		return nil, err
	}
	if ref != "" {
		report.PhotoURL = &ref
	}

	if err := r.store.UpdateReport(ctx, report); err != nil {
		r.discardPhoto(ctx, ref, id)
		return nil, storeErr(err)
	}

	if ref != "" && existing.HasPhoto() && *existing.PhotoURL != ref {
		r.discardPhoto(ctx, *existing.PhotoURL, id)
	}

	slog.Info("report updated", "report_id", id, "status", report.Status, "photo_replaced", ref != "")
	return report, nil
}

// DeleteReport removes the report and then its photo. It reports false when
// no report matched.
func (r *Registry) DeleteReport(ctx context.Context, id int64) (bool, error) {
	existing, err := r.store.GetReport(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, storeErr(err)
	}

	deleted, err := r.store.DeleteReport(ctx, id)
	if err != nil {
		return false, storeErr(err)
	}

	if !deleted {
		return false, nil
	}

	if existing.HasPhoto() {
		r.discardPhoto(ctx, *existing.PhotoURL, id)
	}

	slog.Info("report deleted", "report_id", id)
	return true, nil
}

func (r *Registry) GetReport(ctx context.Context, id int64) (*models.Report, error) {
	report, err := r.store.GetReport(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	return report, nil
}

func (r *Registry) ListReports(ctx context.Context) ([]models.Report, error) {
	reports, err := r.store.ListReports(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return reports, nil
}
