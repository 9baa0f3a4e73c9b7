package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mr1hm/go-evacuation-tracker/internal/models"
)

func setupTestDB(t *testing.T) *SQLiteDB {
	db, err := NewSQLiteDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	return db
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestSQLiteDB_CreateAndGetSite(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	site := &models.Site{
		Latitude:   14.5995,
		Longitude:  120.9842,
		Name:       strPtr("Barangay Hall"),
		Type:       strPtr("Covered Court"),
		Capacity:   intPtr(150),
		Facilities: strPtr("Toilets, water"),
	}

	if err := db.CreateSite(ctx, site); err != nil {
		t.Fatalf("CreateSite failed: %v", err)
	}
	if site.ID == 0 {
		t.Fatal("expected store-assigned id")
	}

	got, err := db.GetSite(ctx, site.ID)
	if err != nil {
		t.Fatalf("GetSite failed: %v", err)
	}
	if *got.Name != "Barangay Hall" {
		t.Errorf("expected name 'Barangay Hall', got '%s'", *got.Name)
	}
	if got.Latitude != 14.5995 || got.Longitude != 120.9842 {
		t.Errorf("unexpected coordinates %v", got.Coordinates())
	}
	if *got.Capacity != 150 {
		t.Errorf("expected capacity 150, got %d", *got.Capacity)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestSQLiteDB_GetSite_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, err := db.GetSite(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteDB_SiteIDsNotReused(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	first := &models.Site{Latitude: 10, Longitude: 20}
	if err := db.CreateSite(ctx, first); err != nil {
		t.Fatalf("CreateSite failed: %v", err)
	}
	if _, err := db.DeleteSite(ctx, first.ID); err != nil {
		t.Fatalf("DeleteSite failed: %v", err)
	}

	second := &models.Site{Latitude: 11, Longitude: 21}
	if err := db.CreateSite(ctx, second); err != nil {
		t.Fatalf("CreateSite failed: %v", err)
	}
	if second.ID == first.ID {
		t.Errorf("expected fresh id after delete, got reused id %d", second.ID)
	}
}

func TestSQLiteDB_UpdateSite(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	site := &models.Site{Latitude: 10, Longitude: 20, Name: strPtr("Old")}
	db.CreateSite(ctx, site)

	site.Name = strPtr("New")
	site.Capacity = nil
	if err := db.UpdateSite(ctx, site); err != nil {
		t.Fatalf("UpdateSite failed: %v", err)
	}

	got, _ := db.GetSite(ctx, site.ID)
	if *got.Name != "New" {
		t.Errorf("expected name 'New', got '%s'", *got.Name)
	}

	missing := &models.Site{ID: 999, Latitude: 1, Longitude: 1}
	if err := db.UpdateSite(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing site, got %v", err)
	}
}

func TestSQLiteDB_DeleteSite(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	site := &models.Site{Latitude: 10, Longitude: 20}
	db.CreateSite(ctx, site)

	deleted, err := db.DeleteSite(ctx, site.ID)
	if err != nil {
		t.Fatalf("DeleteSite failed: %v", err)
	}
	if !deleted {
		t.Error("expected true for existing site")
	}

	// Deleting again is not an error
	deleted, err = db.DeleteSite(ctx, site.ID)
	if err != nil {
		t.Fatalf("DeleteSite failed: %v", err)
	}
	if deleted {
		t.Error("expected false for already deleted site")
	}
}

func TestSQLiteDB_ListFamilies_MappingFilter(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	siteA, siteB := int64(1), int64(2)
	families := []*models.Family{
		{HeadOfFamily: strPtr("Santos"), MappingID: &siteA, TotalMembers: intPtr(4)},
		{HeadOfFamily: strPtr("Reyes"), MappingID: &siteB, TotalMembers: intPtr(3)},
		{HeadOfFamily: strPtr("Cruz"), MappingID: &siteA},
		{HeadOfFamily: strPtr("Garcia")},
	}
	for _, f := range families {
		if err := db.CreateFamily(ctx, f); err != nil {
			t.Fatalf("CreateFamily failed: %v", err)
		}
	}

	results, err := db.ListFamilies(ctx, FamilyFilter{})
	if err != nil {
		t.Fatalf("ListFamilies failed: %v", err)
	}
	if len(results) != 4 {
		t.Errorf("expected 4 families, got %d", len(results))
	}

	results, err = db.ListFamilies(ctx, FamilyFilter{MappingID: &siteA})
	if err != nil {
		t.Fatalf("ListFamilies failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 families at site 1, got %d", len(results))
	}
	if results[1].TotalMembers != nil {
		t.Errorf("expected unset total members, got %d", *results[1].TotalMembers)
	}

	none := int64(99)
	results, _ = db.ListFamilies(ctx, FamilyFilter{MappingID: &none})
	if len(results) != 0 {
		t.Errorf("expected no families for unknown site, got %d", len(results))
	}
}

func TestSQLiteDB_UpdateFamily_ReplacesAllFields(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	f := &models.Family{
		HeadOfFamily:             strPtr("Santos"),
		Children:                 intPtr(2),
		EvacuationCenterAssigned: strPtr("Gym"),
	}
	db.CreateFamily(ctx, f)

	update := &models.Family{ID: f.ID, HeadOfFamily: strPtr("Santos Jr.")}
	if err := db.UpdateFamily(ctx, update); err != nil {
		t.Fatalf("UpdateFamily failed: %v", err)
	}

	got, _ := db.GetFamily(ctx, f.ID)
	if *got.HeadOfFamily != "Santos Jr." {
		t.Errorf("expected updated head, got '%s'", *got.HeadOfFamily)
	}
	if got.Children != nil || got.EvacuationCenterAssigned != nil {
		t.Error("expected omitted fields to be cleared by full update")
	}
}

func TestSQLiteDB_Reports(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	missingDate := time.Date(2025, 11, 7, 8, 0, 0, 0, time.UTC)
	reports := []*models.Report{
		{Name: "Ana", Status: models.StatusMissing, DateMissing: missingDate, PhotoURL: strPtr("/image/a.jpg")},
		{Name: "Ben", Status: models.StatusMissing, DateMissing: missingDate},
		{Name: "Cai", Status: models.StatusFound, DateMissing: missingDate},
		{Name: "Dan", Status: "missing", DateMissing: missingDate},
	}
	for _, r := range reports {
		if err := db.CreateReport(ctx, r); err != nil {
			t.Fatalf("CreateReport failed: %v", err)
		}
	}

	got, err := db.GetReport(ctx, reports[0].ID)
	if err != nil {
		t.Fatalf("GetReport failed: %v", err)
	}
	if !got.HasPhoto() || *got.PhotoURL != "/image/a.jpg" {
		t.Errorf("expected photo url to round trip, got %v", got.PhotoURL)
	}
	if !got.DateMissing.Equal(missingDate) {
		t.Errorf("expected date %v, got %v", missingDate, got.DateMissing)
	}

	missing, _ := db.CountReportsByStatus(ctx, models.StatusMissing)
	if missing != 2 {
		t.Errorf("expected 2 missing (case-sensitive), got %d", missing)
	}
	found, _ := db.CountReportsByStatus(ctx, models.StatusFound)
	if found != 1 {
		t.Errorf("expected 1 found, got %d", found)
	}
	total, _ := db.CountReports(ctx)
	if total != 4 {
		t.Errorf("expected 4 reports, got %d", total)
	}

	deleted, err := db.DeleteReport(ctx, reports[0].ID)
	if err != nil || !deleted {
		t.Fatalf("DeleteReport failed: deleted=%v err=%v", deleted, err)
	}
	if _, err := db.GetReport(ctx, reports[0].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSQLiteDB_UpdateReport_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	err := db.UpdateReport(context.Background(), &models.Report{ID: 7, Name: "Ghost", Status: models.StatusMissing})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
