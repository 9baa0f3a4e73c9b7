package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"gocloud.dev/blob/memblob"

	"github.com/mr1hm/go-evacuation-tracker/internal/assets"
	"github.com/mr1hm/go-evacuation-tracker/internal/dashboard"
	"github.com/mr1hm/go-evacuation-tracker/internal/models"
	"github.com/mr1hm/go-evacuation-tracker/internal/registry"
	"github.com/mr1hm/go-evacuation-tracker/internal/repository"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db, err := repository.NewSQLiteDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { bucket.Close() })
	photos := assets.NewManager(bucket)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewHandler(registry.New(db, photos), dashboard.NewAggregator(db), photos, Options{
		MaxUploadBytes: 1 << 20,
		Registry:       prometheus.NewRegistry(),
	})
	handler.RegisterRoutes(router)
	return router
}

func do(router *gin.Engine, method, path string, body []byte, contentType string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	router.ServeHTTP(w, req)
	return w
}

func doJSON(router *gin.Engine, method, path string, v any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(v)
	return do(router, method, path, body, "application/json")
}

type reportResponse struct {
	Notice
	Data models.Report `json:"data"`
}

func multipartReport(t *testing.T, fields map[string]string, photo []byte) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	if photo != nil {
		fw, err := mw.CreateFormFile("photo", "child.jpg")
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		fw.Write(photo)
	}
	mw.Close()
	return buf.Bytes(), mw.FormDataContentType()
}

func TestHealth(t *testing.T) {
	router := setupTestRouter(t)

	w := do(router, "GET", "/health", nil, "")
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)

	if resp["status"] != "ok" {
		t.Errorf("expected status ok, got %s", resp["status"])
	}
}

func TestSites_ReturnGeoJSON(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(router, "POST", "/api/sites", map[string]any{"latitude": 10, "longitude": 20, "name": "A"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = do(router, "GET", "/api/sites", nil, "")
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/geo+json" {
		t.Errorf("expected content-type application/geo+json, got %s", ct)
	}

	var fc FeatureCollection
	if err := json.Unmarshal(w.Body.Bytes(), &fc); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(fc.Features) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(fc.Features))
	}
	coords := fc.Features[0].Geometry.Coordinates
	if coords[0] != 20 || coords[1] != 10 {
		t.Errorf("expected [lng, lat] = [20, 10], got %v", coords)
	}
	if fc.Features[0].Properties["name"] != "A" {
		t.Errorf("expected name A, got %v", fc.Features[0].Properties["name"])
	}
}

func TestSites_Errors(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(router, "POST", "/api/sites", map[string]any{"latitude": 95, "longitude": 20})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad latitude, got %d", w.Code)
	}

	w = doJSON(router, "PUT", "/api/sites/42", map[string]any{"name": "Ghost"})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for missing site, got %d", w.Code)
	}

	w = do(router, "DELETE", "/api/sites/42", nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 deleting missing site, got %d", w.Code)
	}
	var n Notice
	json.Unmarshal(w.Body.Bytes(), &n)
	if n.OK || !strings.Contains(n.Message, "not found") {
		t.Errorf("unexpected notice %+v", n)
	}

	w = do(router, "GET", "/api/sites/abc", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-numeric id, got %d", w.Code)
	}
}

func TestFamilies_MappingFilter(t *testing.T) {
	router := setupTestRouter(t)

	for _, body := range []map[string]any{
		{"head_of_family": "Santos", "mapping_id": 1, "evacuation_center_assigned": "A", "total_members": 4},
		{"head_of_family": "Reyes", "mapping_id": 2},
		{"head_of_family": "Cruz", "mapping_id": 1},
	} {
		w := doJSON(router, "POST", "/api/families", body)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
	}

	w := do(router, "GET", "/api/families?mapping_id=1", nil, "")
	var resp struct {
		Families []models.Family `json:"families"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Families) != 2 {
		t.Errorf("expected 2 families at site 1, got %d", len(resp.Families))
	}

	w = do(router, "GET", "/api/families?mapping_id=x", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad mapping_id, got %d", w.Code)
	}
}

func TestReports_PhotoLifecycle(t *testing.T) {
	router := setupTestRouter(t)
	photo := bytes.Repeat([]byte("jpeg"), 256)

	body, ct := multipartReport(t, map[string]string{
		"name":         "Maria",
		"status":       "Missing",
		"date_missing": "2025-11-07",
		"age":          "9",
	}, photo)
	w := do(router, "POST", "/api/reports", body, ct)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created reportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !created.OK || created.Data.PhotoURL == nil {
		t.Fatalf("expected stored photo, got %+v", created)
	}
	if *created.Data.Age != 9 {
		t.Errorf("expected age 9, got %d", *created.Data.Age)
	}
	photoURL := *created.Data.PhotoURL

	w = do(router, "GET", photoURL, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected photo to be served, got %d", w.Code)
	}
	if !bytes.Equal(w.Body.Bytes(), photo) {
		t.Error("served photo differs from upload")
	}

	id := created.Data.ID
	w = do(router, "DELETE", "/api/reports/"+itoa(id), nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 deleting report, got %d", w.Code)
	}

	w = do(router, "GET", "/api/reports/"+itoa(id), nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
	w = do(router, "GET", photoURL, nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected photo to be gone, got %d", w.Code)
	}
	w = do(router, "DELETE", "/api/reports/"+itoa(id), nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 deleting twice, got %d", w.Code)
	}
}

func TestReports_ValidationAndDashboard(t *testing.T) {
	router := setupTestRouter(t)

	body, ct := multipartReport(t, map[string]string{"status": "Missing"}, nil)
	w := do(router, "POST", "/api/reports", body, ct)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without name, got %d", w.Code)
	}

	w = doJSON(router, "POST", "/api/reports", map[string]any{"name": "Jose", "status": "Missing"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created reportResponse
	json.Unmarshal(w.Body.Bytes(), &created)

	w = doJSON(router, "PUT", "/api/reports/"+itoa(created.Data.ID), map[string]any{"name": "Jose", "status": "Found"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = do(router, "GET", "/api/dashboard", nil, "")
	var summary models.Summary
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("failed to parse dashboard: %v", err)
	}
	if summary.MissingCount != 0 || summary.FoundCount != 1 {
		t.Errorf("expected missing=0 found=1, got missing=%d found=%d", summary.MissingCount, summary.FoundCount)
	}
}

func TestReports_PhotoTooLarge(t *testing.T) {
	router := setupTestRouter(t)

	tests := []struct {
		name string
		size int
	}{
		{"over cap within body allowance", 3 << 19},
		{"body over allowance", 5 << 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, ct := multipartReport(t, map[string]string{"name": "Big"}, make([]byte, tt.size))
			w := do(router, "POST", "/api/reports", body, ct)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 for oversized photo, got %d", w.Code)
			}
			var notice Notice
			json.Unmarshal(w.Body.Bytes(), &notice)
			if notice.Message != "photo exceeds 1 MB" {
				t.Errorf("unexpected message %q", notice.Message)
			}
		})
	}

	w := do(router, "GET", "/api/reports", nil, "")
	var reports []models.Report
	json.Unmarshal(w.Body.Bytes(), &reports)
	if len(reports) != 0 {
		t.Errorf("expected no reports to be filed, got %d", len(reports))
	}
}

func TestMetrics(t *testing.T) {
	router := setupTestRouter(t)

	do(router, "GET", "/health", nil, "")
	w := do(router, "GET", "/metrics", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `evacuation_http_requests_total{method="GET",route="/health",status="200"} 1`) {
		t.Errorf("expected request counter in metrics output")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimitMiddleware(1))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	if w := do(router, "GET", "/ping", nil, ""); w.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", w.Code)
	}
	if w := do(router, "GET", "/ping", nil, ""); w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
