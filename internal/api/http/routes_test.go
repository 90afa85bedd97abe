package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jalrakshak/groundwater-data-aggregation/internal/groundwater"
	"github.com/jalrakshak/groundwater-data-aggregation/internal/store"
)

func newTestApp() *fiber.App {
	app := fiber.New()

	memStore := store.NewMemoryStore(10, time.Hour)
	// No providers configured: every fetch resolves through the synthetic tier.
	agg := groundwater.NewAggregator(groundwater.Options{})
	svc := groundwater.NewService(agg, memStore)
	RegisterRoutes(app, svc)

	return app
}

// TestGroundwaterCoordValidation verifies that the groundwater endpoint
// enforces presence and bounds of the lat/lon query parameters.
func TestGroundwaterCoordValidation(t *testing.T) {
	app := newTestApp()

	// Missing lon should return 400.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/groundwater?lat=12.97", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// Out-of-range latitude should also return 400.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/groundwater?lat=123&lon=77.59", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

// TestGroundwaterSyntheticFallback verifies that with no providers the
// endpoint still answers 200 with a synthetic-tier record.
func TestGroundwaterSyntheticFallback(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/groundwater?lat=12.9716&lon=77.5946", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var res groundwater.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success=true, got error %q", res.Error)
	}
	if res.Source != groundwater.SourceSynthetic {
		t.Fatalf("expected source %q, got %q", groundwater.SourceSynthetic, res.Source)
	}
	if res.Data == nil || res.Data.Location.Country != "India" {
		t.Fatalf("expected record resolved to India, got %+v", res.Data)
	}
}

// TestGroundwaterLatest verifies that a fetch is persisted and visible
// through the latest endpoint, and that unseen locations return 404.
func TestGroundwaterLatest(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/groundwater/latest?lat=28.6139&lon=77.2090", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/groundwater?lat=28.6139&lon=77.2090", nil)
	if _, err := app.Test(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/groundwater/latest?lat=28.6139&lon=77.2090", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

// TestRecommendStructure verifies body validation and a happy path.
func TestRecommendStructure(t *testing.T) {
	app := newTestApp()

	// Missing required fields should return 400.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/structures/recommend", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	body := `{"roof_area_m2": 100, "open_space_m2": 10, "annual_rainfall_mm": 900, "gw_depth_m": 12, "soil_type": "Sandy Loam"}`
	req = httptest.NewRequest(http.MethodPost, "/api/v1/structures/recommend", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var plan struct {
		Structure string `json:"structure"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&plan); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if plan.Structure != "pit" {
		t.Fatalf("expected pit recommendation, got %q", plan.Structure)
	}
}

// TestSoilReference verifies the static reference tables are served.
func TestSoilReference(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/soil/reference", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var ref groundwater.SoilReference
	if err := json.NewDecoder(resp.Body).Decode(&ref); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(ref.PermeabilityCMHour) != len(groundwater.SoilTypes) {
		t.Fatalf("expected %d permeability entries, got %d", len(groundwater.SoilTypes), len(ref.PermeabilityCMHour))
	}
}
