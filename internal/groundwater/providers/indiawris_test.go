package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jalrakshak/groundwater-data-aggregation/internal/groundwater"
)

func testHTTPClient() *http.Client {
	return &http.Client{Timeout: 5 * time.Second}
}

func TestIndiaWRIS_Fetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "12.971600", r.URL.Query().Get("lat"))
		assert.Equal(t, "77.594600", r.URL.Query().Get("lon"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"stationName": "Bengaluru OBS-114",
			"waterLevel": 12.5,
			"depthToWaterLevel": 18.3,
			"aquiferType": "Unconfined Aquifer",
			"quality": "Good",
			"dataTime": "2026-08-20T00:00:00Z"
		}`))
	}))
	defer srv.Close()

	p := &IndiaWRISProvider{
		name:    "india-wris",
		baseURL: srv.URL,
		client:  testHTTPClient(),
		circuit: newCircuit("india-wris-test"),
	}

	c := groundwater.Coordinate{Lat: 12.9716, Lon: 77.5946}
	rec, err := p.Fetch(context.Background(), c)
	require.NoError(t, err)

	assert.Equal(t, 12.5, rec.Groundwater.LevelM)
	assert.Equal(t, 18.3, rec.Groundwater.DepthToWaterM)
	assert.Equal(t, "Bengaluru OBS-114", rec.Groundwater.Station)
	assert.Equal(t, groundwater.AquiferUnconfined, rec.Aquifer.Type)
	assert.Equal(t, "Good", rec.Groundwater.Quality)
	assert.Equal(t, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), rec.Groundwater.LastUpdated)

	// Fields the registry omits are backfilled deterministically.
	assert.NotEmpty(t, rec.Soil.Type)
	assert.NotEmpty(t, rec.Soil.Color)
	assert.NotZero(t, rec.Aquifer.Porosity)
	assert.NotZero(t, rec.Aquifer.ThicknessM)

	rec2, err := p.Fetch(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, rec.Soil.Type, rec2.Soil.Type, "backfill must not flicker between calls")
}

func TestIndiaWRIS_Fetch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := &IndiaWRISProvider{
		name:    "india-wris",
		baseURL: srv.URL,
		client:  testHTTPClient(),
		circuit: newCircuit("india-wris-test-500"),
	}

	_, err := p.Fetch(context.Background(), groundwater.Coordinate{Lat: 1, Lon: 1})
	assert.Error(t, err)
}

func TestIndiaWRIS_Fetch_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"stationName": `))
	}))
	defer srv.Close()

	p := &IndiaWRISProvider{
		name:    "india-wris",
		baseURL: srv.URL,
		client:  testHTTPClient(),
		circuit: newCircuit("india-wris-test-json"),
	}

	_, err := p.Fetch(context.Background(), groundwater.Coordinate{Lat: 1, Lon: 1})
	assert.Error(t, err)
}

func TestIndiaWRIS_Fetch_ContextCancelled(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	p := &IndiaWRISProvider{
		name:    "india-wris",
		baseURL: srv.URL,
		client:  testHTTPClient(),
		circuit: newCircuit("india-wris-test-ctx"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := p.Fetch(ctx, groundwater.Coordinate{Lat: 1, Lon: 1})
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second, "expired context must abort the request")
}

func TestMapAquiferType(t *testing.T) {
	assert.Equal(t, groundwater.AquiferConfined, mapAquiferType("Confined Aquifer"))
	assert.Equal(t, groundwater.AquiferLeaky, mapAquiferType("leaky"))
	assert.Equal(t, groundwater.AquiferType(""), mapAquiferType("artesian"))
}
