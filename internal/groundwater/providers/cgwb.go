package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jalrakshak/groundwater-data-aggregation/internal/groundwater"
	"github.com/sony/gobreaker"
)

// CGWBProvider queries the Central Ground Water Board well database.
type CGWBProvider struct {
	name    string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewCGWBProvider(client *http.Client) *CGWBProvider {
	return &CGWBProvider{
		name:    "cgwb",
		baseURL: "https://cgwb.gov.in/api/gwdata/wells",
		client:  client,
		circuit: newCircuit("cgwb"),
	}
}

func (p *CGWBProvider) Name() string { return p.name }

func (p *CGWBProvider) Confidence() float64 { return 0.80 }

func (p *CGWBProvider) Fetch(ctx context.Context, c groundwater.Coordinate) (groundwater.Record, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("lat", fmt.Sprintf("%f", c.Lat))
		values.Set("lon", fmt.Sprintf("%f", c.Lon))
		values.Set("radius_km", "5")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.client, p.circuit, buildRequest)
	if err != nil {
		return groundwater.Record{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		WellDepthM  float64 `json:"well_depth_m"`
		WaterTableM float64 `json:"water_table_m"`
		Quality     string  `json:"quality"`
		Aquifer     struct {
			Type       string  `json:"type"`
			Material   string  `json:"material"`
			ThicknessM float64 `json:"thickness_m"`
		} `json:"aquifer"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return groundwater.Record{}, err
	}

	var rec groundwater.Record
	rec.Groundwater.LevelM = payload.WaterTableM
	rec.Groundwater.DepthToWaterM = payload.WellDepthM
	rec.Groundwater.Quality = payload.Quality
	rec.Aquifer.Type = mapAquiferType(payload.Aquifer.Type)
	rec.Aquifer.Material = mapAquiferMaterial(payload.Aquifer.Material)
	rec.Aquifer.ThicknessM = payload.Aquifer.ThicknessM
	rec.Metadata.Endpoint = p.baseURL

	groundwater.Backfill(&rec, c, groundwater.TierCGWB)
	return rec, nil
}

func mapAquiferMaterial(s string) groundwater.AquiferMaterial {
	switch s {
	case "alluvial", "Alluvial", "alluvium":
		return groundwater.MaterialAlluvial
	case "sandstone", "Sandstone":
		return groundwater.MaterialSandstone
	case "limestone", "Limestone":
		return groundwater.MaterialLimestone
	case "granite", "Granite":
		return groundwater.MaterialGranite
	case "basalt", "Basalt":
		return groundwater.MaterialBasalt
	case "clay", "Clay":
		return groundwater.MaterialClay
	default:
		return ""
	}
}
