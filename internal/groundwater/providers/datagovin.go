package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jalrakshak/groundwater-data-aggregation/internal/groundwater"
	"github.com/sony/gobreaker"
)

// DataGovInProvider queries the national open-data portal's groundwater level
// resource. Requires an API key.
type DataGovInProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewDataGovInProvider(client *http.Client, apiKey string) *DataGovInProvider {
	return &DataGovInProvider{
		name:    "data-gov-in",
		apiKey:  apiKey,
		baseURL: "https://api.data.gov.in/resource/groundwater-level-stations",
		client:  client,
		circuit: newCircuit("data-gov-in"),
	}
}

func (p *DataGovInProvider) Name() string { return p.name }

func (p *DataGovInProvider) Confidence() float64 { return 0.85 }

func (p *DataGovInProvider) Fetch(ctx context.Context, c groundwater.Coordinate) (groundwater.Record, error) {
	if p.apiKey == "" {
		return groundwater.Record{}, fmt.Errorf("data.gov.in api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("api-key", p.apiKey)
		values.Set("format", "json")
		values.Set("limit", "1")
		values.Set("filters[latitude]", fmt.Sprintf("%.4f", c.Lat))
		values.Set("filters[longitude]", fmt.Sprintf("%.4f", c.Lon))

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.client, p.circuit, buildRequest)
	if err != nil {
		return groundwater.Record{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Records []struct {
			StationName string  `json:"station_name"`
			WaterLevelM float64 `json:"water_level_m"`
			WellDepthM  float64 `json:"well_depth_m"`
			AquiferType string  `json:"aquifer_type"`
			SoilType    string  `json:"soil_type"`
			State       string  `json:"state"`
			District    string  `json:"district"`
			UpdatedDate string  `json:"updated_date"`
		} `json:"records"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return groundwater.Record{}, err
	}
	if len(payload.Records) == 0 {
		return groundwater.Record{}, fmt.Errorf("no records for %s", c.Key())
	}

	r := payload.Records[0]
	var rec groundwater.Record
	rec.Groundwater.LevelM = r.WaterLevelM
	rec.Groundwater.DepthToWaterM = r.WellDepthM
	rec.Groundwater.Station = r.StationName
	rec.Aquifer.Type = mapAquiferType(r.AquiferType)
	rec.Soil.Type = mapSoilType(r.SoilType)
	rec.Metadata.Endpoint = p.baseURL

	if ts, err := time.Parse("2006-01-02", r.UpdatedDate); err == nil {
		rec.Groundwater.LastUpdated = ts.UTC()
	}

	groundwater.Backfill(&rec, c, groundwater.TierDataGovIn)
	return rec, nil
}

// mapSoilType normalizes portal soil labels into the fixed enumeration.
func mapSoilType(s string) groundwater.SoilType {
	switch s {
	case "clay", "Clay":
		return groundwater.SoilClay
	case "clay_loam", "Clay Loam":
		return groundwater.SoilClayLoam
	case "loam", "Loam":
		return groundwater.SoilLoam
	case "sandy_loam", "Sandy Loam":
		return groundwater.SoilSandyLoam
	case "sand", "sandy", "Sandy":
		return groundwater.SoilSandy
	case "silt", "Silt":
		return groundwater.SoilSilt
	case "silt_loam", "Silt Loam":
		return groundwater.SoilSiltLoam
	default:
		return ""
	}
}
