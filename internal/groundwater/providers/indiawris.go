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

// IndiaWRISProvider queries the India Water Resources Information System, the
// national water-resources registry. It is the highest-priority tier.
type IndiaWRISProvider struct {
	name    string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewIndiaWRISProvider(client *http.Client) *IndiaWRISProvider {
	return &IndiaWRISProvider{
		name:    "india-wris",
		baseURL: "https://indiawris.gov.in/api/gwl/station",
		client:  client,
		circuit: newCircuit("india-wris"),
	}
}

func (p *IndiaWRISProvider) Name() string { return p.name }

func (p *IndiaWRISProvider) Confidence() float64 { return 0.90 }

func (p *IndiaWRISProvider) Fetch(ctx context.Context, c groundwater.Coordinate) (groundwater.Record, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("lat", fmt.Sprintf("%f", c.Lat))
		values.Set("lon", fmt.Sprintf("%f", c.Lon))

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.client, p.circuit, buildRequest)
	if err != nil {
		return groundwater.Record{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		StationName   string  `json:"stationName"`
		WaterLevelM   float64 `json:"waterLevel"`
		DepthToWaterM float64 `json:"depthToWaterLevel"`
		AquiferType   string  `json:"aquiferType"`
		WellDepthM    float64 `json:"wellDepth"`
		Quality       string  `json:"quality"`
		LastUpdated   string  `json:"dataTime"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return groundwater.Record{}, err
	}

	var rec groundwater.Record
	rec.Groundwater.LevelM = payload.WaterLevelM
	rec.Groundwater.DepthToWaterM = payload.DepthToWaterM
	rec.Groundwater.Quality = payload.Quality
	rec.Groundwater.Station = payload.StationName
	rec.Aquifer.Type = mapAquiferType(payload.AquiferType)
	rec.Metadata.Endpoint = p.baseURL

	if ts, err := time.Parse(time.RFC3339, payload.LastUpdated); err == nil {
		rec.Groundwater.LastUpdated = ts.UTC()
	}

	groundwater.Backfill(&rec, c, groundwater.TierIndiaWRIS)
	return rec, nil
}

// mapAquiferType normalizes free-text aquifer labels the registries publish
// into the fixed enumeration. Unrecognized labels are left empty so Backfill
// derives one deterministically.
func mapAquiferType(s string) groundwater.AquiferType {
	switch s {
	case "Unconfined", "unconfined", "Unconfined Aquifer":
		return groundwater.AquiferUnconfined
	case "Confined", "confined", "Confined Aquifer":
		return groundwater.AquiferConfined
	case "Semi-Confined", "semi-confined", "Semi Confined":
		return groundwater.AquiferSemiConfined
	case "Leaky", "leaky":
		return groundwater.AquiferLeaky
	default:
		return ""
	}
}
