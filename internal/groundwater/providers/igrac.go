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

// IGRACProvider queries the IGRAC Global Groundwater Information System, an
// international hydrological survey. The GGIS API blocks some direct origins,
// so the request can be routed through a configurable relay.
type IGRACProvider struct {
	name     string
	baseURL  string
	proxyURL string
	client   *http.Client
	circuit  *gobreaker.CircuitBreaker
}

func NewIGRACProvider(client *http.Client, proxyURL string) *IGRACProvider {
	return &IGRACProvider{
		name:     "igrac",
		baseURL:  "https://ggis.un-igrac.org/api/groundwater/point",
		proxyURL: proxyURL,
		client:   client,
		circuit:  newCircuit("igrac"),
	}
}

func (p *IGRACProvider) Name() string { return p.name }

func (p *IGRACProvider) Confidence() float64 { return 0.75 }

func (p *IGRACProvider) Fetch(ctx context.Context, c groundwater.Coordinate) (groundwater.Record, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", c.Lat))
		values.Set("longitude", fmt.Sprintf("%f", c.Lon))

		u := proxied(p.proxyURL, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()))
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.client, p.circuit, buildRequest)
	if err != nil {
		return groundwater.Record{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		GroundwaterLevelM float64 `json:"groundwater_level_m"`
		AquiferType       string  `json:"aquifer_type"`
		Lithology         string  `json:"lithology"`
		Porosity          float64 `json:"porosity"`
		RechargeMMYear    float64 `json:"recharge_mm_per_year"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return groundwater.Record{}, err
	}

	var rec groundwater.Record
	rec.Groundwater.LevelM = payload.GroundwaterLevelM
	rec.Aquifer.Type = mapAquiferType(payload.AquiferType)
	rec.Aquifer.Material = mapAquiferMaterial(payload.Lithology)
	rec.Aquifer.Porosity = payload.Porosity
	rec.Aquifer.RechargeMMYear = payload.RechargeMMYear
	rec.Metadata.Endpoint = p.baseURL

	groundwater.Backfill(&rec, c, groundwater.TierIGRAC)
	return rec, nil
}
