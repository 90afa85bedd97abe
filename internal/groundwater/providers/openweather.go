package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jalrakshak/groundwater-data-aggregation/internal/common"
	"github.com/jalrakshak/groundwater-data-aggregation/internal/groundwater"
	"github.com/sony/gobreaker"
)

// OpenWeatherProvider is the lowest-priority real tier. OpenWeather has no
// groundwater data; current humidity, temperature and precipitation are used
// to estimate soil-moisture and water-table proxies. Confidence is accordingly
// the lowest of the real providers.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "openweather-estimate",
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/weather",
		client:  client,
		circuit: newCircuit("openweather-estimate"),
	}
}

func (p *OpenWeatherProvider) Name() string { return p.name }

func (p *OpenWeatherProvider) Confidence() float64 { return 0.60 }

func (p *OpenWeatherProvider) Fetch(ctx context.Context, c groundwater.Coordinate) (groundwater.Record, error) {
	if p.apiKey == "" {
		return groundwater.Record{}, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")
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
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Rain struct {
			OneH float64 `json:"1h"`
		} `json:"rain"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return groundwater.Record{}, err
	}

	var rec groundwater.Record
	rec.Groundwater.DepthToWaterM = estimateDepthToWater(payload.Main.Humidity)
	rec.Groundwater.LevelM = estimateLevel(payload.Main.Humidity)
	rec.Groundwater.Quality = estimateQuality(descriptions(payload.Weather))
	if payload.Rain.OneH > 0 {
		// Crude annualization of the current rain rate; only a proxy.
		rec.Aquifer.RechargeMMYear = payload.Rain.OneH * 24 * 30
	}
	rec.Metadata.Endpoint = p.baseURL

	if payload.Dt > 0 {
		rec.Groundwater.LastUpdated = time.Unix(payload.Dt, 0).UTC()
	}

	groundwater.Backfill(&rec, c, groundwater.TierOpenWeather)
	return rec, nil
}

// estimateDepthToWater maps relative humidity (0-100) onto the plausible
// depth band: arid air suggests a deep water table.
func estimateDepthToWater(humidity float64) float64 {
	d := 50 - humidity*0.45
	if d < 2 {
		d = 2
	}
	if d > 50 {
		d = 50
	}
	return d
}

// estimateLevel maps humidity onto the water-level band [2,50].
func estimateLevel(humidity float64) float64 {
	l := 2 + humidity*0.4
	if l > 50 {
		l = 50
	}
	return l
}

func estimateQuality(desc string) string {
	switch {
	case common.HasAny(desc, "rain", "drizzle", "thunderstorm"):
		return "Good"
	case common.HasAny(desc, "haze", "dust", "smoke", "sand"):
		return "Poor"
	default:
		return "Moderate"
	}
}

func descriptions(items []struct {
	Description string `json:"description"`
}) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, strings.ToLower(it.Description))
	}
	return strings.Join(parts, " ")
}
