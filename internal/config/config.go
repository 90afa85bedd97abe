package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/jalrakshak/groundwater-data-aggregation/internal/groundwater"
)

// DefaultProviderOrder is the priority chain when PROVIDER_ORDER is unset.
var DefaultProviderOrder = []string{
	"india-wris",
	"data-gov-in",
	"cgwb",
	"igrac",
	"openweather-estimate",
}

type AppConfig struct {
	DataGovAPIKey     string
	OpenWeatherAPIKey string
	GeocoderAPIKey    string

	// CORSProxyURL, when set, is prefixed to cross-origin registry URLs.
	CORSProxyURL string

	// ProviderTimeout bounds each individual provider attempt.
	ProviderTimeout time.Duration

	// ProviderOrder is the fallback chain, highest priority first.
	ProviderOrder []string

	// FetchInterval controls how often the scheduler refreshes tracked locations.
	FetchInterval time.Duration

	// Locations tracked by the scheduler.
	Locations []groundwater.Coordinate

	// In-memory store retention.
	StoreMaxHistory int           // max number of records per location (0 = unlimited)
	StoreMaxAge     time.Duration // max age of records (0 = unlimited)

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.DataGovAPIKey = os.Getenv("DATA_GOV_API_KEY")
	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")
	cfg.CORSProxyURL = os.Getenv("CORS_PROXY_URL")

	timeoutStr := getenvDefault("PROVIDER_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PROVIDER_TIMEOUT: %w", err)
	}
	cfg.ProviderTimeout = timeout

	cfg.ProviderOrder = DefaultProviderOrder
	if order := os.Getenv("PROVIDER_ORDER"); order != "" {
		cfg.ProviderOrder = splitTrim(order)
	}

	// Scheduler interval: default 15 minutes.
	intervalStr := getenvDefault("FETCH_INTERVAL", "15m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_INTERVAL: %w", err)
	}
	cfg.FetchInterval = interval

	// Store retention.
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 96) // roughly 24h at 15-minute intervals

	maxAgeStr := getenvDefault("STORE_MAX_AGE", "24h")
	maxAge, err := time.ParseDuration(maxAgeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_MAX_AGE: %w", err)
	}
	cfg.StoreMaxAge = maxAge
	cfg.Port = getenvDefault("PORT", "8080")

	locs, err := parseLocations(os.Getenv("TRACKED_LOCATIONS"))
	if err != nil {
		return nil, err
	}
	cfg.Locations = locs

	return cfg, nil
}

// parseLocations parses "lat:lon,lat:lon" pairs, e.g.
// "12.9716:77.5946,28.6139:77.2090". An empty value is allowed: the scheduler
// simply has nothing to refresh.
func parseLocations(raw string) ([]groundwater.Coordinate, error) {
	if raw == "" {
		return nil, nil
	}

	var locs []groundwater.Coordinate
	for _, pair := range splitTrim(raw) {
		parts := strings.Split(pair, ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid location %q; expected lat:lon", pair)
		}
		lat, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude in %q: %w", pair, err)
		}
		lon, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude in %q: %w", pair, err)
		}
		c := groundwater.Coordinate{Lat: lat, Lon: lon}
		if !c.Valid() {
			return nil, fmt.Errorf("location %q out of bounds", pair)
		}
		locs = append(locs, c)
	}

	return locs, nil
}

func splitTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
