package groundwater

import (
	"log"
	"math"

	"github.com/kelvins/geocoder"
)

// knownPlace is an offline gazetteer entry. The list covers the pilot
// assessment cities; nearest-match keeps record names stable without a
// geocoding key.
type knownPlace struct {
	name     string
	district string
	state    string
	country  string
	lat, lon float64
}

var knownPlaces = []knownPlace{
	{"Bengaluru Urban", "Bengaluru Urban", "Karnataka", "India", 12.9716, 77.5946},
	{"New Delhi", "New Delhi", "Delhi", "India", 28.6139, 77.2090},
	{"Chennai", "Chennai", "Tamil Nadu", "India", 13.0827, 80.2707},
	{"Mumbai", "Mumbai Suburban", "Maharashtra", "India", 19.0760, 72.8777},
	{"Jaipur", "Jaipur", "Rajasthan", "India", 26.9124, 75.7873},
}

// countryBox is a coarse bounding box used when no gazetteer entry is close
// enough. Boxes overlap at borders; first match wins.
type countryBox struct {
	country        string
	minLat, maxLat float64
	minLon, maxLon float64
}

var countryBoxes = []countryBox{
	{"India", 6.5, 35.7, 68.1, 97.4},
	{"Sri Lanka", 5.9, 9.9, 79.5, 82.0},
	{"Bangladesh", 20.7, 26.7, 88.0, 92.7},
	{"Nepal", 26.3, 30.5, 80.0, 88.3},
}

// Resolver turns a coordinate into a LocationInfo. Resolution is offline and
// deterministic by default; when a Google geocoding key is configured the
// resolved name is refined through the reverse-geocoding API. Geocoding
// failures degrade silently to the offline result and never fail a record.
type Resolver struct {
	apiKey string
}

// NewResolver creates a Resolver. apiKey may be empty.
func NewResolver(apiKey string) *Resolver {
	if apiKey != "" {
		geocoder.ApiKey = apiKey
	}
	return &Resolver{apiKey: apiKey}
}

// Resolve returns the best-effort place description for c.
func (r *Resolver) Resolve(c Coordinate) LocationInfo {
	loc := resolveOffline(c)

	if r == nil || r.apiKey == "" {
		return loc
	}

	addresses, err := geocoder.GeocodingReverse(geocoder.Location{
		Latitude:  c.Lat,
		Longitude: c.Lon,
	})
	if err != nil || len(addresses) == 0 {
		log.Printf("reverse geocode failed for %s: %v", c.Key(), err)
		return loc
	}

	addr := addresses[0]
	if addr.City != "" {
		loc.Name = addr.City
	}
	if addr.State != "" {
		loc.State = addr.State
	}
	if addr.Country != "" {
		loc.Country = addr.Country
	}
	return loc
}

func resolveOffline(c Coordinate) LocationInfo {
	loc := LocationInfo{
		Name:    "Unknown",
		Lat:     c.Lat,
		Lon:     c.Lon,
		Country: "Unknown",
	}

	// Nearest gazetteer entry within roughly half a degree.
	best := -1
	bestDist := 0.5
	for i, p := range knownPlaces {
		d := math.Max(math.Abs(p.lat-c.Lat), math.Abs(p.lon-c.Lon))
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best >= 0 {
		p := knownPlaces[best]
		loc.Name = p.name
		loc.District = p.district
		loc.State = p.state
		loc.Country = p.country
		return loc
	}

	for _, b := range countryBoxes {
		if c.Lat >= b.minLat && c.Lat <= b.maxLat && c.Lon >= b.minLon && c.Lon <= b.maxLon {
			loc.Country = b.country
			return loc
		}
	}
	return loc
}
