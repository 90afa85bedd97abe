package groundwater

import (
	"context"
	"time"
)

// Provider abstracts an external groundwater/aquifer/soil data source
// (e.g. India-WRIS, data.gov.in, CGWB, IGRAC, OpenWeather estimates).
// Fetch returns a partially or fully populated record; the aggregator owns
// timeout enforcement and provenance tagging.
type Provider interface {
	Name() string
	Confidence() float64
	Fetch(ctx context.Context, c Coordinate) (Record, error)
}

// Store is the contract the in-memory store (and any future persistent store)
// must satisfy for dashboard history queries.
type Store interface {
	SaveRecord(c Coordinate, rec Record)
	GetLatest(c Coordinate) (Record, error)
	GetRange(c Coordinate, from, to time.Time) ([]Record, error)
}
