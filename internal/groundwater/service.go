package groundwater

import (
	"context"
	"time"
)

// Service orchestrates the aggregator and the record store for the HTTP layer
// and the scheduler. The aggregator stays stateless; only the service
// persists results.
type Service struct {
	aggregator *Aggregator
	store      Store
}

// NewService creates a new Service.
func NewService(aggregator *Aggregator, store Store) *Service {
	return &Service{
		aggregator: aggregator,
		store:      store,
	}
}

// Fetch runs the fallback chain for the coordinate and records the result so
// dashboards can query history later. Persistence failures cannot occur on
// the in-memory store; a future persistent store must stay non-fatal here.
func (s *Service) Fetch(ctx context.Context, lat, lon float64) Result {
	res := s.aggregator.Fetch(ctx, lat, lon)
	if res.Success && res.Data != nil && s.store != nil {
		s.store.SaveRecord(Coordinate{Lat: lat, Lon: lon}, *res.Data)
	}
	return res
}

// GetLatest delegates to the underlying store.
func (s *Service) GetLatest(c Coordinate) (Record, error) {
	return s.store.GetLatest(c)
}

// GetRange delegates to the underlying store.
func (s *Service) GetRange(c Coordinate, from, to time.Time) ([]Record, error) {
	return s.store.GetRange(c, from, to)
}
