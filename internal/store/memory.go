package store

import (
	"errors"
	"sync"
	"time"

	"github.com/jalrakshak/groundwater-data-aggregation/internal/groundwater"
)

var (
	// ErrNotFound is returned when no data is available for a given location.
	ErrNotFound = errors.New("no groundwater data for location")
)

// RecordHistory holds a time-ordered list of fetched records for a location.
type RecordHistory struct {
	Records []groundwater.Record
}

// MemoryStore is a concurrency-safe in-memory implementation of the
// groundwater record store. The aggregator itself stays stateless; the HTTP
// layer and the scheduler persist results here so dashboards can query
// history.
type MemoryStore struct {
	mu sync.RWMutex

	// key: coordinate key, value: history
	data map[string]*RecordHistory

	// retention configuration
	maxHistory int           // max number of records per location
	maxAge     time.Duration // optional max age for records
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*RecordHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// SaveRecord appends a new record for a location and enforces retention.
func (s *MemoryStore) SaveRecord(c groundwater.Coordinate, rec groundwater.Record) {
	key := c.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[key]
	if !ok {
		history = &RecordHistory{}
		s.data[key] = history
	}

	history.Records = append(history.Records, rec)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history.Records) > s.maxHistory {
		over := len(history.Records) - s.maxHistory
		history.Records = history.Records[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(history.Records); i++ {
			ts := history.Records[i].Metadata.FetchedAt
			if ts.After(cutoff) || ts.Equal(cutoff) {
				break
			}
		}
		if i > 0 && i < len(history.Records) {
			history.Records = history.Records[i:]
		}
	}
}

// GetLatest returns the most recent record for a location.
func (s *MemoryStore) GetLatest(c groundwater.Coordinate) (groundwater.Record, error) {
	key := c.Key()

	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[key]
	if !ok || len(history.Records) == 0 {
		return groundwater.Record{}, ErrNotFound
	}
	return history.Records[len(history.Records)-1], nil
}

// GetRange returns all records for a location fetched between from and to (inclusive).
func (s *MemoryStore) GetRange(c groundwater.Coordinate, from, to time.Time) ([]groundwater.Record, error) {
	key := c.Key()

	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[key]
	if !ok || len(history.Records) == 0 {
		return nil, ErrNotFound
	}

	var result []groundwater.Record
	for _, rec := range history.Records {
		ts := rec.Metadata.FetchedAt
		if (ts.Equal(from) || ts.After(from)) && (ts.Equal(to) || ts.Before(to)) {
			result = append(result, rec)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}

	return result, nil
}
