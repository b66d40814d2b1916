package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/i474232898/prognoza/internal/weather"
)

// ErrNotFound is returned when no forecast or place is stored for an id.
var ErrNotFound = weather.ErrNotFound

// forecastEntry holds the cached forecast of one place.
type forecastEntry struct {
	Meta  weather.Meta
	Spans weather.TimeSpans
}

// MemoryStore is a concurrency-safe in-memory implementation of the forecast
// cache and the saved place list.
type MemoryStore struct {
	mu sync.RWMutex

	// key: place id
	forecasts map[string]*forecastEntry
	places    map[string]weather.Place

	// retention configuration
	maxSpans int           // max number of spans per place
	maxAge   time.Duration // spans that ended longer ago are dropped

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxSpans or maxAge is <= 0, it is treated as unlimited.
func NewMemoryStore(maxSpans int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		forecasts: make(map[string]*forecastEntry),
		places:    make(map[string]weather.Place),
		maxSpans:  maxSpans,
		maxAge:    maxAge,
		now:       time.Now,
	}
}

// SaveForecast replaces the cached forecast of meta.PlaceID and enforces
// retention.
func (s *MemoryStore) SaveForecast(_ context.Context, meta weather.Meta, spans weather.TimeSpans) error {
	kept := s.retain(spans)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.forecasts[meta.PlaceID] = &forecastEntry{Meta: meta, Spans: kept}
	return nil
}

// retain copies spans, dropping those past the age limit and the ones beyond
// the count limit.
func (s *MemoryStore) retain(spans weather.TimeSpans) weather.TimeSpans {
	kept := make(weather.TimeSpans, 0, len(spans))
	var cutoff time.Time
	if s.maxAge > 0 {
		cutoff = s.now().Add(-s.maxAge)
	}
	for _, span := range spans {
		if !cutoff.IsZero() && span.End.Before(cutoff) {
			continue
		}
		kept = append(kept, span)
	}
	if s.maxSpans > 0 && len(kept) > s.maxSpans {
		kept = kept[:s.maxSpans]
	}
	return kept
}

// GetForecast returns the cached forecast of a place. The returned spans
// are a copy.
func (s *MemoryStore) GetForecast(_ context.Context, placeID string) (weather.Meta, weather.TimeSpans, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.forecasts[placeID]
	if !ok {
		return weather.Meta{}, nil, ErrNotFound
	}
	return entry.Meta, append(weather.TimeSpans(nil), entry.Spans...), nil
}

// Prune applies the age limit to every cached forecast and removes
// forecasts left without spans. It returns the number of removed forecasts.
func (s *MemoryStore) Prune(_ context.Context) (int, error) {
	if s.maxAge <= 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int
	for id, entry := range s.forecasts {
		entry.Spans = s.retain(entry.Spans)
		if len(entry.Spans) == 0 {
			delete(s.forecasts, id)
			removed++
		}
	}
	return removed, nil
}

func (s *MemoryStore) SavePlace(_ context.Context, place weather.Place) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.places[place.ID] = place
	return nil
}

func (s *MemoryStore) GetPlace(_ context.Context, id string) (weather.Place, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	place, ok := s.places[id]
	if !ok {
		return weather.Place{}, ErrNotFound
	}
	return place, nil
}

// ListPlaces returns the saved places ordered by name.
func (s *MemoryStore) ListPlaces(_ context.Context) ([]weather.Place, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]weather.Place, 0, len(s.places))
	for _, p := range s.places {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

// DeletePlace forgets a saved place together with its cached forecast.
func (s *MemoryStore) DeletePlace(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.places[id]; !ok {
		return ErrNotFound
	}
	delete(s.places, id)
	delete(s.forecasts, id)
	return nil
}
