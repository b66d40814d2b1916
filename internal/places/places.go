// Package places resolves, searches and remembers the places forecasts are
// shown for.
package places

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/i474232898/prognoza/internal/weather"
)

var (
	// ErrPlaceNotFound is returned for ids that are neither saved, the
	// default place, nor part of a recent search.
	ErrPlaceNotFound = fmt.Errorf("place %w", weather.ErrNotFound)

	ErrInvalidPlace = errors.New("invalid place")
)

// maxRecent bounds how many search results are remembered for lookups.
const maxRecent = 256

// Store persists saved places.
type Store interface {
	SavePlace(ctx context.Context, place weather.Place) error
	GetPlace(ctx context.Context, id string) (weather.Place, error)
	ListPlaces(ctx context.Context) ([]weather.Place, error)
	DeletePlace(ctx context.Context, id string) error
}

// Geocoder turns a free text query into candidate places.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]weather.Place, error)
}

// Service is the place repository. It implements weather.PlaceLookup.
type Service struct {
	store    Store
	geocoder Geocoder
	def      weather.Place

	mu     sync.Mutex
	recent map[string]weather.Place
	order  []string
}

func NewService(store Store, geocoder Geocoder, def weather.Place) *Service {
	return &Service{
		store:    store,
		geocoder: geocoder,
		def:      def,
		recent:   make(map[string]weather.Place),
	}
}

// Default returns the place shown when nothing else was chosen.
func (s *Service) Default() weather.Place {
	return s.def
}

// Get resolves a place id. Saved places win over recent search results,
// which win over the default place.
func (s *Service) Get(ctx context.Context, id string) (weather.Place, error) {
	place, err := s.store.GetPlace(ctx, id)
	if err == nil {
		return place, nil
	}
	if !errors.Is(err, weather.ErrNotFound) {
		return weather.Place{}, fmt.Errorf("loading place %s: %w", id, err)
	}

	s.mu.Lock()
	place, ok := s.recent[id]
	s.mu.Unlock()
	if ok {
		return place, nil
	}
	if id == s.def.ID {
		return s.def, nil
	}
	return weather.Place{}, ErrPlaceNotFound
}

// Search asks the geocoder for places matching query and remembers them so
// their forecasts can be requested by id.
func (s *Service) Search(ctx context.Context, query string) ([]weather.Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", ErrInvalidPlace)
	}
	if s.geocoder == nil {
		return nil, errors.New("no geocoder configured")
	}

	found, err := s.geocoder.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}
	log.Printf("DEBUG: geocoder returned %d places for %q", len(found), query)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range found {
		s.remember(p)
	}
	return found, nil
}

// remember must be called with mu held.
func (s *Service) remember(p weather.Place) {
	if _, ok := s.recent[p.ID]; !ok {
		s.order = append(s.order, p.ID)
	}
	s.recent[p.ID] = p
	for len(s.order) > maxRecent {
		delete(s.recent, s.order[0])
		s.order = s.order[1:]
	}
}

func (s *Service) List(ctx context.Context) ([]weather.Place, error) {
	return s.store.ListPlaces(ctx)
}

// Save stores place so it is listed and refreshed in the background.
func (s *Service) Save(ctx context.Context, place weather.Place) error {
	if err := Validate(place); err != nil {
		return err
	}
	return s.store.SavePlace(ctx, place)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.DeletePlace(ctx, id)
}

func (s *Service) IsSaved(ctx context.Context, id string) (bool, error) {
	_, err := s.store.GetPlace(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, weather.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Validate checks that place has an id and coordinates on the globe.
func Validate(place weather.Place) error {
	switch {
	case strings.TrimSpace(place.ID) == "":
		return fmt.Errorf("%w: missing id", ErrInvalidPlace)
	case place.Latitude < -90 || place.Latitude > 90:
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidPlace, place.Latitude)
	case place.Longitude < -180 || place.Longitude > 180:
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidPlace, place.Longitude)
	}
	return nil
}
