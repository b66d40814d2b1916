package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// ServiceConfig tunes a Service. Zero values get defaults.
type ServiceConfig struct {
	// DefaultExpiry applies when a provider gives no expiry advice.
	DefaultExpiry time.Duration

	// Location is the time zone for places without one.
	Location *time.Location

	Icons IconTable
}

// Service serves cached forecasts, refreshing them from providers when they
// are missing or expired.
type Service struct {
	store     Store
	places    PlaceLookup
	providers []Provider

	expiry   time.Duration
	location *time.Location
	icons    IconTable
	now      func() time.Time
}

// NewService creates a new Service. Providers are tried in order.
func NewService(store Store, places PlaceLookup, providers []Provider, cfg ServiceConfig) *Service {
	s := &Service{
		store:     store,
		places:    places,
		providers: providers,
		expiry:    cfg.DefaultExpiry,
		location:  cfg.Location,
		icons:     cfg.Icons,
		now:       time.Now,
	}
	if s.expiry <= 0 {
		s.expiry = time.Hour
	}
	if s.location == nil {
		s.location = time.Local
	}
	if s.icons.Len() == 0 {
		s.icons = DefaultIcons()
	}
	return s
}

func (s *Service) Icons() IconTable {
	return s.icons
}

// Location returns the time zone forecasts for place are presented in.
func (s *Service) Location(place Place) *time.Location {
	return place.Location(s.location)
}

// GetForecast returns the forecast for a place from the current hour on.
// Fresh cache entries are served as they are; otherwise the providers are
// asked and, if they all fail, cached data is returned with the reason. The
// error is only set when the place cannot be resolved.
func (s *Service) GetForecast(ctx context.Context, placeID string) (Place, Result, error) {
	place, err := s.places.Get(ctx, placeID)
	if err != nil {
		return Place{}, nil, fmt.Errorf("resolving place %q: %w", placeID, err)
	}

	now := s.now()
	meta, spans, err := s.store.GetForecast(ctx, place.ID)
	switch {
	case err == nil && meta.PlaceID == place.ID && !meta.Expired(now):
		// Unexpired entries whose spans have all ended are refetched.
		if current := spans.From(now); len(current) > 0 {
			log.Printf("DEBUG: serving cached forecast for %s (expires %s)", place.ID, meta.ExpiresAt.Format(time.RFC3339))
			return place, ToResult(current, meta, ReasonNone), nil
		}
		log.Printf("DEBUG: cached forecast for %s has no current spans", place.ID)
	case err != nil && !errors.Is(err, ErrNotFound):
		log.Printf("ERROR: reading cached forecast for %s: %v", place.ID, err)
	}

	freshMeta, fresh, fetchErr := s.fetch(ctx, place)
	if fetchErr != nil {
		reason := ClassifyError(fetchErr)
		log.Printf("ERROR: provider fetch failed for %s (%s); falling back to %d cached spans: %v", place.ID, reason, len(spans), fetchErr)
		return place, ToResult(spans.From(now), meta, reason), nil
	}

	current := fresh.From(now)
	if len(current) == 0 {
		return place, Empty{Reason: ReasonNoData}, nil
	}
	return place, ToResult(current, freshMeta, ReasonNone), nil
}

// Refresh fetches a new forecast for the place regardless of the cache.
func (s *Service) Refresh(ctx context.Context, placeID string) error {
	place, err := s.places.Get(ctx, placeID)
	if err != nil {
		return fmt.Errorf("resolving place %q: %w", placeID, err)
	}
	_, _, err = s.fetch(ctx, place)
	return err
}

// RefreshIfExpired refreshes the place when its cache entry is missing or
// expired. It reports whether a refresh happened.
func (s *Service) RefreshIfExpired(ctx context.Context, placeID string) (bool, error) {
	meta, _, err := s.store.GetForecast(ctx, placeID)
	switch {
	case err == nil && !meta.Expired(s.now()):
		return false, nil
	case err != nil && !errors.Is(err, ErrNotFound):
		return false, fmt.Errorf("reading cached forecast for %s: %w", placeID, err)
	}
	return true, s.Refresh(ctx, placeID)
}

// Build turns spans into the current/today/coming view for place.
func (s *Service) Build(place Place, spans TimeSpans) (Forecast, error) {
	return BuildForecast(spans.Observations(), s.Location(place))
}

// Summaries returns the per-day outlook for place.
func (s *Service) Summaries(place Place, spans TimeSpans) []DaySummary {
	return SummarizeDays(spans, place, s.icons, s.Location(place))
}

// fetch asks each provider in turn and caches the first successful answer.
func (s *Service) fetch(ctx context.Context, place Place) (Meta, TimeSpans, error) {
	log.Printf("DEBUG: fetching forecast for %s with %d providers", place.ID, len(s.providers))
	if len(s.providers) == 0 {
		log.Printf("ERROR: No providers available to fetch forecast for %s", place.ID)
		return Meta{}, nil, ErrNoProviders
	}

	var errs []error
	for _, p := range s.providers {
		forecast, err := p.FetchForecast(ctx, place)
		if err != nil {
			// Log and continue; the next provider may still answer.
			log.Printf("DEBUG: provider %s forecast failed for %s: %v", p.Name(), place.ID, err)
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}

		now := s.now()
		meta := Meta{
			PlaceID:   place.ID,
			Provider:  p.Name(),
			FetchedAt: now,
			ExpiresAt: forecast.ExpiresAt,
		}
		if meta.ExpiresAt.IsZero() || meta.ExpiresAt.Before(now) {
			meta.ExpiresAt = now.Add(s.expiry)
		}

		spans := make(TimeSpans, len(forecast.Spans))
		for i, span := range forecast.Spans {
			span.PlaceID = place.ID
			spans[i] = span
		}

		if err := s.store.SaveForecast(ctx, meta, spans); err != nil {
			// The data is still good to show, it just won't be cached.
			log.Printf("ERROR: caching forecast for %s: %v", place.ID, err)
		}
		return meta, spans, nil
	}
	return Meta{}, nil, errors.Join(errs...)
}
