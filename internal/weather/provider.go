package weather

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by stores when nothing is saved under a key.
	ErrNotFound = errors.New("not found")
	// ErrNoProviders is returned when no provider is configured.
	ErrNoProviders = errors.New("no weather providers configured")
)

// ProviderForecast is a provider's hourly forecast for a place.
type ProviderForecast struct {
	Spans TimeSpans

	// ExpiresAt is when the provider advises to fetch again. Zero means the
	// provider gave no advice.
	ExpiresAt time.Time
}

// Provider abstracts a forecast data source (e.g. MET Norway, Open-Meteo).
type Provider interface {
	Name() string
	FetchForecast(ctx context.Context, place Place) (ProviderForecast, error)
}

// Store is the forecast cache. SaveForecast replaces everything cached for
// meta.PlaceID. GetForecast returns ErrNotFound when nothing is cached.
type Store interface {
	SaveForecast(ctx context.Context, meta Meta, spans TimeSpans) error
	GetForecast(ctx context.Context, placeID string) (Meta, TimeSpans, error)
}

// PlaceLookup resolves place ids. It returns ErrNotFound for unknown ids.
type PlaceLookup interface {
	Get(ctx context.Context, id string) (Place, error)
}
