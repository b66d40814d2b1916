package places

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/i474232898/prognoza/internal/weather"
	"github.com/kelvins/geocoder"
)

// placeNamespace scopes the ids derived for geocoded coordinates.
var placeNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://prognoza/places"))

// GoogleGeocoder resolves "city" or "city, country" queries with the Google
// Geocoding API. It yields at most one place per query.
type GoogleGeocoder struct {
	apiKey string
}

// The geocoder package keeps its key in a package variable.
var googleMu sync.Mutex

func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	return &GoogleGeocoder{apiKey: apiKey}
}

func (g *GoogleGeocoder) Search(ctx context.Context, query string) ([]weather.Place, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("google geocoder api key is not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	city, country, _ := strings.Cut(query, ",")
	address := geocoder.Address{
		City:    strings.TrimSpace(city),
		Country: strings.TrimSpace(country),
	}

	googleMu.Lock()
	geocoder.ApiKey = g.apiKey
	location, err := geocoder.Geocoding(address)
	googleMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", weather.ErrProviderRejected, err)
	}

	return []weather.Place{{
		ID:        PlaceID(location.Latitude, location.Longitude),
		Name:      address.City,
		Latitude:  location.Latitude,
		Longitude: location.Longitude,
	}}, nil
}

// PlaceID derives a stable id for coordinates, rounded to about 10 m.
func PlaceID(latitude, longitude float64) string {
	key := fmt.Sprintf("%.4f,%.4f", latitude, longitude)
	return uuid.NewSHA1(placeNamespace, []byte(key)).String()
}
