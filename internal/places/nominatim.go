package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/i474232898/prognoza/internal/weather"
	"golang.org/x/time/rate"
)

const nominatimBaseURL = "https://nominatim.openstreetmap.org"

// NominatimGeocoder searches OpenStreetMap's Nominatim service. Its usage
// policy allows one request per second and requires a User-Agent.
type NominatimGeocoder struct {
	client    *http.Client
	baseURL   string
	userAgent string
	limiter   *rate.Limiter
	limit     int
}

func NewNominatimGeocoder(client *http.Client, baseURL, userAgent string) *NominatimGeocoder {
	if baseURL == "" {
		baseURL = nominatimBaseURL
	}
	return &NominatimGeocoder{
		client:    client,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userAgent: userAgent,
		limiter:   rate.NewLimiter(rate.Every(time.Second), 1),
		limit:     10,
	}
}

type nominatimPlace struct {
	OSMType     string `json:"osm_type"`
	OSMID       int64  `json:"osm_id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

func (g *NominatimGeocoder) Search(ctx context.Context, query string) ([]weather.Place, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", weather.ErrThrottled, err)
	}

	values := url.Values{}
	values.Set("q", query)
	values.Set("format", "jsonv2")
	values.Set("limit", strconv.Itoa(g.limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: status %d", weather.ErrThrottled, resp.StatusCode)
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", weather.ErrProviderUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", weather.ErrProviderRejected, resp.StatusCode)
	}

	var results []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decoding nominatim response: %w", err)
	}

	places := make([]weather.Place, 0, len(results))
	for _, r := range results {
		lat, errLat := strconv.ParseFloat(r.Lat, 64)
		lon, errLon := strconv.ParseFloat(r.Lon, 64)
		if errLat != nil || errLon != nil {
			continue
		}
		name := r.Name
		if name == "" {
			name, _, _ = strings.Cut(r.DisplayName, ",")
		}
		places = append(places, weather.Place{
			ID:        strconv.FormatInt(r.OSMID, 10),
			Name:      name,
			Latitude:  lat,
			Longitude: lon,
		})
	}
	return places, nil
}
