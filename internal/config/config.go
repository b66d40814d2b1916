package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/prognoza/internal/common"
	"github.com/i474232898/prognoza/internal/weather"
)

const (
	GeocoderNominatim = "nominatim"
	GeocoderGoogle    = "google"
)

type AppConfig struct {
	Port string

	// DatabaseURL selects the Postgres store. Empty keeps everything in memory.
	DatabaseURL string

	// UserAgent identifies us to MET Norway and Nominatim, which require it.
	UserAgent string

	// Providers in the order they are tried.
	Providers        []string
	MetNoBaseURL     string
	OpenMeteoBaseURL string
	ProviderRPS      float64
	HTTPTimeout      time.Duration

	// DefaultExpiry applies when a provider gives no caching advice.
	DefaultExpiry time.Duration

	// RefreshInterval controls how often expired forecasts are refreshed.
	RefreshInterval time.Duration

	// Store retention.
	StoreMaxSpans int           // max spans per place (0 = unlimited)
	StoreMaxAge   time.Duration // spans that ended longer ago are dropped

	// TimeZone is used for places without their own zone.
	TimeZone *time.Location

	Geocoder         string
	GoogleAPIKey     string
	NominatimBaseURL string

	DefaultPlace weather.Place
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}
	var err error

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.UserAgent = getenvDefault("USER_AGENT", "prognoza/1.0 github.com/i474232898/prognoza")

	cfg.Providers = common.SplitList(getenvDefault("PROVIDERS", "metnorway,openmeteo"))
	for _, p := range cfg.Providers {
		if p != "metnorway" && p != "openmeteo" {
			return nil, fmt.Errorf("invalid PROVIDERS: unknown provider %q", p)
		}
	}
	cfg.MetNoBaseURL = os.Getenv("METNO_BASE_URL")
	cfg.OpenMeteoBaseURL = os.Getenv("OPENMETEO_BASE_URL")
	if cfg.ProviderRPS, err = getenvFloat("PROVIDER_RPS", 5); err != nil {
		return nil, err
	}

	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.DefaultExpiry, err = getenvDuration("DEFAULT_EXPIRY", time.Hour); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", 15*time.Minute); err != nil {
		return nil, err
	}
	cfg.StoreMaxSpans = getenvInt("STORE_MAX_SPANS", 0)
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", 24*time.Hour); err != nil {
		return nil, err
	}

	cfg.TimeZone = time.Local
	if tz := os.Getenv("TIME_ZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid TIME_ZONE: %w", err)
		}
		cfg.TimeZone = loc
	}

	cfg.Geocoder = getenvDefault("GEOCODER", GeocoderNominatim)
	cfg.GoogleAPIKey = os.Getenv("GOOGLE_GEOCODER_API_KEY")
	cfg.NominatimBaseURL = os.Getenv("NOMINATIM_BASE_URL")
	switch cfg.Geocoder {
	case GeocoderNominatim:
	case GeocoderGoogle:
		if cfg.GoogleAPIKey == "" {
			return nil, fmt.Errorf("GEOCODER=google needs GOOGLE_GEOCODER_API_KEY")
		}
	default:
		return nil, fmt.Errorf("invalid GEOCODER: %q", cfg.Geocoder)
	}

	place, err := loadDefaultPlace()
	if err != nil {
		return nil, err
	}
	cfg.DefaultPlace = place

	return cfg, nil
}

func loadDefaultPlace() (weather.Place, error) {
	place := weather.Place{
		ID:       getenvDefault("DEFAULT_PLACE_ID", "259515203"),
		Name:     getenvDefault("DEFAULT_PLACE_NAME", "Osijek"),
		TimeZone: getenvDefault("DEFAULT_PLACE_TIME_ZONE", "Europe/Zagreb"),
	}
	var err error
	if place.Latitude, err = getenvFloat("DEFAULT_PLACE_LATITUDE", 45.5511); err != nil {
		return weather.Place{}, err
	}
	if place.Longitude, err = getenvFloat("DEFAULT_PLACE_LONGITUDE", 18.6939); err != nil {
		return weather.Place{}, err
	}
	if place.Latitude < -90 || place.Latitude > 90 || place.Longitude < -180 || place.Longitude > 180 {
		return weather.Place{}, fmt.Errorf("default place coordinates out of range: %v, %v", place.Latitude, place.Longitude)
	}
	return place, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
