package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_URL", "PROVIDERS", "PROVIDER_RPS", "HTTP_TIMEOUT", "DEFAULT_EXPIRY",
		"REFRESH_INTERVAL", "STORE_MAX_AGE", "STORE_MAX_SPANS", "TIME_ZONE", "GEOCODER", "DEFAULT_PLACE_ID", "DEFAULT_PLACE_LATITUDE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.DatabaseURL != "" {
		t.Fatalf("unexpected server defaults: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Providers, []string{"metnorway", "openmeteo"}) {
		t.Fatalf("unexpected providers %v", cfg.Providers)
	}
	if cfg.DefaultExpiry != time.Hour || cfg.RefreshInterval != 15*time.Minute || cfg.StoreMaxAge != 24*time.Hour {
		t.Fatalf("unexpected durations: %+v", cfg)
	}
	if cfg.Geocoder != GeocoderNominatim {
		t.Fatalf("expected nominatim, got %s", cfg.Geocoder)
	}
	if cfg.DefaultPlace.ID != "259515203" || cfg.DefaultPlace.Name != "Osijek" || cfg.DefaultPlace.Latitude != 45.5511 {
		t.Fatalf("unexpected default place %+v", cfg.DefaultPlace)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PROVIDERS", "openmeteo")
	t.Setenv("PROVIDER_RPS", "0.5")
	t.Setenv("REFRESH_INTERVAL", "5m")
	t.Setenv("TIME_ZONE", "UTC")
	t.Setenv("DEFAULT_PLACE_ID", "zg")
	t.Setenv("DEFAULT_PLACE_LATITUDE", "45.81")
	t.Setenv("DEFAULT_PLACE_LONGITUDE", "15.98")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(cfg.Providers, []string{"openmeteo"}) || cfg.ProviderRPS != 0.5 {
		t.Fatalf("unexpected provider config: %v %v", cfg.Providers, cfg.ProviderRPS)
	}
	if cfg.RefreshInterval != 5*time.Minute || cfg.TimeZone != time.UTC {
		t.Fatalf("unexpected refresh config: %v %v", cfg.RefreshInterval, cfg.TimeZone)
	}
	if cfg.DefaultPlace.ID != "zg" || cfg.DefaultPlace.Longitude != 15.98 {
		t.Fatalf("unexpected default place %+v", cfg.DefaultPlace)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"PROVIDERS":              "metnorway,yr",
		"HTTP_TIMEOUT":           "soon",
		"PROVIDER_RPS":           "many",
		"GEOCODER":               "bing",
		"TIME_ZONE":              "Mars/Olympus",
		"DEFAULT_PLACE_LATITUDE": "123",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected an error for %s=%s", key, value)
			}
		})
	}
}

func TestGoogleGeocoderNeedsKey(t *testing.T) {
	t.Setenv("GEOCODER", GeocoderGoogle)
	t.Setenv("GOOGLE_GEOCODER_API_KEY", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected an error without api key")
	}
	t.Setenv("GOOGLE_GEOCODER_API_KEY", "key")
	if _, err := Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
