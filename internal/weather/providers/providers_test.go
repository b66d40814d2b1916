package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/i474232898/prognoza/internal/weather"
)

var testPlace = weather.Place{ID: "259515203", Name: "Osijek", Latitude: 45.55111, Longitude: 18.69389}

var fastBackoff = BackoffConfig{MaxRetries: 2, InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond}

const metPayload = `{
  "type": "Feature",
  "properties": {
    "timeseries": [
      {
        "time": "2024-06-21T10:00:00Z",
        "data": {
          "instant": {"details": {"air_pressure_at_sea_level": 1012.3, "air_temperature": 24.1, "relative_humidity": 55.2, "wind_from_direction": 180.5, "wind_speed": 3.2}},
          "next_1_hours": {"summary": {"symbol_code": "partlycloudy_day"}, "details": {"precipitation_amount": 0.3}},
          "next_6_hours": {"summary": {"symbol_code": "rain"}, "details": {"air_temperature_max": 27, "air_temperature_min": 21, "precipitation_amount": 4.2}}
        }
      },
      {
        "time": "2024-06-24T12:00:00Z",
        "data": {
          "instant": {"details": {"air_temperature": 19.5, "wind_speed": 6.1}},
          "next_6_hours": {"summary": {"symbol_code": "heavyrain"}, "details": {"air_temperature_max": 22, "air_temperature_min": 17.5, "precipitation_amount": 12.9}}
        }
      },
      {
        "time": "2024-07-01T00:00:00Z",
        "data": {"instant": {"details": {"air_temperature": 15}}}
      }
    ]
  }
}`

func TestMetNorwayFetchForecast(t *testing.T) {
	expires := time.Date(2024, 6, 21, 10, 42, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/complete" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("lat"); got != "45.5511" {
			t.Errorf("expected lat truncated to 4 decimals, got %s", got)
		}
		if got := r.Header.Get("User-Agent"); got != "prognoza-test/1.0" {
			t.Errorf("expected user agent, got %q", got)
		}
		w.Header().Set("Expires", expires.Format(http.TimeFormat))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(metPayload))
	}))
	defer srv.Close()

	p := NewMetNorwayProvider(srv.Client(), Options{BaseURL: srv.URL, UserAgent: "prognoza-test/1.0", Backoff: fastBackoff})
	forecast, err := p.FetchForecast(context.Background(), testPlace)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !forecast.ExpiresAt.Equal(expires) {
		t.Fatalf("expected expiry %s, got %s", expires, forecast.ExpiresAt)
	}
	if len(forecast.Spans) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(forecast.Spans))
	}

	hourly := forecast.Spans[0]
	if hourly.End.Sub(hourly.Start) != time.Hour {
		t.Fatalf("expected a one hour span, got %s", hourly.End.Sub(hourly.Start))
	}
	if hourly.SymbolCode != "partlycloudy_day" || *hourly.Precipitation != 0.3 {
		t.Fatalf("expected next hour summary, got %s / %v", hourly.SymbolCode, *hourly.Precipitation)
	}
	if *hourly.TemperatureMax != 24.1 || *hourly.Pressure != 1012.3 || *hourly.WindFromDirection != 180.5 {
		t.Fatalf("unexpected instant values: %+v", hourly)
	}

	sixHourly := forecast.Spans[1]
	if sixHourly.End.Sub(sixHourly.Start) != 6*time.Hour {
		t.Fatalf("expected a six hour span, got %s", sixHourly.End.Sub(sixHourly.Start))
	}
	if *sixHourly.TemperatureMax != 22 || *sixHourly.TemperatureMin != 17.5 || *sixHourly.Precipitation != 12.9 {
		t.Fatalf("unexpected six hour values: %+v", sixHourly)
	}
	if sixHourly.Humidity != nil {
		t.Fatalf("expected missing humidity to stay nil")
	}

	last := forecast.Spans[2]
	if last.SymbolCode != "" || last.Precipitation != nil || *last.Temperature != 15 {
		t.Fatalf("unexpected instant-only span: %+v", last)
	}
}

func TestMetNorwayRequiresUserAgent(t *testing.T) {
	p := NewMetNorwayProvider(http.DefaultClient, Options{BaseURL: "http://127.0.0.1:0"})
	if _, err := p.FetchForecast(context.Background(), testPlace); err == nil {
		t.Fatalf("expected an error without user agent")
	}
}

func TestProviderErrors(t *testing.T) {
	cases := []struct {
		name      string
		status    int
		want      error
		wantCalls int32
	}{
		{"server error is retried", http.StatusServiceUnavailable, weather.ErrProviderUnavailable, 3},
		{"throttled", http.StatusTooManyRequests, weather.ErrThrottled, 3},
		{"rejected is not retried", http.StatusNotFound, weather.ErrProviderRejected, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			p := NewMetNorwayProvider(srv.Client(), Options{BaseURL: srv.URL, UserAgent: "prognoza-test/1.0", Backoff: fastBackoff})
			_, err := p.FetchForecast(context.Background(), testPlace)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if got := atomic.LoadInt32(&calls); got != tc.wantCalls {
				t.Fatalf("expected %d calls, got %d", tc.wantCalls, got)
			}
		})
	}
}

func TestCircuitBreakerOpens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(srv.Client(), Options{BaseURL: srv.URL, Backoff: BackoffConfig{MaxRetries: 0, InitialInterval: time.Millisecond}})
	var err error
	for i := 0; i < 7; i++ {
		_, err = p.FetchForecast(context.Background(), testPlace)
	}
	if !errors.Is(err, weather.ErrThrottled) {
		t.Fatalf("expected open circuit to report throttling, got %v", err)
	}
}

const openMeteoPayload = `{
  "latitude": 45.56,
  "longitude": 18.68,
  "hourly": {
    "time": [1718964000, 1718967600, 1719003600],
    "temperature_2m": [24.1, null, 16.0],
    "relative_humidity_2m": [55, 60, 80],
    "precipitation": [0.0, 0.4, 1.2],
    "weather_code": [2, 80, 3],
    "pressure_msl": [1012.3, 1012.0, 1011.1],
    "wind_speed_10m": [3.2, 4.0, 1.1],
    "wind_direction_10m": [180, 190, 200],
    "is_day": [1, 1, 0]
  }
}`

func TestOpenMeteoFetchForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("wind_speed_unit") != "ms" || q.Get("timeformat") != "unixtime" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if !strings.Contains(q.Get("hourly"), "weather_code") {
			t.Errorf("expected weather codes to be requested")
		}
		w.Write([]byte(openMeteoPayload))
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(srv.Client(), Options{BaseURL: srv.URL, RequestsPerSecond: 100, Backoff: fastBackoff})
	forecast, err := p.FetchForecast(context.Background(), testPlace)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !forecast.ExpiresAt.IsZero() {
		t.Fatalf("expected no expiry advice")
	}
	if len(forecast.Spans) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(forecast.Spans))
	}

	first := forecast.Spans[0]
	if !first.Start.Equal(time.Unix(1718964000, 0)) || first.End.Sub(first.Start) != time.Hour {
		t.Fatalf("unexpected span times %s - %s", first.Start, first.End)
	}
	if first.SymbolCode != "partlycloudy_day" || *first.Temperature != 24.1 || *first.WindSpeed != 3.2 {
		t.Fatalf("unexpected first span: %+v", first)
	}
	if forecast.Spans[1].Temperature != nil || forecast.Spans[1].SymbolCode != "lightrainshowers_day" {
		t.Fatalf("unexpected second span: %+v", forecast.Spans[1])
	}
	if forecast.Spans[2].SymbolCode != "cloudy" {
		t.Fatalf("expected cloudy without variant, got %s", forecast.Spans[2].SymbolCode)
	}
}

func TestSymbolForWMO(t *testing.T) {
	cases := []struct {
		code  int
		isDay bool
		want  weather.SymbolCode
	}{
		{0, true, "clearsky_day"},
		{0, false, "clearsky_night"},
		{45, false, "fog"},
		{65, true, "heavyrain"},
		{86, false, "heavysnowshowers_night"},
		{99, true, "heavyrainshowersandthunder_day"},
		{42, true, ""},
	}
	icons := weather.DefaultIcons()
	for _, tc := range cases {
		got := symbolForWMO(tc.code, tc.isDay)
		if got != tc.want {
			t.Fatalf("%d/%v: expected %q, got %q", tc.code, tc.isDay, tc.want, got)
		}
		if got != "" {
			if _, ok := icons.Lookup(got); !ok {
				t.Fatalf("%q has no icon", got)
			}
		}
	}
}
