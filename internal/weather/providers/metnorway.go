package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/i474232898/prognoza/internal/weather"
	"github.com/sony/gobreaker"
)

const metNorwayBaseURL = "https://api.met.no/weatherapi/locationforecast/2.0"

// MetNorwayProvider implements the weather.Provider interface for the MET
// Norway locationforecast API. MET Norway requires every client to identify
// itself with a User-Agent.
type MetNorwayProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewMetNorwayProvider(client *http.Client, opts Options) *MetNorwayProvider {
	if opts.BaseURL == "" {
		opts.BaseURL = metNorwayBaseURL
	}
	return &MetNorwayProvider{
		name:    "metnorway",
		baseURL: opts.BaseURL,
		httpCfg: opts.httpConfig(client),
		circuit: newCircuitBreaker("metnorway"),
	}
}

func (p *MetNorwayProvider) Name() string {
	return p.name
}

type metDetails struct {
	AirPressureAtSeaLevel *float64 `json:"air_pressure_at_sea_level"`
	AirTemperature        *float64 `json:"air_temperature"`
	AirTemperatureMax     *float64 `json:"air_temperature_max"`
	AirTemperatureMin     *float64 `json:"air_temperature_min"`
	PrecipitationAmount   *float64 `json:"precipitation_amount"`
	RelativeHumidity      *float64 `json:"relative_humidity"`
	WindFromDirection     *float64 `json:"wind_from_direction"`
	WindSpeed             *float64 `json:"wind_speed"`
}

type metPeriod struct {
	Summary struct {
		SymbolCode string `json:"symbol_code"`
	} `json:"summary"`
	Details metDetails `json:"details"`
}

type metResponse struct {
	Properties struct {
		Timeseries []struct {
			Time time.Time `json:"time"`
			Data struct {
				Instant struct {
					Details metDetails `json:"details"`
				} `json:"instant"`
				Next1Hours *metPeriod `json:"next_1_hours"`
				Next6Hours *metPeriod `json:"next_6_hours"`
			} `json:"data"`
		} `json:"timeseries"`
	} `json:"properties"`
}

func (p *MetNorwayProvider) FetchForecast(ctx context.Context, place weather.Place) (weather.ProviderForecast, error) {
	if p.httpCfg.UserAgent == "" {
		return weather.ProviderForecast{}, fmt.Errorf("%s requires a user agent", p.name)
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		// More than four decimals are refused by the API.
		values.Set("lat", fmt.Sprintf("%.4f", place.Latitude))
		values.Set("lon", fmt.Sprintf("%.4f", place.Longitude))

		u := fmt.Sprintf("%s/complete?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.ProviderForecast{}, err
	}

	var expires time.Time
	if h := resp.Header.Get("Expires"); h != "" {
		if t, err := http.ParseTime(h); err == nil {
			expires = t.UTC()
		}
	}

	var payload metResponse
	if err := decodeJSON(resp, &payload); err != nil {
		return weather.ProviderForecast{}, err
	}

	spans := make(weather.TimeSpans, 0, len(payload.Properties.Timeseries))
	for _, ts := range payload.Properties.Timeseries {
		instant := ts.Data.Instant.Details
		span := weather.TimeSpan{
			Start:             ts.Time.UTC(),
			Temperature:       instant.AirTemperature,
			WindSpeed:         instant.WindSpeed,
			WindFromDirection: instant.WindFromDirection,
			Humidity:          instant.RelativeHumidity,
			Pressure:          instant.AirPressureAtSeaLevel,
		}

		switch {
		case ts.Data.Next1Hours != nil:
			span.End = span.Start.Add(time.Hour)
			span.TemperatureMax = instant.AirTemperature
			span.TemperatureMin = instant.AirTemperature
			span.Precipitation = ts.Data.Next1Hours.Details.PrecipitationAmount
			span.SymbolCode = weather.SymbolCode(ts.Data.Next1Hours.Summary.SymbolCode)
		case ts.Data.Next6Hours != nil:
			span.End = span.Start.Add(6 * time.Hour)
			span.TemperatureMax = ts.Data.Next6Hours.Details.AirTemperatureMax
			span.TemperatureMin = ts.Data.Next6Hours.Details.AirTemperatureMin
			span.Precipitation = ts.Data.Next6Hours.Details.PrecipitationAmount
			span.SymbolCode = weather.SymbolCode(ts.Data.Next6Hours.Summary.SymbolCode)
		default:
			span.End = span.Start.Add(6 * time.Hour)
		}
		spans = append(spans, span)
	}

	return weather.ProviderForecast{Spans: spans, ExpiresAt: expires}, nil
}
