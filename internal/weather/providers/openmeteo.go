package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/i474232898/prognoza/internal/common"
	"github.com/i474232898/prognoza/internal/weather"
	"github.com/sony/gobreaker"
)

const openMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"

// OpenMeteoProvider implements the weather.Provider interface for Open-Meteo.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client, opts Options) *OpenMeteoProvider {
	if opts.BaseURL == "" {
		opts.BaseURL = openMeteoBaseURL
	}
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: opts.BaseURL,
		httpCfg: opts.httpConfig(client),
		circuit: newCircuitBreaker("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

type openMeteoResponse struct {
	Hourly struct {
		Time             []int64    `json:"time"`
		Temperature      []*float64 `json:"temperature_2m"`
		RelativeHumidity []*float64 `json:"relative_humidity_2m"`
		Precipitation    []*float64 `json:"precipitation"`
		WeatherCode      []*int     `json:"weather_code"`
		PressureMSL      []*float64 `json:"pressure_msl"`
		WindSpeed        []*float64 `json:"wind_speed_10m"`
		WindDirection    []*float64 `json:"wind_direction_10m"`
		IsDay            []*int     `json:"is_day"`
	} `json:"hourly"`
}

func (p *OpenMeteoProvider) FetchForecast(ctx context.Context, place weather.Place) (weather.ProviderForecast, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", place.Latitude))
		values.Set("longitude", fmt.Sprintf("%f", place.Longitude))
		values.Set("hourly", "temperature_2m,relative_humidity_2m,precipitation,weather_code,pressure_msl,wind_speed_10m,wind_direction_10m,is_day")
		values.Set("wind_speed_unit", "ms")
		values.Set("timeformat", "unixtime")
		values.Set("forecast_days", "10")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.ProviderForecast{}, err
	}

	var payload openMeteoResponse
	if err := decodeJSON(resp, &payload); err != nil {
		return weather.ProviderForecast{}, err
	}

	h := payload.Hourly
	spans := make(weather.TimeSpans, 0, len(h.Time))
	for i, unix := range h.Time {
		start := time.Unix(unix, 0).UTC()
		span := weather.TimeSpan{
			Start:             start,
			End:               start.Add(time.Hour),
			Temperature:       at(h.Temperature, i),
			Precipitation:     at(h.Precipitation, i),
			WindSpeed:         at(h.WindSpeed, i),
			WindFromDirection: at(h.WindDirection, i),
			Humidity:          at(h.RelativeHumidity, i),
			Pressure:          at(h.PressureMSL, i),
		}
		span.TemperatureMax = span.Temperature
		span.TemperatureMin = span.Temperature
		if code := at(h.WeatherCode, i); code != nil {
			isDay := at(h.IsDay, i)
			span.SymbolCode = symbolForWMO(*code, isDay == nil || *isDay == 1)
		}
		spans = append(spans, span)
	}

	// Open-Meteo gives no caching advice; the service applies its default.
	return weather.ProviderForecast{Spans: spans}, nil
}

// at returns values[i], or nil when the series is short.
func at[T any](values []*T, i int) *T {
	if i < len(values) {
		return values[i]
	}
	return nil
}

// wmoSymbols maps WMO weather interpretation codes to MET Norway symbols.
var wmoSymbols = map[int]string{
	0:  "clearsky",
	1:  "fair",
	2:  "partlycloudy",
	3:  "cloudy",
	45: "fog",
	48: "fog",
	51: "lightrain",
	53: "lightrain",
	55: "rain",
	56: "lightsleet",
	57: "sleet",
	61: "lightrain",
	63: "rain",
	65: "heavyrain",
	66: "lightsleet",
	67: "heavysleet",
	71: "lightsnow",
	73: "snow",
	75: "heavysnow",
	77: "lightsnow",
	80: "lightrainshowers",
	81: "rainshowers",
	82: "heavyrainshowers",
	85: "lightsnowshowers",
	86: "heavysnowshowers",
	95: "rainandthunder",
	96: "rainshowersandthunder",
	99: "heavyrainshowersandthunder",
}

func symbolForWMO(code int, isDay bool) weather.SymbolCode {
	base, ok := wmoSymbols[code]
	if !ok {
		return ""
	}
	// Only clear, fair, partly cloudy and showers have day/night variants.
	if !common.HasAny(base, "clearsky", "fair", "partlycloudy", "showers") {
		return weather.SymbolCode(base)
	}
	if isDay {
		return weather.SymbolCode(base + "_day")
	}
	return weather.SymbolCode(base + "_night")
}
