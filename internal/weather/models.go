package weather

import (
	"time"

	"github.com/i474232898/prognoza/internal/units"
)

// Place represents a location forecasts are requested for.
type Place struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// TimeZone is an IANA zone name. Empty means the service default.
	TimeZone string `json:"timeZone,omitempty"`
}

// Location returns the place's time zone, or def when the place has none or
// it cannot be loaded.
func (p Place) Location(def *time.Location) *time.Location {
	if p.TimeZone != "" {
		if loc, err := time.LoadLocation(p.TimeZone); err == nil {
			return loc
		}
	}
	if def == nil {
		return time.Local
	}
	return def
}

// TimeSpan is one raw forecast sample for a place, as a provider delivered it
// and as it is cached. Any measurement may be missing. Values are in
// canonical units: °C, mm, m/s, degrees, percent and hPa at sea level.
type TimeSpan struct {
	PlaceID string    `json:"placeId"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`

	Temperature       *float64 `json:"temperature,omitempty"`
	TemperatureMax    *float64 `json:"temperatureMax,omitempty"`
	TemperatureMin    *float64 `json:"temperatureMin,omitempty"`
	Precipitation     *float64 `json:"precipitation,omitempty"`
	WindSpeed         *float64 `json:"windSpeed,omitempty"`
	WindFromDirection *float64 `json:"windFromDirection,omitempty"`
	Humidity          *float64 `json:"humidity,omitempty"`
	Pressure          *float64 `json:"pressure,omitempty"`

	SymbolCode SymbolCode `json:"symbolCode,omitempty"`
}

// TimeSpans is a chronologically ordered series of samples.
type TimeSpans []TimeSpan

// Float64 returns a pointer to v, for filling optional measurements.
func Float64(v float64) *float64 {
	return &v
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// Observation converts the sample into a typed Observation. Samples without
// an instant temperature cannot be presented and yield false; other missing
// measurements become zero.
func (s TimeSpan) Observation() (Observation, bool) {
	if s.Temperature == nil {
		return Observation{}, false
	}
	return Observation{
		Start:         s.Start,
		End:           s.End,
		Temperature:   units.NewTemperature(*s.Temperature, units.Celsius),
		Precipitation: units.NewLength(valueOr(s.Precipitation, 0), units.Millimetre),
		Wind: Wind{
			Speed:         units.NewSpeed(valueOr(s.WindSpeed, 0), units.MetrePerSecond),
			FromDirection: units.NewAngle(valueOr(s.WindFromDirection, 0), units.Degree),
		},
		Pressure:    units.NewPressure(valueOr(s.Pressure, 0), units.Hectopascal),
		Humidity:    units.NewPercentage(valueOr(s.Humidity, 0)),
		Description: s.SymbolCode,
	}, true
}

// Observations converts every presentable sample, keeping order.
func (s TimeSpans) Observations() []Observation {
	obs := make([]Observation, 0, len(s))
	for _, span := range s {
		if o, ok := span.Observation(); ok {
			obs = append(obs, o)
		}
	}
	return obs
}

// From drops the samples that ended at or before t, so the result starts at
// the sample covering t.
func (s TimeSpans) From(t time.Time) TimeSpans {
	var out TimeSpans
	for _, span := range s {
		if span.End.After(t) {
			out = append(out, span)
		}
	}
	return out
}

// Wind is wind speed together with the direction it blows from.
type Wind struct {
	Speed         units.Speed
	FromDirection units.Angle
}

// Observation is a typed forecast sample. Feels-like temperature and mood
// are derived from the other fields on every call.
type Observation struct {
	Start         time.Time
	End           time.Time
	Temperature   units.Temperature
	Precipitation units.Length
	Wind          Wind
	Pressure      units.Pressure
	Humidity      units.Percentage
	Description   SymbolCode
}

func (o Observation) FeelsLike() units.Temperature {
	return FeelsLike(o.Temperature, o.Wind.Speed, o.Humidity)
}

func (o Observation) Mood() Mood {
	return MoodOf(o.Description)
}
