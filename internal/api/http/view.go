package httpapi

import (
	"time"

	"github.com/i474232898/prognoza/internal/units"
	"github.com/i474232898/prognoza/internal/weather"
)

// Response statuses of the forecast endpoints.
const (
	statusSuccess = "success"
	statusCached  = "cached"
	statusEmpty   = "empty"
)

type metaView struct {
	Provider  string            `json:"provider"`
	FetchedAt time.Time         `json:"fetchedAt"`
	ExpiresAt time.Time         `json:"expiresAt"`
	Units     units.Preferences `json:"units"`
}

type windView struct {
	Speed     string                 `json:"speed"`
	Direction units.CompassDirection `json:"direction"`
	Degrees   float64                `json:"degrees"`
}

type conditionView struct {
	Code        weather.SymbolCode `json:"code,omitempty"`
	Description string             `json:"description,omitempty"`
	Mood        weather.Mood       `json:"mood"`
}

type currentView struct {
	Time          time.Time     `json:"time"`
	Temperature   string        `json:"temperature"`
	FeelsLike     string        `json:"feelsLike"`
	Wind          windView      `json:"wind"`
	Precipitation string        `json:"precipitation"`
	Condition     conditionView `json:"condition"`
}

type hourView struct {
	Time          time.Time     `json:"time"`
	Temperature   string        `json:"temperature"`
	Precipitation string        `json:"precipitation,omitempty"`
	Wind          windView      `json:"wind"`
	Condition     conditionView `json:"condition"`
}

type todayView struct {
	High  string     `json:"high"`
	Low   string     `json:"low"`
	Hours []hourView `json:"hours"`
}

type dayView struct {
	Date          string     `json:"date"`
	High          string     `json:"high"`
	Low           string     `json:"low"`
	Precipitation string     `json:"precipitation"`
	Hours         []hourView `json:"hours"`
}

type forecastView struct {
	Current currentView `json:"current"`
	Today   *todayView  `json:"today,omitempty"`
	Coming  []dayView   `json:"coming"`
}

type forecastResponse struct {
	Status   string           `json:"status"`
	Reason   weather.Reason   `json:"reason,omitempty"`
	Message  string           `json:"message,omitempty"`
	Place    weather.Place    `json:"place"`
	Meta     *metaView        `json:"meta,omitempty"`
	Forecast *forecastView    `json:"forecast,omitempty"`
	Days     []daySummaryView `json:"days,omitempty"`

	validUntil time.Time
}

type daySummaryView struct {
	Date          string        `json:"date"`
	Icon          *weather.Icon `json:"icon,omitempty"`
	IsMostly      bool          `json:"isMostly"`
	High          string        `json:"high,omitempty"`
	Low           string        `json:"low,omitempty"`
	Precipitation string        `json:"precipitation"`
	MaxWind       *windView     `json:"maxWind,omitempty"`
	MaxHumidity   string        `json:"maxHumidity,omitempty"`
	MaxPressure   string        `json:"maxPressure,omitempty"`
}

type unitView struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// renderer formats forecast values in the selected units.
type renderer struct {
	prefs units.Preferences
	icons weather.IconTable
}

func (r renderer) temperature(t units.Temperature) string {
	return units.FormatTemperature(t, r.prefs.Temperature)
}

func (r renderer) precipitation(l units.Length) string {
	return units.FormatLength(l, r.prefs.Precipitation)
}

func (r renderer) wind(w weather.Wind) windView {
	return windView{
		Speed:     units.FormatSpeed(w.Speed, r.prefs.Wind),
		Direction: w.FromDirection.CompassDirection(),
		Degrees:   w.FromDirection.Degree(),
	}
}

func (r renderer) condition(code weather.SymbolCode) conditionView {
	v := conditionView{Code: code, Mood: weather.MoodOf(code)}
	if icon, ok := r.icons.Lookup(code); ok {
		v.Description = icon.Description
	}
	return v
}

func (r renderer) hours(hours []weather.HourlyDatum) []hourView {
	out := make([]hourView, 0, len(hours))
	for _, h := range hours {
		v := hourView{
			Time:        h.Time,
			Temperature: r.temperature(h.Temperature),
			Wind:        r.wind(h.Wind),
			Condition:   r.condition(h.Description),
		}
		// Trace amounts are not worth showing per hour.
		if h.Precipitation.Significant() {
			v.Precipitation = r.precipitation(h.Precipitation)
		}
		out = append(out, v)
	}
	return out
}

func (r renderer) forecast(f weather.Forecast) *forecastView {
	v := &forecastView{
		Current: currentView{
			Time:          f.Current.Time,
			Temperature:   r.temperature(f.Current.Temperature),
			FeelsLike:     r.temperature(f.Current.FeelsLike),
			Wind:          r.wind(f.Current.Wind),
			Precipitation: r.precipitation(f.Current.Precipitation),
			Condition:     r.condition(f.Current.Description),
		},
		Coming: []dayView{},
	}
	if f.Today != nil {
		v.Today = &todayView{
			High:  r.temperature(f.Today.HighTemperature),
			Low:   r.temperature(f.Today.LowTemperature),
			Hours: r.hours(f.Today.Hourly),
		}
	}
	for _, d := range f.Coming {
		v.Coming = append(v.Coming, dayView{
			Date:          d.Date.Format(time.DateOnly),
			High:          r.temperature(d.HighTemperature),
			Low:           r.temperature(d.LowTemperature),
			Precipitation: r.precipitation(d.TotalPrecipitation),
			Hours:         r.hours(d.Hours),
		})
	}
	return v
}

func (r renderer) summaries(days []weather.DaySummary) []daySummaryView {
	out := make([]daySummaryView, 0, len(days))
	for _, d := range days {
		v := daySummaryView{
			Date:          d.Date.Format(time.DateOnly),
			Precipitation: r.precipitation(d.TotalPrecipitation),
		}
		if d.Icon != nil {
			icon := d.Icon.Icon
			v.Icon = &icon
			v.IsMostly = d.Icon.IsMostly
		}
		if d.HighTemperature != nil {
			v.High = r.temperature(*d.HighTemperature)
		}
		if d.LowTemperature != nil {
			v.Low = r.temperature(*d.LowTemperature)
		}
		if d.MaxWindSpeed != nil {
			wind := weather.Wind{Speed: *d.MaxWindSpeed}
			if d.MaxWindFrom != nil {
				wind.FromDirection = *d.MaxWindFrom
			}
			w := r.wind(wind)
			v.MaxWind = &w
		}
		if d.MaxHumidity != nil {
			v.MaxHumidity = units.FormatPercentage(*d.MaxHumidity)
		}
		if d.MaxPressure != nil {
			v.MaxPressure = units.FormatPressure(*d.MaxPressure, r.prefs.Pressure)
		}
		out = append(out, v)
	}
	return out
}

func newMetaView(m weather.Meta) *metaView {
	return &metaView{
		Provider:  m.Provider,
		FetchedAt: m.FetchedAt,
		ExpiresAt: m.ExpiresAt,
		Units:     m.Units,
	}
}

func unitViews[U interface {
	~string
	Symbol() string
}](all []U) []unitView {
	out := make([]unitView, 0, len(all))
	for _, u := range all {
		out = append(out, unitView{Name: string(u), Symbol: u.Symbol()})
	}
	return out
}
