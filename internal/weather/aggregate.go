package weather

import (
	"errors"
	"fmt"
	"time"

	"github.com/i474232898/prognoza/internal/units"
)

// ErrInvalidArgument is returned when a forecast is built from no data.
var ErrInvalidArgument = errors.New("invalid argument")

const (
	// When today has this many hours or fewer left, the start of tomorrow
	// is shown as part of today.
	todayOverflowThreshold = 5
	todayOverflowHours     = 7
)

// Current is the condition at the first sample of a forecast.
type Current struct {
	Time          time.Time
	Temperature   units.Temperature
	FeelsLike     units.Temperature
	Wind          Wind
	Description   SymbolCode
	Mood          Mood
	Precipitation units.Length
}

type HourlyDatum struct {
	Time          time.Time
	Description   SymbolCode
	Temperature   units.Temperature
	Precipitation units.Length
	Wind          Wind
}

// Today is the rest of the current day after the current hour.
type Today struct {
	HighTemperature units.Temperature
	LowTemperature  units.Temperature
	Hourly          []HourlyDatum
}

type Day struct {
	Date               time.Time
	HighTemperature    units.Temperature
	LowTemperature     units.Temperature
	TotalPrecipitation units.Length
	Hours              []HourlyDatum
}

// Forecast is the current/today/coming view of a series of observations.
// Today is nil when no hours are left for it, Coming is nil when the data
// does not reach past the first day.
type Forecast struct {
	Current Current
	Today   *Today
	Coming  []Day
}

// BuildForecast partitions chronologically ordered observations by calendar
// date in loc (time.Local when nil). The first observation is the current
// one. Today holds the remaining hours of the first date; when at most five
// remain, the first seven hours of the next date are appended. Those hours
// stay part of the first coming day as well.
func BuildForecast(obs []Observation, loc *time.Location) (Forecast, error) {
	if len(obs) == 0 {
		return Forecast{}, fmt.Errorf("%w: forecast data must not be empty", ErrInvalidArgument)
	}
	loc = orLocal(loc)

	days := groupByDay(obs, func(o Observation) time.Time { return o.Start }, loc)
	forecast := Forecast{Current: newCurrent(obs[0], loc)}

	today := append([]Observation(nil), days[0][1:]...)
	if len(today) <= todayOverflowThreshold && len(days) > 1 {
		today = append(today, days[1][:min(todayOverflowHours, len(days[1]))]...)
	}
	if len(today) > 0 {
		t := newToday(today, loc)
		forecast.Today = &t
	}

	for _, day := range days[1:] {
		forecast.Coming = append(forecast.Coming, newDay(day, loc))
	}
	return forecast, nil
}

func orLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}

type dateKey struct {
	year  int
	month time.Month
	day   int
}

// groupByDay buckets items by the calendar date of their time in loc. Buckets
// are ordered by first appearance and keep item order.
func groupByDay[T any](items []T, at func(T) time.Time, loc *time.Location) [][]T {
	var days [][]T
	index := make(map[dateKey]int)
	for _, item := range items {
		y, m, d := at(item).In(loc).Date()
		key := dateKey{y, m, d}
		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			days = append(days, nil)
		}
		days[i] = append(days[i], item)
	}
	return days
}

func newCurrent(o Observation, loc *time.Location) Current {
	return Current{
		Time:          o.Start.In(loc),
		Temperature:   o.Temperature,
		FeelsLike:     o.FeelsLike(),
		Wind:          o.Wind,
		Description:   o.Description,
		Mood:          o.Mood(),
		Precipitation: o.Precipitation,
	}
}

func newToday(obs []Observation, loc *time.Location) Today {
	high, low := temperatureRange(obs)
	return Today{
		HighTemperature: high,
		LowTemperature:  low,
		Hourly:          hourly(obs, loc),
	}
}

func newDay(obs []Observation, loc *time.Location) Day {
	high, low := temperatureRange(obs)
	var total float64
	for _, o := range obs {
		total += o.Precipitation.Millimetre()
	}
	return Day{
		Date:               obs[0].Start.In(loc),
		HighTemperature:    high,
		LowTemperature:     low,
		TotalPrecipitation: units.NewLength(total, units.Millimetre),
		Hours:              hourly(obs, loc),
	}
}

// temperatureRange expects at least one observation.
func temperatureRange(obs []Observation) (high, low units.Temperature) {
	high, low = obs[0].Temperature, obs[0].Temperature
	for _, o := range obs[1:] {
		if o.Temperature.Celsius() > high.Celsius() {
			high = o.Temperature
		}
		if o.Temperature.Celsius() < low.Celsius() {
			low = o.Temperature
		}
	}
	return high, low
}

func hourly(obs []Observation, loc *time.Location) []HourlyDatum {
	hours := make([]HourlyDatum, 0, len(obs))
	for _, o := range obs {
		hours = append(hours, HourlyDatum{
			Time:          o.Start.In(loc),
			Description:   o.Description,
			Temperature:   o.Temperature,
			Precipitation: o.Precipitation,
			Wind:          o.Wind,
		})
	}
	return hours
}
