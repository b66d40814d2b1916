package weather

import (
	"math"
	"time"

	"github.com/i474232898/prognoza/internal/units"
)

// maxOf returns the largest non-nil value of field, and false when every
// sample lacks it.
func (s TimeSpans) maxOf(field func(TimeSpan) *float64) (float64, bool) {
	best, found := math.Inf(-1), false
	for _, span := range s {
		if v := field(span); v != nil && *v > best {
			best, found = *v, true
		}
	}
	return best, found
}

func (s TimeSpans) minOf(field func(TimeSpan) *float64) (float64, bool) {
	best, found := math.Inf(1), false
	for _, span := range s {
		if v := field(span); v != nil && *v < best {
			best, found = *v, true
		}
	}
	return best, found
}

// HighestTemperature returns the highest span maximum in °C. Instant
// temperatures are not considered.
func (s TimeSpans) HighestTemperature() (float64, bool) {
	return s.maxOf(func(t TimeSpan) *float64 { return t.TemperatureMax })
}

// LowestTemperature returns the lowest span minimum in °C.
func (s TimeSpans) LowestTemperature() (float64, bool) {
	return s.minOf(func(t TimeSpan) *float64 { return t.TemperatureMin })
}

// TotalPrecipitation sums precipitation in mm, counting missing amounts as 0.
func (s TimeSpans) TotalPrecipitation() float64 {
	var total float64
	for _, span := range s {
		total += valueOr(span.Precipitation, 0)
	}
	return total
}

func (s TimeSpans) HighestHumidity() (float64, bool) {
	return s.maxOf(func(t TimeSpan) *float64 { return t.Humidity })
}

func (s TimeSpans) HighestPressure() (float64, bool) {
	return s.maxOf(func(t TimeSpan) *float64 { return t.Pressure })
}

// HourWithMaxWindSpeed returns the first span with the greatest wind speed.
// Missing speeds lose against any known speed. It is false only for an
// empty series.
func (s TimeSpans) HourWithMaxWindSpeed() (TimeSpan, bool) {
	if len(s) == 0 {
		return TimeSpan{}, false
	}
	best, bestSpeed := 0, valueOr(s[0].WindSpeed, math.Inf(-1))
	for i := 1; i < len(s); i++ {
		if v := valueOr(s[i].WindSpeed, math.Inf(-1)); v > bestSpeed {
			best, bestSpeed = i, v
		}
	}
	return s[best], true
}

// RepresentativeIcon is the icon summarizing a series of samples.
type RepresentativeIcon struct {
	Icon Icon `json:"icon"`

	// IsMostly is set when some eligible samples had a different condition.
	IsMostly bool `json:"isMostly"`
}

// RepresentativeIcon picks the most common condition of the daytime samples,
// or of the night-time samples when none fall in daytime. Ties go to the
// condition seen first. It is false when the eligible samples carry no
// condition or the winner has no icon.
func (s TimeSpans) RepresentativeIcon(place Place, icons IconTable) (RepresentativeIcon, bool) {
	var day, night []SymbolCode
	var haveDay bool
	for _, span := range s {
		isDay := IsDaytime(span.Start, place.Latitude, place.Longitude)
		haveDay = haveDay || isDay
		if span.SymbolCode == "" {
			continue
		}
		if isDay {
			day = append(day, span.SymbolCode)
		} else {
			night = append(night, span.SymbolCode)
		}
	}

	eligible := night
	if haveDay {
		eligible = day
	}
	code, ok := mostCommon(eligible)
	if !ok {
		return RepresentativeIcon{}, false
	}
	icon, ok := icons.Lookup(code)
	if !ok {
		return RepresentativeIcon{}, false
	}

	rep := RepresentativeIcon{Icon: icon}
	for _, c := range eligible {
		if c != code {
			rep.IsMostly = true
			break
		}
	}
	return rep, true
}

func mostCommon(codes []SymbolCode) (SymbolCode, bool) {
	counts := make(map[SymbolCode]int, len(codes))
	for _, c := range codes {
		counts[c]++
	}

	var best SymbolCode
	bestCount := 0
	for _, c := range codes {
		if counts[c] > bestCount {
			best, bestCount = c, counts[c]
		}
	}
	return best, bestCount > 0
}

// DaySummary is the outlook for one calendar day. Pointer fields are nil when
// no sample of the day carried the measurement.
type DaySummary struct {
	Date               time.Time
	Icon               *RepresentativeIcon
	HighTemperature    *units.Temperature
	LowTemperature     *units.Temperature
	TotalPrecipitation units.Length
	MaxWindSpeed       *units.Speed
	MaxWindFrom        *units.Angle
	MaxHumidity        *units.Percentage
	MaxPressure        *units.Pressure
}

// Summarize computes the summary of one day's samples. It is false for an
// empty series.
func Summarize(spans TimeSpans, place Place, icons IconTable) (DaySummary, bool) {
	if len(spans) == 0 {
		return DaySummary{}, false
	}

	d := DaySummary{
		Date:               spans[0].Start,
		TotalPrecipitation: units.NewLength(spans.TotalPrecipitation(), units.Millimetre),
	}
	if icon, ok := spans.RepresentativeIcon(place, icons); ok {
		d.Icon = &icon
	}
	if v, ok := spans.HighestTemperature(); ok {
		t := units.NewTemperature(v, units.Celsius)
		d.HighTemperature = &t
	}
	if v, ok := spans.LowestTemperature(); ok {
		t := units.NewTemperature(v, units.Celsius)
		d.LowTemperature = &t
	}
	if windiest, ok := spans.HourWithMaxWindSpeed(); ok {
		if windiest.WindSpeed != nil {
			speed := units.NewSpeed(*windiest.WindSpeed, units.MetrePerSecond)
			d.MaxWindSpeed = &speed
		}
		if windiest.WindFromDirection != nil {
			from := units.NewAngle(*windiest.WindFromDirection, units.Degree)
			d.MaxWindFrom = &from
		}
	}
	if v, ok := spans.HighestHumidity(); ok {
		h := units.NewPercentage(v)
		d.MaxHumidity = &h
	}
	if v, ok := spans.HighestPressure(); ok {
		p := units.NewPressure(v, units.Hectopascal)
		d.MaxPressure = &p
	}
	return d, true
}

// SummarizeDays groups spans by calendar date in loc and summarizes each day.
func SummarizeDays(spans TimeSpans, place Place, icons IconTable, loc *time.Location) []DaySummary {
	loc = orLocal(loc)
	days := groupByDay(spans, func(s TimeSpan) time.Time { return s.Start }, loc)
	summaries := make([]DaySummary, 0, len(days))
	for _, day := range days {
		if d, ok := Summarize(day, place, icons); ok {
			d.Date = d.Date.In(loc)
			summaries = append(summaries, d)
		}
	}
	return summaries
}
