package units

import (
	"fmt"
	"strings"
)

// Preferences are the units a user wants forecast values displayed in.
type Preferences struct {
	Temperature   TemperatureUnit `json:"temperature"`
	Wind          SpeedUnit       `json:"wind"`
	Precipitation LengthUnit      `json:"precipitation"`
	Pressure      PressureUnit    `json:"pressure"`
}

func Metric() Preferences {
	return Preferences{
		Temperature:   Celsius,
		Wind:          KilometrePerHour,
		Precipitation: Millimetre,
		Pressure:      Hectopascal,
	}
}

func Imperial() Preferences {
	return Preferences{
		Temperature:   Fahrenheit,
		Wind:          MilePerHour,
		Precipitation: Inch,
		Pressure:      InchOfMercury,
	}
}

// IsZero reports whether no unit has been selected at all.
func (p Preferences) IsZero() bool {
	return p == Preferences{}
}

// WithDefaults fills every unselected unit from def.
func (p Preferences) WithDefaults(def Preferences) Preferences {
	if p.Temperature == "" {
		p.Temperature = def.Temperature
	}
	if p.Wind == "" {
		p.Wind = def.Wind
	}
	if p.Precipitation == "" {
		p.Precipitation = def.Precipitation
	}
	if p.Pressure == "" {
		p.Pressure = def.Pressure
	}
	return p
}

func AllTemperatureUnits() []TemperatureUnit {
	return []TemperatureUnit{Celsius, Fahrenheit, Kelvin}
}

func AllSpeedUnits() []SpeedUnit {
	return []SpeedUnit{MetrePerSecond, KilometrePerHour, MilePerHour, Knot, Beaufort}
}

func AllLengthUnits() []LengthUnit {
	return []LengthUnit{Millimetre, Centimetre, Inch}
}

func AllPressureUnits() []PressureUnit {
	return []PressureUnit{Hectopascal, Millibar, InchOfMercury, MillimetreOfMercury}
}

// ParseTemperatureUnit accepts a unit name or its symbol, case-insensitively.
func ParseTemperatureUnit(s string) (TemperatureUnit, error) {
	for _, u := range AllTemperatureUnits() {
		if matches(s, string(u), u.Symbol()) {
			return u, nil
		}
	}
	return "", fmt.Errorf("unknown temperature unit %q", s)
}

func ParseSpeedUnit(s string) (SpeedUnit, error) {
	for _, u := range AllSpeedUnits() {
		if matches(s, string(u), u.Symbol()) {
			return u, nil
		}
	}
	return "", fmt.Errorf("unknown speed unit %q", s)
}

func ParseLengthUnit(s string) (LengthUnit, error) {
	for _, u := range AllLengthUnits() {
		if matches(s, string(u), u.Symbol()) {
			return u, nil
		}
	}
	return "", fmt.Errorf("unknown length unit %q", s)
}

func ParsePressureUnit(s string) (PressureUnit, error) {
	for _, u := range AllPressureUnits() {
		if matches(s, string(u), u.Symbol()) {
			return u, nil
		}
	}
	return "", fmt.Errorf("unknown pressure unit %q", s)
}

func matches(s string, names ...string) bool {
	s = strings.TrimSpace(s)
	for _, n := range names {
		if strings.EqualFold(s, n) {
			return true
		}
	}
	return false
}
