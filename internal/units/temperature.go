// Package units holds typed physical quantities used by forecasts and the
// conversions between the units a user can pick for display.
package units

// TemperatureUnit is a unit of temperature.
type TemperatureUnit string

const (
	Celsius    TemperatureUnit = "celsius"
	Fahrenheit TemperatureUnit = "fahrenheit"
	Kelvin     TemperatureUnit = "kelvin"
)

// Symbol returns the display symbol of the unit.
func (u TemperatureUnit) Symbol() string {
	switch u {
	case Fahrenheit:
		return "°F"
	case Kelvin:
		return "K"
	default:
		return "°C"
	}
}

// Temperature is a temperature magnitude tagged with the unit it was measured in.
// Unknown units are treated as Celsius.
type Temperature struct {
	value float64
	unit  TemperatureUnit
}

func NewTemperature(value float64, unit TemperatureUnit) Temperature {
	return Temperature{value: value, unit: unit}
}

func (t Temperature) Value() float64        { return t.value }
func (t Temperature) Unit() TemperatureUnit { return t.unit }

func (t Temperature) Celsius() float64 {
	switch t.unit {
	case Fahrenheit:
		return (t.value - 32) * 5 / 9
	case Kelvin:
		return t.value - 273.15
	default:
		return t.value
	}
}

func (t Temperature) Fahrenheit() float64 {
	if t.unit == Fahrenheit {
		return t.value
	}
	return t.Celsius()*9/5 + 32
}

func (t Temperature) Kelvin() float64 {
	if t.unit == Kelvin {
		return t.value
	}
	return t.Celsius() + 273.15
}

// In returns the magnitude of t expressed in unit.
func (t Temperature) In(unit TemperatureUnit) float64 {
	switch unit {
	case Fahrenheit:
		return t.Fahrenheit()
	case Kelvin:
		return t.Kelvin()
	default:
		return t.Celsius()
	}
}
