package units

import (
	"fmt"
	"math"
)

func FormatTemperature(t Temperature, unit TemperatureUnit) string {
	return fmt.Sprintf("%.0f%s", roundZero(t.In(unit), 0), unit.Symbol())
}

func FormatSpeed(s Speed, unit SpeedUnit) string {
	switch unit {
	case Beaufort:
		return fmt.Sprintf("Bft %d", s.Beaufort())
	case MetrePerSecond:
		return fmt.Sprintf("%.1f %s", roundZero(s.In(unit), 1), unit.Symbol())
	default:
		return fmt.Sprintf("%.0f %s", roundZero(s.In(unit), 0), unit.Symbol())
	}
}

func FormatLength(l Length, unit LengthUnit) string {
	if unit == Millimetre {
		return fmt.Sprintf("%.1f %s", roundZero(l.In(unit), 1), unit.Symbol())
	}
	return fmt.Sprintf("%.2f %s", roundZero(l.In(unit), 2), unit.Symbol())
}

func FormatPressure(p Pressure, unit PressureUnit) string {
	if unit == InchOfMercury {
		return fmt.Sprintf("%.2f %s", roundZero(p.In(unit), 2), unit.Symbol())
	}
	return fmt.Sprintf("%.0f %s", roundZero(p.In(unit), 0), unit.Symbol())
}

func FormatPercentage(p Percentage) string {
	return fmt.Sprintf("%.0f%%", roundZero(p.Percent(), 0))
}

// roundZero rounds v to the given number of decimals and folds -0 into 0 so
// that "-0°C" is never displayed.
func roundZero(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	r := math.Round(v*pow) / pow
	if r == 0 {
		return 0
	}
	return r
}
