package units

// SpeedUnit is a unit of speed, used for wind.
type SpeedUnit string

const (
	MetrePerSecond   SpeedUnit = "metre_per_second"
	KilometrePerHour SpeedUnit = "kilometre_per_hour"
	MilePerHour      SpeedUnit = "mile_per_hour"
	Knot             SpeedUnit = "knot"
	// Beaufort is not a linear unit. Speeds expressed "in" Beaufort yield the
	// force number of the scale.
	Beaufort SpeedUnit = "beaufort"
)

var metresPerSecondPer = map[SpeedUnit]float64{
	MetrePerSecond:   1,
	KilometrePerHour: 1 / 3.6,
	MilePerHour:      0.44704,
	Knot:             0.514444,
}

// Upper bounds (exclusive, m/s) of Beaufort forces 0 through 11.
var beaufortLimits = []float64{0.5, 1.6, 3.4, 5.5, 8.0, 10.8, 13.9, 17.2, 20.8, 24.5, 28.5, 32.7}

func (u SpeedUnit) Symbol() string {
	switch u {
	case KilometrePerHour:
		return "km/h"
	case MilePerHour:
		return "mph"
	case Knot:
		return "kn"
	case Beaufort:
		return "Bft"
	default:
		return "m/s"
	}
}

// Speed is a speed magnitude tagged with its unit. Unknown units are treated
// as metres per second.
type Speed struct {
	value float64
	unit  SpeedUnit
}

func NewSpeed(value float64, unit SpeedUnit) Speed {
	return Speed{value: value, unit: unit}
}

func (s Speed) Value() float64  { return s.value }
func (s Speed) Unit() SpeedUnit { return s.unit }

func (s Speed) MetresPerSecond() float64 {
	if s.unit == Beaufort {
		// Midpoint of the force's band.
		force := int(s.value)
		switch {
		case force <= 0:
			return 0
		case force >= len(beaufortLimits):
			return beaufortLimits[len(beaufortLimits)-1]
		default:
			return (beaufortLimits[force-1] + beaufortLimits[force]) / 2
		}
	}
	f, ok := metresPerSecondPer[s.unit]
	if !ok {
		return s.value
	}
	return s.value * f
}

func (s Speed) KilometresPerHour() float64 { return s.In(KilometrePerHour) }
func (s Speed) MilesPerHour() float64      { return s.In(MilePerHour) }
func (s Speed) Knots() float64             { return s.In(Knot) }

// Beaufort returns the force number (0-12) of the speed.
func (s Speed) Beaufort() int {
	ms := s.MetresPerSecond()
	for force, limit := range beaufortLimits {
		if ms < limit {
			return force
		}
	}
	return len(beaufortLimits)
}

func (s Speed) In(unit SpeedUnit) float64 {
	if unit == s.unit {
		return s.value
	}
	if unit == Beaufort {
		return float64(s.Beaufort())
	}
	f, ok := metresPerSecondPer[unit]
	if !ok {
		f = 1
	}
	return s.MetresPerSecond() / f
}
