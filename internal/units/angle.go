package units

import "math"

// AngleUnit is a unit of plane angle.
type AngleUnit string

const (
	Degree AngleUnit = "degree"
	Radian AngleUnit = "radian"
)

// CompassDirection is one of the eight principal winds.
type CompassDirection string

const (
	North     CompassDirection = "N"
	NorthEast CompassDirection = "NE"
	East      CompassDirection = "E"
	SouthEast CompassDirection = "SE"
	South     CompassDirection = "S"
	SouthWest CompassDirection = "SW"
	West      CompassDirection = "W"
	NorthWest CompassDirection = "NW"
)

var compassRose = [8]CompassDirection{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

// Angle is an angle magnitude tagged with its unit. Any magnitude is valid.
type Angle struct {
	value float64
	unit  AngleUnit
}

func NewAngle(value float64, unit AngleUnit) Angle {
	return Angle{value: value, unit: unit}
}

func (a Angle) Value() float64  { return a.value }
func (a Angle) Unit() AngleUnit { return a.unit }

func (a Angle) Degree() float64 {
	if a.unit == Radian {
		return a.value * 180 / math.Pi
	}
	return a.value
}

func (a Angle) Radian() float64 {
	if a.unit == Radian {
		return a.value
	}
	return a.value * math.Pi / 180
}

// CompassDirection maps the angle onto the compass rose. The circle is split
// into eight 45° sectors starting at north, so [0°, 45°) is N and [45°, 90°)
// is NE. Angles are normalized into [0°, 360°) first.
func (a Angle) CompassDirection() CompassDirection {
	deg := math.Mod(a.Degree(), 360)
	if deg < 0 {
		deg += 360
	}
	return compassRose[int(math.Floor(deg/45))%len(compassRose)]
}
