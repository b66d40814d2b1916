package units

// PressureUnit is a unit of air pressure.
type PressureUnit string

const (
	Hectopascal         PressureUnit = "hectopascal"
	Millibar            PressureUnit = "millibar"
	InchOfMercury       PressureUnit = "inch_of_mercury"
	MillimetreOfMercury PressureUnit = "millimetre_of_mercury"
)

var hectopascalsPer = map[PressureUnit]float64{
	Hectopascal:         1,
	Millibar:            1,
	InchOfMercury:       33.8639,
	MillimetreOfMercury: 1.333224,
}

func (u PressureUnit) Symbol() string {
	switch u {
	case Millibar:
		return "mbar"
	case InchOfMercury:
		return "inHg"
	case MillimetreOfMercury:
		return "mmHg"
	default:
		return "hPa"
	}
}

// Pressure is a pressure magnitude tagged with its unit. Unknown units are
// treated as hectopascals.
type Pressure struct {
	value float64
	unit  PressureUnit
}

func NewPressure(value float64, unit PressureUnit) Pressure {
	return Pressure{value: value, unit: unit}
}

func (p Pressure) Value() float64     { return p.value }
func (p Pressure) Unit() PressureUnit { return p.unit }

func (p Pressure) Hectopascal() float64 {
	f, ok := hectopascalsPer[p.unit]
	if !ok {
		return p.value
	}
	return p.value * f
}

func (p Pressure) Millibar() float64            { return p.In(Millibar) }
func (p Pressure) InchOfMercury() float64       { return p.In(InchOfMercury) }
func (p Pressure) MillimetreOfMercury() float64 { return p.In(MillimetreOfMercury) }

func (p Pressure) In(unit PressureUnit) float64 {
	if unit == p.unit {
		return p.value
	}
	f, ok := hectopascalsPer[unit]
	if !ok {
		f = 1
	}
	return p.Hectopascal() / f
}
