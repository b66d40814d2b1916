package units

// LengthUnit is a unit of length, used for precipitation amounts.
type LengthUnit string

const (
	Millimetre LengthUnit = "millimetre"
	Centimetre LengthUnit = "centimetre"
	Inch       LengthUnit = "inch"
)

// SignificantPrecipitation is the smallest amount worth showing to a user.
// It matches 0.01 in, the imperial threshold.
const SignificantPrecipitation = 0.254 // mm

var millimetresPer = map[LengthUnit]float64{
	Millimetre: 1,
	Centimetre: 10,
	Inch:       25.4,
}

func (u LengthUnit) Symbol() string {
	switch u {
	case Centimetre:
		return "cm"
	case Inch:
		return "in"
	default:
		return "mm"
	}
}

// Length is a length magnitude tagged with its unit. Unknown units are
// treated as millimetres.
type Length struct {
	value float64
	unit  LengthUnit
}

func NewLength(value float64, unit LengthUnit) Length {
	return Length{value: value, unit: unit}
}

func (l Length) Value() float64   { return l.value }
func (l Length) Unit() LengthUnit { return l.unit }

func (l Length) Millimetre() float64 {
	f, ok := millimetresPer[l.unit]
	if !ok {
		return l.value
	}
	return l.value * f
}

func (l Length) Centimetre() float64 { return l.In(Centimetre) }
func (l Length) Inch() float64       { return l.In(Inch) }

func (l Length) In(unit LengthUnit) float64 {
	if unit == l.unit {
		return l.value
	}
	f, ok := millimetresPer[unit]
	if !ok {
		f = 1
	}
	return l.Millimetre() / f
}

// Significant reports whether the amount is at or above SignificantPrecipitation.
func (l Length) Significant() bool {
	return l.Millimetre() >= SignificantPrecipitation-1e-9
}
