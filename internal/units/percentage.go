package units

// Percentage is a ratio expressed in percent (0-100 for humidity).
type Percentage struct {
	percent float64
}

func NewPercentage(percent float64) Percentage {
	return Percentage{percent: percent}
}

func (p Percentage) Percent() float64  { return p.percent }
func (p Percentage) Fraction() float64 { return p.percent / 100 }
