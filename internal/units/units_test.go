package units

import (
	"math"
	"testing"
)

const tolerance = 0.001

func near(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestTemperatureConversion(t *testing.T) {
	c := NewTemperature(100, Celsius)
	if !near(c.Fahrenheit(), 212) {
		t.Errorf("expected 212°F, got %v", c.Fahrenheit())
	}
	if !near(c.Kelvin(), 373.15) {
		t.Errorf("expected 373.15K, got %v", c.Kelvin())
	}

	f := NewTemperature(-40, Fahrenheit)
	if !near(f.Celsius(), -40) {
		t.Errorf("expected -40°C, got %v", f.Celsius())
	}
	if f.In(Fahrenheit) != -40 {
		t.Errorf("expected magnitude to be kept in its own unit, got %v", f.In(Fahrenheit))
	}

	k := NewTemperature(0, Kelvin)
	if !near(k.Celsius(), -273.15) {
		t.Errorf("expected -273.15°C, got %v", k.Celsius())
	}
}

func TestLengthConversion(t *testing.T) {
	l := NewLength(25.4, Millimetre)
	if !near(l.Inch(), 1) {
		t.Errorf("expected 1 in, got %v", l.Inch())
	}
	if !near(l.Centimetre(), 2.54) {
		t.Errorf("expected 2.54 cm, got %v", l.Centimetre())
	}
	if !NewLength(0.01, Inch).Significant() {
		t.Errorf("expected 0.01 in to be significant")
	}
	if NewLength(0.2, Millimetre).Significant() {
		t.Errorf("expected 0.2 mm to be insignificant")
	}
}

func TestSpeedConversion(t *testing.T) {
	s := NewSpeed(10, MetrePerSecond)
	if !near(s.KilometresPerHour(), 36) {
		t.Errorf("expected 36 km/h, got %v", s.KilometresPerHour())
	}
	if !near(s.MilesPerHour(), 22.369) {
		t.Errorf("expected 22.369 mph, got %v", s.MilesPerHour())
	}
	if got := s.Beaufort(); got != 5 {
		t.Errorf("expected Bft 5, got %d", got)
	}
	if got := NewSpeed(0.2, MetrePerSecond).Beaufort(); got != 0 {
		t.Errorf("expected Bft 0, got %d", got)
	}
	if got := NewSpeed(40, MetrePerSecond).Beaufort(); got != 12 {
		t.Errorf("expected Bft 12, got %d", got)
	}
}

func TestPressureConversion(t *testing.T) {
	p := NewPressure(1013.25, Hectopascal)
	if !near(p.Millibar(), 1013.25) {
		t.Errorf("expected 1013.25 mbar, got %v", p.Millibar())
	}
	if math.Abs(p.InchOfMercury()-29.92) > 0.01 {
		t.Errorf("expected 29.92 inHg, got %v", p.InchOfMercury())
	}
	if math.Abs(p.MillimetreOfMercury()-760) > 0.1 {
		t.Errorf("expected 760 mmHg, got %v", p.MillimetreOfMercury())
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		got, want string
	}{
		{FormatTemperature(NewTemperature(21.4, Celsius), Celsius), "21°C"},
		{FormatTemperature(NewTemperature(-0.3, Celsius), Celsius), "0°C"},
		{FormatTemperature(NewTemperature(0, Celsius), Fahrenheit), "32°F"},
		{FormatSpeed(NewSpeed(10, MetrePerSecond), KilometrePerHour), "36 km/h"},
		{FormatSpeed(NewSpeed(10, MetrePerSecond), Beaufort), "Bft 5"},
		{FormatSpeed(NewSpeed(3.25, MetrePerSecond), MetrePerSecond), "3.3 m/s"},
		{FormatLength(NewLength(2.54, Millimetre), Inch), "0.10 in"},
		{FormatLength(NewLength(0.44, Millimetre), Millimetre), "0.4 mm"},
		{FormatPressure(NewPressure(1013.25, Hectopascal), Hectopascal), "1013 hPa"},
		{FormatPercentage(NewPercentage(54.6)), "55%"},
	}

	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("expected %q, got %q", tc.want, tc.got)
		}
	}
}

func TestParseUnits(t *testing.T) {
	if u, err := ParseTemperatureUnit("°F"); err != nil || u != Fahrenheit {
		t.Errorf("expected fahrenheit, got %q (%v)", u, err)
	}
	if u, err := ParseSpeedUnit("KM/H"); err != nil || u != KilometrePerHour {
		t.Errorf("expected km/h, got %q (%v)", u, err)
	}
	if u, err := ParseLengthUnit("inch"); err != nil || u != Inch {
		t.Errorf("expected inch, got %q (%v)", u, err)
	}
	if u, err := ParsePressureUnit("inHg"); err != nil || u != InchOfMercury {
		t.Errorf("expected inHg, got %q (%v)", u, err)
	}
	if _, err := ParseTemperatureUnit("rankine"); err == nil {
		t.Errorf("expected error for unknown unit")
	}
}

func TestPreferencesWithDefaults(t *testing.T) {
	p := Preferences{Temperature: Fahrenheit}.WithDefaults(Metric())
	want := Metric()
	want.Temperature = Fahrenheit
	if p != want {
		t.Fatalf("expected %+v, got %+v", want, p)
	}
	if !(Preferences{}).IsZero() {
		t.Fatalf("expected zero preferences")
	}
}
