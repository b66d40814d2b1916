package units

import (
	"math"
	"testing"
)

func TestCompassDirection(t *testing.T) {
	cases := []struct {
		degrees float64
		want    CompassDirection
	}{
		{0, North},
		{30, North},
		{44.9, North},
		{45, NorthEast},
		{75, NorthEast},
		{90, East},
		{120, East},
		{135, SouthEast},
		{165, SouthEast},
		{180, South},
		{210, South},
		{225, SouthWest},
		{255, SouthWest},
		{270, West},
		{300, West},
		{315, NorthWest},
		{345, NorthWest},
		{359.99, NorthWest},
		{360, North},
		{-90, West},
		{-450, West},
		{450, East},
	}

	for _, tc := range cases {
		got := NewAngle(tc.degrees, Degree).CompassDirection()
		if got != tc.want {
			t.Errorf("%v°: expected %s, got %s", tc.degrees, tc.want, got)
		}
	}
}

func TestCompassDirectionFromRadians(t *testing.T) {
	if got := NewAngle(math.Pi, Radian).CompassDirection(); got != South {
		t.Fatalf("expected %s, got %s", South, got)
	}
}

func TestAngleConversion(t *testing.T) {
	const tolerance = 0.0001

	if got := NewAngle(180, Degree).Radian(); math.Abs(got-math.Pi) > tolerance {
		t.Fatalf("expected pi radians, got %v", got)
	}
	if got := NewAngle(math.Pi, Radian).Degree(); math.Abs(got-180) > tolerance {
		t.Fatalf("expected 180 degrees, got %v", got)
	}
}
