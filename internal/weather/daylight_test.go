package weather

import (
	"testing"
	"time"
)

func TestIsDaytime(t *testing.T) {
	cases := []struct {
		name     string
		at       time.Time
		lat, lon float64
		want     bool
	}{
		{"osijek summer noon", time.Date(2024, 6, 21, 10, 0, 0, 0, time.UTC), 45.5511, 18.6939, true},
		{"osijek summer midnight", time.Date(2024, 6, 21, 23, 0, 0, 0, time.UTC), 45.5511, 18.6939, false},
		{"osijek winter evening", time.Date(2024, 12, 21, 17, 0, 0, 0, time.UTC), 45.5511, 18.6939, false},
		{"midnight sun", time.Date(2024, 6, 21, 23, 0, 0, 0, time.UTC), 69.6492, 18.9553, true},
		{"polar night", time.Date(2024, 12, 21, 11, 0, 0, 0, time.UTC), 69.6492, 18.9553, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsDaytime(tc.at, tc.lat, tc.lon); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
