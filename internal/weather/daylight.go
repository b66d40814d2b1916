package weather

import (
	"math"
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// IsDaytime reports whether the sun is up at t for the given coordinates.
func IsDaytime(t time.Time, latitude, longitude float64) bool {
	// Use the local solar date so the sunrise/sunset pair brackets t.
	solar := t.UTC().Add(time.Duration(longitude / 15 * float64(time.Hour)))
	rise, set := sunrise.SunriseSunset(latitude, longitude, solar.Year(), solar.Month(), solar.Day())
	if rise.IsZero() || set.IsZero() {
		return polarDay(t, latitude)
	}
	return !t.Before(rise) && t.Before(set)
}

// polarDay decides between midnight sun and polar night. The sun stays up
// when its declination is on the same side of the equator as the place.
func polarDay(t time.Time, latitude float64) bool {
	declination := -23.44 * math.Cos(2*math.Pi/365*float64(t.UTC().YearDay()+10))
	return (declination > 0) == (latitude > 0)
}
