package weather

import (
	"math"

	"github.com/i474232898/prognoza/internal/units"
)

// FeelsLike returns the apparent temperature in Fahrenheit. Wind chill is used
// whenever the air temperature is within [-50°F, 50°F], regardless of wind
// speed; the heat index is used otherwise.
func FeelsLike(temperature units.Temperature, windSpeed units.Speed, humidity units.Percentage) units.Temperature {
	t := temperature.Fahrenheit()

	var feelsLike float64
	if t >= -50 && t <= 50 {
		feelsLike = windChill(t, windSpeed.MilesPerHour())
	} else {
		feelsLike = heatIndex(t, humidity.Percent())
	}
	return units.NewTemperature(feelsLike, units.Fahrenheit)
}

// windChill implements the NWS wind chill equation, t in °F and v in mph.
// https://www.weather.gov/media/epz/wxcalc/windChill.pdf
func windChill(t, v float64) float64 {
	v16 := math.Pow(v, 0.16)
	return 35.74 + 0.6215*t - 35.75*v16 + 0.4275*t*v16
}

// heatIndex implements the NWS heat index equation, t in °F and h in percent.
// https://www.wpc.ncep.noaa.gov/html/heatindex_equation.shtml
func heatIndex(t, h float64) float64 {
	simple := 0.5 * (t + 61 + (t-68)*1.2 + h*0.094)
	if simple < 80 {
		return simple
	}

	hi := -42.379 +
		2.04901523*t +
		10.14333127*h -
		0.22475541*t*h -
		0.00683783*t*t -
		0.05481717*h*h +
		0.00122874*t*t*h +
		0.00085282*t*h*h -
		0.00000199*t*t*h*h

	switch {
	case h < 13 && t >= 80 && t <= 112:
		return hi - ((13-h)/4)*math.Sqrt((17-math.Abs(t-95))/17)
	case h > 85 && t >= 80 && t <= 87:
		return hi + ((h-85)/10)*((87-t)/5)
	default:
		return hi
	}
}
