package weather

import (
	"strings"
)

// SymbolCode is a provider-neutral weather condition code. The vocabulary is
// the MET Norway symbol set, e.g. "clearsky_day" or "heavyrainshowers_night".
type SymbolCode string

// Family tells which variant of an icon a symbol code refers to.
type Family string

const (
	FamilyNeutral       Family = "neutral"
	FamilyDay           Family = "day"
	FamilyNight         Family = "night"
	FamilyPolarTwilight Family = "polartwilight"
)

// Mood is a coarse classification of a condition, used for ambient styling.
type Mood string

const (
	MoodUnknown      Mood = "unknown"
	MoodClear        Mood = "clear"
	MoodClearNight   Mood = "clear_night"
	MoodPartlyCloudy Mood = "partly_cloudy"
	MoodCloudy       Mood = "cloudy"
	MoodFog          Mood = "fog"
	MoodRain         Mood = "rain"
	MoodSleet        Mood = "sleet"
	MoodSnow         Mood = "snow"
	MoodThunder      Mood = "thunder"
)

// Base strips the day/night/polar twilight suffix.
func (c SymbolCode) Base() string {
	base, _, _ := strings.Cut(string(c), "_")
	return base
}

// Family returns the icon family encoded in the code's suffix.
func (c SymbolCode) Family() Family {
	_, suffix, ok := strings.Cut(string(c), "_")
	if !ok {
		return FamilyNeutral
	}
	switch Family(suffix) {
	case FamilyDay, FamilyNight, FamilyPolarTwilight:
		return Family(suffix)
	default:
		return FamilyNeutral
	}
}

// MoodOf classifies a symbol code.
func MoodOf(code SymbolCode) Mood {
	base := code.Base()
	switch {
	case base == "":
		return MoodUnknown
	case base == "clearsky" || base == "fair":
		if code.Family() == FamilyNight {
			return MoodClearNight
		}
		return MoodClear
	case base == "partlycloudy":
		return MoodPartlyCloudy
	case base == "cloudy":
		return MoodCloudy
	case base == "fog":
		return MoodFog
	case strings.Contains(base, "thunder"):
		return MoodThunder
	case strings.Contains(base, "sleet"):
		return MoodSleet
	case strings.Contains(base, "snow"):
		return MoodSnow
	case strings.Contains(base, "rain"):
		return MoodRain
	default:
		return MoodUnknown
	}
}

// Icon describes how a symbol code is presented.
type Icon struct {
	Code        SymbolCode `json:"code"`
	Description string     `json:"description"`
	Mood        Mood       `json:"mood"`
	Family      Family     `json:"family"`
}

// IconTable maps symbol codes to icons. A table is never modified after it
// has been built, so it can be shared between goroutines.
type IconTable struct {
	icons map[SymbolCode]Icon
}

// NewIconTable builds a table from icons. Later duplicates win.
func NewIconTable(icons ...Icon) IconTable {
	t := IconTable{icons: make(map[SymbolCode]Icon, len(icons))}
	for _, icon := range icons {
		t.icons[icon.Code] = icon
	}
	return t
}

func (t IconTable) Lookup(code SymbolCode) (Icon, bool) {
	icon, ok := t.icons[code]
	return icon, ok
}

func (t IconTable) Len() int {
	return len(t.icons)
}

// Base symbols that come in day, night and polar twilight variants.
var variantSymbols = []string{
	"clearsky", "fair", "partlycloudy",
	"lightrainshowers", "rainshowers", "heavyrainshowers",
	"lightrainshowersandthunder", "rainshowersandthunder", "heavyrainshowersandthunder",
	"lightsleetshowers", "sleetshowers", "heavysleetshowers",
	"lightssleetshowersandthunder", "sleetshowersandthunder", "heavysleetshowersandthunder",
	"lightsnowshowers", "snowshowers", "heavysnowshowers",
	"lightssnowshowersandthunder", "snowshowersandthunder", "heavysnowshowersandthunder",
}

var plainSymbols = []string{
	"cloudy", "fog",
	"lightrain", "rain", "heavyrain",
	"lightrainandthunder", "rainandthunder", "heavyrainandthunder",
	"lightsleet", "sleet", "heavysleet",
	"lightsleetandthunder", "sleetandthunder", "heavysleetandthunder",
	"lightsnow", "snow", "heavysnow",
	"lightsnowandthunder", "snowandthunder", "heavysnowandthunder",
}

// DefaultIcons returns the table for every MET Norway symbol code.
func DefaultIcons() IconTable {
	var icons []Icon
	for _, base := range variantSymbols {
		for _, family := range []Family{FamilyDay, FamilyNight, FamilyPolarTwilight} {
			code := SymbolCode(base + "_" + string(family))
			icons = append(icons, Icon{
				Code:        code,
				Description: describe(base),
				Mood:        MoodOf(code),
				Family:      family,
			})
		}
	}
	for _, base := range plainSymbols {
		code := SymbolCode(base)
		icons = append(icons, Icon{
			Code:        code,
			Description: describe(base),
			Mood:        MoodOf(code),
			Family:      FamilyNeutral,
		})
	}
	return NewIconTable(icons...)
}

var fixedDescriptions = map[string]string{
	"clearsky":     "Clear sky",
	"fair":         "Fair",
	"partlycloudy": "Partly cloudy",
	"cloudy":       "Cloudy",
	"fog":          "Fog",
}

// describe turns a base symbol like "heavysnowshowersandthunder" into
// "Heavy snow showers and thunder".
func describe(base string) string {
	if d, ok := fixedDescriptions[base]; ok {
		return d
	}

	var words []string
	rest := base
	switch {
	case strings.HasPrefix(rest, "lightss"):
		// MET Norway spells two codes with a stray "s" ("lightssleet...").
		words = append(words, "light")
		rest = strings.TrimPrefix(rest, "lights")
	case strings.HasPrefix(rest, "light"):
		words = append(words, "light")
		rest = strings.TrimPrefix(rest, "light")
	case strings.HasPrefix(rest, "heavy"):
		words = append(words, "heavy")
		rest = strings.TrimPrefix(rest, "heavy")
	}

	thunder := strings.HasSuffix(rest, "andthunder")
	rest = strings.TrimSuffix(rest, "andthunder")
	showers := strings.HasSuffix(rest, "showers")
	rest = strings.TrimSuffix(rest, "showers")

	words = append(words, rest)
	if showers {
		words = append(words, "showers")
	}
	if thunder {
		words = append(words, "and", "thunder")
	}

	s := strings.Join(words, " ")
	return strings.ToUpper(s[:1]) + s[1:]
}
