package weather

import "testing"

func TestSymbolCodeParts(t *testing.T) {
	cases := []struct {
		code   SymbolCode
		base   string
		family Family
	}{
		{"clearsky_day", "clearsky", FamilyDay},
		{"fair_night", "fair", FamilyNight},
		{"rainshowers_polartwilight", "rainshowers", FamilyPolarTwilight},
		{"cloudy", "cloudy", FamilyNeutral},
		{"rain_whatever", "rain", FamilyNeutral},
	}
	for _, tc := range cases {
		if got := tc.code.Base(); got != tc.base {
			t.Fatalf("%s: expected base %q, got %q", tc.code, tc.base, got)
		}
		if got := tc.code.Family(); got != tc.family {
			t.Fatalf("%s: expected family %q, got %q", tc.code, tc.family, got)
		}
	}
}

func TestMoodOf(t *testing.T) {
	cases := map[SymbolCode]Mood{
		"clearsky_day":                     MoodClear,
		"fair_polartwilight":               MoodClear,
		"clearsky_night":                   MoodClearNight,
		"partlycloudy_day":                 MoodPartlyCloudy,
		"cloudy":                           MoodCloudy,
		"fog":                              MoodFog,
		"heavyrain":                        MoodRain,
		"lightsleetshowers_day":            MoodSleet,
		"snow":                             MoodSnow,
		"rainandthunder":                   MoodThunder,
		"heavysnowshowersandthunder_night": MoodThunder,
		"":                                 MoodUnknown,
		"sandstorm":                        MoodUnknown,
	}
	for code, want := range cases {
		if got := MoodOf(code); got != want {
			t.Fatalf("%q: expected %s, got %s", code, want, got)
		}
	}
}

func TestDescribe(t *testing.T) {
	cases := map[string]string{
		"clearsky":                     "Clear sky",
		"rain":                         "Rain",
		"lightsnow":                    "Light snow",
		"lightsnowshowers":             "Light snow showers",
		"heavysnowshowersandthunder":   "Heavy snow showers and thunder",
		"lightssleetshowersandthunder": "Light sleet showers and thunder",
		"sleetandthunder":              "Sleet and thunder",
	}
	for base, want := range cases {
		if got := describe(base); got != want {
			t.Fatalf("%q: expected %q, got %q", base, want, got)
		}
	}
}

func TestDefaultIcons(t *testing.T) {
	icons := DefaultIcons()
	// 21 variant symbols in three families plus 20 plain ones.
	if icons.Len() != 21*3+20 {
		t.Fatalf("expected %d icons, got %d", 21*3+20, icons.Len())
	}

	icon, ok := icons.Lookup("heavyrainshowers_night")
	if !ok {
		t.Fatalf("expected heavyrainshowers_night to be known")
	}
	if icon.Description != "Heavy rain showers" || icon.Family != FamilyNight || icon.Mood != MoodRain {
		t.Fatalf("unexpected icon: %+v", icon)
	}

	if _, ok := icons.Lookup("cloudy_day"); ok {
		t.Fatalf("cloudy has no day variant")
	}
}
