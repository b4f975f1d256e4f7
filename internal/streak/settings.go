// Package streak computes check-in streak rewards and geofence presence.
package streak

import "encoding/json"

// Settings configures coin rewards for one gym.
type Settings struct {
	Day1             int  `json:"day1"`
	Day2             int  `json:"day2"`
	Day3             int  `json:"day3"`
	Day4             int  `json:"day4"`
	Day5             int  `json:"day5"`
	Day6Plus         int  `json:"day6Plus"`
	SundayAutoStreak bool `json:"sundayAutoStreak"`
	UnifiedMode      bool `json:"unifiedMode"`
	UnifiedValue     int  `json:"unifiedValue"`
}

func DefaultSettings() Settings {
	return Settings{
		Day1:             50,
		Day2:             100,
		Day3:             200,
		Day4:             300,
		Day5:             400,
		Day6Plus:         500,
		SundayAutoStreak: true,
		UnifiedMode:      false,
		UnifiedValue:     50,
	}
}

// Override carries the fields a gym chose to set; nil fields keep the base value.
type Override struct {
	Day1             *int  `json:"day1,omitempty"`
	Day2             *int  `json:"day2,omitempty"`
	Day3             *int  `json:"day3,omitempty"`
	Day4             *int  `json:"day4,omitempty"`
	Day5             *int  `json:"day5,omitempty"`
	Day6Plus         *int  `json:"day6Plus,omitempty"`
	SundayAutoStreak *bool `json:"sundayAutoStreak,omitempty"`
	UnifiedMode      *bool `json:"unifiedMode,omitempty"`
	UnifiedValue     *int  `json:"unifiedValue,omitempty"`
}

// Apply returns s with every set field of o replacing the corresponding value.
func (s Settings) Apply(o Override) Settings {
	setInt := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	setBool := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	setInt(&s.Day1, o.Day1)
	setInt(&s.Day2, o.Day2)
	setInt(&s.Day3, o.Day3)
	setInt(&s.Day4, o.Day4)
	setInt(&s.Day5, o.Day5)
	setInt(&s.Day6Plus, o.Day6Plus)
	setBool(&s.SundayAutoStreak, o.SundayAutoStreak)
	setBool(&s.UnifiedMode, o.UnifiedMode)
	setInt(&s.UnifiedValue, o.UnifiedValue)
	return s
}

// ParseSettings applies a stored JSON override on top of base.
// Malformed input yields base unchanged.
func ParseSettings(base Settings, raw string) Settings {
	if raw == "" {
		return base
	}
	var o Override
	if err := json.Unmarshal([]byte(raw), &o); err != nil {
		return base
	}
	return base.Apply(o)
}
