package streak

import (
	"fmt"
	"math"
)

// MaxUnifiedMultiplier caps the progressive multiplier in unified mode.
const MaxUnifiedMultiplier = 3.0

// Reward is the coin payout for one check-in.
type Reward struct {
	CoinsEarned     int     `json:"coins_earned"`
	StreakDay       int     `json:"streak_day"`
	BonusMultiplier float64 `json:"bonus_multiplier"`
	Description     string  `json:"description"`
}

type tier struct {
	multiplier  float64
	description string
}

var tiers = [...]tier{
	{1, "Day 1 check-in reward"},
	{1.5, "2-day streak bonus (1.5x)"},
	{2, "3-day streak bonus (2x)"},
	{2.5, "4-day streak bonus (2.5x)"},
	{3, "5-day streak bonus (3x)"},
}

// CalculateReward returns the reward for the given streak day. Days below 1
// count as day 1.
func CalculateReward(streakDay int, s Settings) Reward {
	if streakDay < 1 {
		streakDay = 1
	}
	if s.UnifiedMode {
		m := math.Min(float64(9+streakDay)/10, MaxUnifiedMultiplier)
		return Reward{
			CoinsEarned:     s.UnifiedValue,
			StreakDay:       streakDay,
			BonusMultiplier: m,
			Description:     fmt.Sprintf("%d-day streak reward (%gx)", streakDay, m),
		}
	}
	coins := [...]int{s.Day1, s.Day2, s.Day3, s.Day4, s.Day5}
	if streakDay <= len(tiers) {
		t := tiers[streakDay-1]
		return Reward{
			CoinsEarned:     coins[streakDay-1],
			StreakDay:       streakDay,
			BonusMultiplier: t.multiplier,
			Description:     t.description,
		}
	}
	return Reward{
		CoinsEarned:     s.Day6Plus,
		StreakDay:       streakDay,
		BonusMultiplier: 3.5,
		Description:     fmt.Sprintf("%d-day streak bonus (3.5x max)", streakDay),
	}
}
