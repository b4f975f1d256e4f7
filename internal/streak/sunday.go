package streak

import "time"

// CalendarDaysBetween counts midnights crossed from a to b, both read in b's location.
func CalendarDaysBetween(a, b time.Time) int {
	loc := b.Location()
	a = a.In(loc)
	da := time.Date(a.Year(), a.Month(), a.Day(), 12, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 12, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// ShouldMaintainOverSunday reports whether a Saturday check-in followed by a
// Monday check-in keeps the streak alive. Any other gap breaks it.
func ShouldMaintainOverSunday(lastCheckIn, now time.Time, sundayAutoStreak bool) bool {
	if !sundayAutoStreak {
		return false
	}
	gap := CalendarDaysBetween(lastCheckIn, now)
	if gap != 1 && gap != 2 {
		return false
	}
	return now.Weekday() == time.Monday && lastCheckIn.In(now.Location()).Weekday() == time.Saturday
}

// NextStreakDay derives today's streak day from the previous check-in.
// ok is false when the previous check-in already falls on today.
func NextStreakDay(lastCheckIn time.Time, lastStreakDay int, now time.Time, sundayAutoStreak bool) (day int, ok bool) {
	gap := CalendarDaysBetween(lastCheckIn, now)
	switch {
	case gap <= 0:
		return lastStreakDay, false
	case gap == 1:
		return lastStreakDay + 1, true
	case ShouldMaintainOverSunday(lastCheckIn, now, sundayAutoStreak):
		return lastStreakDay + 1, true
	default:
		return 1, true
	}
}
