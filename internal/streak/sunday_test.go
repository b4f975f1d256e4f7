package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 2026-10-10 is a Saturday.
var saturday = time.Date(2026, 10, 10, 18, 0, 0, 0, time.UTC)

func TestShouldMaintainOverSunday(t *testing.T) {
	monday := saturday.AddDate(0, 0, 2).Add(-10 * time.Hour)
	assert.Equal(t, time.Monday, monday.Weekday())

	assert.True(t, ShouldMaintainOverSunday(saturday, monday, true))
	assert.False(t, ShouldMaintainOverSunday(saturday, monday, false))

	tuesday := saturday.AddDate(0, 0, 3)
	assert.False(t, ShouldMaintainOverSunday(saturday, tuesday, true))

	friday := saturday.AddDate(0, 0, -1)
	assert.False(t, ShouldMaintainOverSunday(friday, monday, true), "3-day gap")

	sunday := saturday.AddDate(0, 0, 1)
	assert.False(t, ShouldMaintainOverSunday(sunday, monday, true))
}

func TestCalendarDaysBetween(t *testing.T) {
	late := time.Date(2026, 10, 10, 23, 59, 0, 0, time.UTC)
	early := time.Date(2026, 10, 11, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 1, CalendarDaysBetween(late, early))
	assert.Equal(t, 0, CalendarDaysBetween(early, early.Add(20*time.Hour)))
	assert.Equal(t, 31, CalendarDaysBetween(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))
}

func TestNextStreakDay(t *testing.T) {
	monday := saturday.AddDate(0, 0, 2)
	sunday := saturday.AddDate(0, 0, 1)

	day, ok := NextStreakDay(saturday, 4, sunday, true)
	assert.True(t, ok)
	assert.Equal(t, 5, day)

	day, ok = NextStreakDay(saturday, 4, monday, true)
	assert.True(t, ok)
	assert.Equal(t, 5, day)

	day, ok = NextStreakDay(saturday, 4, monday, false)
	assert.True(t, ok)
	assert.Equal(t, 1, day)

	day, ok = NextStreakDay(saturday, 4, saturday.Add(time.Hour), true)
	assert.False(t, ok)
	assert.Equal(t, 4, day)
}
