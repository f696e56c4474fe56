package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMonthRange(t *testing.T) {
	start, end, err := GetMonthRange("2026-02")
	require.NoError(t, err)

	// Local midnight in Riyadh on Feb 1 is 21:00 UTC on Jan 31.
	assert.Equal(t, time.Date(2026, 1, 31, 21, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 2, 28, 21, 0, 0, 0, time.UTC), end)
	assert.Equal(t, "2026-02-01T00:00:00+03:00", start.In(Riyadh).Format(time.RFC3339))
	assert.Equal(t, "2026-03-01T00:00:00+03:00", end.In(Riyadh).Format(time.RFC3339))

	_, _, err = GetMonthRange("2026-13")
	assert.Error(t, err)
}

func TestGetDaysInMonth(t *testing.T) {
	cases := map[string]int{"2026-02": 28, "2026-01": 31, "2024-02": 29, "2026-04": 30}
	for key, want := range cases {
		got, err := GetDaysInMonth(key)
		require.NoError(t, err)
		assert.Equal(t, want, got, key)
	}
}

func TestTodayInRiyadh(t *testing.T) {
	// 22:30 UTC is already the next day in Riyadh.
	now := time.Date(2026, 3, 5, 22, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-06", DateKey(TodayInRiyadh(now)))

	now = time.Date(2026, 3, 5, 20, 59, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-05", DateKey(TodayInRiyadh(now)))
}

func TestWeekStartIsSaturday(t *testing.T) {
	friday, _ := ParseDateKey("2026-03-06")
	saturday, _ := ParseDateKey("2026-03-07")

	assert.Equal(t, "2026-02-28", DateKey(WeekStart(friday)))
	assert.Equal(t, "2026-03-07", DateKey(WeekStart(saturday)))

	dates := WeekDates(friday)
	require.Len(t, dates, 7)
	assert.Equal(t, time.Saturday, dates[0].Weekday())
	assert.Equal(t, time.Friday, dates[6].Weekday())
	assert.Equal(t, "2026-03-06", DateKey(dates[6]))
}

func TestWeeksBetween(t *testing.T) {
	anchor, _ := ParseDateKey("2026-01-03")
	sameWeek, _ := ParseDateKey("2026-01-09")
	nextWeek, _ := ParseDateKey("2026-01-10")
	before, _ := ParseDateKey("2026-01-02")

	assert.Equal(t, 0, WeeksBetween(anchor, sameWeek))
	assert.Equal(t, 1, WeeksBetween(anchor, nextWeek))
	assert.Equal(t, -1, WeeksBetween(anchor, before))
}

func TestDateRange(t *testing.T) {
	r, err := NewDateRange("2026-02-18", "2026-03-19")
	require.NoError(t, err)

	inside, _ := ParseDateKey("2026-02-20")
	outside, _ := ParseDateKey("2026-03-20")
	assert.True(t, r.Contains(inside))
	assert.True(t, r.Contains(r.End))
	assert.False(t, r.Contains(outside))

	_, err = NewDateRange("2026-03-19", "2026-02-18")
	assert.Error(t, err)
}
