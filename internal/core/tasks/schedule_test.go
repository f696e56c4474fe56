package tasks

import (
	"testing"
	"time"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
	"github.com/SscSPs/boutique_ops/internal/utils/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, key string) time.Time {
	t.Helper()
	d, err := calendar.ParseDateKey(key)
	require.NoError(t, err)
	return d
}

func TestScheduleMatches(t *testing.T) {
	once := mustDate(t, "2026-03-05")
	start := mustDate(t, "2026-03-10")

	tests := []struct {
		name     string
		schedule domain.TaskSchedule
		date     string
		want     bool
	}{
		{"daily", domain.TaskSchedule{Kind: domain.TaskDaily}, "2026-03-01", true},
		{"weekly hit", domain.TaskSchedule{Kind: domain.TaskWeekly, Weekdays: []time.Weekday{time.Saturday, time.Tuesday}}, "2026-03-03", true},
		{"weekly miss", domain.TaskSchedule{Kind: domain.TaskWeekly, Weekdays: []time.Weekday{time.Saturday}}, "2026-03-03", false},
		{"monthly hit", domain.TaskSchedule{Kind: domain.TaskMonthly, DayOfMonth: 15}, "2026-03-15", true},
		{"monthly clamps to short month", domain.TaskSchedule{Kind: domain.TaskMonthly, DayOfMonth: 31}, "2026-02-28", true},
		{"monthly no clamp in long month", domain.TaskSchedule{Kind: domain.TaskMonthly, DayOfMonth: 31}, "2026-03-30", false},
		{"monthly without day", domain.TaskSchedule{Kind: domain.TaskMonthly}, "2026-03-01", false},
		{"once hit", domain.TaskSchedule{Kind: domain.TaskOnce, OnDate: &once}, "2026-03-05", true},
		{"once miss", domain.TaskSchedule{Kind: domain.TaskOnce, OnDate: &once}, "2026-03-06", false},
		{"before start", domain.TaskSchedule{Kind: domain.TaskDaily, StartsOn: &start}, "2026-03-09", false},
		{"on start", domain.TaskSchedule{Kind: domain.TaskDaily, StartsOn: &start}, "2026-03-10", true},
		{"unknown kind", domain.TaskSchedule{Kind: "HOURLY"}, "2026-03-10", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScheduleMatches(tt.schedule, mustDate(t, tt.date)))
		})
	}
}

func TestRunnableOnSkipsInactiveAndUnscheduled(t *testing.T) {
	saturday := domain.TaskSchedule{Kind: domain.TaskWeekly, Weekdays: []time.Weekday{time.Saturday}}
	all := []domain.Task{
		{TaskID: "T1", IsActive: true, Schedules: []domain.TaskSchedule{{Kind: domain.TaskDaily}}},
		{TaskID: "T2", IsActive: false, Schedules: []domain.TaskSchedule{{Kind: domain.TaskDaily}}},
		{TaskID: "T3", IsActive: true, Schedules: []domain.TaskSchedule{saturday}},
		{TaskID: "T4", IsActive: true},
	}

	got := RunnableOn(all, mustDate(t, "2026-03-03"))
	require.Len(t, got, 1)
	assert.Equal(t, "T1", got[0].TaskID)

	got = RunnableOn(all, mustDate(t, "2026-03-07"))
	require.Len(t, got, 2)
	assert.Equal(t, "T3", got[1].TaskID)
}
