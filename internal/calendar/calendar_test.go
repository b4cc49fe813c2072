package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/gameshelf/internal/calendar"
)

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	d, ok := calendar.Parse(s)
	require.True(t, ok, "invalid date %q", s)
	return d
}

func TestParseIn_KeepsCalendarDayAcrossZones(t *testing.T) {
	zones := []*time.Location{
		time.UTC,
		time.FixedZone("UTC-8", -8*3600),
		time.FixedZone("UTC-11", -11*3600),
		time.FixedZone("UTC+13", 13*3600),
	}
	for _, loc := range zones {
		t.Run(loc.String(), func(t *testing.T) {
			d, ok := calendar.ParseIn("2025-02-10", loc)
			require.True(t, ok)
			assert.Equal(t, 2025, d.Year())
			assert.Equal(t, time.February, d.Month())
			assert.Equal(t, 10, d.Day())
			assert.Equal(t, "2025-02", calendar.MonthKey(d))
			assert.True(t, calendar.MonthBounds(d, 0).Contains(d))
		})
	}
}

func TestParseIn_TruncatesTimestamps(t *testing.T) {
	d, ok := calendar.ParseIn("2024-03-01T23:30:00Z", time.UTC)
	require.True(t, ok)
	assert.Equal(t, "2024-03-01", calendar.Format(d))
}

func TestParseIn_Malformed(t *testing.T) {
	for _, s := range []string{"", "2024", "2024/01/01", "2024-13-01", "2023-02-29", "abcd-ef-gh", "2024-00-10"} {
		_, ok := calendar.ParseIn(s, time.UTC)
		assert.False(t, ok, "expected %q to be rejected", s)
	}
	_, ok := calendar.ParseIn("2024-02-29", time.UTC)
	assert.True(t, ok, "leap day should parse")
}

func TestDaysBetween(t *testing.T) {
	a := mustParse(t, "2024-01-01")
	b := mustParse(t, "2024-01-05")
	assert.Equal(t, 4, calendar.DaysBetween(a, b))
	assert.Equal(t, 4, calendar.DaysBetween(b, a))
	assert.Equal(t, 0, calendar.DaysBetween(a, a))

	noon := time.Date(2024, 1, 5, 12, 0, 0, 0, time.Local)
	assert.Equal(t, 5, calendar.DaysBetween(a, noon), "partial days round up")
}

func TestDaysBetween_IgnoresDSTShift(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	before, _ := calendar.ParseIn("2024-03-09", ny)
	after, _ := calendar.ParseIn("2024-03-11", ny)
	assert.Equal(t, 2, calendar.DaysBetween(before, after))
}

func TestWeekBounds_MondayStart(t *testing.T) {
	// 2024-01-10 is a Wednesday
	now := time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC)
	w := calendar.WeekBounds(now, 0)
	assert.Equal(t, "2024-01-08", calendar.Format(w.Start))
	assert.Equal(t, time.Monday, w.Start.Weekday())
	assert.Equal(t, "2024-01-14", calendar.Format(w.End))
	assert.Equal(t, 7, w.Days())

	prev := calendar.WeekBounds(now, 1)
	assert.Equal(t, "2024-01-01", calendar.Format(prev.Start))
	assert.Equal(t, "2024-01-07", calendar.Format(prev.End))

	sunday := time.Date(2024, 1, 14, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, w, calendar.WeekBounds(sunday, 0), "sunday belongs to the week that started monday")
	assert.True(t, w.Contains(w.End), "end is inclusive")
}

func TestMonthBounds(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	m := calendar.MonthBounds(now, 1)
	assert.Equal(t, "2024-02-01", calendar.Format(m.Start))
	assert.Equal(t, "2024-02-29", calendar.Format(m.End))

	jan := calendar.MonthBounds(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), 1)
	assert.Equal(t, "2023-12-01", calendar.Format(jan.Start))
	assert.Equal(t, 31, jan.Days())
}

func TestDaysAgoAndLastDays(t *testing.T) {
	now := time.Date(2024, 3, 1, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-02-23", calendar.Format(calendar.DaysAgo(now, 7)))
	assert.Equal(t, "2024-02-16", calendar.Format(calendar.WeeksAgo(now, 2)))

	r := calendar.LastDays(now, 7)
	assert.Equal(t, "2024-02-24", calendar.Format(r.Start))
	assert.Equal(t, 7, r.Days())
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, calendar.IsWeekend(mustParse(t, "2024-01-06")))
	assert.True(t, calendar.IsWeekend(mustParse(t, "2024-01-07")))
	assert.False(t, calendar.IsWeekend(mustParse(t, "2024-01-08")))
}
