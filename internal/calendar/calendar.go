// Package calendar handles date-only values as local calendar days.
//
// Every date stored on a game or play session is a YYYY-MM-DD string. Parsing
// such a string with a generic parser anchors it to UTC midnight, which lands
// on the previous local day for hosts west of UTC. All parsing goes through
// Parse/ParseIn so the resulting time keeps the exact year, month and day.
package calendar

import (
	"math"
	"strconv"
	"time"
)

const (
	// DateLayout is the wire format for calendar dates.
	DateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// Parse reads a YYYY-MM-DD string as midnight in time.Local.
func Parse(s string) (time.Time, bool) {
	return ParseIn(s, time.Local)
}

// ParseIn reads a YYYY-MM-DD string as midnight in loc. Longer ISO strings
// are truncated to their date part. Malformed input reports false.
func ParseIn(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	if len(s) < len(DateLayout) {
		return time.Time{}, false
	}
	s = s[:len(DateLayout)]
	if s[4] != '-' || s[7] != '-' {
		return time.Time{}, false
	}
	y, err := strconv.Atoi(s[0:4])
	if err != nil {
		return time.Time{}, false
	}
	m, err := strconv.Atoi(s[5:7])
	if err != nil || m < 1 || m > 12 {
		return time.Time{}, false
	}
	d, err := strconv.Atoi(s[8:10])
	if err != nil || d < 1 || d > daysIn(y, time.Month(m)) {
		return time.Time{}, false
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, loc), true
}

// Format renders t as YYYY-MM-DD in its own location.
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// MonthKey renders t as YYYY-MM.
func MonthKey(t time.Time) string {
	return t.Format(monthLayout)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysIn returns the number of days in the month containing t.
func DaysIn(t time.Time) int {
	return daysIn(t.Year(), t.Month())
}

// DaysBetween is the ceiling of the absolute distance between a and b in
// whole days. Distances are measured on wall-clock values so a DST shift
// inside the range never adds a day.
func DaysBetween(a, b time.Time) int {
	wa := wallClock(a)
	wb := wallClock(b)
	diff := wb.Sub(wa)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}

func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// DayIndex counts calendar days since the epoch for t's local date. Two
// times on the same local day share an index.
func DayIndex(t time.Time) int {
	return int(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// AddDays moves t by n calendar days keeping the wall-clock time.
func AddDays(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+n, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// Within reports start <= t <= end.
func Within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// IsWeekend reports Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// DaysAgo is the start of the local day n days before now.
func DaysAgo(now time.Time, n int) time.Time {
	return StartOfDay(AddDays(now, -n))
}

// WeeksAgo is the start of the local day 7n days before now.
func WeeksAgo(now time.Time, n int) time.Time {
	return DaysAgo(now, 7*n)
}

// Range is an inclusive window of calendar days.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (r Range) Contains(t time.Time) bool {
	return Within(t, r.Start, r.End)
}

// Days is the number of calendar days covered by the window.
func (r Range) Days() int {
	return DayIndex(r.End) - DayIndex(r.Start) + 1
}

// WeekBounds returns the Monday-to-Sunday week weeksAgo weeks before the
// week containing now.
func WeekBounds(now time.Time, weeksAgo int) Range {
	offset := (int(now.Weekday()) + 6) % 7 // days since Monday
	monday := StartOfDay(AddDays(now, -offset-7*weeksAgo))
	return Range{Start: monday, End: EndOfDay(AddDays(monday, 6))}
}

// MonthBounds returns the calendar month monthsAgo months before the month
// containing now.
func MonthBounds(now time.Time, monthsAgo int) Range {
	first := time.Date(now.Year(), now.Month()-time.Month(monthsAgo), 1, 0, 0, 0, 0, now.Location())
	return MonthRange(first.Year(), first.Month(), now.Location())
}

func MonthRange(year int, month time.Month, loc *time.Location) Range {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, loc)
	return Range{Start: first, End: EndOfDay(last)}
}

func YearRange(year int, loc *time.Location) Range {
	return Range{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, loc),
		End:   EndOfDay(time.Date(year, time.December, 31, 0, 0, 0, 0, loc)),
	}
}

// LastDays is the window of the n most recent calendar days ending today.
func LastDays(now time.Time, n int) Range {
	if n < 1 {
		n = 1
	}
	return Range{Start: DaysAgo(now, n-1), End: EndOfDay(now)}
}
