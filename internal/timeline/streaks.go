package timeline

import (
	"sort"
	"time"

	"github.com/vytor/gameshelf/internal/calendar"
	"github.com/vytor/gameshelf/internal/models"
)

type run struct {
	start, end int // day indexes
	length     int
}

// playDays returns the sorted unique day indexes with at least one session.
func playDays(sessions []session) []int {
	seen := map[int]bool{}
	var out []int
	for _, s := range sessions {
		d := calendar.DayIndex(s.date)
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Ints(out)
	return out
}

func runs(daysPlayed []int) []run {
	var out []run
	for _, d := range daysPlayed {
		if n := len(out); n > 0 && out[n-1].end == d-1 {
			out[n-1].end = d
			out[n-1].length++
			continue
		}
		out = append(out, run{start: d, end: d, length: 1})
	}
	return out
}

// longestRun returns the longest run; the earliest wins ties.
func longestRun(sessions []session) run {
	var best run
	for _, r := range runs(playDays(sessions)) {
		if r.length > best.length {
			best = r
		}
	}
	return best
}

// Streaks measures runs of consecutive days with play. The current streak
// only counts when its last day is today or yesterday; sessions dated after
// today are ignored for it.
func Streaks(games []models.Game, now time.Time) models.StreakInfo {
	all := collectSessions(games, now.Location())
	daysPlayed := playDays(all)
	if len(daysPlayed) == 0 {
		return models.StreakInfo{}
	}

	loc := now.Location()
	info := models.StreakInfo{DaysPlayed: len(daysPlayed)}

	longest := longestRun(all)
	info.Longest = longest.length
	info.LongestStart = formatDay(longest.start, loc)
	info.LongestEnd = formatDay(longest.end, loc)

	today := calendar.DayIndex(now)
	var past []int
	for _, d := range daysPlayed {
		if d <= today {
			past = append(past, d)
		}
	}
	if len(past) == 0 {
		return info
	}
	info.LastPlayed = formatDay(past[len(past)-1], loc)

	rs := runs(past)
	last := rs[len(rs)-1]
	if last.end >= today-1 {
		info.Current = last.length
		info.CurrentStart = formatDay(last.start, loc)
	}
	return info
}

func formatDay(index int, loc *time.Location) string {
	u := time.Unix(int64(index)*86400, 0).UTC()
	return calendar.Format(time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, loc))
}
