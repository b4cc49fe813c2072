// Package classify maps games, or a whole library, onto qualitative labels:
// personality, relationship status, card rarity, trophies and completion
// odds. Every classifier is a pure function of its inputs and "now".
package classify

import (
	"strings"
	"time"

	"github.com/vytor/gameshelf/internal/calendar"
	"github.com/vytor/gameshelf/internal/models"
	"github.com/vytor/gameshelf/internal/valuation"
)

// daysSince counts calendar days from date to now. Unknown or malformed
// dates report false.
func daysSince(date string, now time.Time) (int, bool) {
	d, ok := calendar.ParseIn(date, now.Location())
	if !ok {
		return 0, false
	}
	return calendar.DayIndex(now) - calendar.DayIndex(d), true
}

// daysSinceLastSession is -1 for games with no sessions.
func daysSinceLastSession(g models.Game, now time.Time) int {
	last, ok := valuation.LastPlayed(g, now.Location())
	if !ok {
		return -1
	}
	return calendar.DayIndex(now) - calendar.DayIndex(last)
}

// hoursBetween sums session hours dated fromDaysAgo..toDaysAgo days before now.
func hoursBetween(g models.Game, now time.Time, fromDaysAgo, toDaysAgo int) float64 {
	today := calendar.DayIndex(now)
	var total float64
	for _, l := range g.PlayLogs {
		d, ok := calendar.ParseIn(l.Date, now.Location())
		if !ok {
			continue
		}
		ago := today - calendar.DayIndex(d)
		if ago >= toDaysAgo && ago <= fromDaysAgo {
			total += l.Hours
		}
	}
	return total
}

func sessionsWithin(g models.Game, now time.Time, days int) int {
	today := calendar.DayIndex(now)
	n := 0
	for _, l := range g.PlayLogs {
		d, ok := calendar.ParseIn(l.Date, now.Location())
		if !ok {
			continue
		}
		if ago := today - calendar.DayIndex(d); ago >= 0 && ago < days {
			n++
		}
	}
	return n
}

func owned(games []models.Game) []models.Game {
	out := make([]models.Game, 0, len(games))
	for _, g := range games {
		if valuation.IsOwned(g) {
			out = append(out, g)
		}
	}
	return out
}

func normalizeGenre(genre string) string {
	return strings.ToLower(strings.TrimSpace(genre))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
