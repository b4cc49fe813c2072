package timeline

import (
	"time"

	"github.com/vytor/gameshelf/internal/models"
	"github.com/vytor/gameshelf/internal/valuation"
)

// SessionPatterns summarizes every logged session with dates read in loc.
func SessionPatterns(games []models.Game, loc *time.Location) models.SessionPatterns {
	if loc == nil {
		loc = time.Local
	}
	all := collectSessions(games, loc)
	p := models.SessionPatterns{
		TotalSessions:   len(all),
		LongestSession:  longestSession(all),
		FavoriteWeekday: favoriteWeekday(all),
		HoursByWeekday:  hoursByWeekday(all),
		MoodMix:         moodMix(all),
	}
	if len(all) > 0 {
		p.AverageSession = valuation.Round(totalHours(all)/float64(len(all)), 2)
	}
	return p
}
