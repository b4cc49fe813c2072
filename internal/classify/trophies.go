package classify

import (
	"math"
	"time"

	"github.com/vytor/gameshelf/internal/models"
	"github.com/vytor/gameshelf/internal/timeline"
	"github.com/vytor/gameshelf/internal/valuation"
)

// libraryStats is computed once per Trophies call and read by every trophy.
type libraryStats struct {
	owned          int
	completed      int
	recentFinishes int // completed in the last 90 days
	sessions       int
	maxGameHours   float64
	longestSession float64
	longestStreak  int
	genres         int
	savings        float64
	free           int
	rated          int
}

type trophyDef struct {
	id          string
	name        string
	description string
	tier        string
	target      float64
	current     func(s libraryStats) float64
}

var trophyCatalogue = []trophyDef{
	{"first-session", "First Steps", "Log your first play session", "Bronze", 1,
		func(s libraryStats) float64 { return float64(s.sessions) }},
	{"finisher", "Finisher", "Complete a game", "Bronze", 1,
		func(s libraryStats) float64 { return float64(s.completed) }},
	{"completionist", "Completionist", "Complete 10 games", "Gold", 10,
		func(s libraryStats) float64 { return float64(s.completed) }},
	{"on-a-roll", "On a Roll", "Complete 3 games within 90 days", "Silver", 3,
		func(s libraryStats) float64 { return float64(s.recentFinishes) }},
	{"collector", "Collector", "Own 25 games", "Silver", 25,
		func(s libraryStats) float64 { return float64(s.owned) }},
	{"centurion", "Centurion", "Spend 100 hours in a single game", "Gold", 100,
		func(s libraryStats) float64 { return s.maxGameHours }},
	{"marathon", "Marathon", "Play a single six-hour session", "Silver", 6,
		func(s libraryStats) float64 { return s.longestSession }},
	{"dedicated", "Dedicated", "Play seven days in a row", "Silver", 7,
		func(s libraryStats) float64 { return float64(s.longestStreak) }},
	{"unstoppable", "Unstoppable", "Play thirty days in a row", "Gold", 30,
		func(s libraryStats) float64 { return float64(s.longestStreak) }},
	{"genre-hopper", "Genre Hopper", "Play games from five genres", "Silver", 5,
		func(s libraryStats) float64 { return float64(s.genres) }},
	{"bargain-hunter", "Bargain Hunter", "Save 100 through discounts", "Bronze", 100,
		func(s libraryStats) float64 { return s.savings }},
	{"freeloader", "Freeloader", "Own five free games", "Bronze", 5,
		func(s libraryStats) float64 { return float64(s.free) }},
	{"critic", "Critic", "Rate 10 games", "Bronze", 10,
		func(s libraryStats) float64 { return float64(s.rated) }},
}

const recentFinishWindow = 90

func collectLibraryStats(games []models.Game, now time.Time) libraryStats {
	lib := owned(games)
	s := libraryStats{owned: len(lib)}
	genres := map[string]bool{}
	for _, g := range lib {
		h := valuation.TotalHours(g)
		s.maxGameHours = math.Max(s.maxGameHours, h)
		s.sessions += len(g.PlayLogs)
		s.savings += valuation.DiscountSavings(g)
		if valuation.IsFree(g) {
			s.free++
		}
		if g.Rating > 0 {
			s.rated++
		}
		if h > 0 {
			if genre := normalizeGenre(g.Genre); genre != "" {
				genres[genre] = true
			}
		}
		if g.Status == models.StatusCompleted {
			s.completed++
			if d, ok := daysSince(g.EndDate, now); ok && d >= 0 && d < recentFinishWindow {
				s.recentFinishes++
			}
		}
	}
	s.genres = len(genres)
	s.longestStreak = timeline.Streaks(games, now).Longest
	if ls := timeline.SessionPatterns(games, now.Location()).LongestSession; ls != nil {
		s.longestSession = ls.Hours
	}
	return s
}

// Trophies evaluates the whole catalogue, earned or not, in catalogue order.
func Trophies(games []models.Game, now time.Time) []models.Trophy {
	s := collectLibraryStats(games, now)
	out := make([]models.Trophy, 0, len(trophyCatalogue))
	for _, t := range trophyCatalogue {
		current := valuation.Round(t.current(s), 1)
		out = append(out, models.Trophy{
			ID:          t.id,
			Name:        t.name,
			Description: t.description,
			Tier:        t.tier,
			Earned:      current >= t.target,
			Current:     current,
			Target:      t.target,
			Progress:    valuation.Round(math.Min(current/t.target, 1)*100, 1),
		})
	}
	return out
}
