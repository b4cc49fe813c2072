// Package timeline computes period-bounded views over play sessions: period
// stats, week/month/year in review, streaks and momentum.
//
// Session dates are parsed in the location of the "now" (or explicit
// location) handed in by the caller, so day boundaries follow the user's
// calendar rather than UTC.
package timeline

import (
	"math"
	"sort"
	"time"

	"github.com/vytor/gameshelf/internal/calendar"
	"github.com/vytor/gameshelf/internal/models"
	"github.com/vytor/gameshelf/internal/valuation"
)

type session struct {
	game *models.Game
	log  models.PlayLog
	date time.Time
}

// collectSessions flattens play logs of owned games into date order. Logs
// with unparsable dates or no hours are skipped.
func collectSessions(games []models.Game, loc *time.Location) []session {
	var out []session
	for i := range games {
		g := &games[i]
		if !valuation.IsOwned(*g) {
			continue
		}
		for _, l := range g.PlayLogs {
			if l.Hours <= 0 {
				continue
			}
			d, ok := calendar.ParseIn(l.Date, loc)
			if !ok {
				continue
			}
			out = append(out, session{game: g, log: l, date: d})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.date.Equal(b.date) {
			return a.date.Before(b.date)
		}
		if a.game.Name != b.game.Name {
			return a.game.Name < b.game.Name
		}
		return a.log.ID < b.log.ID
	})
	return out
}

func within(all []session, r calendar.Range) []session {
	var out []session
	for _, s := range all {
		if r.Contains(s.date) {
			out = append(out, s)
		}
	}
	return out
}

func totalHours(sessions []session) float64 {
	var total float64
	for _, s := range sessions {
		total += s.log.Hours
	}
	return total
}

func hoursIn(all []session, r calendar.Range) float64 {
	return totalHours(within(all, r))
}

func round1(v float64) float64 {
	return valuation.Round(v, 1)
}

func sessionRef(s session) *models.SessionRef {
	return &models.SessionRef{
		GameID: s.game.ID,
		Name:   s.game.Name,
		Date:   calendar.Format(s.date),
		Hours:  round1(s.log.Hours),
		Mood:   s.log.Mood,
	}
}

// longestSession returns the session with the most hours; earlier sessions
// win ties.
func longestSession(sessions []session) *models.SessionRef {
	var best *session
	for i := range sessions {
		if best == nil || sessions[i].log.Hours > best.log.Hours {
			best = &sessions[i]
		}
	}
	if best == nil {
		return nil
	}
	return sessionRef(*best)
}

func genreMix(sessions []session) models.Breakdown {
	mix := models.Breakdown{}
	for _, s := range sessions {
		genre := s.game.Genre
		if genre == "" {
			genre = "Unknown"
		}
		mix[genre] += s.log.Hours
	}
	for k, v := range mix {
		mix[k] = round1(v)
	}
	return mix
}

func moodMix(sessions []session) map[string]int {
	mix := map[string]int{}
	for _, s := range sessions {
		if s.log.Mood != "" {
			mix[s.log.Mood]++
		}
	}
	return mix
}

func playSplit(sessions []session) models.PlaySplit {
	var weekday, weekend float64
	for _, s := range sessions {
		if calendar.IsWeekend(s.date) {
			weekend += s.log.Hours
		} else {
			weekday += s.log.Hours
		}
	}
	return models.PlaySplit{
		WeekdayHours: round1(weekday),
		WeekendHours: round1(weekend),
		WeekendShare: valuation.Percent(weekend, weekday+weekend),
	}
}

// topLabel returns the key with the largest value, ties broken by label.
func topLabel(m map[string]float64) string {
	best := ""
	bestVal := math.Inf(-1)
	for k, v := range m {
		if v > bestVal || (v == bestVal && k < best) {
			best = k
			bestVal = v
		}
	}
	if bestVal <= 0 {
		return ""
	}
	return best
}

// gameEvents lists owned games whose date field falls inside r.
func gameEvents(games []models.Game, r calendar.Range, date func(models.Game) string, keep func(models.Game) bool) []models.GameRef {
	out := []models.GameRef{}
	loc := r.Start.Location()
	for _, g := range games {
		if !valuation.IsOwned(g) || !keep(g) {
			continue
		}
		d, ok := calendar.ParseIn(date(g), loc)
		if !ok || !r.Contains(d) {
			continue
		}
		out = append(out, models.GameRef{GameID: g.ID, Name: g.Name, Date: calendar.Format(d)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func completedIn(games []models.Game, r calendar.Range) []models.GameRef {
	return gameEvents(games, r,
		func(g models.Game) string { return g.EndDate },
		func(g models.Game) bool { return g.Status == models.StatusCompleted })
}

func startedIn(games []models.Game, r calendar.Range) []models.GameRef {
	return gameEvents(games, r,
		func(g models.Game) string { return g.StartDate },
		func(models.Game) bool { return true })
}

func purchasedIn(games []models.Game, r calendar.Range) []models.GameRef {
	return gameEvents(games, r,
		func(g models.Game) string { return g.DatePurchased },
		func(models.Game) bool { return true })
}
