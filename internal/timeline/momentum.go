package timeline

import (
	"math"
	"sort"
	"time"

	"github.com/vytor/gameshelf/internal/calendar"
	"github.com/vytor/gameshelf/internal/models"
)

const (
	// MomentumThreshold is the relative change that separates a steady pace
	// from acceleration or deceleration.
	MomentumThreshold = 0.20

	momentumWindows = 6
)

// rollingWeek is the seven-day window ending back*7 days before now.
func rollingWeek(now time.Time, back int) calendar.Range {
	end := calendar.EndOfDay(calendar.AddDays(now, -7*back))
	return calendar.Range{Start: calendar.DaysAgo(now, 7*back+6), End: end}
}

func classifyMomentum(recent, previous float64) models.MomentumTrend {
	if previous == 0 {
		if recent > 0 {
			return models.MomentumAccelerating
		}
		return models.MomentumSteady
	}
	change := (recent - previous) / previous
	switch {
	case change >= MomentumThreshold:
		return models.MomentumAccelerating
	case change <= -MomentumThreshold:
		return models.MomentumDecelerating
	default:
		return models.MomentumSteady
	}
}

// Momentum compares the last three of six rolling weeks against the first
// three, and each game's last seven days against the seven before.
func Momentum(games []models.Game, now time.Time) models.MomentumData {
	all := collectSessions(games, now.Location())

	weekly := make([]float64, momentumWindows)
	for back := 0; back < momentumWindows; back++ {
		weekly[momentumWindows-1-back] = round1(hoursIn(all, rollingWeek(now, back)))
	}
	var previous, recent float64
	for i, h := range weekly {
		if i < momentumWindows/2 {
			previous += h
		} else {
			recent += h
		}
	}

	return models.MomentumData{
		Weekly:        weekly,
		Recent:        round1(recent),
		Previous:      round1(previous),
		ChangePercent: changePercent(recent, previous),
		Trend:         classifyMomentum(recent, previous),
		Games:         gameMomentum(all, now),
	}
}

func gameMomentum(all []session, now time.Time) []models.GameMomentum {
	thisWeek := within(all, rollingWeek(now, 0))
	lastWeek := within(all, rollingWeek(now, 1))

	rows := map[string]*models.GameMomentum{}
	row := func(s session) *models.GameMomentum {
		r, ok := rows[s.game.ID]
		if !ok {
			r = &models.GameMomentum{GameID: s.game.ID, Name: s.game.Name}
			rows[s.game.ID] = r
		}
		return r
	}
	for _, s := range thisWeek {
		row(s).ThisWeek += s.log.Hours
	}
	for _, s := range lastWeek {
		row(s).LastWeek += s.log.Hours
	}

	out := make([]models.GameMomentum, 0, len(rows))
	for _, r := range rows {
		r.ChangePercent = changePercent(r.ThisWeek, r.LastWeek)
		r.Trend = classifyMomentum(r.ThisWeek, r.LastWeek)
		r.ThisWeek = round1(r.ThisWeek)
		r.LastWeek = round1(r.LastWeek)
		out = append(out, *r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		di := math.Abs(out[i].ThisWeek - out[i].LastWeek)
		dj := math.Abs(out[j].ThisWeek - out[j].LastWeek)
		if di != dj {
			return di > dj
		}
		return out[i].Name < out[j].Name
	})
	return out
}
