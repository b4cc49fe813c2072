package timeline

import (
	"sort"
	"time"

	"github.com/vytor/gameshelf/internal/calendar"
	"github.com/vytor/gameshelf/internal/models"
	"github.com/vytor/gameshelf/internal/valuation"
)

// PeriodStats aggregates the sessions dated between start and end, both
// inclusive calendar days in start's location.
func PeriodStats(games []models.Game, start, end time.Time) models.PeriodStats {
	end = end.In(start.Location())
	r := calendar.Range{Start: calendar.StartOfDay(start), End: calendar.EndOfDay(end)}
	return periodStats(collectSessions(games, start.Location()), r)
}

// StatsForLastDays covers the n calendar days ending today.
func StatsForLastDays(games []models.Game, days int, now time.Time) models.PeriodStats {
	return periodStats(collectSessions(games, now.Location()), calendar.LastDays(now, days))
}

func periodStats(all []session, r calendar.Range) models.PeriodStats {
	in := within(all, r)
	byGame := map[string]*models.GameHours{}
	for _, s := range in {
		row, ok := byGame[s.game.ID]
		if !ok {
			row = &models.GameHours{GameID: s.game.ID, Name: s.game.Name, Genre: s.game.Genre}
			byGame[s.game.ID] = row
		}
		row.Hours += s.log.Hours
		row.Sessions++
	}

	rows := make([]models.GameHours, 0, len(byGame))
	for _, row := range byGame {
		row.Hours = round1(row.Hours)
		rows = append(rows, *row)
	}
	sortGameHours(rows)

	total := totalHours(in)
	stats := models.PeriodStats{
		Start:         calendar.Format(r.Start),
		End:           calendar.Format(r.End),
		TotalHours:    round1(total),
		TotalSessions: len(in),
		UniqueGames:   len(rows),
		Games:         rows,
	}
	if len(in) > 0 {
		stats.AverageSessionLength = valuation.Round(total/float64(len(in)), 2)
	}
	if len(rows) > 0 {
		top := rows[0]
		stats.MostPlayed = &top
	}
	return stats
}

// sortGameHours orders rows by hours descending, then name.
func sortGameHours(rows []models.GameHours) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Hours != rows[j].Hours {
			return rows[i].Hours > rows[j].Hours
		}
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].GameID < rows[j].GameID
	})
}

// DailyHours maps every day between start and end with play to its hours.
func DailyHours(games []models.Game, start, end time.Time) map[string]float64 {
	end = end.In(start.Location())
	r := calendar.Range{Start: calendar.StartOfDay(start), End: calendar.EndOfDay(end)}
	return dailyHours(within(collectSessions(games, start.Location()), r))
}

func dailyHours(sessions []session) map[string]float64 {
	out := map[string]float64{}
	for _, s := range sessions {
		out[calendar.Format(s.date)] += s.log.Hours
	}
	for k, v := range out {
		out[k] = round1(v)
	}
	return out
}

// days returns one row per calendar day of r, in order.
func days(sessions []session, r calendar.Range) []models.DayBreakdown {
	n := r.Days()
	out := make([]models.DayBreakdown, n)
	base := calendar.DayIndex(r.Start)
	for i := range out {
		d := calendar.AddDays(r.Start, i)
		out[i] = models.DayBreakdown{Date: calendar.Format(d), Weekday: d.Weekday().String()}
	}
	for _, s := range sessions {
		i := calendar.DayIndex(s.date) - base
		if i < 0 || i >= n {
			continue
		}
		out[i].Hours += s.log.Hours
		out[i].Sessions++
	}
	for i := range out {
		out[i].Hours = round1(out[i].Hours)
	}
	return out
}

// busiestDay picks the day with most hours; the earliest wins ties. Nil when
// nothing was played.
func busiestDay(rows []models.DayBreakdown) *models.DayBreakdown {
	var best *models.DayBreakdown
	for i := range rows {
		if rows[i].Hours <= 0 {
			continue
		}
		if best == nil || rows[i].Hours > best.Hours {
			best = &rows[i]
		}
	}
	if best == nil {
		return nil
	}
	day := *best
	return &day
}

func changePercent(current, previous float64) *float64 {
	if previous == 0 {
		return nil
	}
	v := valuation.Round((current-previous)/previous*100, 1)
	return &v
}

func trendOf(current, previous float64) models.Trend {
	c, p := round1(current), round1(previous)
	switch {
	case c > p:
		return models.TrendUp
	case c < p:
		return models.TrendDown
	default:
		return models.TrendFlat
	}
}

func compare(current, previous float64) models.Comparison {
	return models.Comparison{
		PreviousHours: round1(previous),
		ChangeHours:   round1(current - previous),
		ChangePercent: changePercent(current, previous),
		Trend:         trendOf(current, previous),
	}
}

// rollingWindows is how many preceding windows feed the rolling average.
const rollingWindows = 4

// compareRolling contrasts current with the mean of the windows returned by
// window(1..rollingWindows), each counted further back in time.
func compareRolling(all []session, current float64, window func(back int) calendar.Range) models.RollingComparison {
	var sum float64
	for back := 1; back <= rollingWindows; back++ {
		sum += hoursIn(all, window(back))
	}
	avg := sum / rollingWindows
	return models.RollingComparison{
		AverageHours:  round1(avg),
		Windows:       rollingWindows,
		ChangePercent: changePercent(current, avg),
		Trend:         trendOf(current, avg),
	}
}
