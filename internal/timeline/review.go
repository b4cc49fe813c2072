package timeline

import (
	"fmt"
	"time"

	"github.com/vytor/gameshelf/internal/calendar"
	"github.com/vytor/gameshelf/internal/models"
	"github.com/vytor/gameshelf/internal/valuation"
)

// label is one rule of an ordered threshold list; the first match names the
// period.
type label struct {
	name  string
	match func(stats models.PeriodStats, split models.PlaySplit) bool
}

func firstLabel(rules []label, stats models.PeriodStats, split models.PlaySplit) string {
	for _, r := range rules {
		if r.match(stats, split) {
			return r.name
		}
	}
	return ""
}

var weekVibes = []label{
	{"Taking a Break", func(s models.PeriodStats, _ models.PlaySplit) bool { return s.TotalHours == 0 }},
	{"Power Gamer", func(s models.PeriodStats, _ models.PlaySplit) bool { return s.TotalHours >= 25 }},
	{"Laser Focused", func(s models.PeriodStats, _ models.PlaySplit) bool { return s.UniqueGames == 1 && s.TotalHours > 10 }},
	{"Explorer", func(s models.PeriodStats, _ models.PlaySplit) bool { return s.UniqueGames >= 5 }},
	{"Weekend Warrior", func(_ models.PeriodStats, p models.PlaySplit) bool { return p.WeekendShare >= 70 }},
	{"Casual Dabbler", func(s models.PeriodStats, _ models.PlaySplit) bool { return s.TotalHours < 3 }},
	{"Steady Player", func(models.PeriodStats, models.PlaySplit) bool { return true }},
}

var monthStyles = []label{
	{"Dormant", func(s models.PeriodStats, _ models.PlaySplit) bool { return s.TotalHours == 0 }},
	{"Power Gamer", func(s models.PeriodStats, _ models.PlaySplit) bool { return s.TotalHours >= 80 }},
	{"Laser Focused", func(s models.PeriodStats, _ models.PlaySplit) bool { return s.UniqueGames == 1 && s.TotalHours > 30 }},
	{"Explorer", func(s models.PeriodStats, _ models.PlaySplit) bool { return s.UniqueGames >= 8 }},
	{"Weekend Warrior", func(_ models.PeriodStats, p models.PlaySplit) bool { return p.WeekendShare >= 70 }},
	{"Casual", func(s models.PeriodStats, _ models.PlaySplit) bool { return s.TotalHours < 10 }},
	{"Balanced", func(models.PeriodStats, models.PlaySplit) bool { return true }},
}

// WeekInReview reports the Monday-to-Sunday week weeksAgo weeks before the
// current one.
func WeekInReview(games []models.Game, now time.Time, weeksAgo int) models.WeekInReviewData {
	all := collectSessions(games, now.Location())
	week := calendar.WeekBounds(now, weeksAgo)
	in := within(all, week)

	stats := periodStats(all, week)
	dayRows := days(in, week)
	split := playSplit(in)
	current := totalHours(in)

	return models.WeekInReviewData{
		Start:          calendar.Format(week.Start),
		End:            calendar.Format(week.End),
		Stats:          stats,
		Days:           dayRows,
		BusiestDay:     busiestDay(dayRows),
		Split:          split,
		GenreMix:       genreMix(in),
		MoodMix:        moodMix(in),
		Completed:      completedIn(games, week),
		Started:        startedIn(games, week),
		LongestSession: longestSession(in),
		VsPrevious:     compare(current, hoursIn(all, calendar.WeekBounds(now, weeksAgo+1))),
		VsRollingAverage: compareRolling(all, current, func(back int) calendar.Range {
			return calendar.WeekBounds(now, weeksAgo+back)
		}),
		Vibe: firstLabel(weekVibes, stats, split),
	}
}

// MonthInReview reports the calendar month monthsAgo months before the
// current one.
func MonthInReview(games []models.Game, now time.Time, monthsAgo int) models.MonthInReviewData {
	all := collectSessions(games, now.Location())
	month := calendar.MonthBounds(now, monthsAgo)
	in := within(all, month)

	stats := periodStats(all, month)
	dayRows := days(in, month)
	split := playSplit(in)
	current := totalHours(in)
	daily := dailyHours(in)

	purchased := purchasedIn(games, month)
	var spent float64
	for _, ref := range purchased {
		for _, g := range games {
			if g.ID == ref.GameID {
				spent += g.Price
				break
			}
		}
	}

	return models.MonthInReviewData{
		Month:          calendar.MonthKey(month.Start),
		Start:          calendar.Format(month.Start),
		End:            calendar.Format(month.End),
		Stats:          stats,
		Weeks:          monthWeeks(in, month),
		DailyHours:     daily,
		ActiveDays:     len(daily),
		BusiestDay:     busiestDay(dayRows),
		Split:          split,
		GenreMix:       genreMix(in),
		MoodMix:        moodMix(in),
		Completed:      completedIn(games, month),
		Started:        startedIn(games, month),
		Purchased:      purchased,
		AmountSpent:    valuation.Round(spent, 2),
		VsPrevious:     compare(current, hoursIn(all, calendar.MonthBounds(now, monthsAgo+1))),
		VsRollingAverage: compareRolling(all, current, func(back int) calendar.Range {
			return calendar.MonthBounds(now, monthsAgo+back)
		}),
		Style: firstLabel(monthStyles, stats, split),
	}
}

// monthWeeks splits the month into Monday-start weeks clipped to the month.
func monthWeeks(sessions []session, month calendar.Range) []models.WeekBreakdown {
	var out []models.WeekBreakdown
	for start := month.Start; !start.After(month.End); {
		week := calendar.WeekBounds(start, 0)
		end := week.End
		if end.After(month.End) {
			end = month.End
		}
		r := calendar.Range{Start: start, End: end}
		in := within(sessions, r)
		out = append(out, models.WeekBreakdown{
			Start:    calendar.Format(start),
			End:      calendar.Format(end),
			Hours:    round1(totalHours(in)),
			Sessions: len(in),
		})
		start = calendar.StartOfDay(calendar.AddDays(end, 1))
	}
	return out
}

// topGamesInYear caps the per-game rows shown in a yearly recap.
const topGamesInYear = 5

// YearInReview wraps up a calendar year. Dates are read in now's location.
func YearInReview(games []models.Game, year int, now time.Time) models.YearlyWrappedData {
	loc := now.Location()
	all := collectSessions(games, loc)
	yr := calendar.YearRange(year, loc)
	in := within(all, yr)
	stats := periodStats(all, yr)

	months := make([]models.MonthlyActivity, 12)
	for m := time.January; m <= time.December; m++ {
		ms := periodStats(in, calendar.MonthRange(year, m, loc))
		months[m-1] = models.MonthlyActivity{
			Month:       int(m),
			Name:        m.String(),
			Hours:       ms.TotalHours,
			Sessions:    ms.TotalSessions,
			UniqueGames: ms.UniqueGames,
		}
	}
	var busiest *models.MonthlyActivity
	for i := range months {
		if months[i].Hours > 0 && (busiest == nil || months[i].Hours > busiest.Hours) {
			busiest = &months[i]
		}
	}
	if busiest != nil {
		m := *busiest
		busiest = &m
	}

	top := stats.Games
	if len(top) > topGamesInYear {
		top = top[:topGamesInYear]
	}

	completed := completedIn(games, yr)
	var ratingSum float64
	var rated int
	for _, ref := range completed {
		for _, g := range games {
			if g.ID == ref.GameID && g.Rating > 0 {
				ratingSum += g.Rating
				rated++
				break
			}
		}
	}

	purchased := purchasedIn(games, yr)
	var spent float64
	for _, ref := range purchased {
		for _, g := range games {
			if g.ID == ref.GameID {
				spent += g.Price
				break
			}
		}
	}

	mix := genreMix(in)
	out := models.YearlyWrappedData{
		Year:             year,
		TotalHours:       stats.TotalHours,
		TotalSessions:    stats.TotalSessions,
		UniqueGames:      stats.UniqueGames,
		DaysPlayed:       len(dailyHours(in)),
		Months:           months,
		BusiestMonth:     busiest,
		TopGames:         top,
		TopGenre:         topLabel(mix),
		GenreMix:         mix,
		FavoriteWeekday:  favoriteWeekday(in),
		Completed:        completed,
		StartedCount:     len(startedIn(games, yr)),
		PurchasedCount:   len(purchased),
		AmountSpent:      valuation.Round(spent, 2),
		LongestStreak:    longestRun(in).length,
		LongestSession:   longestSession(in),
		VsPreviousYear:   compare(totalHours(in), hoursIn(all, calendar.YearRange(year-1, loc))),
		VsRollingAverage: compareRolling(all, totalHours(in), func(back int) calendar.Range {
			return calendar.YearRange(year-back, loc)
		}),
	}
	if rated > 0 {
		out.AverageCompletedRating = round1(ratingSum / float64(rated))
	}
	if len(in) > 0 {
		out.FirstSession = sessionRef(in[0])
		out.LastSession = sessionRef(in[len(in)-1])
	}
	out.Headline = yearHeadline(out)
	return out
}

func yearHeadline(y models.YearlyWrappedData) string {
	switch {
	case y.TotalSessions == 0:
		return fmt.Sprintf("A quiet %d: no sessions logged", y.Year)
	case len(y.Completed) > 0:
		return fmt.Sprintf("%d: %.1f hours across %d games, %d finished", y.Year, y.TotalHours, y.UniqueGames, len(y.Completed))
	default:
		return fmt.Sprintf("%d: %.1f hours across %d games", y.Year, y.TotalHours, y.UniqueGames)
	}
}

func hoursByWeekday(sessions []session) map[string]float64 {
	out := map[string]float64{}
	for _, s := range sessions {
		out[s.date.Weekday().String()] += s.log.Hours
	}
	for k, v := range out {
		out[k] = round1(v)
	}
	return out
}

func favoriteWeekday(sessions []session) string {
	return topLabel(hoursByWeekday(sessions))
}
