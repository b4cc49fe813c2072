// Package forecast projects the library forward in time with simple linear
// rates: when the backlog clears, how much the year will cost, and when an
// in-progress game is likely to be finished.
package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/vytor/gameshelf/internal/calendar"
	"github.com/vytor/gameshelf/internal/classify"
	"github.com/vytor/gameshelf/internal/models"
	"github.com/vytor/gameshelf/internal/valuation"
)

const (
	// TrailingMonths is the window that completion and acquisition rates
	// are measured over.
	TrailingMonths = 6
	// DaysPerMonth converts monthly rates into days.
	DaysPerMonth = 30

	paceWindowDays = 28
)

func trailingWindow(now time.Time) calendar.Range {
	start := calendar.StartOfDay(now).AddDate(0, -TrailingMonths, 0)
	return calendar.Range{Start: start, End: calendar.EndOfDay(now)}
}

func dateIn(s string, r calendar.Range) bool {
	d, ok := calendar.ParseIn(s, r.Start.Location())
	return ok && r.Contains(d)
}

// BacklogDoomsday estimates how long the backlog takes to clear at the pace
// of the trailing six months. Net rate (completions minus acquisitions) is
// used when positive, the gross completion rate otherwise. With no
// completions at all the projection is unbounded.
func BacklogDoomsday(games []models.Game, now time.Time) models.BacklogDoomsdayData {
	window := trailingWindow(now)
	var backlog, completions, acquisitions int
	for _, g := range games {
		if !valuation.IsOwned(g) {
			continue
		}
		if valuation.IsBacklog(g) {
			backlog++
		}
		if g.Status == models.StatusCompleted && dateIn(g.EndDate, window) {
			completions++
		}
		if dateIn(g.DatePurchased, window) {
			acquisitions++
		}
	}

	completionRate := float64(completions) / TrailingMonths
	acquisitionRate := float64(acquisitions) / TrailingMonths
	net := completionRate - acquisitionRate
	out := models.BacklogDoomsdayData{
		BacklogSize:          backlog,
		CompletionsPerMonth:  valuation.Round(completionRate, 2),
		AcquisitionsPerMonth: valuation.Round(acquisitionRate, 2),
		NetRatePerMonth:      valuation.Round(net, 2),
	}

	switch {
	case backlog == 0:
		out.ClearanceDate = calendar.Format(now)
		out.Message = "Your backlog is clear."
		return out
	case completions == 0:
		out.DaysRemaining = math.Inf(1)
		out.Never = true
		out.Message = fmt.Sprintf("No games completed in the last %d months: at this rate the backlog never clears.", TrailingMonths)
		return out
	}

	rate := net
	if rate <= 0 {
		rate = completionRate
		out.UsedGrossRate = true
	}
	days := math.Ceil(float64(backlog) / rate * DaysPerMonth)
	out.DaysRemaining = days
	out.ClearanceDate = calendar.Format(calendar.AddDays(now, int(days)))
	if out.UsedGrossRate {
		out.Message = fmt.Sprintf("You buy games faster than you finish them. Ignoring new purchases, the backlog clears in %.0f days.", days)
	} else {
		out.Message = fmt.Sprintf("At your current pace the backlog clears in %.0f days.", days)
	}
	return out
}

// Spending projects this year's spend linearly from the year to date.
func Spending(games []models.Game, now time.Time) models.SpendingForecast {
	loc := now.Location()
	year := now.Year()
	ytd := calendar.Range{Start: calendar.YearRange(year, loc).Start, End: calendar.EndOfDay(now)}
	lastYear := calendar.YearRange(year-1, loc)
	trailing := calendar.LastDays(now, 365)

	out := models.SpendingForecast{Year: year}
	var spent, previous, twelve float64
	for _, g := range games {
		if !valuation.IsOwned(g) {
			continue
		}
		if dateIn(g.DatePurchased, ytd) {
			spent += g.Price
			out.PurchasesThisYear++
		}
		if dateIn(g.DatePurchased, lastYear) {
			previous += g.Price
		}
		if dateIn(g.DatePurchased, trailing) {
			twelve += g.Price
		}
	}

	daysInYear := calendar.YearRange(year, loc).Days()
	months := float64(now.YearDay()) / float64(daysInYear) * 12
	monthly := spent / months
	projected := monthly * 12

	out.YearToDateSpent = valuation.Round(spent, 2)
	out.MonthsElapsed = valuation.Round(months, 2)
	out.MonthlyAverage = valuation.Round(monthly, 2)
	out.ProjectedAnnual = valuation.Round(projected, 2)
	out.LastYearSpent = valuation.Round(previous, 2)
	out.TrailingTwelve = valuation.Round(twelve, 2)
	if previous > 0 {
		change := valuation.Round((projected-previous)/previous*100, 1)
		out.ProjectedChange = &change
	}
	return out
}

// estimatedLength prefers the average length of the user's own completed
// games in the same genre over the generic genre table.
func estimatedLength(g models.Game, games []models.Game) float64 {
	var total float64
	var n int
	for _, other := range games {
		if other.ID == g.ID || other.Status != models.StatusCompleted || other.Genre == "" {
			continue
		}
		if classify.NormalizeTitle(other.Genre) != classify.NormalizeTitle(g.Genre) {
			continue
		}
		if h := valuation.TotalHours(other); h > 0 {
			total += h
			n++
		}
	}
	if n > 0 {
		return total / float64(n)
	}
	return classify.EstimatedHours(g.Genre)
}

// FinishEstimate projects when an unfinished game will be done from the
// weekly pace of the last four weeks.
func FinishEstimate(g models.Game, games []models.Game, now time.Time) models.FinishEstimate {
	played := valuation.TotalHours(g)
	out := models.FinishEstimate{GameID: g.ID, Name: g.Name, HoursPlayed: valuation.Round(played, 1)}
	if g.Status == models.StatusCompleted {
		out.Message = "Already completed."
		return out
	}

	estimate := estimatedLength(g, games)
	left := math.Max(estimate-played, 0)
	out.EstimatedTotal = valuation.Round(estimate, 1)
	out.HoursLeft = valuation.Round(left, 1)

	window := calendar.LastDays(now, paceWindowDays)
	var recent float64
	for _, l := range g.PlayLogs {
		if dateIn(l.Date, window) {
			recent += l.Hours
		}
	}
	pace := recent / (paceWindowDays / 7)
	out.WeeklyPace = valuation.Round(pace, 1)

	switch {
	case left == 0:
		days := 0
		out.DaysRemaining = &days
		out.FinishDate = calendar.Format(now)
		out.Message = "Already past the usual length; the credits could roll any day."
	case pace == 0:
		out.Message = "No sessions in the last four weeks to project a finish date."
	default:
		days := int(math.Ceil(left / pace * 7))
		out.DaysRemaining = &days
		out.FinishDate = calendar.Format(calendar.AddDays(now, days))
		out.Message = fmt.Sprintf("About %.1f hours left at %.1f hours a week.", left, pace)
	}
	return out
}
