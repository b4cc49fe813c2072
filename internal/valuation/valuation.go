// Package valuation computes per-game value metrics: cost per hour, blend
// score, value rating, ROI and completion duration.
package valuation

import (
	"math"
	"time"

	"github.com/vytor/gameshelf/internal/calendar"
	"github.com/vytor/gameshelf/internal/models"
)

const (
	// BaselineCostPerHour is the cost-per-hour at which the cost half of the
	// blend score bottoms out.
	BaselineCostPerHour = 3.5

	// ROICalibration scales rating-weighted hours per currency unit.
	ROICalibration = 10.0

	// BacklogHoursThreshold is the played-hours limit under which an
	// in-progress game still counts as backlog.
	BacklogHoursThreshold = 5.0
)

// roiWeights maps a rounded rating to its ROI weight. The curve is convex:
// a 10 is worth double a 9, a 9 is worth one and a half times an 8.
var roiWeights = map[int]float64{
	0:  0,
	1:  0.1,
	2:  0.2,
	3:  0.3,
	4:  0.45,
	5:  0.6,
	6:  0.8,
	7:  1.0,
	8:  1.5,
	9:  2.25,
	10: 4.5,
}

// TotalHours is baseline hours plus every logged session.
func TotalHours(g models.Game) float64 {
	total := g.Hours
	for _, l := range g.PlayLogs {
		total += l.Hours
	}
	return total
}

// CostPerHour is price divided by total hours, or 0 for unplayed games.
func CostPerHour(g models.Game) float64 {
	hours := TotalHours(g)
	if hours <= 0 {
		return 0
	}
	return g.Price / hours
}

// Rate buckets a cost-per-hour figure. Upper bounds are inclusive and are
// compared against the cent-rounded value, the same figure CalculateMetrics
// reports.
func Rate(costPerHour float64) models.ValueRating {
	costPerHour = Round(costPerHour, 2)
	switch {
	case costPerHour <= 1:
		return models.ValueExcellent
	case costPerHour <= 3:
		return models.ValueGood
	case costPerHour <= 5:
		return models.ValueFair
	default:
		return models.ValuePoor
	}
}

// NormalizedCost maps cost-per-hour onto 0..10 against the baseline.
func NormalizedCost(costPerHour float64) float64 {
	return math.Min(costPerHour/BaselineCostPerHour, 1) * 10
}

// BlendScore favors high rating and low cost-per-hour. Only the cost side
// is clamped.
func BlendScore(rating, costPerHour float64) float64 {
	return rating*10 + (10 - NormalizedCost(costPerHour))
}

// ROIWeight returns the weight for a rating, rounding to the nearest
// integer and clamping to the table ends.
func ROIWeight(rating float64) float64 {
	r := int(math.Round(rating))
	if r < 0 {
		r = 0
	}
	if r > 10 {
		r = 10
	}
	return roiWeights[r]
}

// ROI is the rating-weighted return on a purchase. Free games skip the
// price division and are left uncapped.
func ROI(g models.Game) float64 {
	weight := ROIWeight(g.Rating)
	hours := TotalHours(g)
	if g.Price <= 0 {
		return Round(weight*hours, 1)
	}
	return Round(weight*hours*ROICalibration/g.Price, 1)
}

// DaysToComplete spans start to end date, or nil when either is unknown.
func DaysToComplete(g models.Game) *int {
	start, ok := calendar.Parse(g.StartDate)
	if !ok {
		return nil
	}
	end, ok := calendar.Parse(g.EndDate)
	if !ok {
		return nil
	}
	days := calendar.DaysBetween(start, end)
	return &days
}

// CalculateMetrics derives every per-game figure in one pass.
func CalculateMetrics(g models.Game) models.GameMetrics {
	cph := CostPerHour(g)
	return models.GameMetrics{
		GameID:         g.ID,
		TotalHours:     Round(TotalHours(g), 2),
		CostPerHour:    Round(cph, 2),
		BlendScore:     Round(BlendScore(g.Rating, cph), 2),
		NormalizedCost: Round(NormalizedCost(cph), 2),
		ValueRating:    Rate(cph),
		ROI:            ROI(g),
		DaysToComplete: DaysToComplete(g),
	}
}

// IsOwned reports whether the game counts toward financial and time totals.
func IsOwned(g models.Game) bool {
	return g.Status != models.StatusWishlist
}

// IsFree reports a free acquisition: flagged as free or paid nothing.
func IsFree(g models.Game) bool {
	return g.AcquiredFree || g.Price <= 0
}

// IsBacklog reports an owned game still waiting for real play time.
func IsBacklog(g models.Game) bool {
	switch g.Status {
	case models.StatusNotStarted:
		return true
	case models.StatusInProgress:
		return TotalHours(g) < BacklogHoursThreshold
	default:
		return false
	}
}

// DiscountSavings is how much below the original price the game was bought.
func DiscountSavings(g models.Game) float64 {
	if g.OriginalPrice == nil || *g.OriginalPrice <= g.Price {
		return 0
	}
	return *g.OriginalPrice - g.Price
}

// DiscountPercent is the savings as a share of the original price.
func DiscountPercent(g models.Game) float64 {
	savings := DiscountSavings(g)
	if savings == 0 {
		return 0
	}
	return Round(savings / *g.OriginalPrice * 100, 1)
}

// LastPlayed is the latest valid session date in loc.
func LastPlayed(g models.Game, loc *time.Location) (time.Time, bool) {
	var last time.Time
	found := false
	for _, l := range g.PlayLogs {
		d, ok := calendar.ParseIn(l.Date, loc)
		if !ok {
			continue
		}
		if !found || d.After(last) {
			last = d
			found = true
		}
	}
	return last, found
}

// FirstPlayed is the earliest valid session date in loc.
func FirstPlayed(g models.Game, loc *time.Location) (time.Time, bool) {
	var first time.Time
	found := false
	for _, l := range g.PlayLogs {
		d, ok := calendar.ParseIn(l.Date, loc)
		if !ok {
			continue
		}
		if !found || d.Before(first) {
			first = d
			found = true
		}
	}
	return first, found
}

// Round rounds half away from zero to the given number of decimals.
func Round(v float64, places int) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Percent is part/whole*100 rounded to one decimal, 0 when whole is 0.
func Percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return Round(part/whole*100, 1)
}
