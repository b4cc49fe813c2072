// Package summary folds a game collection into library-wide totals,
// highlight picks and category breakdowns.
package summary

import (
	"github.com/vytor/gameshelf/internal/models"
	"github.com/vytor/gameshelf/internal/valuation"
)

// Minimum total hours before a game may be picked for a highlight. They keep
// a barely played game from dominating a ranking.
const (
	bestValueMinHours    = 5.0
	worstValueMinHours   = 2.0
	highestRatedMinHours = 1.0
	bestROIMinHours      = 2.0
)

// Build computes the library summary. Wishlist games are excluded from every
// financial and time total and reported only through WishlistValue.
func Build(games []models.Game) models.AnalyticsSummary {
	var s models.AnalyticsSummary
	s.TotalGames = len(games)

	var ratedSum float64
	var ratedCount int

	for _, g := range games {
		countStatus(&s.Counts, g.Status)

		if !valuation.IsOwned(g) {
			s.WishlistValue += g.Price
			continue
		}

		hours := valuation.TotalHours(g)
		s.OwnedGames++
		s.TotalSpent += g.Price
		s.TotalHours += hours
		s.DiscountSavings += valuation.DiscountSavings(g)
		if valuation.IsFree(g) {
			s.FreeGames++
		}
		if valuation.IsBacklog(g) {
			s.BacklogCount++
			s.BacklogValue += g.Price
		}
		if hours > 0 {
			ratedSum += g.Rating
			ratedCount++
		}
	}

	if s.OwnedGames > 0 {
		s.AveragePrice = s.TotalSpent / float64(s.OwnedGames)
		s.AverageHoursPerGame = s.TotalHours / float64(s.OwnedGames)
	}
	if s.TotalHours > 0 {
		s.AverageCostPerHour = s.TotalSpent / s.TotalHours
	}
	if ratedCount > 0 {
		s.AverageRating = ratedSum / float64(ratedCount)
	}
	s.CompletionRate = valuation.Percent(float64(s.Counts.Completed), float64(s.OwnedGames))

	s.TotalSpent = valuation.Round(s.TotalSpent, 2)
	s.BacklogValue = valuation.Round(s.BacklogValue, 2)
	s.WishlistValue = valuation.Round(s.WishlistValue, 2)
	s.AveragePrice = valuation.Round(s.AveragePrice, 2)
	s.AverageCostPerHour = valuation.Round(s.AverageCostPerHour, 2)
	s.DiscountSavings = valuation.Round(s.DiscountSavings, 2)
	s.TotalHours = valuation.Round(s.TotalHours, 1)
	s.AverageHoursPerGame = valuation.Round(s.AverageHoursPerGame, 1)
	s.AverageRating = valuation.Round(s.AverageRating, 1)

	s.Highlights = BuildHighlights(games)
	s.Breakdowns = BuildBreakdowns(games)
	return s
}

func countStatus(c *models.StatusCounts, status models.GameStatus) {
	switch status {
	case models.StatusNotStarted:
		c.NotStarted++
	case models.StatusInProgress:
		c.InProgress++
	case models.StatusCompleted:
		c.Completed++
	case models.StatusWishlist:
		c.Wishlist++
	case models.StatusAbandoned:
		c.Abandoned++
	}
}

// CompletionRate is completed / owned * 100, 0 for an empty library.
func CompletionRate(games []models.Game) float64 {
	var owned, completed int
	for _, g := range games {
		if !valuation.IsOwned(g) {
			continue
		}
		owned++
		if g.Status == models.StatusCompleted {
			completed++
		}
	}
	return valuation.Percent(float64(completed), float64(owned))
}
