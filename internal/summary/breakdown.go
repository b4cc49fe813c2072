package summary

import (
	"strconv"

	"github.com/vytor/gameshelf/internal/calendar"
	"github.com/vytor/gameshelf/internal/models"
	"github.com/vytor/gameshelf/internal/valuation"
)

// Unknown labels games with no value for a breakdown category.
const Unknown = "Unknown"

// KeyFunc extracts a category label from a game.
type KeyFunc func(models.Game) string

// ValueFunc extracts the number aggregated per category.
type ValueFunc func(models.Game) float64

var (
	ByGenre        KeyFunc = func(g models.Game) string { return g.Genre }
	ByPlatform     KeyFunc = func(g models.Game) string { return g.Platform }
	BySource       KeyFunc = func(g models.Game) string { return g.PurchaseSource }
	ByFranchise    KeyFunc = func(g models.Game) string { return g.Franchise }
	BySubscription KeyFunc = func(g models.Game) string { return g.SubscriptionSource }
	ByYear         KeyFunc = purchaseYear

	Hours ValueFunc = valuation.TotalHours
	Spend ValueFunc = func(g models.Game) float64 { return g.Price }
	Count ValueFunc = func(models.Game) float64 { return 1 }
)

func purchaseYear(g models.Game) string {
	d, ok := calendar.Parse(g.DatePurchased)
	if !ok {
		return ""
	}
	return strconv.Itoa(d.Year())
}

// Group sums value per category over owned games. Values are rounded to two
// decimals; an empty label becomes Unknown.
func Group(games []models.Game, key KeyFunc, value ValueFunc) models.Breakdown {
	out := models.Breakdown{}
	for _, g := range games {
		if !valuation.IsOwned(g) {
			continue
		}
		label := key(g)
		if label == "" {
			label = Unknown
		}
		out[label] += value(g)
	}
	for k, v := range out {
		out[k] = valuation.Round(v, 2)
	}
	return out
}

// BuildBreakdowns computes every standard category breakdown.
func BuildBreakdowns(games []models.Game) models.Breakdowns {
	return models.Breakdowns{
		HoursByGenre:        Group(games, ByGenre, Hours),
		SpendByGenre:        Group(games, ByGenre, Spend),
		CountByGenre:        Group(games, ByGenre, Count),
		HoursByPlatform:     Group(games, ByPlatform, Hours),
		SpendByPlatform:     Group(games, ByPlatform, Spend),
		CountByPlatform:     Group(games, ByPlatform, Count),
		SpendBySource:       Group(games, BySource, Spend),
		CountBySource:       Group(games, BySource, Count),
		SpendByYear:         Group(games, ByYear, Spend),
		CountByYear:         Group(games, ByYear, Count),
		HoursByFranchise:    Group(games, ByFranchise, Hours),
		CountByFranchise:    Group(games, ByFranchise, Count),
		HoursBySubscription: Group(games, BySubscription, Hours),
		CountBySubscription: Group(games, BySubscription, Count),
	}
}
