package classify

import (
	"math"

	"github.com/vytor/gameshelf/internal/models"
	"github.com/vytor/gameshelf/internal/valuation"
)

const (
	rarityRatingWeight     = 40
	rarityValueWeight      = 30
	rarityHoursWeight      = 20
	rarityCompletionWeight = 10
	rarityHoursCap         = 100
)

var rarityTiers = []struct {
	min  float64
	tier models.RarityTier
}{
	{85, models.RarityLegendary},
	{70, models.RarityEpic},
	{50, models.RarityRare},
	{30, models.RarityUncommon},
	{0, models.RarityCommon},
}

// valueTier scores the value rating on 0..1. Unplayed games have no value
// tier yet.
func valueTier(g models.Game) float64 {
	if valuation.TotalHours(g) <= 0 {
		return 0
	}
	switch valuation.Rate(valuation.CostPerHour(g)) {
	case models.ValueExcellent:
		return 1
	case models.ValueGood:
		return 0.75
	case models.ValueFair:
		return 0.5
	default:
		return 0.25
	}
}

// Rarity grades a game as a collectible card.
func Rarity(g models.Game) models.CardRarity {
	rating := clamp(g.Rating, 0, 10) / 10
	hours := math.Min(valuation.TotalHours(g), rarityHoursCap) / rarityHoursCap
	var completion float64
	if g.Status == models.StatusCompleted {
		completion = 1
	}
	score := valuation.Round(rating*rarityRatingWeight+
		valueTier(g)*rarityValueWeight+
		hours*rarityHoursWeight+
		completion*rarityCompletionWeight, 1)

	out := models.CardRarity{GameID: g.ID, Score: score, Tier: models.RarityCommon}
	for _, t := range rarityTiers {
		if score >= t.min {
			out.Tier = t.tier
			break
		}
	}
	return out
}
