package summary

import (
	"github.com/vytor/gameshelf/internal/models"
	"github.com/vytor/gameshelf/internal/valuation"
)

// ranking describes one highlight pick: which games qualify, the value they
// are ranked by, and whether a higher value wins.
type ranking struct {
	qualifies func(g models.Game, hours float64) bool
	value     func(g models.Game) float64
	higher    bool
	places    int
}

var (
	bestValue = ranking{
		qualifies: func(g models.Game, hours float64) bool {
			return hours >= bestValueMinHours && !valuation.IsFree(g)
		},
		value:  valuation.CostPerHour,
		higher: false,
		places: 2,
	}
	worstValue = ranking{
		qualifies: func(g models.Game, hours float64) bool {
			return hours >= worstValueMinHours && !valuation.IsFree(g)
		},
		value:  valuation.CostPerHour,
		higher: true,
		places: 2,
	}
	mostPlayed = ranking{
		qualifies: func(_ models.Game, hours float64) bool { return hours > 0 },
		value:     valuation.TotalHours,
		higher:    true,
		places:    1,
	}
	highestRated = ranking{
		qualifies: func(g models.Game, hours float64) bool {
			return g.Rating > 0 && hours >= highestRatedMinHours
		},
		value:  func(g models.Game) float64 { return g.Rating },
		higher: true,
		places: 1,
	}
	bestROI = ranking{
		qualifies: func(_ models.Game, hours float64) bool { return hours >= bestROIMinHours },
		value:     valuation.ROI,
		higher:    true,
		places:    1,
	}
)

// BuildHighlights picks the highlight reel from owned games.
func BuildHighlights(games []models.Game) models.Highlights {
	return models.Highlights{
		BestValue:    pick(games, bestValue),
		WorstValue:   pick(games, worstValue),
		MostPlayed:   pick(games, mostPlayed),
		HighestRated: pick(games, highestRated),
		BestROI:      pick(games, bestROI),
	}
}

func pick(games []models.Game, r ranking) *models.GameHighlight {
	var best *models.Game
	var bestVal float64
	for i := range games {
		g := &games[i]
		if !valuation.IsOwned(*g) || !r.qualifies(*g, valuation.TotalHours(*g)) {
			continue
		}
		v := r.value(*g)
		if best == nil || beats(v, bestVal, r.higher) || (v == bestVal && before(*g, *best)) {
			best = g
			bestVal = v
		}
	}
	if best == nil {
		return nil
	}
	return &models.GameHighlight{
		GameID: best.ID,
		Name:   best.Name,
		Value:  valuation.Round(bestVal, r.places),
	}
}

func beats(v, current float64, higher bool) bool {
	if higher {
		return v > current
	}
	return v < current
}

// before orders ties by name, then id, so the pick never depends on input order.
func before(a, b models.Game) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.ID < b.ID
}
