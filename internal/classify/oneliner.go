package classify

import (
	"fmt"
	"sort"
	"time"

	"github.com/vytor/gameshelf/internal/models"
	"github.com/vytor/gameshelf/internal/valuation"
)

type oneLinerRule struct {
	match func(f gameFacts) bool
	say   func(f gameFacts) string
}

func fixed(s string) func(gameFacts) string {
	return func(gameFacts) string { return s }
}

var oneLinerRules = []oneLinerRule{
	{func(f gameFacts) bool { return f.status() == models.StatusWishlist }, fixed("Still on the wishlist")},
	{func(f gameFacts) bool { return f.status() == models.StatusCompleted && f.rating() >= 9 },
		fixed("A masterpiece you saw through to the end")},
	{func(f gameFacts) bool { return f.status() == models.StatusCompleted },
		func(f gameFacts) string {
			if d := valuation.DaysToComplete(f.game); d != nil {
				return fmt.Sprintf("Finished in %d days", *d)
			}
			return "Done and dusted"
		}},
	{func(f gameFacts) bool { return f.status() == models.StatusAbandoned },
		func(f gameFacts) string { return fmt.Sprintf("Left behind after %.1f hours", f.hours) }},
	{func(f gameFacts) bool { return f.status() == models.StatusNotStarted && f.sincePurchase >= 365 },
		fixed("Gathering dust for over a year")},
	{func(f gameFacts) bool { return f.status() == models.StatusNotStarted }, fixed("Waiting for its moment")},
	{func(f gameFacts) bool { return f.sinceLast == 0 }, fixed("Played today")},
	{func(f gameFacts) bool { return f.playedWithin(7) }, fixed("In heavy rotation")},
	{func(f gameFacts) bool { return f.hours >= 20 && valuation.CostPerHour(f.game) <= 1 },
		fixed("Paying for itself")},
	{func(f gameFacts) bool { return f.sinceLast > 30 },
		func(f gameFacts) string { return fmt.Sprintf("Untouched for %d days", f.sinceLast) }},
	{func(gameFacts) bool { return true },
		func(f gameFacts) string { return fmt.Sprintf("%.1f hours and counting", f.hours) }},
}

// OneLiner is a short caption for a game card; the first matching rule
// speaks.
func OneLiner(g models.Game, now time.Time) string {
	f := factsFor(g, now)
	for _, r := range oneLinerRules {
		if r.match(f) {
			return r.say(f)
		}
	}
	return ""
}

// DefaultNextUpLimit caps NextUp when no positive limit is given.
const DefaultNextUpLimit = 5

// NextUp ranks unfinished owned games by completion probability. In-progress
// games win ties over unstarted ones.
func NextUp(games []models.Game, now time.Time, limit int) []models.NextUpPick {
	if limit <= 0 {
		limit = DefaultNextUpLimit
	}
	type candidate struct {
		pick       models.NextUpPick
		inProgress bool
	}
	var cands []candidate
	for _, g := range owned(games) {
		if g.Status != models.StatusInProgress && g.Status != models.StatusNotStarted {
			continue
		}
		p := CompletionProbability(g, games, now)
		reason := "A fresh pick"
		if len(p.Adjustments) > 0 && p.Adjustments[0].Impact > 0 {
			reason = p.Adjustments[0].Reason
		}
		cands = append(cands, candidate{
			pick:       models.NextUpPick{GameID: g.ID, Name: g.Name, Probability: p.Probability, Reason: reason},
			inProgress: g.Status == models.StatusInProgress,
		})
	}
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.pick.Probability != b.pick.Probability {
			return a.pick.Probability > b.pick.Probability
		}
		if a.inProgress != b.inProgress {
			return a.inProgress
		}
		return a.pick.Name < b.pick.Name
	})

	out := make([]models.NextUpPick, 0, limit)
	for i := 0; i < len(cands) && i < limit; i++ {
		out = append(out, cands[i].pick)
	}
	return out
}
