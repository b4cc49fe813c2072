package classify

import (
	"sort"
	"strings"
	"unicode"

	"github.com/vytor/gameshelf/internal/models"
	"github.com/vytor/gameshelf/internal/valuation"
)

// NormalizeTitle lowercases a title and drops everything but letters and
// digits, so "DOOM: Eternal" and "Doom Eternal" compare equal.
func NormalizeTitle(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MatchDeals pairs wishlist games with the cheapest deal carrying the same
// title. A wishlist price acts as the target price.
func MatchDeals(games []models.Game, deals []models.Deal) []models.DealMatch {
	cheapest := map[string]models.Deal{}
	for _, d := range deals {
		key := NormalizeTitle(d.Title)
		if key == "" {
			continue
		}
		if cur, ok := cheapest[key]; !ok || d.SalePrice < cur.SalePrice {
			cheapest[key] = d
		}
	}

	out := []models.DealMatch{}
	for _, g := range games {
		if g.Status != models.StatusWishlist {
			continue
		}
		d, ok := cheapest[NormalizeTitle(g.Name)]
		if !ok {
			continue
		}
		out = append(out, models.DealMatch{
			GameID:        g.ID,
			Name:          g.Name,
			Deal:          d,
			WishlistPrice: g.Price,
			Savings:       valuation.Round(d.NormalPrice-d.SalePrice, 2),
			BelowTarget:   g.Price > 0 && d.SalePrice <= g.Price,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Savings != out[j].Savings {
			return out[i].Savings > out[j].Savings
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// criticGap is the point difference, on a 0-100 scale, that counts as
// disagreeing with critics.
const criticGap = 15

// CompareCritics sets the user's rating, scaled to 100, against the critic
// score from a metadata lookup.
func CompareCritics(g models.Game, meta models.Metadata) models.CriticComparison {
	out := models.CriticComparison{
		GameID:          g.ID,
		Name:            g.Name,
		YourRating:      g.Rating,
		CriticScore:     meta.CriticScore,
		CommunityRating: meta.CommunityRating,
	}
	if g.Rating <= 0 || meta.CriticScore <= 0 {
		out.Verdict = "Not enough data"
		return out
	}
	out.Difference = valuation.Round(g.Rating*10-meta.CriticScore, 1)
	switch {
	case out.Difference >= criticGap:
		out.Verdict = "You liked it more than critics"
	case out.Difference <= -criticGap:
		out.Verdict = "Critics liked it more than you"
	default:
		out.Verdict = "In line with critics"
	}
	return out
}
