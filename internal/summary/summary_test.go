package summary_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/gameshelf/internal/models"
	"github.com/vytor/gameshelf/internal/summary"
	tu "github.com/vytor/gameshelf/internal/testutil"
)

func library() []models.Game {
	return []models.Game{
		tu.NewGame("Elden Ring", tu.WithStatus(models.StatusCompleted), tu.WithPrice(60), tu.WithOriginalPrice(70),
			tu.WithHours(100), tu.WithRating(10), tu.WithGenre("RPG"), tu.WithPlatform("PC"),
			tu.WithSource("Steam"), tu.Purchased("2023-03-01")),
		tu.NewGame("Hades", tu.WithStatus(models.StatusCompleted), tu.WithPrice(25), tu.WithHours(50),
			tu.WithRating(9), tu.WithGenre("Roguelike"), tu.WithPlatform("Switch"), tu.Purchased("2024-02-10")),
		tu.NewGame("Anthem", tu.WithStatus(models.StatusAbandoned), tu.WithPrice(60), tu.WithHours(3),
			tu.WithRating(3), tu.WithGenre("Shooter"), tu.WithPlatform("PC"), tu.Purchased("2024-01-05")),
		tu.NewGame("Rocket League", tu.WithStatus(models.StatusInProgress), tu.Free(), tu.WithHours(200),
			tu.WithRating(8), tu.WithPlatform("PC"), tu.WithSubscription("Epic")),
		tu.NewGame("Starfield", tu.WithPrice(70), tu.WithGenre("RPG"), tu.WithPlatform("Xbox"),
			tu.WithSubscription("Game Pass")),
		tu.NewGame("Hollow Knight Silksong", tu.WithStatus(models.StatusWishlist), tu.WithPrice(20), tu.WithGenre("Metroidvania")),
	}
}

func TestBuild_Totals(t *testing.T) {
	s := summary.Build(library())

	assert.Equal(t, 6, s.TotalGames)
	assert.Equal(t, 5, s.OwnedGames)
	assert.Equal(t, models.StatusCounts{NotStarted: 1, InProgress: 1, Completed: 2, Wishlist: 1, Abandoned: 1}, s.Counts)

	assert.Equal(t, 215.0, s.TotalSpent, "wishlist price must not count as spent")
	assert.Equal(t, 20.0, s.WishlistValue)
	assert.Equal(t, 70.0, s.BacklogValue)
	assert.Equal(t, 1, s.BacklogCount)
	assert.Equal(t, 43.0, s.AveragePrice)
	assert.Equal(t, 10.0, s.DiscountSavings)
	assert.Equal(t, 1, s.FreeGames)

	assert.Equal(t, 353.0, s.TotalHours)
	assert.Equal(t, 70.6, s.AverageHoursPerGame)
	assert.Equal(t, 0.61, s.AverageCostPerHour)
	// average over the four played games: (10 + 9 + 3 + 8) / 4
	assert.Equal(t, 7.5, s.AverageRating)
	assert.Equal(t, 40.0, s.CompletionRate)
}

func TestBuild_EmptyLibrary(t *testing.T) {
	s := summary.Build(nil)
	assert.Equal(t, 0, s.OwnedGames)
	assert.Equal(t, 0.0, s.CompletionRate)
	assert.Equal(t, 0.0, s.AveragePrice)
	assert.Equal(t, 0.0, s.AverageCostPerHour)
	assert.Nil(t, s.Highlights.BestValue)
	assert.Nil(t, s.Highlights.MostPlayed)
	assert.Empty(t, s.Breakdowns.HoursByGenre)
}

func TestBuild_Idempotent(t *testing.T) {
	games := library()
	assert.Equal(t, summary.Build(games), summary.Build(games))
}

func TestHighlights(t *testing.T) {
	h := summary.Build(library()).Highlights

	require.NotNil(t, h.BestValue)
	assert.Equal(t, "Hades", h.BestValue.Name, "free games are never best value")
	assert.Equal(t, 0.5, h.BestValue.Value)

	require.NotNil(t, h.WorstValue)
	assert.Equal(t, "Anthem", h.WorstValue.Name)
	assert.Equal(t, 20.0, h.WorstValue.Value)

	require.NotNil(t, h.MostPlayed)
	assert.Equal(t, "Rocket League", h.MostPlayed.Name)

	require.NotNil(t, h.HighestRated)
	assert.Equal(t, "Elden Ring", h.HighestRated.Name)

	require.NotNil(t, h.BestROI)
	assert.Equal(t, "Rocket League", h.BestROI.Name)
	assert.Equal(t, 300.0, h.BestROI.Value)
}

func TestHighlights_MinimumHours(t *testing.T) {
	games := []models.Game{
		tu.NewGame("Barely Touched", tu.WithPrice(2), tu.WithHours(4)),
		tu.NewGame("Tiny", tu.WithPrice(30), tu.WithHours(1)),
	}
	h := summary.BuildHighlights(games)
	assert.Nil(t, h.BestValue, "best value needs five hours")
	require.NotNil(t, h.WorstValue)
	assert.Equal(t, "Barely Touched", h.WorstValue.Name, "worst value needs two hours")
}

func TestHighlights_TiesAreOrderIndependent(t *testing.T) {
	a := tu.NewGame("Alpha", tu.WithPrice(10), tu.WithHours(10), tu.WithRating(8))
	b := tu.NewGame("Beta", tu.WithPrice(10), tu.WithHours(10), tu.WithRating(8))

	first := summary.BuildHighlights([]models.Game{a, b})
	second := summary.BuildHighlights([]models.Game{b, a})
	assert.Equal(t, first, second)
	assert.Equal(t, "Alpha", first.MostPlayed.Name)
}

func TestBreakdowns(t *testing.T) {
	b := summary.Build(library()).Breakdowns

	assert.Equal(t, models.Breakdown{"RPG": 100, "Roguelike": 50, "Shooter": 3, summary.Unknown: 200}, b.HoursByGenre)
	assert.Equal(t, 130.0, b.SpendByGenre["RPG"])
	assert.Equal(t, 3.0, b.CountByPlatform["PC"])
	assert.Equal(t, 60.0, b.SpendBySource["Steam"])
	assert.Equal(t, 155.0, b.SpendBySource[summary.Unknown])
	assert.Equal(t, models.Breakdown{"2023": 60, "2024": 85, summary.Unknown: 70}, b.SpendByYear)
	assert.Equal(t, 200.0, b.HoursBySubscription["Epic"])
	assert.NotContains(t, b.CountByGenre, "Metroidvania", "wishlist games are excluded")
}

func TestCompletionRate(t *testing.T) {
	assert.Equal(t, 40.0, summary.CompletionRate(library()))
	assert.Equal(t, 0.0, summary.CompletionRate([]models.Game{tu.NewGame("Only Wish", tu.WithStatus(models.StatusWishlist))}))
}
