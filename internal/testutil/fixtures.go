package testutil

import (
	"fmt"
	"strings"

	"github.com/vytor/gameshelf/internal/models"
)

// GameOption customizes a fixture game.
type GameOption func(*models.Game)

// NewGame builds an owned, not-started fixture game with a stable id derived
// from its name.
func NewGame(name string, opts ...GameOption) models.Game {
	g := models.Game{
		ID:        "game-" + strings.ToLower(strings.ReplaceAll(name, " ", "-")),
		UserID:    "user-1",
		Name:      name,
		Status:    models.StatusNotStarted,
		CreatedAt: "2024-01-01",
		UpdatedAt: "2024-01-01",
	}
	for _, opt := range opts {
		opt(&g)
	}
	return g
}

func WithStatus(s models.GameStatus) GameOption {
	return func(g *models.Game) { g.Status = s }
}

func WithPrice(p float64) GameOption {
	return func(g *models.Game) { g.Price = p }
}

func WithOriginalPrice(p float64) GameOption {
	return func(g *models.Game) { g.OriginalPrice = &p }
}

func Free() GameOption {
	return func(g *models.Game) {
		g.Price = 0
		g.AcquiredFree = true
	}
}

func WithHours(h float64) GameOption {
	return func(g *models.Game) { g.Hours = h }
}

func WithRating(r float64) GameOption {
	return func(g *models.Game) { g.Rating = r }
}

func WithGenre(genre string) GameOption {
	return func(g *models.Game) { g.Genre = genre }
}

func WithPlatform(p string) GameOption {
	return func(g *models.Game) { g.Platform = p }
}

func WithFranchise(f string) GameOption {
	return func(g *models.Game) { g.Franchise = f }
}

func WithSource(src string) GameOption {
	return func(g *models.Game) { g.PurchaseSource = src }
}

func WithSubscription(sub string) GameOption {
	return func(g *models.Game) { g.SubscriptionSource = sub }
}

func Purchased(date string) GameOption {
	return func(g *models.Game) { g.DatePurchased = date }
}

func Started(date string) GameOption {
	return func(g *models.Game) { g.StartDate = date }
}

func Finished(date string) GameOption {
	return func(g *models.Game) { g.EndDate = date }
}

// WithSession appends a play session.
func WithSession(date string, hours float64) GameOption {
	return WithMoodSession(date, hours, "")
}

// WithMoodSession appends a play session tagged with a mood.
func WithMoodSession(date string, hours float64, mood string) GameOption {
	return func(g *models.Game) {
		g.PlayLogs = append(g.PlayLogs, models.PlayLog{
			ID:    fmt.Sprintf("%s-log-%d", g.ID, len(g.PlayLogs)+1),
			Date:  date,
			Hours: hours,
			Mood:  mood,
		})
	}
}

func WithUser(userID string) GameOption {
	return func(g *models.Game) { g.UserID = userID }
}
