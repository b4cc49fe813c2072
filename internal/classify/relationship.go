package classify

import (
	"sort"
	"time"

	"github.com/vytor/gameshelf/internal/calendar"
	"github.com/vytor/gameshelf/internal/models"
	"github.com/vytor/gameshelf/internal/valuation"
)

// gameFacts are the inputs every relationship rule reads.
type gameFacts struct {
	game          models.Game
	hours         float64
	sinceLast     int // -1 when never played
	sincePurchase int // -1 when unknown
	sinceStart    int // -1 when unknown
	sessions      int
	recentHours   float64 // last 7 days
	recentVisits  int     // sessions in the last 14 days
}

func (f gameFacts) status() models.GameStatus { return f.game.Status }

func (f gameFacts) rating() float64 { return f.game.Rating }

func (f gameFacts) playedWithin(days int) bool {
	return f.sinceLast >= 0 && f.sinceLast <= days
}

func factsFor(g models.Game, now time.Time) gameFacts {
	f := gameFacts{
		game:          g,
		hours:         valuation.TotalHours(g),
		sinceLast:     daysSinceLastSession(g, now),
		sincePurchase: -1,
		sinceStart:    -1,
		sessions:      len(g.PlayLogs),
		recentHours:   hoursBetween(g, now, 6, 0),
		recentVisits:  sessionsWithin(g, now, 14),
	}
	if d, ok := daysSince(g.DatePurchased, now); ok {
		f.sincePurchase = d
	}
	if d, ok := daysSince(g.StartDate, now); ok {
		f.sinceStart = d
	} else if first, ok := valuation.FirstPlayed(g, now.Location()); ok {
		f.sinceStart = calendar.DayIndex(now) - calendar.DayIndex(first)
	}
	return f
}

type relationshipRule struct {
	status      string
	description string
	match       func(f gameFacts) bool
}

// relationshipRules is evaluated top to bottom; the first match wins, so
// narrower conditions come before broader ones.
var relationshipRules = []relationshipRule{
	{"Crush", "Brand new and you can't stop coming back.", func(f gameFacts) bool {
		return f.status() == models.StatusInProgress && f.playedWithin(3) && f.hours < 10 && f.recentVisits >= 3
	}},
	{"Soulmate", "Finished, adored and played for ages.", func(f gameFacts) bool {
		return f.status() == models.StatusCompleted && f.rating() >= 9 && f.hours >= 50
	}},
	{"Buyer's Remorse", "Paid for it, barely played it, didn't like it.", func(f gameFacts) bool {
		return f.game.Price > 0 && f.rating() > 0 && f.rating() <= 4 && f.hours < 5
	}},
	{"Bad Breakup", "Walked away and never looked back.", func(f gameFacts) bool {
		return f.status() == models.StatusAbandoned && f.rating() > 0 && f.rating() <= 4
	}},
	{"Drifted Apart", "It just stopped clicking.", func(f gameFacts) bool {
		return f.status() == models.StatusAbandoned
	}},
	{"True Love", "Highly rated with real time invested.", func(f gameFacts) bool {
		return f.rating() >= 9 && f.hours >= 20
	}},
	{"Regrettable Fling", "Saw it through, wished you hadn't.", func(f gameFacts) bool {
		return f.status() == models.StatusCompleted && f.rating() > 0 && f.rating() <= 5
	}},
	{"Can't Let Go", "Credits rolled, but you're still playing.", func(f gameFacts) bool {
		return f.status() == models.StatusCompleted && f.playedWithin(30)
	}},
	{"Happily Ever After", "A story with a proper ending.", func(f gameFacts) bool {
		return f.status() == models.StatusCompleted
	}},
	{"Forgotten", "Bought over a year ago and never touched.", func(f gameFacts) bool {
		return f.status() == models.StatusNotStarted && f.sincePurchase >= 365
	}},
	{"Awaiting First Date", "Fresh purchase, first session pending.", func(f gameFacts) bool {
		return f.status() == models.StatusNotStarted && f.sincePurchase >= 0 && f.sincePurchase <= 30
	}},
	{"Waiting in the Wings", "On the shelf until the time is right.", func(f gameFacts) bool {
		return f.status() == models.StatusNotStarted
	}},
	{"Obsessed", "Fifteen hours or more in the last week.", func(f gameFacts) bool {
		return f.status() == models.StatusInProgress && f.recentHours >= 15
	}},
	{"Honeymoon Phase", "Started in the last two weeks.", func(f gameFacts) bool {
		return f.status() == models.StatusInProgress && f.sinceStart >= 0 && f.sinceStart <= 14
	}},
	{"Going Steady", "A regular part of your week.", func(f gameFacts) bool {
		return f.status() == models.StatusInProgress && f.playedWithin(7) && f.sessions >= 5
	}},
	{"Casual Dating", "You drop in now and then.", func(f gameFacts) bool {
		return f.status() == models.StatusInProgress && f.playedWithin(14)
	}},
	{"Taking a Break", "Some time apart, nothing serious.", func(f gameFacts) bool {
		return f.status() == models.StatusInProgress && f.playedWithin(60)
	}},
	{"Ghosted", "Two months without a word.", func(f gameFacts) bool {
		return f.status() == models.StatusInProgress && f.sinceLast > 60
	}},
	{"It's Complicated", "In progress, but no sessions to show for it.", func(f gameFacts) bool {
		return f.status() == models.StatusInProgress
	}},
	{"Just Met", "Too early to tell.", func(gameFacts) bool { return true }},
}

// Relationship labels one game with the first matching rule.
func Relationship(g models.Game, now time.Time) models.RelationshipStatus {
	f := factsFor(g, now)
	for _, r := range relationshipRules {
		if r.match(f) {
			return models.RelationshipStatus{GameID: g.ID, Name: g.Name, Status: r.status, Description: r.description}
		}
	}
	// unreachable: the last rule always matches
	return models.RelationshipStatus{GameID: g.ID, Name: g.Name}
}

// Relationships labels every owned game, ordered by name.
func Relationships(games []models.Game, now time.Time) []models.RelationshipStatus {
	lib := owned(games)
	out := make([]models.RelationshipStatus, 0, len(lib))
	for _, g := range lib {
		out = append(out, Relationship(g, now))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].GameID < out[j].GameID
	})
	return out
}
