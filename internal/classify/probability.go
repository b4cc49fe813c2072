package classify

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/vytor/gameshelf/internal/models"
	"github.com/vytor/gameshelf/internal/valuation"
)

const (
	probabilityBase = 50
	probabilityMin  = 5
	probabilityMax  = 95

	// DefaultGenreHours is the completion estimate for unknown genres.
	DefaultGenreHours = 20.0
)

// genreHours is the typical time to finish a game of each genre.
var genreHours = map[string]float64{
	"action":           15,
	"action-adventure": 25,
	"adventure":        15,
	"fighting":         10,
	"fps":              12,
	"horror":           10,
	"indie":            10,
	"jrpg":             70,
	"metroidvania":     15,
	"mmorpg":           100,
	"open world":       55,
	"platformer":       10,
	"puzzle":           8,
	"racing":           15,
	"roguelike":        30,
	"roguelite":        30,
	"rpg":              60,
	"sandbox":          50,
	"shooter":          12,
	"simulation":       40,
	"sports":           20,
	"strategy":         35,
	"survival":         40,
	"visual novel":     20,
}

// EstimatedHours returns the typical completion time for a genre, falling
// back to DefaultGenreHours.
func EstimatedHours(genre string) float64 {
	if h, ok := genreHours[normalizeGenre(genre)]; ok {
		return h
	}
	return DefaultGenreHours
}

type probabilityFactor func(g models.Game, lib []models.Game, now time.Time) (models.ProbabilityAdjustment, bool)

var probabilityFactors = []probabilityFactor{
	statusFactor,
	genreHistoryFactor,
	recencyFactor,
	sessionTrendFactor,
	hoursInvestedFactor,
	ratingFactor,
	libraryTendencyFactor,
}

func statusFactor(g models.Game, _ []models.Game, _ time.Time) (models.ProbabilityAdjustment, bool) {
	if g.Status != models.StatusAbandoned {
		return models.ProbabilityAdjustment{}, false
	}
	return models.ProbabilityAdjustment{Factor: "status", Impact: -30, Reason: "Marked as abandoned"}, true
}

func genreHistoryFactor(g models.Game, lib []models.Game, _ time.Time) (models.ProbabilityAdjustment, bool) {
	genre := normalizeGenre(g.Genre)
	if genre == "" {
		return models.ProbabilityAdjustment{}, false
	}
	var completed, decided int
	for _, other := range lib {
		if other.ID == g.ID || normalizeGenre(other.Genre) != genre {
			continue
		}
		switch other.Status {
		case models.StatusCompleted:
			completed++
			decided++
		case models.StatusAbandoned:
			decided++
		}
	}
	if decided < 2 {
		return models.ProbabilityAdjustment{}, false
	}
	rate := float64(completed) / float64(decided)
	return models.ProbabilityAdjustment{
		Factor: "genre_history",
		Impact: valuation.Round((rate-0.5)*30, 1),
		Reason: fmt.Sprintf("You finished %d of %d %s games you decided on", completed, decided, g.Genre),
	}, true
}

func recencyFactor(g models.Game, _ []models.Game, now time.Time) (models.ProbabilityAdjustment, bool) {
	since := daysSinceLastSession(g, now)
	adj := models.ProbabilityAdjustment{Factor: "recency"}
	switch {
	case since < 0:
		if g.Status != models.StatusNotStarted {
			return adj, false
		}
		adj.Impact, adj.Reason = -10, "Never played"
	case since <= 7:
		adj.Impact, adj.Reason = 15, "Played in the last week"
	case since <= 30:
		adj.Impact, adj.Reason = 5, "Played in the last month"
	case since > 90:
		adj.Impact, adj.Reason = -20, fmt.Sprintf("Untouched for %d days", since)
	default:
		return adj, false
	}
	return adj, true
}

func sessionTrendFactor(g models.Game, _ []models.Game, now time.Time) (models.ProbabilityAdjustment, bool) {
	recent := hoursBetween(g, now, 13, 0)
	previous := hoursBetween(g, now, 27, 14)
	if recent == 0 && previous == 0 {
		return models.ProbabilityAdjustment{}, false
	}
	adj := models.ProbabilityAdjustment{Factor: "session_trend"}
	switch {
	case previous == 0 || (recent-previous)/previous >= 0.2:
		adj.Impact, adj.Reason = 10, "Playing more than two weeks ago"
	case (recent-previous)/previous <= -0.2:
		adj.Impact, adj.Reason = -10, "Playing less than two weeks ago"
	default:
		return adj, false
	}
	return adj, true
}

func hoursInvestedFactor(g models.Game, _ []models.Game, _ time.Time) (models.ProbabilityAdjustment, bool) {
	hours := valuation.TotalHours(g)
	if hours <= 0 {
		return models.ProbabilityAdjustment{}, false
	}
	estimate := EstimatedHours(g.Genre)
	progress := hours / estimate
	adj := models.ProbabilityAdjustment{Factor: "hours_invested"}
	switch {
	case progress > 1.5:
		adj.Impact, adj.Reason = -5, fmt.Sprintf("Already well past the usual %.0f hours", estimate)
	case progress >= 0.75:
		adj.Impact, adj.Reason = 15, fmt.Sprintf("Close to the usual %.0f hours", estimate)
	case progress >= 0.4:
		adj.Impact, adj.Reason = 5, fmt.Sprintf("About halfway through a typical %.0f hours", estimate)
	case progress < 0.1:
		adj.Impact, adj.Reason = -5, "Barely scratched the surface"
	default:
		return adj, false
	}
	return adj, true
}

func ratingFactor(g models.Game, _ []models.Game, _ time.Time) (models.ProbabilityAdjustment, bool) {
	adj := models.ProbabilityAdjustment{Factor: "rating"}
	switch {
	case g.Rating >= 8:
		adj.Impact, adj.Reason = 10, "You rate it highly"
	case g.Rating > 0 && g.Rating <= 4:
		adj.Impact, adj.Reason = -15, "You rate it poorly"
	default:
		return adj, false
	}
	return adj, true
}

func libraryTendencyFactor(_ models.Game, lib []models.Game, _ time.Time) (models.ProbabilityAdjustment, bool) {
	if len(lib) < 5 {
		return models.ProbabilityAdjustment{}, false
	}
	completed := 0
	for _, g := range lib {
		if g.Status == models.StatusCompleted {
			completed++
		}
	}
	rate := valuation.Percent(float64(completed), float64(len(lib)))
	adj := models.ProbabilityAdjustment{Factor: "library_tendency"}
	switch {
	case rate >= 50:
		adj.Impact, adj.Reason = 10, fmt.Sprintf("You finish %.0f%% of your games", rate)
	case rate < 20:
		adj.Impact, adj.Reason = -10, fmt.Sprintf("You finish only %.0f%% of your games", rate)
	default:
		return adj, false
	}
	return adj, true
}

func verdict(p int) string {
	switch {
	case p >= 75:
		return "Very likely"
	case p >= 50:
		return "Likely"
	case p >= 30:
		return "Uncertain"
	default:
		return "Unlikely"
	}
}

// CompletionProbability estimates the chance g gets finished. It starts at
// 50, applies every factor that has an opinion and clamps to [5, 95].
// Completed games sit at the ceiling. Adjustments are ordered by absolute
// impact.
func CompletionProbability(g models.Game, games []models.Game, now time.Time) models.CompletionProbabilityData {
	out := models.CompletionProbabilityData{GameID: g.ID, Name: g.Name, Adjustments: []models.ProbabilityAdjustment{}}
	if g.Status == models.StatusCompleted {
		out.Probability = probabilityMax
		out.Verdict = "Already completed"
		return out
	}

	lib := owned(games)
	score := float64(probabilityBase)
	for _, factor := range probabilityFactors {
		if adj, ok := factor(g, lib, now); ok {
			out.Adjustments = append(out.Adjustments, adj)
			score += adj.Impact
		}
	}
	sort.SliceStable(out.Adjustments, func(i, j int) bool {
		a, b := math.Abs(out.Adjustments[i].Impact), math.Abs(out.Adjustments[j].Impact)
		if a != b {
			return a > b
		}
		return out.Adjustments[i].Factor < out.Adjustments[j].Factor
	})

	out.Probability = int(math.Round(clamp(score, probabilityMin, probabilityMax)))
	out.Verdict = verdict(out.Probability)
	return out
}
