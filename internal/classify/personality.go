package classify

import (
	"math"

	"github.com/vytor/gameshelf/internal/models"
	"github.com/vytor/gameshelf/internal/valuation"
)

// FreshStart is reported for libraries with nothing played yet.
const FreshStart = "Fresh Start"

type libraryProfile struct {
	completionRate float64
	averageHours   float64
	played         int
	genres         int
}

type archetype struct {
	name        string
	description string
	score       func(p libraryProfile) float64
}

// archetypes are listed in tie-break order.
var archetypes = []archetype{
	{
		name:        "The Completionist",
		description: "You finish what you start.",
		score: func(p libraryProfile) float64 {
			return p.completionRate*0.8 + math.Min(float64(p.played), 10)*2
		},
	},
	{
		name:        "The Deep Diver",
		description: "You sink dozens of hours into the worlds you love.",
		score: func(p libraryProfile) float64 {
			return math.Min(p.averageHours, 100) * 0.9
		},
	},
	{
		name:        "The Explorer",
		description: "No genre is off limits.",
		score: func(p libraryProfile) float64 {
			return math.Min(float64(p.genres)*10, 70) + math.Min(float64(p.played), 15)*2
		},
	},
	{
		name:        "The Sampler",
		description: "You try a little of everything and move on quickly.",
		score: func(p libraryProfile) float64 {
			return math.Min(float64(p.played)*4, 60) + math.Max(0, 40-p.averageHours)
		},
	},
	{
		name:        "The Specialist",
		description: "You know what you like and stick with it.",
		score: func(p libraryProfile) float64 {
			if p.played < 3 || p.genres == 0 {
				return 0
			}
			return math.Max(0, 90-float64(p.genres)*15) + math.Min(p.averageHours, 30)*0.3
		},
	},
	{
		name:        "The Casual",
		description: "Gaming is a pleasant side dish, not the main course.",
		score: func(p libraryProfile) float64 {
			return math.Max(0, 60-p.averageHours*2) + math.Max(0, 40-float64(p.played)*4)
		},
	},
	{
		name:        "The Balanced Gamer",
		description: "A healthy mix of finishing, exploring and committing.",
		score: func(p libraryProfile) float64 {
			return math.Max(0, 80-math.Abs(p.completionRate-50)-math.Abs(p.averageHours-25))
		},
	},
}

func profile(games []models.Game) libraryProfile {
	lib := owned(games)
	var p libraryProfile
	var hours float64
	completed := 0
	genres := map[string]bool{}
	for _, g := range lib {
		if g.Status == models.StatusCompleted {
			completed++
		}
		h := valuation.TotalHours(g)
		if h <= 0 {
			continue
		}
		p.played++
		hours += h
		if genre := normalizeGenre(g.Genre); genre != "" {
			genres[genre] = true
		}
	}
	p.completionRate = valuation.Percent(float64(completed), float64(len(lib)))
	if p.played > 0 {
		p.averageHours = valuation.Round(hours/float64(p.played), 1)
	}
	p.genres = len(genres)
	return p
}

// Personality scores every archetype and picks the highest. Earlier
// archetypes win ties.
func Personality(games []models.Game) models.GamingPersonality {
	p := profile(games)
	out := models.GamingPersonality{
		CompletionRate: p.completionRate,
		AverageHours:   p.averageHours,
		PlayedGames:    p.played,
		Genres:         p.genres,
	}
	if p.played == 0 {
		out.Type = FreshStart
		out.Description = "Play something and your gaming personality will take shape."
		out.Scores = []models.ArchetypeScore{}
		return out
	}

	best := -1
	bestScore := math.Inf(-1)
	for i, a := range archetypes {
		s := valuation.Round(a.score(p), 1)
		out.Scores = append(out.Scores, models.ArchetypeScore{Archetype: a.name, Score: s})
		if s > bestScore {
			best = i
			bestScore = s
		}
	}
	out.Type = archetypes[best].name
	out.Description = archetypes[best].description
	return out
}
