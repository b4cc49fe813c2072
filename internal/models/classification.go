package models

type ArchetypeScore struct {
	Archetype string  `json:"archetype"`
	Score     float64 `json:"score"`
}

// GamingPersonality is the library-level archetype and the inputs behind it.
type GamingPersonality struct {
	Type           string           `json:"type"`
	Description    string           `json:"description"`
	Scores         []ArchetypeScore `json:"scores"`
	CompletionRate float64          `json:"completion_rate"`
	AverageHours   float64          `json:"average_hours"`
	PlayedGames    int              `json:"played_games"`
	Genres         int              `json:"genres"`
}

type RelationshipStatus struct {
	GameID      string `json:"game_id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

type RarityTier string

const (
	RarityCommon    RarityTier = "Common"
	RarityUncommon  RarityTier = "Uncommon"
	RarityRare      RarityTier = "Rare"
	RarityEpic      RarityTier = "Epic"
	RarityLegendary RarityTier = "Legendary"
)

type CardRarity struct {
	GameID string     `json:"game_id"`
	Tier   RarityTier `json:"tier"`
	Score  float64    `json:"score"`
}

type Trophy struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Tier        string  `json:"tier"`
	Earned      bool    `json:"earned"`
	Current     float64 `json:"current"`
	Target      float64 `json:"target"`
	Progress    float64 `json:"progress"`
}

type ProbabilityAdjustment struct {
	Factor string  `json:"factor"`
	Impact float64 `json:"impact"`
	Reason string  `json:"reason"`
}

type CompletionProbabilityData struct {
	GameID      string                  `json:"game_id"`
	Name        string                  `json:"name"`
	Probability int                     `json:"probability"`
	Verdict     string                  `json:"verdict"`
	Adjustments []ProbabilityAdjustment `json:"adjustments"`
}

type NextUpPick struct {
	GameID      string `json:"game_id"`
	Name        string `json:"name"`
	Probability int    `json:"probability"`
	Reason      string `json:"reason"`
}
