package models

// GameCard bundles everything the per-game insight view shows.
type GameCard struct {
	Game         Game                      `json:"game"`
	Metrics      GameMetrics               `json:"metrics"`
	OneLiner     string                    `json:"one_liner"`
	Relationship RelationshipStatus        `json:"relationship"`
	Rarity       CardRarity                `json:"rarity"`
	Completion   CompletionProbabilityData `json:"completion"`
	Finish       *FinishEstimate           `json:"finish,omitempty"`
	Critics      *CriticComparison         `json:"critics,omitempty"`
}

// LibraryFile is the on-disk shape of an exported library.
type LibraryFile struct {
	Version    int    `yaml:"version" json:"version"`
	UserID     string `yaml:"user_id" json:"user_id"`
	ExportedAt string `yaml:"exported_at" json:"exported_at"`
	Games      []Game `yaml:"games" json:"games"`
}
