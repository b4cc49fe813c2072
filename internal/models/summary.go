package models

// Breakdown maps a category label to an aggregated number. Games with no
// value for the category are grouped under "Unknown".
type Breakdown map[string]float64

type StatusCounts struct {
	NotStarted int `json:"not_started"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Wishlist   int `json:"wishlist"`
	Abandoned  int `json:"abandoned"`
}

// GameHighlight is one pick in the summary highlight reel.
type GameHighlight struct {
	GameID string  `json:"game_id"`
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
}

type Highlights struct {
	BestValue    *GameHighlight `json:"best_value"`
	WorstValue   *GameHighlight `json:"worst_value"`
	MostPlayed   *GameHighlight `json:"most_played"`
	HighestRated *GameHighlight `json:"highest_rated"`
	BestROI      *GameHighlight `json:"best_roi"`
}

type Breakdowns struct {
	HoursByGenre        Breakdown `json:"hours_by_genre"`
	SpendByGenre        Breakdown `json:"spend_by_genre"`
	CountByGenre        Breakdown `json:"count_by_genre"`
	HoursByPlatform     Breakdown `json:"hours_by_platform"`
	SpendByPlatform     Breakdown `json:"spend_by_platform"`
	CountByPlatform     Breakdown `json:"count_by_platform"`
	SpendBySource       Breakdown `json:"spend_by_source"`
	CountBySource       Breakdown `json:"count_by_source"`
	SpendByYear         Breakdown `json:"spend_by_year"`
	CountByYear         Breakdown `json:"count_by_year"`
	HoursByFranchise    Breakdown `json:"hours_by_franchise"`
	CountByFranchise    Breakdown `json:"count_by_franchise"`
	HoursBySubscription Breakdown `json:"hours_by_subscription"`
	CountBySubscription Breakdown `json:"count_by_subscription"`
}

// AnalyticsSummary is the library-wide roll-up. Wishlist entries only
// contribute to WishlistValue and Counts.Wishlist.
type AnalyticsSummary struct {
	TotalGames int          `json:"total_games"`
	OwnedGames int          `json:"owned_games"`
	Counts     StatusCounts `json:"counts"`

	TotalSpent         float64 `json:"total_spent"`
	BacklogValue       float64 `json:"backlog_value"`
	BacklogCount       int     `json:"backlog_count"`
	WishlistValue      float64 `json:"wishlist_value"`
	AveragePrice       float64 `json:"average_price"`
	AverageCostPerHour float64 `json:"average_cost_per_hour"`
	DiscountSavings    float64 `json:"discount_savings"`
	FreeGames          int     `json:"free_games"`

	TotalHours          float64 `json:"total_hours"`
	AverageHoursPerGame float64 `json:"average_hours_per_game"`
	AverageRating       float64 `json:"average_rating"`
	CompletionRate      float64 `json:"completion_rate"`

	Highlights Highlights `json:"highlights"`
	Breakdowns Breakdowns `json:"breakdowns"`
}
