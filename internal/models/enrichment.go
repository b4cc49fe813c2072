package models

// Metadata is a game-metadata lookup result.
type Metadata struct {
	Name            string  `json:"name"`
	Thumbnail       string  `json:"thumbnail"`
	ReleaseDate     string  `json:"release_date"`
	CriticScore     float64 `json:"critic_score"`
	CommunityRating float64 `json:"community_rating"`
}

// Deal is one storefront offer from the deals feed.
type Deal struct {
	Title           string  `json:"title"`
	SalePrice       float64 `json:"sale_price"`
	NormalPrice     float64 `json:"normal_price"`
	StoreName       string  `json:"store_name"`
	DiscountPercent float64 `json:"discount_percent"`
}

type DealMatch struct {
	GameID        string  `json:"game_id"`
	Name          string  `json:"name"`
	Deal          Deal    `json:"deal"`
	WishlistPrice float64 `json:"wishlist_price"`
	Savings       float64 `json:"savings"`
	BelowTarget   bool    `json:"below_target"`
}

type CriticComparison struct {
	GameID          string  `json:"game_id"`
	Name            string  `json:"name"`
	YourRating      float64 `json:"your_rating"`
	CriticScore     float64 `json:"critic_score"`
	CommunityRating float64 `json:"community_rating"`
	Difference      float64 `json:"difference"`
	Verdict         string  `json:"verdict"`
}
