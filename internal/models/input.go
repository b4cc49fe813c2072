package models

// GameInput is the writable part of a Game, as accepted on create and update.
type GameInput struct {
	Name               string     `json:"name" yaml:"name" validate:"required,max=200"`
	Platform           string     `json:"platform" yaml:"platform" validate:"max=100"`
	Genre              string     `json:"genre" yaml:"genre" validate:"max=100"`
	Franchise          string     `json:"franchise" yaml:"franchise" validate:"max=100"`
	Thumbnail          string     `json:"thumbnail" yaml:"thumbnail" validate:"omitempty,url"`
	Price              float64    `json:"price" yaml:"price" validate:"gte=0"`
	OriginalPrice      *float64   `json:"original_price" yaml:"original_price" validate:"omitempty,gte=0"`
	AcquiredFree       bool       `json:"acquired_free" yaml:"acquired_free"`
	PurchaseSource     string     `json:"purchase_source" yaml:"purchase_source" validate:"max=100"`
	SubscriptionSource string     `json:"subscription_source" yaml:"subscription_source" validate:"max=100"`
	Status             GameStatus `json:"status" yaml:"status" validate:"required,gamestatus"`
	DatePurchased      string     `json:"date_purchased" yaml:"date_purchased" validate:"omitempty,calendardate"`
	StartDate          string     `json:"start_date" yaml:"start_date" validate:"omitempty,calendardate"`
	EndDate            string     `json:"end_date" yaml:"end_date" validate:"omitempty,calendardate"`
	Hours              float64    `json:"hours" yaml:"hours" validate:"gte=0"`
	Rating             float64    `json:"rating" yaml:"rating" validate:"gte=0,lte=10"`
	Review             string     `json:"review" yaml:"review" validate:"max=5000"`
}

// Apply copies the input onto g, leaving identity, timestamps and play logs
// untouched.
func (in GameInput) Apply(g *Game) {
	g.Name = in.Name
	g.Platform = in.Platform
	g.Genre = in.Genre
	g.Franchise = in.Franchise
	g.Thumbnail = in.Thumbnail
	g.Price = in.Price
	g.OriginalPrice = in.OriginalPrice
	g.AcquiredFree = in.AcquiredFree
	g.PurchaseSource = in.PurchaseSource
	g.SubscriptionSource = in.SubscriptionSource
	g.Status = in.Status
	g.DatePurchased = in.DatePurchased
	g.StartDate = in.StartDate
	g.EndDate = in.EndDate
	g.Hours = in.Hours
	g.Rating = in.Rating
	g.Review = in.Review
}

// InputOf is the inverse of Apply.
func InputOf(g Game) GameInput {
	return GameInput{
		Name:               g.Name,
		Platform:           g.Platform,
		Genre:              g.Genre,
		Franchise:          g.Franchise,
		Thumbnail:          g.Thumbnail,
		Price:              g.Price,
		OriginalPrice:      g.OriginalPrice,
		AcquiredFree:       g.AcquiredFree,
		PurchaseSource:     g.PurchaseSource,
		SubscriptionSource: g.SubscriptionSource,
		Status:             g.Status,
		DatePurchased:      g.DatePurchased,
		StartDate:          g.StartDate,
		EndDate:            g.EndDate,
		Hours:              g.Hours,
		Rating:             g.Rating,
		Review:             g.Review,
	}
}

// SessionInput records one play session.
type SessionInput struct {
	Date  string  `json:"date" yaml:"date" validate:"required,calendardate"`
	Hours float64 `json:"hours" yaml:"hours" validate:"gt=0,lte=24"`
	Notes string  `json:"notes" yaml:"notes" validate:"max=1000"`
	Mood  string  `json:"mood" yaml:"mood" validate:"max=50"`
}
