package models

// GameStatus is the lifecycle state of a library entry.
type GameStatus string

const (
	StatusNotStarted GameStatus = "Not Started"
	StatusInProgress GameStatus = "In Progress"
	StatusCompleted  GameStatus = "Completed"
	StatusWishlist   GameStatus = "Wishlist"
	StatusAbandoned  GameStatus = "Abandoned"
)

// Statuses lists every status in display order.
var Statuses = []GameStatus{
	StatusNotStarted,
	StatusInProgress,
	StatusCompleted,
	StatusWishlist,
	StatusAbandoned,
}

// Valid reports whether s is a known status.
func (s GameStatus) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Game is one owned or wishlisted title. Dates are YYYY-MM-DD calendar
// strings; an empty string means the date is unknown.
type Game struct {
	ID                 string     `json:"id" yaml:"id"`
	UserID             string     `json:"user_id" yaml:"user_id"`
	Name               string     `json:"name" yaml:"name"`
	Platform           string     `json:"platform,omitempty" yaml:"platform,omitempty"`
	Genre              string     `json:"genre,omitempty" yaml:"genre,omitempty"`
	Franchise          string     `json:"franchise,omitempty" yaml:"franchise,omitempty"`
	Thumbnail          string     `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
	Price              float64    `json:"price" yaml:"price"`
	OriginalPrice      *float64   `json:"original_price,omitempty" yaml:"original_price,omitempty"`
	AcquiredFree       bool       `json:"acquired_free" yaml:"acquired_free,omitempty"`
	PurchaseSource     string     `json:"purchase_source,omitempty" yaml:"purchase_source,omitempty"`
	SubscriptionSource string     `json:"subscription_source,omitempty" yaml:"subscription_source,omitempty"`
	Status             GameStatus `json:"status" yaml:"status"`
	DatePurchased      string     `json:"date_purchased,omitempty" yaml:"date_purchased,omitempty"`
	StartDate          string     `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate            string     `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	CreatedAt          string     `json:"created_at" yaml:"created_at,omitempty"`
	UpdatedAt          string     `json:"updated_at" yaml:"updated_at,omitempty"`
	Hours              float64    `json:"hours" yaml:"hours"`
	Rating             float64    `json:"rating" yaml:"rating"`
	Review             string     `json:"review,omitempty" yaml:"review,omitempty"`
	PlayLogs           []PlayLog  `json:"play_logs" yaml:"play_logs,omitempty"`
}

// PlayLog is one recorded play session.
type PlayLog struct {
	ID    string  `json:"id" yaml:"id"`
	Date  string  `json:"date" yaml:"date"`
	Hours float64 `json:"hours" yaml:"hours"`
	Notes string  `json:"notes,omitempty" yaml:"notes,omitempty"`
	Mood  string  `json:"mood,omitempty" yaml:"mood,omitempty"`
}

// GameFilter narrows repository listings.
type GameFilter struct {
	UserID   string
	Status   GameStatus
	Platform string
	Genre    string
	Search   string
	Limit    int
	Offset   int
	OrderBy  string
	OrderDir string
}
