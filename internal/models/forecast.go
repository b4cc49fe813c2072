package models

import (
	"math"

	"github.com/goccy/go-json"
)

// BacklogDoomsdayData projects when the backlog empties at the current pace.
// DaysRemaining is +Inf when nothing was completed in the trailing window;
// Never carries the same fact for callers that cannot represent infinity.
type BacklogDoomsdayData struct {
	BacklogSize          int     `json:"backlog_size"`
	CompletionsPerMonth  float64 `json:"completions_per_month"`
	AcquisitionsPerMonth float64 `json:"acquisitions_per_month"`
	NetRatePerMonth      float64 `json:"net_rate_per_month"`
	UsedGrossRate        bool    `json:"used_gross_rate"`
	DaysRemaining        float64 `json:"days_remaining"`
	Never                bool    `json:"never"`
	ClearanceDate        string  `json:"clearance_date,omitempty"`
	Message              string  `json:"message"`
}

// MarshalJSON renders an unbounded projection as days_remaining: null.
func (d BacklogDoomsdayData) MarshalJSON() ([]byte, error) {
	type plain BacklogDoomsdayData
	var days *float64
	if !math.IsInf(d.DaysRemaining, 0) && !math.IsNaN(d.DaysRemaining) {
		v := d.DaysRemaining
		days = &v
	}
	return json.Marshal(struct {
		plain
		DaysRemaining *float64 `json:"days_remaining"`
	}{plain: plain(d), DaysRemaining: days})
}

type SpendingForecast struct {
	Year              int      `json:"year"`
	YearToDateSpent   float64  `json:"year_to_date_spent"`
	MonthsElapsed     float64  `json:"months_elapsed"`
	MonthlyAverage    float64  `json:"monthly_average"`
	ProjectedAnnual   float64  `json:"projected_annual"`
	LastYearSpent     float64  `json:"last_year_spent"`
	ProjectedChange   *float64 `json:"projected_change"`
	TrailingTwelve    float64  `json:"trailing_twelve_months"`
	PurchasesThisYear int      `json:"purchases_this_year"`
}

type FinishEstimate struct {
	GameID         string  `json:"game_id"`
	Name           string  `json:"name"`
	HoursPlayed    float64 `json:"hours_played"`
	EstimatedTotal float64 `json:"estimated_total"`
	HoursLeft      float64 `json:"hours_left"`
	WeeklyPace     float64 `json:"weekly_pace"`
	DaysRemaining  *int    `json:"days_remaining"`
	FinishDate     string  `json:"finish_date,omitempty"`
	Message        string  `json:"message"`
}
