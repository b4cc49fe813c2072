package models

// ValueRating buckets cost-per-hour into a qualitative tier.
type ValueRating string

const (
	ValueExcellent ValueRating = "Excellent"
	ValueGood      ValueRating = "Good"
	ValueFair      ValueRating = "Fair"
	ValuePoor      ValueRating = "Poor"
)

// GameMetrics are the per-game derived value figures.
type GameMetrics struct {
	GameID         string      `json:"game_id"`
	TotalHours     float64     `json:"total_hours"`
	CostPerHour    float64     `json:"cost_per_hour"`
	BlendScore     float64     `json:"blend_score"`
	NormalizedCost float64     `json:"normalized_cost"`
	ValueRating    ValueRating `json:"value_rating"`
	ROI            float64     `json:"roi"`
	DaysToComplete *int        `json:"days_to_complete"`
}
