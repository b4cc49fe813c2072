package models

// GameHours is one game's share of a period.
type GameHours struct {
	GameID   string  `json:"game_id"`
	Name     string  `json:"name"`
	Genre    string  `json:"genre,omitempty"`
	Hours    float64 `json:"hours"`
	Sessions int     `json:"sessions"`
}

// PeriodStats aggregates sessions inside an inclusive date window.
type PeriodStats struct {
	Start                string      `json:"start"`
	End                  string      `json:"end"`
	TotalHours           float64     `json:"total_hours"`
	TotalSessions        int         `json:"total_sessions"`
	UniqueGames          int         `json:"unique_games"`
	MostPlayed           *GameHours  `json:"most_played"`
	AverageSessionLength float64     `json:"average_session_length"`
	Games                []GameHours `json:"games"`
}

type DayBreakdown struct {
	Date     string  `json:"date"`
	Weekday  string  `json:"weekday"`
	Hours    float64 `json:"hours"`
	Sessions int     `json:"sessions"`
}

type WeekBreakdown struct {
	Start    string  `json:"start"`
	End      string  `json:"end"`
	Hours    float64 `json:"hours"`
	Sessions int     `json:"sessions"`
}

// GameRef points at a game with the date of the event being reported.
type GameRef struct {
	GameID string `json:"game_id"`
	Name   string `json:"name"`
	Date   string `json:"date"`
}

type SessionRef struct {
	GameID string  `json:"game_id"`
	Name   string  `json:"name"`
	Date   string  `json:"date"`
	Hours  float64 `json:"hours"`
	Mood   string  `json:"mood,omitempty"`
}

type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// Comparison contrasts a window with the one immediately before it.
// ChangePercent is nil when the earlier window had no hours.
type Comparison struct {
	PreviousHours float64  `json:"previous_hours"`
	ChangeHours   float64  `json:"change_hours"`
	ChangePercent *float64 `json:"change_percent"`
	Trend         Trend    `json:"trend"`
}

// RollingComparison contrasts a window with the mean of the preceding ones.
type RollingComparison struct {
	AverageHours  float64  `json:"average_hours"`
	Windows       int      `json:"windows"`
	ChangePercent *float64 `json:"change_percent"`
	Trend         Trend    `json:"trend"`
}

type PlaySplit struct {
	WeekdayHours float64 `json:"weekday_hours"`
	WeekendHours float64 `json:"weekend_hours"`
	WeekendShare float64 `json:"weekend_share"`
}

type WeekInReviewData struct {
	Start            string            `json:"start"`
	End              string            `json:"end"`
	Stats            PeriodStats       `json:"stats"`
	Days             []DayBreakdown    `json:"days"`
	BusiestDay       *DayBreakdown     `json:"busiest_day"`
	Split            PlaySplit         `json:"split"`
	GenreMix         Breakdown         `json:"genre_mix"`
	MoodMix          map[string]int    `json:"mood_mix"`
	Completed        []GameRef         `json:"completed"`
	Started          []GameRef         `json:"started"`
	LongestSession   *SessionRef       `json:"longest_session"`
	VsPrevious       Comparison        `json:"vs_previous"`
	VsRollingAverage RollingComparison `json:"vs_rolling_average"`
	Vibe             string            `json:"vibe"`
}

type MonthInReviewData struct {
	Month            string             `json:"month"`
	Start            string             `json:"start"`
	End              string             `json:"end"`
	Stats            PeriodStats        `json:"stats"`
	Weeks            []WeekBreakdown    `json:"weeks"`
	DailyHours       map[string]float64 `json:"daily_hours"`
	ActiveDays       int                `json:"active_days"`
	BusiestDay       *DayBreakdown      `json:"busiest_day"`
	Split            PlaySplit          `json:"split"`
	GenreMix         Breakdown          `json:"genre_mix"`
	MoodMix          map[string]int     `json:"mood_mix"`
	Completed        []GameRef          `json:"completed"`
	Started          []GameRef          `json:"started"`
	Purchased        []GameRef          `json:"purchased"`
	AmountSpent      float64            `json:"amount_spent"`
	VsPrevious       Comparison         `json:"vs_previous"`
	VsRollingAverage RollingComparison  `json:"vs_rolling_average"`
	Style            string             `json:"style"`
}

type MonthlyActivity struct {
	Month       int     `json:"month"`
	Name        string  `json:"name"`
	Hours       float64 `json:"hours"`
	Sessions    int     `json:"sessions"`
	UniqueGames int     `json:"unique_games"`
}

type YearlyWrappedData struct {
	Year                   int               `json:"year"`
	TotalHours             float64           `json:"total_hours"`
	TotalSessions          int               `json:"total_sessions"`
	UniqueGames            int               `json:"unique_games"`
	DaysPlayed             int               `json:"days_played"`
	Months                 []MonthlyActivity `json:"months"`
	BusiestMonth           *MonthlyActivity  `json:"busiest_month"`
	TopGames               []GameHours       `json:"top_games"`
	TopGenre               string            `json:"top_genre"`
	GenreMix               Breakdown         `json:"genre_mix"`
	FavoriteWeekday        string            `json:"favorite_weekday"`
	Completed              []GameRef         `json:"completed"`
	StartedCount           int               `json:"started_count"`
	PurchasedCount         int               `json:"purchased_count"`
	AmountSpent            float64           `json:"amount_spent"`
	AverageCompletedRating float64           `json:"average_completed_rating"`
	LongestStreak          int               `json:"longest_streak"`
	LongestSession         *SessionRef       `json:"longest_session"`
	FirstSession           *SessionRef       `json:"first_session"`
	LastSession            *SessionRef       `json:"last_session"`
	VsPreviousYear         Comparison        `json:"vs_previous_year"`
	VsRollingAverage       RollingComparison `json:"vs_rolling_average"`
	Headline               string            `json:"headline"`
}

// StreakInfo describes runs of consecutive calendar days with play.
type StreakInfo struct {
	Current      int    `json:"current"`
	CurrentStart string `json:"current_start,omitempty"`
	Longest      int    `json:"longest"`
	LongestStart string `json:"longest_start,omitempty"`
	LongestEnd   string `json:"longest_end,omitempty"`
	LastPlayed   string `json:"last_played,omitempty"`
	DaysPlayed   int    `json:"days_played"`
}

type MomentumTrend string

const (
	MomentumAccelerating MomentumTrend = "accelerating"
	MomentumDecelerating MomentumTrend = "decelerating"
	MomentumSteady       MomentumTrend = "steady"
)

type GameMomentum struct {
	GameID        string        `json:"game_id"`
	Name          string        `json:"name"`
	ThisWeek      float64       `json:"this_week"`
	LastWeek      float64       `json:"last_week"`
	ChangePercent *float64      `json:"change_percent"`
	Trend         MomentumTrend `json:"trend"`
}

// MomentumData compares recent play volume against the weeks before it.
// Weekly holds six rolling seven-day totals, oldest first.
type MomentumData struct {
	Weekly        []float64      `json:"weekly"`
	Recent        float64        `json:"recent"`
	Previous      float64        `json:"previous"`
	ChangePercent *float64       `json:"change_percent"`
	Trend         MomentumTrend  `json:"trend"`
	Games         []GameMomentum `json:"games"`
}

type SessionPatterns struct {
	TotalSessions   int                `json:"total_sessions"`
	AverageSession  float64            `json:"average_session"`
	LongestSession  *SessionRef        `json:"longest_session"`
	FavoriteWeekday string             `json:"favorite_weekday"`
	HoursByWeekday  map[string]float64 `json:"hours_by_weekday"`
	MoodMix         map[string]int     `json:"mood_mix"`
}
