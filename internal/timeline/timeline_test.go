package timeline_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/gameshelf/internal/models"
	tu "github.com/vytor/gameshelf/internal/testutil"
	"github.com/vytor/gameshelf/internal/timeline"
)

func day(s string, loc *time.Location) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		panic(err)
	}
	return t.Add(12 * time.Hour)
}

func TestPeriodStats(t *testing.T) {
	games := []models.Game{
		tu.NewGame("Alpha", tu.WithSession("2024-01-02", 2), tu.WithSession("2024-01-03", 3)),
		tu.NewGame("Beta", tu.WithSession("2024-01-03", 1), tu.WithSession("2024-01-20", 5)),
		tu.NewGame("Wish", tu.WithStatus(models.StatusWishlist), tu.WithSession("2024-01-04", 9)),
	}

	stats := timeline.PeriodStats(games, day("2024-01-01", time.UTC), day("2024-01-07", time.UTC))

	assert.Equal(t, "2024-01-01", stats.Start)
	assert.Equal(t, "2024-01-07", stats.End)
	assert.Equal(t, 6.0, stats.TotalHours)
	assert.Equal(t, 3, stats.TotalSessions)
	assert.Equal(t, 2, stats.UniqueGames)
	assert.Equal(t, 2.0, stats.AverageSessionLength)
	require.NotNil(t, stats.MostPlayed)
	assert.Equal(t, "Alpha", stats.MostPlayed.Name)
	assert.Equal(t, 5.0, stats.MostPlayed.Hours)
	assert.Equal(t, 2, stats.MostPlayed.Sessions)
}

func TestPeriodStats_Empty(t *testing.T) {
	stats := timeline.PeriodStats(nil, day("2024-01-01", time.UTC), day("2024-01-07", time.UTC))
	assert.Zero(t, stats.TotalHours)
	assert.Nil(t, stats.MostPlayed)
	assert.Empty(t, stats.Games)
}

func TestStatsForLastDays(t *testing.T) {
	games := []models.Game{
		tu.NewGame("Alpha", tu.WithSession("2024-01-10", 1), tu.WithSession("2024-01-04", 4), tu.WithSession("2024-01-03", 8)),
	}
	stats := timeline.StatsForLastDays(games, 7, day("2024-01-10", time.UTC))
	assert.Equal(t, "2024-01-04", stats.Start)
	assert.Equal(t, 5.0, stats.TotalHours)
	assert.Equal(t, 2, stats.TotalSessions)
}

func TestMonthInReview_DateOnlySessionsStayInTheirMonth(t *testing.T) {
	games := []models.Game{tu.NewGame("Alpha", tu.WithSession("2025-02-10", 2), tu.WithSession("2025-02-01", 1))}

	for _, loc := range []*time.Location{
		time.UTC,
		time.FixedZone("UTC-8", -8*3600),
		time.FixedZone("UTC-11", -11*3600),
		time.FixedZone("UTC+14", 14*3600),
	} {
		t.Run(loc.String(), func(t *testing.T) {
			feb := timeline.MonthInReview(games, day("2025-02-20", loc), 0)
			assert.Equal(t, "2025-02", feb.Month)
			assert.Equal(t, 3.0, feb.Stats.TotalHours)
			assert.Equal(t, map[string]float64{"2025-02-10": 2, "2025-02-01": 1}, feb.DailyHours)

			jan := timeline.MonthInReview(games, day("2025-02-20", loc), 1)
			assert.Equal(t, "2025-01", jan.Month)
			assert.Zero(t, jan.Stats.TotalHours)
		})
	}
}

func TestMonthInReview(t *testing.T) {
	now := day("2024-03-20", time.UTC)
	games := []models.Game{
		tu.NewGame("Alpha", tu.WithPrice(40), tu.Purchased("2024-03-02"), tu.WithGenre("RPG"),
			tu.WithStatus(models.StatusCompleted), tu.Finished("2024-03-16"),
			tu.WithMoodSession("2024-03-02", 4, "chill"), tu.WithSession("2024-03-16", 6)),
		tu.NewGame("Beta", tu.WithSession("2024-02-10", 5)),
	}

	m := timeline.MonthInReview(games, now, 0)

	assert.Equal(t, "2024-03-01", m.Start)
	assert.Equal(t, "2024-03-31", m.End)
	assert.Equal(t, 10.0, m.Stats.TotalHours)
	assert.Equal(t, 2, m.ActiveDays)
	require.NotNil(t, m.BusiestDay)
	assert.Equal(t, "2024-03-16", m.BusiestDay.Date)
	assert.Equal(t, 100.0, m.Split.WeekendShare, "both sessions fall on a Saturday")
	assert.Equal(t, map[string]int{"chill": 1}, m.MoodMix)
	assert.Equal(t, models.Breakdown{"RPG": 10}, m.GenreMix)
	require.Len(t, m.Completed, 1)
	assert.Equal(t, "Alpha", m.Completed[0].Name)
	require.Len(t, m.Purchased, 1)
	assert.Equal(t, 40.0, m.AmountSpent)

	// March 2024 starts on a Friday: the first week is clipped to Fri-Sun.
	require.Len(t, m.Weeks, 5)
	assert.Equal(t, "2024-03-01", m.Weeks[0].Start)
	assert.Equal(t, "2024-03-03", m.Weeks[0].End)
	assert.Equal(t, 4.0, m.Weeks[0].Hours)
	assert.Equal(t, "2024-03-25", m.Weeks[4].Start)
	assert.Equal(t, "2024-03-31", m.Weeks[4].End)

	assert.Equal(t, 5.0, m.VsPrevious.PreviousHours)
	assert.Equal(t, models.TrendUp, m.VsPrevious.Trend)
	require.NotNil(t, m.VsPrevious.ChangePercent)
	assert.Equal(t, 100.0, *m.VsPrevious.ChangePercent)
	assert.Equal(t, 1.3, m.VsRollingAverage.AverageHours)
	assert.Equal(t, "Weekend Warrior", m.Style)
}

func TestWeekInReview(t *testing.T) {
	now := day("2024-01-17", time.UTC) // Wednesday
	games := []models.Game{
		tu.NewGame("Alpha", tu.Started("2024-01-15"),
			tu.WithSession("2024-01-15", 2), tu.WithSession("2024-01-20", 4), tu.WithSession("2024-01-10", 3)),
		tu.NewGame("Beta", tu.WithStatus(models.StatusCompleted), tu.Finished("2024-01-16")),
	}

	w := timeline.WeekInReview(games, now, 0)

	assert.Equal(t, "2024-01-15", w.Start)
	assert.Equal(t, "2024-01-21", w.End)
	require.Len(t, w.Days, 7)
	assert.Equal(t, "Monday", w.Days[0].Weekday)
	assert.Equal(t, 2.0, w.Days[0].Hours)
	assert.Equal(t, "Sunday", w.Days[6].Weekday)
	assert.Equal(t, 6.0, w.Stats.TotalHours)
	require.NotNil(t, w.BusiestDay)
	assert.Equal(t, "2024-01-20", w.BusiestDay.Date)
	assert.Equal(t, 66.7, w.Split.WeekendShare)
	require.NotNil(t, w.LongestSession)
	assert.Equal(t, 4.0, w.LongestSession.Hours)

	require.Len(t, w.Started, 1)
	assert.Equal(t, "Alpha", w.Started[0].Name)
	require.Len(t, w.Completed, 1)
	assert.Equal(t, "Beta", w.Completed[0].Name)

	assert.Equal(t, 3.0, w.VsPrevious.PreviousHours)
	assert.Equal(t, 3.0, w.VsPrevious.ChangeHours)
	require.NotNil(t, w.VsPrevious.ChangePercent)
	assert.Equal(t, 100.0, *w.VsPrevious.ChangePercent)
	assert.Equal(t, 0.8, w.VsRollingAverage.AverageHours)
	assert.Equal(t, 4, w.VsRollingAverage.Windows)
	assert.Equal(t, "Steady Player", w.Vibe)

	last := timeline.WeekInReview(games, now, 1)
	assert.Equal(t, "2024-01-08", last.Start)
	assert.Equal(t, 3.0, last.Stats.TotalHours)
	assert.Nil(t, last.VsPrevious.ChangePercent, "no hours in the week before")
}

func TestWeekInReview_Vibes(t *testing.T) {
	now := day("2024-01-17", time.UTC)
	many := func(n int, date string) []models.Game {
		var out []models.Game
		for i := 0; i < n; i++ {
			out = append(out, tu.NewGame(string(rune('A'+i)), tu.WithSession(date, 1)))
		}
		return out
	}

	tests := []struct {
		name  string
		games []models.Game
		want  string
	}{
		{"nothing played", nil, "Taking a Break"},
		{"heavy week", []models.Game{tu.NewGame("A", tu.WithSession("2024-01-15", 26))}, "Power Gamer"},
		{"one game", []models.Game{tu.NewGame("A", tu.WithSession("2024-01-15", 12))}, "Laser Focused"},
		{"many games", many(5, "2024-01-16"), "Explorer"},
		{"weekend only", []models.Game{tu.NewGame("A", tu.WithSession("2024-01-20", 4))}, "Weekend Warrior"},
		{"light week", []models.Game{tu.NewGame("A", tu.WithSession("2024-01-15", 2))}, "Casual Dabbler"},
		{"regular week", []models.Game{
			tu.NewGame("A", tu.WithSession("2024-01-15", 3)),
			tu.NewGame("B", tu.WithSession("2024-01-16", 3)),
		}, "Steady Player"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timeline.WeekInReview(tt.games, now, 0).Vibe)
		})
	}
}

func TestYearInReview(t *testing.T) {
	games := []models.Game{
		tu.NewGame("Alpha", tu.WithGenre("RPG"), tu.WithPrice(60), tu.Purchased("2024-01-05"),
			tu.WithStatus(models.StatusCompleted), tu.WithRating(9), tu.Finished("2024-03-12"),
			tu.WithSession("2024-03-10", 5), tu.WithSession("2024-03-11", 3), tu.WithSession("2024-03-12", 2),
			tu.WithSession("2023-12-31", 4)),
		tu.NewGame("Beta", tu.WithGenre("Indie"), tu.WithPrice(20), tu.Purchased("2023-11-01"),
			tu.WithSession("2024-07-04", 1)),
	}

	y := timeline.YearInReview(games, 2024, day("2024-12-31", time.UTC))

	assert.Equal(t, 11.0, y.TotalHours)
	assert.Equal(t, 4, y.TotalSessions)
	assert.Equal(t, 2, y.UniqueGames)
	assert.Equal(t, 4, y.DaysPlayed)
	require.Len(t, y.Months, 12)
	assert.Equal(t, 10.0, y.Months[2].Hours)
	require.NotNil(t, y.BusiestMonth)
	assert.Equal(t, "March", y.BusiestMonth.Name)
	assert.Equal(t, "RPG", y.TopGenre)
	assert.Equal(t, "Sunday", y.FavoriteWeekday)
	require.Len(t, y.Completed, 1)
	assert.Equal(t, 9.0, y.AverageCompletedRating)
	assert.Equal(t, 1, y.PurchasedCount)
	assert.Equal(t, 60.0, y.AmountSpent)
	assert.Equal(t, 3, y.LongestStreak)
	require.NotNil(t, y.FirstSession)
	assert.Equal(t, "2024-03-10", y.FirstSession.Date)
	require.NotNil(t, y.LastSession)
	assert.Equal(t, "2024-07-04", y.LastSession.Date)
	assert.Equal(t, 4.0, y.VsPreviousYear.PreviousHours)
	assert.Equal(t, models.TrendUp, y.VsPreviousYear.Trend)
	assert.Equal(t, 1.0, y.VsRollingAverage.AverageHours)
	assert.Equal(t, 4, y.VsRollingAverage.Windows)
	require.NotNil(t, y.VsRollingAverage.ChangePercent)
	assert.Equal(t, 1000.0, *y.VsRollingAverage.ChangePercent)
	assert.Equal(t, models.TrendUp, y.VsRollingAverage.Trend)
	assert.NotEmpty(t, y.Headline)
}

func TestYearInReview_QuietYear(t *testing.T) {
	y := timeline.YearInReview(nil, 2020, time.Time{})
	assert.Zero(t, y.TotalSessions)
	assert.Nil(t, y.BusiestMonth)
	assert.Nil(t, y.FirstSession)
	assert.Equal(t, "", y.TopGenre)
	assert.Contains(t, y.Headline, "quiet")
}

func TestStreaks(t *testing.T) {
	games := []models.Game{
		tu.NewGame("Alpha", tu.WithSession("2024-01-01", 1), tu.WithSession("2024-01-02", 1), tu.WithSession("2024-01-03", 1)),
		tu.NewGame("Beta", tu.WithSession("2024-01-03", 2), tu.WithSession("2024-01-05", 1)),
	}

	t.Run("gap before today breaks the current streak", func(t *testing.T) {
		s := timeline.Streaks(games, day("2024-01-07", time.UTC))
		assert.Equal(t, 0, s.Current)
		assert.Equal(t, 3, s.Longest)
		assert.Equal(t, "2024-01-01", s.LongestStart)
		assert.Equal(t, "2024-01-03", s.LongestEnd)
		assert.Equal(t, "2024-01-05", s.LastPlayed)
		assert.Equal(t, 4, s.DaysPlayed)
	})

	t.Run("a single day played yesterday is an active streak", func(t *testing.T) {
		// 01-04 is a gap, but 01-05 is yesterday, so the run 01-05..01-05 is current.
		s := timeline.Streaks(games, day("2024-01-06", time.UTC))
		assert.Equal(t, 1, s.Current)
		assert.Equal(t, "2024-01-05", s.CurrentStart)
		assert.Equal(t, 3, s.Longest)
		assert.Equal(t, "2024-01-05", s.LastPlayed)
	})

	t.Run("today counts", func(t *testing.T) {
		s := timeline.Streaks(games, day("2024-01-03", time.UTC))
		assert.Equal(t, 3, s.Current)
		assert.Equal(t, "2024-01-03", s.LastPlayed)
	})

	t.Run("no sessions", func(t *testing.T) {
		assert.Equal(t, models.StreakInfo{}, timeline.Streaks(nil, day("2024-01-03", time.UTC)))
	})
}

func TestMomentum(t *testing.T) {
	now := day("2024-03-31", time.UTC)
	games := []models.Game{
		tu.NewGame("Alpha",
			tu.WithSession("2024-02-20", 2), tu.WithSession("2024-03-05", 2), tu.WithSession("2024-03-12", 4),
			tu.WithSession("2024-03-19", 4), tu.WithSession("2024-03-26", 4)),
		tu.NewGame("Beta", tu.WithSession("2024-03-20", 5), tu.WithSession("2024-03-27", 1)),
	}

	m := timeline.Momentum(games, now)

	assert.Equal(t, []float64{2, 0, 2, 4, 9, 5}, m.Weekly)
	assert.Equal(t, 4.0, m.Previous)
	assert.Equal(t, 18.0, m.Recent)
	assert.Equal(t, models.MomentumAccelerating, m.Trend)

	require.Len(t, m.Games, 2)
	assert.Equal(t, "Beta", m.Games[0].Name)
	assert.Equal(t, models.MomentumDecelerating, m.Games[0].Trend)
	require.NotNil(t, m.Games[0].ChangePercent)
	assert.Equal(t, -80.0, *m.Games[0].ChangePercent)
	assert.Equal(t, models.MomentumSteady, m.Games[1].Trend)
}

func TestMomentum_Thresholds(t *testing.T) {
	now := day("2024-03-31", time.UTC)

	slowing := []models.Game{tu.NewGame("Alpha", tu.WithSession("2024-02-20", 10), tu.WithSession("2024-03-26", 7))}
	assert.Equal(t, models.MomentumDecelerating, timeline.Momentum(slowing, now).Trend)

	steady := []models.Game{tu.NewGame("Alpha", tu.WithSession("2024-02-20", 10), tu.WithSession("2024-03-26", 11))}
	assert.Equal(t, models.MomentumSteady, timeline.Momentum(steady, now).Trend)

	idle := timeline.Momentum(nil, now)
	assert.Equal(t, models.MomentumSteady, idle.Trend)
	assert.Nil(t, idle.ChangePercent)
	assert.Empty(t, idle.Games)
}

func TestSessionPatterns(t *testing.T) {
	games := []models.Game{
		tu.NewGame("Alpha", tu.WithMoodSession("2024-01-06", 3, "hyped"), tu.WithMoodSession("2024-01-07", 1, "hyped")),
		tu.NewGame("Beta", tu.WithMoodSession("2024-01-08", 2, "tired")),
	}
	p := timeline.SessionPatterns(games, time.UTC)
	assert.Equal(t, 3, p.TotalSessions)
	assert.Equal(t, 2.0, p.AverageSession)
	assert.Equal(t, "Saturday", p.FavoriteWeekday)
	assert.Equal(t, map[string]int{"hyped": 2, "tired": 1}, p.MoodMix)
	require.NotNil(t, p.LongestSession)
	assert.Equal(t, "Alpha", p.LongestSession.Name)
}

func TestDailyHours(t *testing.T) {
	games := []models.Game{
		tu.NewGame("Alpha", tu.WithSession("2024-01-06", 3), tu.WithSession("2024-01-06", 0.5), tu.WithSession("2024-02-01", 1)),
	}
	got := timeline.DailyHours(games, day("2024-01-01", time.UTC), day("2024-01-31", time.UTC))
	assert.Equal(t, map[string]float64{"2024-01-06": 3.5}, got)
}
