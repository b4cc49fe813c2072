package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/vytor/gameshelf/internal/calendar"
	"github.com/vytor/gameshelf/internal/classify"
	"github.com/vytor/gameshelf/internal/errors"
	"github.com/vytor/gameshelf/internal/forecast"
	"github.com/vytor/gameshelf/internal/logger"
	"github.com/vytor/gameshelf/internal/metrics"
	"github.com/vytor/gameshelf/internal/models"
	"github.com/vytor/gameshelf/internal/repository"
	"github.com/vytor/gameshelf/internal/summary"
	"github.com/vytor/gameshelf/internal/timeline"
	"github.com/vytor/gameshelf/internal/valuation"
)

// MaxPeriodDays bounds custom period queries.
const MaxPeriodDays = 3660

// InsightsService runs the analytics over a user's library snapshot. Every
// call loads the library once and evaluates it against a single "now" in
// the configured timezone.
type InsightsService interface {
	Summary(ctx context.Context, userID string) (*models.AnalyticsSummary, error)
	GameCard(ctx context.Context, userID, gameID string) (*models.GameCard, error)
	Period(ctx context.Context, userID, start, end string) (*models.PeriodStats, error)
	LastDays(ctx context.Context, userID string, days int) (*models.PeriodStats, error)
	Week(ctx context.Context, userID string, weeksAgo int) (*models.WeekInReviewData, error)
	Month(ctx context.Context, userID string, monthsAgo int) (*models.MonthInReviewData, error)
	Year(ctx context.Context, userID string, year int) (*models.YearlyWrappedData, error)
	Streaks(ctx context.Context, userID string) (*models.StreakInfo, error)
	Momentum(ctx context.Context, userID string) (*models.MomentumData, error)
	Patterns(ctx context.Context, userID string) (*models.SessionPatterns, error)
	Personality(ctx context.Context, userID string) (*models.GamingPersonality, error)
	Relationships(ctx context.Context, userID string) ([]models.RelationshipStatus, error)
	Trophies(ctx context.Context, userID string) ([]models.Trophy, error)
	NextUp(ctx context.Context, userID string, limit int) ([]models.NextUpPick, error)
	Doomsday(ctx context.Context, userID string) (*models.BacklogDoomsdayData, error)
	Spending(ctx context.Context, userID string) (*models.SpendingForecast, error)
}

type insightsService struct {
	gameRepo repository.GameRepository
	now      Clock
	loc      *time.Location
}

// NewInsightsService creates a new InsightsService. A nil loc means the
// process's local zone.
func NewInsightsService(gameRepo repository.GameRepository, now Clock, loc *time.Location) InsightsService {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &insightsService{gameRepo: gameRepo, now: now, loc: loc}
}

func (s *insightsService) clock() time.Time {
	return s.now().In(s.loc)
}

// insight loads the library, runs fn and records how long both took.
func insight[T any](ctx context.Context, s *insightsService, name, userID string, fn func(games []models.Game, now time.Time) T) (T, error) {
	log := logger.FromContext(ctx).WithPrefix("insights").WithField("insight", name)
	start := time.Now()

	var zero T
	games, err := s.gameRepo.GetAll(ctx, userID)
	if err != nil {
		log.Error("failed to load library: %v", err)
		return zero, errors.NewInternalError(err)
	}
	out := fn(games, s.clock())

	elapsed := time.Since(start)
	metrics.ObserveInsight(name, len(games), elapsed)
	log.Debug("computed over %d games in %v", len(games), elapsed)
	return out, nil
}

func insightPtr[T any](ctx context.Context, s *insightsService, name, userID string, fn func(games []models.Game, now time.Time) T) (*T, error) {
	v, err := insight(ctx, s, name, userID, fn)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *insightsService) Summary(ctx context.Context, userID string) (*models.AnalyticsSummary, error) {
	return insightPtr(ctx, s, "summary", userID, func(games []models.Game, _ time.Time) models.AnalyticsSummary {
		return summary.Build(games)
	})
}

func (s *insightsService) GameCard(ctx context.Context, userID, gameID string) (*models.GameCard, error) {
	log := logger.FromContext(ctx)
	game, err := s.gameRepo.Get(ctx, gameID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("game", gameID)
		}
		log.Error("failed to get game: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if game == nil || game.UserID != userID {
		return nil, errors.NewNotFoundError("game", gameID)
	}

	return insightPtr(ctx, s, "game_card", userID, func(games []models.Game, now time.Time) models.GameCard {
		card := models.GameCard{
			Game:         *game,
			Metrics:      valuation.CalculateMetrics(*game),
			OneLiner:     classify.OneLiner(*game, now),
			Relationship: classify.Relationship(*game, now),
			Rarity:       classify.Rarity(*game),
			Completion:   classify.CompletionProbability(*game, games, now),
		}
		if game.Status == models.StatusInProgress {
			est := forecast.FinishEstimate(*game, games, now)
			card.Finish = &est
		}
		return card
	})
}

func (s *insightsService) Period(ctx context.Context, userID, start, end string) (*models.PeriodStats, error) {
	from, ok := calendar.ParseIn(start, s.loc)
	if !ok {
		return nil, errors.NewValidationError("start", "must be a date in YYYY-MM-DD format")
	}
	to, ok := calendar.ParseIn(end, s.loc)
	if !ok {
		return nil, errors.NewValidationError("end", "must be a date in YYYY-MM-DD format")
	}
	if to.Before(from) {
		return nil, errors.NewValidationError("end", "must not be before start")
	}
	if calendar.DaysBetween(from, to) > MaxPeriodDays {
		return nil, errors.NewBadRequestError("period is too long")
	}
	return insightPtr(ctx, s, "period", userID, func(games []models.Game, _ time.Time) models.PeriodStats {
		return timeline.PeriodStats(games, from, to)
	})
}

func (s *insightsService) LastDays(ctx context.Context, userID string, days int) (*models.PeriodStats, error) {
	if days < 1 || days > MaxPeriodDays {
		return nil, errors.NewValidationError("days", "must be between 1 and 3660")
	}
	return insightPtr(ctx, s, "last_days", userID, func(games []models.Game, now time.Time) models.PeriodStats {
		return timeline.StatsForLastDays(games, days, now)
	})
}

func (s *insightsService) Week(ctx context.Context, userID string, weeksAgo int) (*models.WeekInReviewData, error) {
	if weeksAgo < 0 {
		return nil, errors.NewValidationError("weeks_ago", "must not be negative")
	}
	return insightPtr(ctx, s, "week", userID, func(games []models.Game, now time.Time) models.WeekInReviewData {
		return timeline.WeekInReview(games, now, weeksAgo)
	})
}

func (s *insightsService) Month(ctx context.Context, userID string, monthsAgo int) (*models.MonthInReviewData, error) {
	if monthsAgo < 0 {
		return nil, errors.NewValidationError("months_ago", "must not be negative")
	}
	return insightPtr(ctx, s, "month", userID, func(games []models.Game, now time.Time) models.MonthInReviewData {
		return timeline.MonthInReview(games, now, monthsAgo)
	})
}

func (s *insightsService) Year(ctx context.Context, userID string, year int) (*models.YearlyWrappedData, error) {
	if year < 1970 || year > 9999 {
		return nil, errors.NewValidationError("year", "must be between 1970 and 9999")
	}
	return insightPtr(ctx, s, "year", userID, func(games []models.Game, now time.Time) models.YearlyWrappedData {
		return timeline.YearInReview(games, year, now)
	})
}

func (s *insightsService) Streaks(ctx context.Context, userID string) (*models.StreakInfo, error) {
	return insightPtr(ctx, s, "streaks", userID, timeline.Streaks)
}

func (s *insightsService) Momentum(ctx context.Context, userID string) (*models.MomentumData, error) {
	return insightPtr(ctx, s, "momentum", userID, timeline.Momentum)
}

func (s *insightsService) Patterns(ctx context.Context, userID string) (*models.SessionPatterns, error) {
	return insightPtr(ctx, s, "patterns", userID, func(games []models.Game, now time.Time) models.SessionPatterns {
		return timeline.SessionPatterns(games, now.Location())
	})
}

func (s *insightsService) Personality(ctx context.Context, userID string) (*models.GamingPersonality, error) {
	return insightPtr(ctx, s, "personality", userID, func(games []models.Game, _ time.Time) models.GamingPersonality {
		return classify.Personality(games)
	})
}

func (s *insightsService) Relationships(ctx context.Context, userID string) ([]models.RelationshipStatus, error) {
	return insight(ctx, s, "relationships", userID, classify.Relationships)
}

func (s *insightsService) Trophies(ctx context.Context, userID string) ([]models.Trophy, error) {
	return insight(ctx, s, "trophies", userID, classify.Trophies)
}

func (s *insightsService) NextUp(ctx context.Context, userID string, limit int) ([]models.NextUpPick, error) {
	if limit < 0 || limit > 50 {
		return nil, errors.NewValidationError("limit", "must be between 0 and 50")
	}
	return insight(ctx, s, "next_up", userID, func(games []models.Game, now time.Time) []models.NextUpPick {
		return classify.NextUp(games, now, limit)
	})
}

func (s *insightsService) Doomsday(ctx context.Context, userID string) (*models.BacklogDoomsdayData, error) {
	return insightPtr(ctx, s, "doomsday", userID, forecast.BacklogDoomsday)
}

func (s *insightsService) Spending(ctx context.Context, userID string) (*models.SpendingForecast, error) {
	return insightPtr(ctx, s, "spending", userID, forecast.Spending)
}
