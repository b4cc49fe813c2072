package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vytor/gameshelf/internal/errors"
	"github.com/vytor/gameshelf/internal/models"
	"github.com/vytor/gameshelf/internal/services"
	tu "github.com/vytor/gameshelf/internal/testutil"
	"github.com/vytor/gameshelf/internal/testutil/mocks"
)

func library() []models.Game {
	return []models.Game{
		tu.NewGame("Hades", tu.WithStatus(models.StatusCompleted), tu.WithPrice(25), tu.WithHours(50),
			tu.WithRating(9), tu.Purchased("2024-01-10"), tu.Started("2024-01-10"), tu.Finished("2024-03-01")),
		tu.NewGame("Celeste", tu.WithStatus(models.StatusInProgress), tu.WithPrice(20), tu.WithHours(6),
			tu.Purchased("2024-05-01"), tu.Started("2024-05-02"), tu.WithSession("2024-06-14", 2)),
		tu.NewGame("Starfield", tu.WithPrice(70), tu.Purchased("2024-04-01")),
		tu.NewGame("Silksong", tu.WithStatus(models.StatusWishlist), tu.WithPrice(30)),
	}
}

func newInsightsService(games []models.Game) (services.InsightsService, *mocks.MockGameRepository) {
	repo := new(mocks.MockGameRepository)
	repo.On("GetAll", mock.Anything, "user-1").Return(games, nil).Maybe()
	return services.NewInsightsService(repo, clock, time.UTC), repo
}

func TestInsights_Summary(t *testing.T) {
	svc, repo := newInsightsService(library())

	sum, err := svc.Summary(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 4, sum.TotalGames)
	assert.Equal(t, 1, sum.Counts.Wishlist)
	assert.Equal(t, 115.0, sum.TotalSpent)
	repo.AssertNumberOfCalls(t, "GetAll", 1)
}

func TestInsights_LoadFailure(t *testing.T) {
	repo := new(mocks.MockGameRepository)
	repo.On("GetAll", mock.Anything, "user-1").Return(nil, errors.New("locked"))
	svc := services.NewInsightsService(repo, clock, time.UTC)

	_, err := svc.Streaks(context.Background(), "user-1")
	requireCode(t, err, apperrors.ErrCodeInternal)

	_, err = svc.Trophies(context.Background(), "user-1")
	requireCode(t, err, apperrors.ErrCodeInternal)
}

func TestInsights_ArgumentValidation(t *testing.T) {
	svc, repo := newInsightsService(library())
	ctx := context.Background()

	tests := map[string]func() error{
		"bad start": func() error {
			_, err := svc.Period(ctx, "user-1", "2024-02-30", "2024-03-01")
			return err
		},
		"bad end": func() error {
			_, err := svc.Period(ctx, "user-1", "2024-02-01", "tomorrow")
			return err
		},
		"end before start": func() error {
			_, err := svc.Period(ctx, "user-1", "2024-03-01", "2024-02-01")
			return err
		},
		"zero days": func() error {
			_, err := svc.LastDays(ctx, "user-1", 0)
			return err
		},
		"negative weeks": func() error {
			_, err := svc.Week(ctx, "user-1", -1)
			return err
		},
		"negative months": func() error {
			_, err := svc.Month(ctx, "user-1", -2)
			return err
		},
		"ancient year": func() error {
			_, err := svc.Year(ctx, "user-1", 1900)
			return err
		},
		"huge limit": func() error {
			_, err := svc.NextUp(ctx, "user-1", 51)
			return err
		},
	}
	for name, call := range tests {
		t.Run(name, func(t *testing.T) {
			requireCode(t, call(), apperrors.ErrCodeValidation)
		})
	}

	_, err := svc.Period(ctx, "user-1", "2000-01-01", "2024-01-01")
	requireCode(t, err, apperrors.ErrCodeBadRequest)

	repo.AssertNotCalled(t, "GetAll", mock.Anything, mock.Anything)
}

func TestInsights_Period(t *testing.T) {
	svc, _ := newInsightsService(library())

	stats, err := svc.Period(context.Background(), "user-1", "2024-06-01", "2024-06-30")
	require.NoError(t, err)
	assert.Equal(t, 2.0, stats.TotalHours)
}

func TestInsights_GameCard(t *testing.T) {
	games := library()
	svc, repo := newInsightsService(games)
	ctx := context.Background()
	repo.On("Get", ctx, games[1].ID).Return(&games[1], nil)
	repo.On("Get", ctx, games[0].ID).Return(&games[0], nil)

	card, err := svc.GameCard(ctx, "user-1", games[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Celeste", card.Game.Name)
	assert.NotEmpty(t, card.OneLiner)
	require.NotNil(t, card.Finish)
	assert.Equal(t, games[1].ID, card.Finish.GameID)

	card, err = svc.GameCard(ctx, "user-1", games[0].ID)
	require.NoError(t, err)
	assert.Nil(t, card.Finish)
	assert.Equal(t, 95, card.Completion.Probability)
}

func TestInsights_GameCard_OtherUser(t *testing.T) {
	theirs := tu.NewGame("Theirs", tu.WithUser("user-2"))
	svc, repo := newInsightsService(nil)
	repo.On("Get", mock.Anything, theirs.ID).Return(&theirs, nil)

	_, err := svc.GameCard(context.Background(), "user-1", theirs.ID)
	requireCode(t, err, apperrors.ErrCodeNotFound)
}

func TestInsights_Doomsday(t *testing.T) {
	svc, _ := newInsightsService(library())

	d, err := svc.Doomsday(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, d.BacklogSize)
	assert.True(t, d.UsedGrossRate)
	assert.False(t, d.Never)
	assert.NotEmpty(t, d.ClearanceDate)
}

func TestInsights_NextUpRespectsLimit(t *testing.T) {
	svc, _ := newInsightsService(library())

	picks, err := svc.NextUp(context.Background(), "user-1", 1)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(picks), 1)
}
