package repository

import (
	"context"

	"github.com/vytor/gameshelf/internal/models"
)

// GameRepository handles game and play log data access. Lookups by id
// return sql.ErrNoRows when nothing matches.
type GameRepository interface {
	// GetAll returns every game a user owns or wishlists, with play logs
	// ordered by date.
	GetAll(ctx context.Context, userID string) ([]models.Game, error)
	Get(ctx context.Context, id string) (*models.Game, error)
	List(ctx context.Context, filter models.GameFilter) ([]models.Game, error)
	Count(ctx context.Context, filter models.GameFilter) (int, error)
	Create(ctx context.Context, game models.Game) error
	CreateBatch(ctx context.Context, games []models.Game) error
	Update(ctx context.Context, game models.Game) error
	Delete(ctx context.Context, id string) error
	AddPlayLog(ctx context.Context, gameID string, log models.PlayLog) error
	DeletePlayLog(ctx context.Context, gameID, logID string) error
}
