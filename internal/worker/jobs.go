package worker

import (
	"context"

	"github.com/vytor/gameshelf/internal/logger"
)

// Enricher is the slice of the enrichment service a job needs. It lives
// here so worker does not import services.
type Enricher interface {
	EnrichGame(ctx context.Context, userID, gameID string) error
}

// EnrichGameJob fetches metadata for one stored game.
type EnrichGameJob struct {
	Enricher Enricher
	UserID   string
	GameID   string
}

func (j *EnrichGameJob) Name() string { return "enrich_game" }

func (j *EnrichGameJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"user_id": j.UserID,
		"game_id": j.GameID,
	})
	log.Debug("enriching game")
	return j.Enricher.EnrichGame(logger.NewContext(ctx, log), j.UserID, j.GameID)
}
