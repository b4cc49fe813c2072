package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/gameshelf/internal/calendar"
	"github.com/vytor/gameshelf/internal/errors"
	"github.com/vytor/gameshelf/internal/jobs"
	"github.com/vytor/gameshelf/internal/logger"
	"github.com/vytor/gameshelf/internal/models"
	"github.com/vytor/gameshelf/internal/repository"
	"github.com/vytor/gameshelf/internal/validation"
)

// Clock supplies the current time. Services take one so tests can pin it.
type Clock func() time.Time

// GameService handles library CRUD and play sessions.
type GameService interface {
	GetGame(ctx context.Context, userID, id string) (*models.Game, error)
	ListGames(ctx context.Context, filter models.GameFilter) ([]models.Game, int, error)
	CreateGame(ctx context.Context, userID string, in models.GameInput) (*models.Game, error)
	UpdateGame(ctx context.Context, userID, id string, in models.GameInput) (*models.Game, error)
	DeleteGame(ctx context.Context, userID, id string) error
	AddSession(ctx context.Context, userID, gameID string, in models.SessionInput) (*models.PlayLog, error)
	DeleteSession(ctx context.Context, userID, gameID, logID string) error
}

type gameService struct {
	gameRepo repository.GameRepository
	jobQueue jobs.JobQueue
	now      Clock
}

// NewGameService creates a new GameService
func NewGameService(gameRepo repository.GameRepository, jobQueue jobs.JobQueue, now Clock) GameService {
	if now == nil {
		now = time.Now
	}
	return &gameService{gameRepo: gameRepo, jobQueue: jobQueue, now: now}
}

func (s *gameService) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// validateInput runs tag validation plus the date-order rule tags cannot
// express.
func validateInput(in models.GameInput) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	if in.StartDate != "" && in.EndDate != "" {
		start, _ := calendar.Parse(in.StartDate)
		end, _ := calendar.Parse(in.EndDate)
		if end.Before(start) {
			return errors.NewValidationError("end_date", "end_date must not be before start_date")
		}
	}
	return nil
}

// owned loads a game and hides other users' games behind NOT_FOUND.
func (s *gameService) owned(ctx context.Context, userID, id string) (*models.Game, error) {
	log := logger.FromContext(ctx)
	game, err := s.gameRepo.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("game", id)
		}
		log.Error("failed to get game: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if game == nil || game.UserID != userID {
		return nil, errors.NewNotFoundError("game", id)
	}
	return game, nil
}

func (s *gameService) GetGame(ctx context.Context, userID, id string) (*models.Game, error) {
	logger.FromContext(ctx).Debug("getting game: id=%s, user_id=%s", id, userID)
	return s.owned(ctx, userID, id)
}

func (s *gameService) ListGames(ctx context.Context, filter models.GameFilter) ([]models.Game, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing games with filter: user_id=%s", filter.UserID)

	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, errors.NewValidationError("status", "unknown status "+string(filter.Status))
	}

	games, err := s.gameRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list games: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	totalCount, err := s.gameRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count games: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	return games, totalCount, nil
}

func (s *gameService) CreateGame(ctx context.Context, userID string, in models.GameInput) (*models.Game, error) {
	log := logger.FromContext(ctx)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	now := s.timestamp()
	game := models.Game{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
		PlayLogs:  []models.PlayLog{},
	}
	in.Apply(&game)

	log.Debug("creating game: name=%s, user_id=%s", game.Name, userID)
	if err := s.gameRepo.Create(ctx, game); err != nil {
		log.Error("failed to create game: %v", err)
		return nil, errors.NewInternalError(err)
	}

	s.enqueueEnrichment(ctx, game)
	return &game, nil
}

// enqueueEnrichment asks for metadata when the game has no thumbnail yet.
// A full queue only costs the thumbnail, so errors are logged, not returned.
func (s *gameService) enqueueEnrichment(ctx context.Context, game models.Game) {
	if game.Thumbnail != "" {
		return
	}
	if err := s.jobQueue.EnqueueEnrichment(game.UserID, game.ID); err != nil {
		logger.FromContext(ctx).Warn("failed to enqueue enrichment for game %s: %v", game.ID, err)
	}
}

func (s *gameService) UpdateGame(ctx context.Context, userID, id string, in models.GameInput) (*models.Game, error) {
	log := logger.FromContext(ctx)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	game, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	in.Apply(game)
	game.UpdatedAt = s.timestamp()

	log.Debug("updating game: id=%s", id)
	if err := s.gameRepo.Update(ctx, *game); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("game", id)
		}
		log.Error("failed to update game: %v", err)
		return nil, errors.NewInternalError(err)
	}

	s.enqueueEnrichment(ctx, *game)
	return game, nil
}

func (s *gameService) DeleteGame(ctx context.Context, userID, id string) error {
	log := logger.FromContext(ctx)
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	log.Debug("deleting game: id=%s", id)
	if err := s.gameRepo.Delete(ctx, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NewNotFoundError("game", id)
		}
		log.Error("failed to delete game: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

// AddSession records a play session. The first session on a game that has
// not been started moves it to In Progress.
func (s *gameService) AddSession(ctx context.Context, userID, gameID string, in models.SessionInput) (*models.PlayLog, error) {
	log := logger.FromContext(ctx)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	game, err := s.owned(ctx, userID, gameID)
	if err != nil {
		return nil, err
	}

	entry := models.PlayLog{
		ID:    uuid.NewString(),
		Date:  in.Date,
		Hours: in.Hours,
		Notes: in.Notes,
		Mood:  in.Mood,
	}
	log.Debug("adding session: game_id=%s, date=%s, hours=%.2f", gameID, entry.Date, entry.Hours)
	if err := s.gameRepo.AddPlayLog(ctx, gameID, entry); err != nil {
		log.Error("failed to add session: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if game.Status == models.StatusNotStarted {
		game.Status = models.StatusInProgress
		if game.StartDate == "" {
			game.StartDate = in.Date
		}
		game.UpdatedAt = s.timestamp()
		if err := s.gameRepo.Update(ctx, *game); err != nil {
			log.Warn("session saved but status update failed: %v", err)
		}
	}
	return &entry, nil
}

func (s *gameService) DeleteSession(ctx context.Context, userID, gameID, logID string) error {
	log := logger.FromContext(ctx)
	if _, err := s.owned(ctx, userID, gameID); err != nil {
		return err
	}
	if err := s.gameRepo.DeletePlayLog(ctx, gameID, logID); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NewNotFoundError("session", logID)
		}
		log.Error("failed to delete session: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}
