package services

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/gameshelf/internal/errors"
	"github.com/vytor/gameshelf/internal/jobs"
	"github.com/vytor/gameshelf/internal/library"
	"github.com/vytor/gameshelf/internal/logger"
	"github.com/vytor/gameshelf/internal/models"
	"github.com/vytor/gameshelf/internal/repository"
)

// ImportResult reports what an import did.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  []string `json:"skipped"`
}

// LibraryService moves whole libraries in and out as YAML documents.
type LibraryService interface {
	Import(ctx context.Context, userID string, r io.Reader) (*ImportResult, error)
	Export(ctx context.Context, userID string, w io.Writer) error
}

type libraryService struct {
	gameRepo repository.GameRepository
	jobQueue jobs.JobQueue
	now      Clock
}

// NewLibraryService creates a new LibraryService
func NewLibraryService(gameRepo repository.GameRepository, jobQueue jobs.JobQueue, now Clock) LibraryService {
	if now == nil {
		now = time.Now
	}
	return &libraryService{gameRepo: gameRepo, jobQueue: jobQueue, now: now}
}

func (s *libraryService) Import(ctx context.Context, userID string, r io.Reader) (*ImportResult, error) {
	log := logger.FromContext(ctx).WithField("user_id", userID)

	file, err := library.Decode(r)
	if err != nil {
		return nil, err
	}
	existing, err := s.gameRepo.GetAll(ctx, userID)
	if err != nil {
		log.Error("failed to load library: %v", err)
		return nil, errors.NewInternalError(err)
	}

	prepared, err := library.Prepare(*file, userID, existing, s.now(), uuid.NewString)
	if err != nil {
		return nil, err
	}
	if err := s.gameRepo.CreateBatch(ctx, prepared.Games); err != nil {
		log.Error("failed to store imported games: %v", err)
		return nil, errors.NewInternalError(err)
	}

	for _, g := range prepared.Games {
		if g.Thumbnail != "" {
			continue
		}
		if err := s.jobQueue.EnqueueEnrichment(userID, g.ID); err != nil {
			log.Warn("failed to enqueue enrichment for game %s: %v", g.ID, err)
			break
		}
	}

	log.Info("imported %d games, skipped %d", len(prepared.Games), len(prepared.Skipped))
	return &ImportResult{Imported: len(prepared.Games), Skipped: prepared.Skipped}, nil
}

func (s *libraryService) Export(ctx context.Context, userID string, w io.Writer) error {
	log := logger.FromContext(ctx).WithField("user_id", userID)
	games, err := s.gameRepo.GetAll(ctx, userID)
	if err != nil {
		log.Error("failed to load library: %v", err)
		return errors.NewInternalError(err)
	}
	file := models.LibraryFile{
		Version:    library.FormatVersion,
		UserID:     userID,
		ExportedAt: s.now().UTC().Format(time.RFC3339),
		Games:      games,
	}
	if err := library.Encode(w, file); err != nil {
		log.Error("failed to write library: %v", err)
		return errors.NewInternalError(err)
	}
	log.Debug("exported %d games", len(games))
	return nil
}
