package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"sync"
	"time"

	"github.com/vytor/gameshelf/internal/classify"
	"github.com/vytor/gameshelf/internal/enrichment"
	"github.com/vytor/gameshelf/internal/errors"
	"github.com/vytor/gameshelf/internal/logger"
	"github.com/vytor/gameshelf/internal/models"
	"github.com/vytor/gameshelf/internal/repository"
)

// maxConcurrentDealSearches caps parallel calls to the deals feed.
const maxConcurrentDealSearches = 4

// EnrichmentService joins the library with the external metadata and deals
// services. Either client may be nil when its service is not configured.
type EnrichmentService interface {
	EnrichGame(ctx context.Context, userID, gameID string) error
	Critics(ctx context.Context, userID, gameID string) (*models.CriticComparison, error)
	Deals(ctx context.Context, userID string) ([]models.DealMatch, error)
}

type enrichmentService struct {
	gameRepo repository.GameRepository
	metadata enrichment.MetadataClient
	deals    enrichment.DealsClient
	now      Clock
}

// NewEnrichmentService creates a new EnrichmentService
func NewEnrichmentService(gameRepo repository.GameRepository, metadata enrichment.MetadataClient, deals enrichment.DealsClient, now Clock) EnrichmentService {
	if now == nil {
		now = time.Now
	}
	return &enrichmentService{gameRepo: gameRepo, metadata: metadata, deals: deals, now: now}
}

func (s *enrichmentService) ownedGame(ctx context.Context, userID, gameID string) (*models.Game, error) {
	game, err := s.gameRepo.Get(ctx, gameID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("game", gameID)
		}
		logger.FromContext(ctx).Error("failed to get game: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if game == nil || game.UserID != userID {
		return nil, errors.NewNotFoundError("game", gameID)
	}
	return game, nil
}

func upstreamError(service string, err error) error {
	if stderrors.Is(err, enrichment.ErrNotFound) {
		return errors.NewNotFoundError(service, "match")
	}
	return errors.NewUnavailableError(service, err)
}

// EnrichGame fills a missing thumbnail from the metadata service. A game
// the service does not know is left alone.
func (s *enrichmentService) EnrichGame(ctx context.Context, userID, gameID string) error {
	log := logger.FromContext(ctx)
	if s.metadata == nil {
		log.Debug("metadata service not configured, skipping enrichment")
		return nil
	}

	game, err := s.ownedGame(ctx, userID, gameID)
	if err != nil {
		return err
	}
	if game.Thumbnail != "" {
		log.Debug("game already has a thumbnail")
		return nil
	}

	meta, err := s.metadata.Lookup(ctx, game.Name)
	if stderrors.Is(err, enrichment.ErrNotFound) {
		log.Info("no metadata match for %q", game.Name)
		return nil
	}
	if err != nil {
		return err
	}
	if meta.Thumbnail == "" {
		return nil
	}

	game.Thumbnail = meta.Thumbnail
	game.UpdatedAt = s.now().UTC().Format(time.RFC3339)
	if err := s.gameRepo.Update(ctx, *game); err != nil {
		log.Error("failed to save thumbnail: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("thumbnail set for %q", game.Name)
	return nil
}

func (s *enrichmentService) Critics(ctx context.Context, userID, gameID string) (*models.CriticComparison, error) {
	if s.metadata == nil {
		return nil, errors.NewUnavailableError("metadata", enrichment.ErrUnavailable)
	}
	game, err := s.ownedGame(ctx, userID, gameID)
	if err != nil {
		return nil, err
	}
	meta, err := s.metadata.Lookup(ctx, game.Name)
	if err != nil {
		logger.FromContext(ctx).Warn("metadata lookup failed for %q: %v", game.Name, err)
		return nil, upstreamError("metadata", err)
	}
	cmp := classify.CompareCritics(*game, *meta)
	return &cmp, nil
}

// Deals searches the feed for every wishlist title and matches the results
// back to the wishlist. Failed searches are skipped unless all of them fail.
func (s *enrichmentService) Deals(ctx context.Context, userID string) ([]models.DealMatch, error) {
	log := logger.FromContext(ctx)
	if s.deals == nil {
		return nil, errors.NewUnavailableError("deals", enrichment.ErrUnavailable)
	}

	games, err := s.gameRepo.GetAll(ctx, userID)
	if err != nil {
		log.Error("failed to load library: %v", err)
		return nil, errors.NewInternalError(err)
	}
	var wishlist []models.Game
	for _, g := range games {
		if g.Status == models.StatusWishlist {
			wishlist = append(wishlist, g)
		}
	}
	if len(wishlist) == 0 {
		return []models.DealMatch{}, nil
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		found    []models.Deal
		failures int
		lastErr  error
	)
	sem := make(chan struct{}, maxConcurrentDealSearches)
	for _, g := range wishlist {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			deals, err := s.deals.Search(ctx, name)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Warn("deal search failed for %q: %v", name, err)
				failures++
				lastErr = err
				return
			}
			found = append(found, deals...)
		}(g.Name)
	}
	wg.Wait()

	if failures == len(wishlist) {
		return nil, upstreamError("deals", lastErr)
	}
	log.Debug("found %d deals for %d wishlist games", len(found), len(wishlist))
	return classify.MatchDeals(games, found), nil
}
