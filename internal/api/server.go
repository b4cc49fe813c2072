package api

import (
	"context"
	"time"

	"github.com/vytor/gameshelf/internal/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	GameService       services.GameService
	InsightsService   services.InsightsService
	EnrichmentService services.EnrichmentService
	LibraryService    services.LibraryService
	DB                Pinger
	RequestTimeout    time.Duration
}
