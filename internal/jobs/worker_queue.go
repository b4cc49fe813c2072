package jobs

import (
	"github.com/vytor/gameshelf/internal/worker"
)

// WorkerQueue implements JobQueue on top of a worker pool.
type WorkerQueue struct {
	pool     *worker.Pool
	enricher worker.Enricher
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool, enricher worker.Enricher) JobQueue {
	return &WorkerQueue{pool: pool, enricher: enricher}
}

func (q *WorkerQueue) EnqueueEnrichment(userID, gameID string) error {
	return q.pool.Submit(&worker.EnrichGameJob{
		Enricher: q.enricher,
		UserID:   userID,
		GameID:   gameID,
	})
}

// NoopQueue drops every job. It stands in when no enrichment backend is
// configured.
type NoopQueue struct{}

func (NoopQueue) EnqueueEnrichment(string, string) error { return nil }
