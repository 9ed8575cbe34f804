package workers

import (
	"context"

	"github.com/MKhiriev/go-access-portal/internal/config"
	"github.com/MKhiriev/go-access-portal/internal/logger"
	"github.com/MKhiriev/go-access-portal/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles every background worker the portal runs: currently
// only the session reaper.
func NewWorkers(storages *store.Storages, cfg config.Workers, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			NewSessionReaper(storages.SessionRepository, cfg.ReapInterval, logger),
		},
	}
}

// Start launches all workers. Each worker owns its goroutines.
func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

// Stop blocks until every worker has finished.
func (w *Workers) Stop() {
	for _, worker := range w.workers {
		worker.Stop()
	}
}
