package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-access-portal/internal/logger"
	"github.com/MKhiriev/go-access-portal/internal/store"
)

// defaultReapInterval is used when the configuration leaves the interval
// unset, so a misconfigured deployment still reaps instead of spinning.
const defaultReapInterval = 10 * time.Minute

// SessionReaper periodically deletes sessions whose hard expiry has passed.
// Expired sessions already fail authentication; the reaper only keeps the
// sessions table from growing without bound.
type SessionReaper struct {
	sessions store.SessionRepository
	interval time.Duration

	wg     sync.WaitGroup
	logger *logger.Logger
}

func NewSessionReaper(sessions store.SessionRepository, interval time.Duration, logger *logger.Logger) *SessionReaper {
	if interval <= 0 {
		interval = defaultReapInterval
	}
	return &SessionReaper{
		sessions: sessions,
		interval: interval,
		logger:   logger,
	}
}

// Start launches the reaping loop. The loop stops when ctx is cancelled.
func (r *SessionReaper) Start(ctx context.Context) {
	r.logger.Info().Dur("interval", r.interval).Msg("session reaper started")

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				r.logger.Info().Msg("session reaper stopped")
				return
			case <-ticker.C:
				r.reap(ctx)
			}
		}
	}()
}

// Stop blocks until the reaping loop has exited.
func (r *SessionReaper) Stop() {
	r.wg.Wait()
}

func (r *SessionReaper) reap(ctx context.Context) {
	deleted, err := r.sessions.DeleteExpiredSessions(ctx, time.Now())
	if err != nil {
		r.logger.Err(err).Str("func", "*SessionReaper.reap").Msg("error deleting expired sessions")
		return
	}
	if deleted > 0 {
		r.logger.Info().Int64("deleted", deleted).Msg("expired sessions removed")
	}
}
