package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-access-portal/internal/logger"
	"github.com/MKhiriev/go-access-portal/models"
)

// mockSessionRepository implements store.SessionRepository; only
// DeleteExpiredSessions matters here.
type mockSessionRepository struct {
	deleteCount atomic.Int64
	deleteErr   error
}

func (m *mockSessionRepository) CreateSession(_ context.Context, s models.Session) (models.Session, error) {
	return s, nil
}

func (m *mockSessionRepository) FindSessionByTokenHash(_ context.Context, _ string) (models.Session, error) {
	return models.Session{}, nil
}

func (m *mockSessionRepository) TouchSession(_ context.Context, _ int64, _ time.Time) error {
	return nil
}

func (m *mockSessionRepository) RevokeSession(_ context.Context, _ int64, _ time.Time) error {
	return nil
}

func (m *mockSessionRepository) DeleteExpiredSessions(_ context.Context, _ time.Time) (int64, error) {
	m.deleteCount.Add(1)
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	return 2, nil
}

func TestSessionReaper_DeletesOnTick(t *testing.T) {
	repo := &mockSessionRepository{}
	reaper := NewSessionReaper(repo, 5*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	reaper.Start(ctx)

	deadline := time.After(time.Second)
	for repo.deleteCount.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("reaper never ran")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	reaper.Stop()
}

func TestSessionReaper_StopWaitsForLoopExit(t *testing.T) {
	repo := &mockSessionRepository{}
	reaper := NewSessionReaper(repo, time.Minute, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	reaper.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		reaper.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after context cancellation")
	}
}

func TestSessionReaper_SurvivesStorageErrors(t *testing.T) {
	repo := &mockSessionRepository{deleteErr: errors.New("storage is down")}
	reaper := NewSessionReaper(repo, 5*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	reaper.Start(ctx)

	deadline := time.After(time.Second)
	for repo.deleteCount.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("reaper stopped after the first error")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	reaper.Stop()
}

func TestNewSessionReaper_ZeroIntervalFallsBack(t *testing.T) {
	reaper := NewSessionReaper(&mockSessionRepository{}, 0, logger.Nop())

	if reaper.interval != defaultReapInterval {
		t.Errorf("expected fallback interval %v, got %v", defaultReapInterval, reaper.interval)
	}
}
