// Package snapshot autosaves the dock layout while the shell runs.
package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/phreebee/dockyard/internal/application/usecase"
	"github.com/phreebee/dockyard/internal/domain/entity"
	"github.com/phreebee/dockyard/internal/logging"
)

const defaultIntervalMs = 2000

// Service handles debounced layout snapshots. The dock itself is not safe
// for concurrent use, so callers hand over a captured layout and the service
// only ever touches that copy.
type Service struct {
	persist   *usecase.PersistLayoutUseCase
	sessionID string
	interval  time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending *entity.DockLayout
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewService creates a new snapshot service writing under sessionID.
func NewService(persist *usecase.PersistLayoutUseCase, sessionID string, intervalMs int) *Service {
	if intervalMs <= 0 {
		intervalMs = defaultIntervalMs
	}
	return &Service{
		persist:   persist,
		sessionID: sessionID,
		interval:  time.Duration(intervalMs) * time.Millisecond,
	}
}

// Start enables debounced saves.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ctx, s.cancel = context.WithCancel(ctx)
	logging.FromContext(ctx).Debug().Dur("interval", s.interval).Msg("layout snapshot service started")
}

// Stop stops the service and saves any pending layout.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	return s.SaveNow(ctx)
}

// MarkDirty records the latest layout and restarts the debounce timer.
func (s *Service) MarkDirty(layout *entity.DockLayout) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = layout
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.interval, func() {
		s.mu.Lock()
		ctx := s.ctx
		s.mu.Unlock()

		if ctx == nil || ctx.Err() != nil {
			return
		}
		if err := s.save(ctx); err != nil {
			logging.FromContext(ctx).Error().Err(err).Msg("failed to save layout snapshot")
		}
	})
}

// Pending reports whether a layout is waiting to be saved.
func (s *Service) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// SaveNow forces an immediate save of the pending layout, if any.
func (s *Service) SaveNow(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	return s.save(ctx)
}

func (s *Service) save(ctx context.Context) error {
	s.mu.Lock()
	layout := s.pending
	s.pending = nil
	s.mu.Unlock()

	if layout == nil {
		return nil
	}

	if _, err := s.persist.Store(ctx, layout, s.sessionID); err != nil {
		s.mu.Lock()
		// Keep the failed layout unless a newer one arrived meanwhile.
		if s.pending == nil {
			s.pending = layout
		}
		s.mu.Unlock()
		return err
	}
	return nil
}
