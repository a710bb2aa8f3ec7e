package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/coffeelux/auth/internal/auth/state"
)

// HousekeepingService periodically sweeps expired sessions, codes, and
// recovery flows out of the state store. Backends with native TTL eviction
// report zero deletions here, which is fine.
type HousekeepingService struct {
	State    state.Store
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates the sweeper. If interval is 0 or negative,
// defaults to 5 minutes.
func NewHousekeepingService(st state.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &HousekeepingService{
		State:    st,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop to shut down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop shuts the worker down, blocking until any in-progress sweep finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.sweep()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

// sweep deletes expired records. Each sweep is independent; a failure in one
// store does not stop the others.
func (s *HousekeepingService) sweep() {
	ctx := context.Background()
	now := time.Now()

	var total int

	if n, err := s.State.Sessions().DeleteExpired(ctx, now); err != nil {
		s.Logger.Error("failed to sweep expired sessions", "error", err)
	} else {
		total += n
	}

	if n, err := s.State.OTP().DeleteExpired(ctx, now); err != nil {
		s.Logger.Error("failed to sweep expired codes", "error", err)
	} else {
		total += n
	}

	if n, err := s.State.Flows().DeleteExpired(ctx, now); err != nil {
		s.Logger.Error("failed to sweep stale recovery flows", "error", err)
	} else {
		total += n
	}

	if total > 0 {
		s.Logger.Info("housekeeping sweep completed", "deleted", total)
	}
}
