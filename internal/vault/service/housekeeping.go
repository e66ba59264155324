package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/vault/internal/vault/store"
)

// DefaultEventRetention is how long un-owned security events are kept.
const DefaultEventRetention = 30 * 24 * time.Hour

// HousekeepingService periodically purges expired sessions and stale
// security events.
type HousekeepingService struct {
	Store          store.Store
	Logger         *slog.Logger
	Interval       time.Duration
	EventRetention time.Duration
	Clock          Clock

	// Sweepers run after the store cleanup, e.g. the in-memory KV.
	Sweepers []func() int

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	return &HousekeepingService{
		Store:          store,
		Logger:         logger,
		Interval:       interval,
		EventRetention: DefaultEventRetention,
		stopCh:         make(chan struct{}),
		doneCh:         make(chan struct{}),
	}
}

// Start begins the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup runs one pass. Each step is independent of the others.
func (s *HousekeepingService) Cleanup(ctx context.Context) {
	now := nowFrom(s.Clock)
	s.Logger.Debug("starting housekeeping cleanup")

	sessions, err := s.Store.Sessions().DeleteExpiredSessions(ctx, now)
	if err != nil {
		s.Logger.Error("failed to delete expired sessions", "error", err)
	}

	var events int64
	if s.EventRetention > 0 {
		events, err = s.Store.SecurityEvents().DeleteSecurityEventsBefore(ctx, now.Add(-s.EventRetention))
		if err != nil {
			s.Logger.Error("failed to delete old security events", "error", err)
		}
	}

	swept := 0
	for _, sweep := range s.Sweepers {
		swept += sweep()
	}

	s.Logger.Info("housekeeping cleanup completed",
		"expired_sessions", sessions,
		"security_events", events,
		"kv_items", swept,
	)
}
