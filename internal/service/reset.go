package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	llotel "github.com/closetware/landlord/internal/adapter/otel"
	"github.com/closetware/landlord/internal/adapter/ws"
	"github.com/closetware/landlord/internal/port/broadcast"
	"github.com/closetware/landlord/internal/port/ledger"
)

// ResetScheduler re-arms the hourly action quotas: every interval it
// clears the worked flag and the gamble/slot counters on all tenants.
// Balances and floor space are never touched.
type ResetScheduler struct {
	store    ledger.Store
	interval time.Duration
	hub      broadcast.Broadcaster
	metrics  *llotel.Metrics

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewResetScheduler creates a scheduler. hub and metrics may be nil.
func NewResetScheduler(store ledger.Store, interval time.Duration, hub broadcast.Broadcaster, metrics *llotel.Metrics) *ResetScheduler {
	return &ResetScheduler{
		store:    store,
		interval: interval,
		hub:      hub,
		metrics:  metrics,
		stopCh:   make(chan struct{}),
	}
}

// Start launches the reset loop in a goroutine. The loop exits when the
// context is canceled or Stop is called. A failed pass is logged and
// retried on the next tick; it never stops the loop.
func (s *ResetScheduler) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		slog.Info("quota reset scheduler started", "interval", s.interval)

		for {
			select {
			case <-ctx.Done():
				slog.Info("quota reset scheduler stopped", "reason", "context canceled")
				return
			case <-s.stopCh:
				slog.Info("quota reset scheduler stopped")
				return
			case <-ticker.C:
				if _, err := s.ResetNow(ctx); err != nil {
					slog.Error("quota reset pass failed", "error", err)
				}
			}
		}
	}()
}

// Stop terminates the reset loop. Safe to call more than once.
func (s *ResetScheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// ResetNow performs one reset pass immediately and returns how many
// tenants were touched. Idempotent: a second pass with no intervening
// commands touches zero rows.
func (s *ResetScheduler) ResetNow(ctx context.Context) (int64, error) {
	n, err := s.store.ResetQuotas(ctx)
	if err != nil {
		if s.metrics != nil {
			s.metrics.StoreFailures.Add(ctx, 1)
		}
		return 0, err
	}

	if s.metrics != nil {
		s.metrics.QuotaResets.Add(ctx, 1)
	}
	if s.hub != nil {
		s.hub.BroadcastEvent(ctx, ws.EventReset, ws.ResetEvent{TenantsReset: n})
	}

	slog.Info("quota reset pass complete", "tenants_reset", n)
	return n, nil
}
