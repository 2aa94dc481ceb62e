package service

import (
	"context"
	"testing"
	"time"

	"github.com/closetware/landlord/internal/domain/tenant"
)

func TestResetNowClearsQuotasOnly(t *testing.T) {
	store := newMemStore()
	seedTenant(t, store, tenant.Tenant{
		ID: "u1", Name: "Ariel", Balance: 500, FloorSpace: 2.5,
		Worked: true, GambleCount: 3, SlotCount: 5,
	})
	seedTenant(t, store, tenant.Tenant{ID: "u2", Name: "Morgan", Balance: -20})

	sched := NewResetScheduler(store, time.Hour, nil, nil)

	n, err := sched.ResetNow(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected 1 tenant touched (u2 was already clean), got %d", n)
	}

	got, _ := store.Get(context.Background(), "u1")
	if got.Worked || got.GambleCount != 0 || got.SlotCount != 0 {
		t.Errorf("quotas not cleared: %+v", got)
	}
	if got.Balance != 500 || got.FloorSpace != 2.5 {
		t.Errorf("reset must not touch balance or floor space: %+v", got)
	}
}

func TestResetNowIdempotent(t *testing.T) {
	store := newMemStore()
	seedTenant(t, store, tenant.Tenant{ID: "u1", Name: "Ariel", Worked: true})

	sched := NewResetScheduler(store, time.Hour, nil, nil)

	if _, err := sched.ResetNow(context.Background()); err != nil {
		t.Fatal(err)
	}
	n, err := sched.ResetNow(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("second pass with no intervening commands should touch nothing, got %d", n)
	}
}

func TestSchedulerTicksAndStops(t *testing.T) {
	store := newMemStore()
	seedTenant(t, store, tenant.Tenant{ID: "u1", Name: "Ariel", Worked: true})

	sched := NewResetScheduler(store, 10*time.Millisecond, nil, nil)
	sched.Start(context.Background())

	deadline := time.After(time.Second)
	for {
		got, _ := store.Get(context.Background(), "u1")
		if !got.Worked {
			break
		}
		select {
		case <-deadline:
			t.Fatal("scheduler never fired")
		case <-time.After(5 * time.Millisecond):
		}
	}

	sched.Stop()
	sched.Stop() // second call is a no-op
}

func TestSchedulerStopsOnContextCancel(t *testing.T) {
	store := newMemStore()
	sched := NewResetScheduler(store, time.Hour, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	sched.Start(ctx)
	cancel()
}
