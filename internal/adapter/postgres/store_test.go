package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/closetware/landlord/internal/config"
	"github.com/closetware/landlord/internal/domain"
	"github.com/closetware/landlord/internal/domain/tenant"
	"github.com/closetware/landlord/internal/port/ledger"
)

// newTestStore connects to the database named by TEST_DATABASE_URL and
// skips the test when it is unset.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	if err := RunMigrations(ctx, dsn); err != nil {
		t.Fatalf("migrations: %v", err)
	}

	pool, err := NewPool(ctx, config.Postgres{
		DSN:             dsn,
		MaxConns:        4,
		MinConns:        1,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 10 * time.Minute,
		HealthCheck:     time.Minute,
	})
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, `DELETE FROM tenants WHERE id LIKE 'test-%'`)
		pool.Close()
	})
	return NewStore(pool)
}

func TestStoreRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tn := &tenant.Tenant{ID: "test-u1", Name: "Ariel", FloorSpace: 1.0}
	if err := s.Create(ctx, tn); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Create(ctx, tn); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("duplicate create should report already-exists, got %v", err)
	}

	got, err := s.Get(ctx, "test-u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Ariel" || got.FloorSpace != 1.0 {
		t.Errorf("unexpected record %+v", got)
	}

	worked := true
	updated, err := s.Apply(ctx, "test-u1", ledger.Change{
		BalanceDelta: 2500,
		FloorDelta:   0.1234, // rounds to 0.123 in SQL
		SetWorked:    &worked,
		IncGamble:    true,
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if updated.Balance != 2500 || !updated.Worked || updated.GambleCount != 1 {
		t.Errorf("apply result %+v", updated)
	}
	if updated.FloorSpace != 1.123 {
		t.Errorf("expected 3-decimal rounding to 1.123, got %v", updated.FloorSpace)
	}

	n, err := s.ResetQuotas(ctx)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if n < 1 {
		t.Errorf("expected at least 1 row reset, got %d", n)
	}
	got, _ = s.Get(ctx, "test-u1")
	if got.Worked || got.GambleCount != 0 {
		t.Errorf("quotas not cleared: %+v", got)
	}
	if got.Balance != 2500 {
		t.Errorf("reset must not touch balance, got %d", got.Balance)
	}

	if err := s.Delete(ctx, "test-u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "test-u1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found after delete, got %v", err)
	}
}

func TestStoreApplySetOverridesDelta(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Create(ctx, &tenant.Tenant{ID: "test-u2", Name: "Morgan", Balance: 100}); err != nil {
		t.Fatalf("create: %v", err)
	}

	bal := int64(7)
	updated, err := s.Apply(ctx, "test-u2", ledger.Change{SetBalance: &bal, BalanceDelta: 999})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if updated.Balance != 7 {
		t.Errorf("set must win over delta, got %d", updated.Balance)
	}
}
