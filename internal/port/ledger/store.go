// Package ledger defines the tenant store port (interface).
package ledger

import (
	"context"

	"github.com/closetware/landlord/internal/domain/tenant"
)

// Change describes one atomic mutation of a tenant record. Delta fields
// are applied as store-level increments (balance = balance + delta), not
// read-modify-write, so concurrent commands against the same tenant
// cannot lose updates. Set pointers overwrite the field outright and win
// over the corresponding delta.
type Change struct {
	BalanceDelta int64
	FloorDelta   float64

	SetBalance *int64
	SetFloor   *float64
	SetWorked  *bool

	IncGamble bool
	IncSlot   bool
}

// Store is the port interface for the tenant ledger.
type Store interface {
	// Get returns the tenant with the given chat ID, or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*tenant.Tenant, error)

	// Create inserts a new tenant record; domain.ErrAlreadyExists on
	// an ID collision.
	Create(ctx context.Context, t *tenant.Tenant) error

	// Delete removes the record entirely; domain.ErrNotFound if absent.
	Delete(ctx context.Context, id string) error

	// List returns all tenants ordered by move-in time.
	List(ctx context.Context) ([]tenant.Tenant, error)

	// Count returns the number of tenant records.
	Count(ctx context.Context) (int64, error)

	// Apply performs the change as a single atomic update and returns
	// the resulting record; domain.ErrNotFound if the tenant is gone.
	Apply(ctx context.Context, id string, ch Change) (*tenant.Tenant, error)

	// ResetQuotas clears worked/gambleCount/slotCount on every tenant
	// and reports how many rows were touched. Balance and floor space
	// are untouched.
	ResetQuotas(ctx context.Context) (int64, error)
}
