package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/closetware/landlord/internal/domain"
	"github.com/closetware/landlord/internal/domain/tenant"
	"github.com/closetware/landlord/internal/port/ledger"
)

const uniqueViolation = "23505"

const tenantColumns = "id, name, floor_space, balance, worked, gamble_count, slot_count, created_at, updated_at"

// Store implements ledger.Store on top of a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a Store backed by the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func scanTenant(row pgx.Row) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := row.Scan(&t.ID, &t.Name, &t.FloorSpace, &t.Balance, &t.Worked,
		&t.GambleCount, &t.SlotCount, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) Get(ctx context.Context, id string) (*tenant.Tenant, error) {
	t, err := scanTenant(s.pool.QueryRow(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get tenant %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get tenant %s: %w", id, err)
	}
	return t, nil
}

func (s *Store) Create(ctx context.Context, t *tenant.Tenant) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO tenants (id, name, floor_space, balance, worked, gamble_count, slot_count)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.Name, t.FloorSpace, t.Balance, t.Worked, t.GambleCount, t.SlotCount)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("create tenant %s: %w", t.ID, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("create tenant %s: %w", t.ID, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tenants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tenant %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete tenant %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]tenant.Tenant, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+tenantColumns+` FROM tenants ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []tenant.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, *t)
	}
	return tenants, rows.Err()
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM tenants`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tenants: %w", err)
	}
	return n, nil
}

// Apply performs the change as one UPDATE so every delta is computed
// against the stored value, not a stale read. Floor space is rounded to 3
// decimals in SQL to keep the stored precision uniform.
func (s *Store) Apply(ctx context.Context, id string, ch ledger.Change) (*tenant.Tenant, error) {
	sets := []string{"updated_at = now()"}
	args := []any{id}

	add := func(expr string, val any) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf(expr, len(args)))
	}

	switch {
	case ch.SetBalance != nil:
		add("balance = $%d", *ch.SetBalance)
	case ch.BalanceDelta != 0:
		add("balance = balance + $%d", ch.BalanceDelta)
	}

	switch {
	case ch.SetFloor != nil:
		add("floor_space = round($%d::numeric, 3)::double precision", *ch.SetFloor)
	case ch.FloorDelta != 0:
		add("floor_space = round((floor_space + $%d)::numeric, 3)::double precision", ch.FloorDelta)
	}

	if ch.SetWorked != nil {
		add("worked = $%d", *ch.SetWorked)
	}
	if ch.IncGamble {
		sets = append(sets, "gamble_count = gamble_count + 1")
	}
	if ch.IncSlot {
		sets = append(sets, "slot_count = slot_count + 1")
	}

	query := `UPDATE tenants SET ` + strings.Join(sets, ", ") +
		` WHERE id = $1 RETURNING ` + tenantColumns

	t, err := scanTenant(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("apply change to tenant %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("apply change to tenant %s: %w", id, err)
	}
	return t, nil
}

// ResetQuotas re-arms the periodic actions for every tenant. The WHERE
// clause skips already-clean rows, which makes back-to-back resets cheap
// without changing the outcome.
func (s *Store) ResetQuotas(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE tenants
		 SET worked = FALSE, gamble_count = 0, slot_count = 0, updated_at = now()
		 WHERE worked OR gamble_count > 0 OR slot_count > 0`)
	if err != nil {
		return 0, fmt.Errorf("reset quotas: %w", err)
	}
	return tag.RowsAffected(), nil
}
