// Package service implements the economy engine and the quota reset
// scheduler on top of the ledger store port.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	llotel "github.com/closetware/landlord/internal/adapter/otel"
	"github.com/closetware/landlord/internal/adapter/ws"
	"github.com/closetware/landlord/internal/config"
	"github.com/closetware/landlord/internal/domain"
	"github.com/closetware/landlord/internal/domain/economy"
	"github.com/closetware/landlord/internal/domain/tenant"
	"github.com/closetware/landlord/internal/port/broadcast"
	"github.com/closetware/landlord/internal/port/ledger"
	"github.com/closetware/landlord/internal/port/rolegrant"
)

// roleColor is the display color given to catalog roles created on the
// chat platform.
const roleColor = 0xF1C40F

// EconomyService validates and applies every balance-affecting operation.
// Business-rule failures come back inside the result as a Rejection; only
// store and transport failures are returned as errors.
type EconomyService struct {
	store   ledger.Store
	roles   rolegrant.Service
	dice    economy.Dice
	cfg     config.Economy
	hub     broadcast.Broadcaster
	metrics *llotel.Metrics
}

// NewEconomyService creates an EconomyService with all dependencies.
// hub and metrics may be nil (no event feed / no telemetry).
func NewEconomyService(
	store ledger.Store,
	roles rolegrant.Service,
	dice economy.Dice,
	cfg config.Economy,
	hub broadcast.Broadcaster,
	metrics *llotel.Metrics,
) *EconomyService {
	return &EconomyService{
		store:   store,
		roles:   roles,
		dice:    dice,
		cfg:     cfg,
		hub:     hub,
		metrics: metrics,
	}
}

func (s *EconomyService) publish(ctx context.Context, eventType string, payload any) {
	if s.hub != nil {
		s.hub.BroadcastEvent(ctx, eventType, payload)
	}
}

func (s *EconomyService) reject(ctx context.Context, op string) {
	if s.metrics != nil {
		s.metrics.CommandsRejected.Add(ctx, 1,
			metric.WithAttributes(attribute.String("op", op)))
	}
}

func (s *EconomyService) storeErr(ctx context.Context, op string, err error) error {
	if s.metrics != nil {
		s.metrics.StoreFailures.Add(ctx, 1,
			metric.WithAttributes(attribute.String("op", op)))
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *EconomyService) paidOut(ctx context.Context, op string, amount int64) {
	if s.metrics != nil && amount > 0 {
		s.metrics.CoinsPaidOut.Add(ctx, amount,
			metric.WithAttributes(attribute.String("op", op)))
	}
}

// Work pays the actor a random wage once per period.
func (s *EconomyService) Work(ctx context.Context, actorID string) (*economy.WorkResult, error) {
	t, err := s.store.Get(ctx, actorID)
	if errors.Is(err, domain.ErrNotFound) {
		s.reject(ctx, "work")
		return &economy.WorkResult{Rejection: economy.Rejectf(economy.CodeNotATenant,
			"you don't live here. Ask the landlord to move you in")}, nil
	}
	if err != nil {
		return nil, s.storeErr(ctx, "work: get tenant", err)
	}

	if t.Worked {
		s.reject(ctx, "work")
		return &economy.WorkResult{Rejection: economy.Rejectf(economy.CodeQuotaExceeded,
			"%s, you already worked this hour", t.Name)}, nil
	}

	earned := s.cfg.Wage + int64(s.dice.IntBetween(-int(s.cfg.WageRange), int(s.cfg.WageRange)))
	job := s.cfg.Jobs[s.dice.IntBetween(0, len(s.cfg.Jobs)-1)]

	worked := true
	updated, err := s.store.Apply(ctx, actorID, ledger.Change{
		BalanceDelta: earned,
		SetWorked:    &worked,
	})
	if err != nil {
		return nil, s.storeErr(ctx, "work: apply", err)
	}

	s.paidOut(ctx, "work", earned)
	s.publish(ctx, ws.EventWork, ws.BalanceEvent{
		TenantID: t.ID, Name: t.Name, Delta: earned, Balance: updated.Balance, Detail: job,
	})

	return &economy.WorkResult{
		Name:    t.Name,
		Job:     job,
		Earned:  earned,
		Balance: updated.Balance,
	}, nil
}

// guessSide resolves a guess token against the configured heads/tails
// label sets. ok is false when the token is in neither set.
func (s *EconomyService) guessSide(guess string) (economy.CoinSide, bool) {
	g := strings.ToLower(strings.TrimSpace(guess))
	for _, h := range s.cfg.Heads {
		if g == h {
			return economy.Heads, true
		}
	}
	for _, t := range s.cfg.Tails {
		if g == t {
			return economy.Tails, true
		}
	}
	return "", false
}

// Gamble resolves a coin-flip bet for amount coins.
func (s *EconomyService) Gamble(ctx context.Context, actorID, guess string, amount int64) (*economy.GambleResult, error) {
	t, err := s.store.Get(ctx, actorID)
	if errors.Is(err, domain.ErrNotFound) {
		s.reject(ctx, "gamble")
		return &economy.GambleResult{Rejection: economy.Rejectf(economy.CodeNotATenant,
			"you don't live here. Ask the landlord to move you in")}, nil
	}
	if err != nil {
		return nil, s.storeErr(ctx, "gamble: get tenant", err)
	}

	if t.GambleCount >= s.cfg.MaxGamble {
		s.reject(ctx, "gamble")
		return &economy.GambleResult{Rejection: economy.Rejectf(economy.CodeQuotaExceeded,
			"%s, you're out of gambles this hour (%d/%d)", t.Name, t.GambleCount, s.cfg.MaxGamble)}, nil
	}
	if amount <= 0 {
		s.reject(ctx, "gamble")
		return &economy.GambleResult{Rejection: economy.Rejectf(economy.CodeInvalidArgument,
			"bet amount must be a positive number")}, nil
	}
	side, ok := s.guessSide(guess)
	if !ok {
		s.reject(ctx, "gamble")
		return &economy.GambleResult{Rejection: economy.Rejectf(economy.CodeInvalidArgument,
			"%q is not a side of a coin", guess)}, nil
	}
	if t.InDebt() {
		s.reject(ctx, "gamble")
		return &economy.GambleResult{Rejection: economy.Rejectf(economy.CodeInsufficientFunds,
			"%s, you're in debt. No gambling until you're back in the black", t.Name)}, nil
	}

	drawn := economy.Heads
	if s.dice.IntBetween(0, 1) == 1 {
		drawn = economy.Tails
	}
	win := drawn == side

	delta := -amount
	if win {
		delta = amount
	}
	updated, err := s.store.Apply(ctx, actorID, ledger.Change{
		BalanceDelta: delta,
		IncGamble:    true,
	})
	if err != nil {
		return nil, s.storeErr(ctx, "gamble: apply", err)
	}

	s.paidOut(ctx, "gamble", delta)
	s.publish(ctx, ws.EventGamble, ws.BalanceEvent{
		TenantID: t.ID, Name: t.Name, Delta: delta, Balance: updated.Balance,
		Detail: string(drawn),
	})

	return &economy.GambleResult{
		Name:      t.Name,
		Drawn:     drawn,
		Win:       win,
		Amount:    amount,
		Balance:   updated.Balance,
		Remaining: s.cfg.MaxGamble - updated.GambleCount,
	}, nil
}

// Slots rolls the slot machine for amount coins.
func (s *EconomyService) Slots(ctx context.Context, actorID string, amount int64) (*economy.SlotsResult, error) {
	t, err := s.store.Get(ctx, actorID)
	if errors.Is(err, domain.ErrNotFound) {
		s.reject(ctx, "slots")
		return &economy.SlotsResult{Rejection: economy.Rejectf(economy.CodeNotATenant,
			"you don't live here. Ask the landlord to move you in")}, nil
	}
	if err != nil {
		return nil, s.storeErr(ctx, "slots: get tenant", err)
	}

	if t.SlotCount >= s.cfg.MaxSlots {
		s.reject(ctx, "slots")
		return &economy.SlotsResult{Rejection: economy.Rejectf(economy.CodeQuotaExceeded,
			"%s, you're out of slot rolls this hour (%d/%d)", t.Name, t.SlotCount, s.cfg.MaxSlots)}, nil
	}
	if t.InDebt() {
		s.reject(ctx, "slots")
		return &economy.SlotsResult{Rejection: economy.Rejectf(economy.CodeInsufficientFunds,
			"%s, you're in debt. No gambling until you're back in the black", t.Name)}, nil
	}
	if amount <= 0 {
		s.reject(ctx, "slots")
		return &economy.SlotsResult{Rejection: economy.Rejectf(economy.CodeInvalidArgument,
			"bet amount must be a positive number")}, nil
	}

	n := len(s.cfg.SlotSymbols)
	var idx [3]int
	var symbols [3]string
	for i := range idx {
		idx[i] = s.dice.IntBetween(0, n-1)
		symbols[i] = s.cfg.SlotSymbols[idx[i]]
	}

	win := idx[0] == idx[1] && idx[1] == idx[2]
	jackpot := win && idx[0] == 0

	payout := -amount
	switch {
	case jackpot:
		payout = amount * s.cfg.JackpotMultiplier
	case win:
		payout = amount * s.cfg.WinMultiplier
	}

	updated, err := s.store.Apply(ctx, actorID, ledger.Change{
		BalanceDelta: payout,
		IncSlot:      true,
	})
	if err != nil {
		return nil, s.storeErr(ctx, "slots: apply", err)
	}

	s.paidOut(ctx, "slots", payout)
	s.publish(ctx, ws.EventSlots, ws.BalanceEvent{
		TenantID: t.ID, Name: t.Name, Delta: payout, Balance: updated.Balance,
		Detail: strings.Join(symbols[:], " "),
	})

	return &economy.SlotsResult{
		Name:      t.Name,
		Symbols:   symbols,
		Win:       win,
		Jackpot:   jackpot,
		Payout:    payout,
		Balance:   updated.Balance,
		Remaining: s.cfg.MaxSlots - updated.SlotCount,
	}, nil
}

// BuyFloorSpace converts coins into square footage. Both purchase paths
// require the balance to cover the full cost.
func (s *EconomyService) BuyFloorSpace(ctx context.Context, actorID string, spec economy.PurchaseSpec) (*economy.PurchaseResult, error) {
	t, err := s.store.Get(ctx, actorID)
	if errors.Is(err, domain.ErrNotFound) {
		s.reject(ctx, "buy_floorspace")
		return &economy.PurchaseResult{Rejection: economy.Rejectf(economy.CodeNotATenant,
			"you don't live here. Ask the landlord to move you in")}, nil
	}
	if err != nil {
		return nil, s.storeErr(ctx, "buy_floorspace: get tenant", err)
	}

	var cost int64
	var gained float64
	switch {
	case spec.Money > 0:
		cost = spec.Money
		gained = tenant.RoundFt(float64(spec.Money) / float64(s.cfg.CostPerFt))
	case spec.Units > 0:
		cost = spec.Units * s.cfg.CostPerFt
		gained = float64(spec.Units)
	default:
		s.reject(ctx, "buy_floorspace")
		return &economy.PurchaseResult{Rejection: economy.Rejectf(economy.CodeInvalidArgument,
			"amount must be a positive number")}, nil
	}

	if t.Balance < cost {
		s.reject(ctx, "buy_floorspace")
		return &economy.PurchaseResult{Rejection: economy.Rejectf(economy.CodeInsufficientFunds,
			"%s, that costs $%d and you only have $%d", t.Name, cost, t.Balance)}, nil
	}

	updated, err := s.store.Apply(ctx, actorID, ledger.Change{
		BalanceDelta: -cost,
		FloorDelta:   gained,
	})
	if err != nil {
		return nil, s.storeErr(ctx, "buy_floorspace: apply", err)
	}

	s.publish(ctx, ws.EventPurchase, ws.FloorSpaceEvent{
		TenantID: t.ID, Name: t.Name, Delta: gained, FloorSpace: updated.FloorSpace,
	})

	return &economy.PurchaseResult{
		Name:       t.Name,
		GainedFt:   gained,
		FloorSpace: updated.FloorSpace,
		Cost:       cost,
		Balance:    updated.Balance,
	}, nil
}

// BuyRole purchases a catalog role and grants it on the chat platform.
// The deduction and the grant are independent effects: a failed grant is
// reported but the coins are not refunded.
func (s *EconomyService) BuyRole(ctx context.Context, actorID, roleName string) (*economy.RoleResult, error) {
	t, err := s.store.Get(ctx, actorID)
	if errors.Is(err, domain.ErrNotFound) {
		s.reject(ctx, "buy_role")
		return &economy.RoleResult{Rejection: economy.Rejectf(economy.CodeNotATenant,
			"you don't live here. Ask the landlord to move you in")}, nil
	}
	if err != nil {
		return nil, s.storeErr(ctx, "buy_role: get tenant", err)
	}

	var entry *config.Role
	for i := range s.cfg.Roles {
		if s.cfg.Roles[i].Name == roleName {
			entry = &s.cfg.Roles[i]
			break
		}
	}
	if entry == nil {
		s.reject(ctx, "buy_role")
		return &economy.RoleResult{Rejection: economy.Rejectf(economy.CodeInvalidArgument,
			"%q is not a role you can buy", roleName)}, nil
	}

	ref, exists, err := s.roles.RoleExists(ctx, entry.Name)
	if err != nil {
		return nil, fmt.Errorf("buy_role: resolve role: %w", err)
	}
	if !exists {
		ref, err = s.roles.CreateRole(ctx, entry.Name, roleColor)
		if err != nil {
			return nil, fmt.Errorf("buy_role: create role: %w", err)
		}
	}

	owned, err := s.roles.Has(ctx, actorID, ref)
	if err != nil {
		return nil, fmt.Errorf("buy_role: check ownership: %w", err)
	}
	if owned {
		s.reject(ctx, "buy_role")
		return &economy.RoleResult{Rejection: economy.Rejectf(economy.CodeAlreadyOwned,
			"%s, you already own %s", t.Name, entry.Name)}, nil
	}

	if t.Balance < entry.Price {
		s.reject(ctx, "buy_role")
		return &economy.RoleResult{Rejection: economy.Rejectf(economy.CodeInsufficientFunds,
			"%s costs $%d and you only have $%d", entry.Name, entry.Price, t.Balance)}, nil
	}

	updated, err := s.store.Apply(ctx, actorID, ledger.Change{BalanceDelta: -entry.Price})
	if err != nil {
		return nil, s.storeErr(ctx, "buy_role: apply", err)
	}

	result := &economy.RoleResult{
		Name:    t.Name,
		Role:    entry.Name,
		Price:   entry.Price,
		Balance: updated.Balance,
	}

	if err := s.roles.Grant(ctx, actorID, ref); err != nil {
		// The coins are already gone. Flag the inconsistency instead of
		// attempting a rollback.
		slog.Error("role grant failed after deduction",
			"tenant", actorID, "role", entry.Name, "error", err)
		result.GrantFailed = true
	}

	s.publish(ctx, ws.EventPurchase, ws.BalanceEvent{
		TenantID: t.ID, Name: t.Name, Delta: -entry.Price, Balance: updated.Balance,
		Detail: entry.Name,
	})

	return result, nil
}

// AdminMoveIn creates a tenant record with the default floor space.
func (s *EconomyService) AdminMoveIn(ctx context.Context, targetID, name string) (*economy.MoveInResult, error) {
	t := &tenant.Tenant{
		ID:         targetID,
		Name:       name,
		FloorSpace: s.cfg.DefaultFt,
	}
	err := s.store.Create(ctx, t)
	if errors.Is(err, domain.ErrAlreadyExists) {
		s.reject(ctx, "move_in")
		return &economy.MoveInResult{Rejection: economy.Rejectf(economy.CodeAlreadyExists,
			"%s already lives here", name)}, nil
	}
	if err != nil {
		return nil, s.storeErr(ctx, "move_in: create", err)
	}

	s.publish(ctx, ws.EventMoveIn, ws.FloorSpaceEvent{
		TenantID: targetID, Name: name, Delta: s.cfg.DefaultFt, FloorSpace: s.cfg.DefaultFt,
	})

	return &economy.MoveInResult{Name: name}, nil
}

// AdminEvict deletes a tenant record entirely.
func (s *EconomyService) AdminEvict(ctx context.Context, targetID string) (*economy.EvictResult, error) {
	t, err := s.store.Get(ctx, targetID)
	if errors.Is(err, domain.ErrNotFound) {
		s.reject(ctx, "evict")
		return &economy.EvictResult{Rejection: economy.Rejectf(economy.CodeNotATenant,
			"nobody with that ID lives here")}, nil
	}
	if err != nil {
		return nil, s.storeErr(ctx, "evict: get tenant", err)
	}

	if err := s.store.Delete(ctx, targetID); err != nil {
		return nil, s.storeErr(ctx, "evict: delete", err)
	}

	s.publish(ctx, ws.EventEvict, ws.FloorSpaceEvent{
		TenantID: targetID, Name: t.Name, Delta: -t.FloorSpace,
	})

	return &economy.EvictResult{Name: t.Name}, nil
}

// AdminAdjustFloorSpace applies a signed random floor-space delta whose
// expected size scales with repeat.
func (s *EconomyService) AdminAdjustFloorSpace(ctx context.Context, targetID string, dir economy.Direction, repeat int) (*economy.AdjustResult, error) {
	t, err := s.store.Get(ctx, targetID)
	if errors.Is(err, domain.ErrNotFound) {
		s.reject(ctx, "adjust_floorspace")
		return &economy.AdjustResult{Rejection: economy.Rejectf(economy.CodeNotATenant,
			"nobody with that ID lives here")}, nil
	}
	if err != nil {
		return nil, s.storeErr(ctx, "adjust_floorspace: get tenant", err)
	}

	delta := s.dice.Magnitude(repeat)
	if dir == economy.Decrease {
		delta = -delta
	}

	updated, err := s.store.Apply(ctx, targetID, ledger.Change{FloorDelta: delta})
	if err != nil {
		return nil, s.storeErr(ctx, "adjust_floorspace: apply", err)
	}

	s.publish(ctx, ws.EventAdjust, ws.FloorSpaceEvent{
		TenantID: targetID, Name: t.Name, Delta: delta, FloorSpace: updated.FloorSpace,
	})

	return &economy.AdjustResult{
		Name:  t.Name,
		Delta: delta,
		OldFt: t.FloorSpace,
		NewFt: updated.FloorSpace,
	}, nil
}

// AdminSetFloorSpace overwrites a tenant's floor space outright.
func (s *EconomyService) AdminSetFloorSpace(ctx context.Context, targetID string, value float64) (*economy.SetFloorResult, error) {
	t, err := s.store.Get(ctx, targetID)
	if errors.Is(err, domain.ErrNotFound) {
		s.reject(ctx, "set_floorspace")
		return &economy.SetFloorResult{Rejection: economy.Rejectf(economy.CodeNotATenant,
			"nobody with that ID lives here")}, nil
	}
	if err != nil {
		return nil, s.storeErr(ctx, "set_floorspace: get tenant", err)
	}

	v := tenant.RoundFt(value)
	updated, err := s.store.Apply(ctx, targetID, ledger.Change{SetFloor: &v})
	if err != nil {
		return nil, s.storeErr(ctx, "set_floorspace: apply", err)
	}

	s.publish(ctx, ws.EventAdjust, ws.FloorSpaceEvent{
		TenantID: targetID, Name: t.Name, Delta: updated.FloorSpace - t.FloorSpace,
		FloorSpace: updated.FloorSpace,
	})

	return &economy.SetFloorResult{
		Name:  t.Name,
		OldFt: t.FloorSpace,
		NewFt: updated.FloorSpace,
	}, nil
}

// AdminSetBalance overwrites a tenant's balance outright.
func (s *EconomyService) AdminSetBalance(ctx context.Context, targetID string, value int64) (*economy.SetBalanceResult, error) {
	t, err := s.store.Get(ctx, targetID)
	if errors.Is(err, domain.ErrNotFound) {
		s.reject(ctx, "set_balance")
		return &economy.SetBalanceResult{Rejection: economy.Rejectf(economy.CodeNotATenant,
			"nobody with that ID lives here")}, nil
	}
	if err != nil {
		return nil, s.storeErr(ctx, "set_balance: get tenant", err)
	}

	updated, err := s.store.Apply(ctx, targetID, ledger.Change{SetBalance: &value})
	if err != nil {
		return nil, s.storeErr(ctx, "set_balance: apply", err)
	}

	s.publish(ctx, ws.EventAdjust, ws.BalanceEvent{
		TenantID: targetID, Name: t.Name, Delta: updated.Balance - t.Balance,
		Balance: updated.Balance,
	})

	return &economy.SetBalanceResult{
		Name:       t.Name,
		OldBalance: t.Balance,
		NewBalance: updated.Balance,
	}, nil
}

// compliancePenaltyFactor scales the forced-compliance floor-space penalty.
const compliancePenaltyFactor = 5

// ForcedCompliance punishes a non-landlord who attempted a landlord
// command. Actors without a record are moved in first, then penalized.
func (s *EconomyService) ForcedCompliance(ctx context.Context, actorID, name string) (*economy.ComplianceResult, error) {
	created := false
	t, err := s.store.Get(ctx, actorID)
	if errors.Is(err, domain.ErrNotFound) {
		t = &tenant.Tenant{ID: actorID, Name: name, FloorSpace: s.cfg.DefaultFt}
		if err := s.store.Create(ctx, t); err != nil {
			return nil, s.storeErr(ctx, "compliance: create", err)
		}
		created = true
	} else if err != nil {
		return nil, s.storeErr(ctx, "compliance: get tenant", err)
	}

	penalty := s.dice.Magnitude(compliancePenaltyFactor)
	updated, err := s.store.Apply(ctx, actorID, ledger.Change{FloorDelta: -penalty})
	if err != nil {
		return nil, s.storeErr(ctx, "compliance: apply", err)
	}

	s.publish(ctx, ws.EventCompliance, ws.FloorSpaceEvent{
		TenantID: actorID, Name: t.Name, Delta: -penalty, FloorSpace: updated.FloorSpace,
	})

	return &economy.ComplianceResult{
		Name:       t.Name,
		Created:    created,
		Penalty:    penalty,
		FloorSpace: updated.FloorSpace,
	}, nil
}

// Study resolves the actor's tenant name for the go-study callout.
// Non-tenants are addressed by their chat handle instead; nothing is
// mutated.
func (s *EconomyService) Study(ctx context.Context, actorID, fallbackName string, mentions []string) (*economy.StudyResult, error) {
	name := fallbackName
	t, err := s.store.Get(ctx, actorID)
	switch {
	case err == nil:
		name = t.Name
	case !errors.Is(err, domain.ErrNotFound):
		return nil, s.storeErr(ctx, "study: get tenant", err)
	}
	return &economy.StudyResult{Name: name, Mentions: mentions}, nil
}

// Roster lists every tenant, largest floor space first. TotalFt counts
// only positive holdings.
func (s *EconomyService) Roster(ctx context.Context) (*economy.Roster, error) {
	tenants, err := s.store.List(ctx)
	if err != nil {
		return nil, s.storeErr(ctx, "roster: list", err)
	}

	r := &economy.Roster{Entries: make([]economy.RosterEntry, 0, len(tenants))}
	for _, t := range tenants {
		r.Entries = append(r.Entries, economy.RosterEntry{
			Name:          t.Name,
			FloorSpace:    t.FloorSpace,
			Balance:       t.Balance,
			GamblesLeft:   s.cfg.MaxGamble - t.GambleCount,
			SlotRollsLeft: s.cfg.MaxSlots - t.SlotCount,
		})
		if t.FloorSpace > 0 {
			r.TotalFt += t.FloorSpace
		}
	}
	sort.SliceStable(r.Entries, func(i, j int) bool {
		return r.Entries[i].FloorSpace > r.Entries[j].FloorSpace
	})
	return r, nil
}

// RoleSetup ensures every catalog role exists on the chat platform and
// reports which ones it had to create.
func (s *EconomyService) RoleSetup(ctx context.Context) (*economy.RoleSetupResult, error) {
	result := &economy.RoleSetupResult{}
	for _, r := range s.cfg.Roles {
		_, exists, err := s.roles.RoleExists(ctx, r.Name)
		if err != nil {
			return nil, fmt.Errorf("role setup: resolve %s: %w", r.Name, err)
		}
		if exists {
			continue
		}
		if _, err := s.roles.CreateRole(ctx, r.Name, roleColor); err != nil {
			return nil, fmt.Errorf("role setup: create %s: %w", r.Name, err)
		}
		result.Created = append(result.Created, r.Name)
	}
	return result, nil
}

// RoleCleanup deletes every catalog role from the chat platform and
// reports which ones were removed.
func (s *EconomyService) RoleCleanup(ctx context.Context) ([]string, error) {
	var deleted []string
	for _, r := range s.cfg.Roles {
		ref, exists, err := s.roles.RoleExists(ctx, r.Name)
		if err != nil {
			return deleted, fmt.Errorf("role cleanup: resolve %s: %w", r.Name, err)
		}
		if !exists {
			continue
		}
		if err := s.roles.DeleteRole(ctx, ref); err != nil {
			return deleted, fmt.Errorf("role cleanup: delete %s: %w", r.Name, err)
		}
		deleted = append(deleted, r.Name)
	}
	return deleted, nil
}
