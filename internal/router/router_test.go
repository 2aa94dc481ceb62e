package router

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/closetware/landlord/internal/config"
	"github.com/closetware/landlord/internal/domain"
	"github.com/closetware/landlord/internal/domain/tenant"
	"github.com/closetware/landlord/internal/port/chatbus"
	"github.com/closetware/landlord/internal/port/ledger"
	"github.com/closetware/landlord/internal/port/notifier"
	"github.com/closetware/landlord/internal/port/rolegrant"
	"github.com/closetware/landlord/internal/service"
)

type miniStore struct {
	mu      sync.Mutex
	tenants map[string]*tenant.Tenant
}

func newMiniStore() *miniStore {
	return &miniStore{tenants: make(map[string]*tenant.Tenant)}
}

func (m *miniStore) Get(_ context.Context, id string) (*tenant.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tenants[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *miniStore) Create(_ context.Context, t *tenant.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tenants[t.ID]; ok {
		return domain.ErrAlreadyExists
	}
	cp := *t
	m.tenants[t.ID] = &cp
	return nil
}

func (m *miniStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tenants[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.tenants, id)
	return nil
}

func (m *miniStore) List(_ context.Context) ([]tenant.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]tenant.Tenant, 0, len(m.tenants))
	for _, t := range m.tenants {
		out = append(out, *t)
	}
	return out, nil
}

func (m *miniStore) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.tenants)), nil
}

func (m *miniStore) Apply(_ context.Context, id string, ch ledger.Change) (*tenant.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tenants[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if ch.SetBalance != nil {
		t.Balance = *ch.SetBalance
	} else {
		t.Balance += ch.BalanceDelta
	}
	if ch.SetFloor != nil {
		t.FloorSpace = tenant.RoundFt(*ch.SetFloor)
	} else if ch.FloorDelta != 0 {
		t.FloorSpace = tenant.RoundFt(t.FloorSpace + ch.FloorDelta)
	}
	if ch.SetWorked != nil {
		t.Worked = *ch.SetWorked
	}
	if ch.IncGamble {
		t.GambleCount++
	}
	if ch.IncSlot {
		t.SlotCount++
	}
	cp := *t
	return &cp, nil
}

func (m *miniStore) ResetQuotas(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, t := range m.tenants {
		if t.Worked || t.GambleCount > 0 || t.SlotCount > 0 {
			t.Worked = false
			t.GambleCount = 0
			t.SlotCount = 0
			n++
		}
	}
	return n, nil
}

type fakeBus struct {
	handler chatbus.Handler
}

func (b *fakeBus) Publish(context.Context, string, []byte) error { return nil }

func (b *fakeBus) Subscribe(_ context.Context, _ string, h chatbus.Handler) (func(), error) {
	b.handler = h
	return func() { b.handler = nil }, nil
}

func (b *fakeBus) Close() error { return nil }

type fakeNotifier struct {
	sent []notifier.Message
}

func (f *fakeNotifier) Name() string { return "fake" }

func (f *fakeNotifier) Send(_ context.Context, msg notifier.Message) error {
	f.sent = append(f.sent, msg)
	return nil
}

type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache { return &fakeCache{data: make(map[string][]byte)} }

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	if value == nil {
		value = []byte{}
	}
	c.data[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

type noopRoles struct{}

func (noopRoles) RoleExists(context.Context, string) (rolegrant.Ref, bool, error) {
	return "", false, nil
}
func (noopRoles) CreateRole(context.Context, string, int) (rolegrant.Ref, error) { return "r", nil }
func (noopRoles) DeleteRole(context.Context, rolegrant.Ref) error                { return nil }
func (noopRoles) Grant(context.Context, string, rolegrant.Ref) error             { return nil }
func (noopRoles) Has(context.Context, string, rolegrant.Ref) (bool, error)       { return false, nil }

type fixedDice struct{}

func (fixedDice) IntBetween(lo, _ int) int { return lo }
func (fixedDice) Magnitude(int) float64    { return 0.5 }

func newTestRouter(t *testing.T, store ledger.Store) (*Router, *fakeBus, *fakeNotifier) {
	t.Helper()
	cfg := config.Economy{
		LandlordID:   "landlord",
		LandlordName: "Dylan",
		Wage:         2000,
		WageRange:    500,
		MaxGamble:    5,
		MaxSlots:     5,
		CostPerFt:    10,
		DefaultFt:    1.0,
		Jobs:         []string{"swept the hallway"},
		Heads:        []string{"heads", "h"},
		Tails:        []string{"tails", "t"},
		SlotSymbols:  []string{"a", "b", "c"},
		Roles:        []config.Role{{Name: "Duke", Price: 50}, {Name: "Earl", Price: 500}},
	}

	engine := service.NewEconomyService(store, noopRoles{}, fixedDice{}, cfg, nil, nil)
	sched := service.NewResetScheduler(store, time.Hour, nil, nil)
	bus := &fakeBus{}
	out := &fakeNotifier{}

	r := New(engine, sched, out, bus, newFakeCache(), time.Minute, cfg, nil)
	if err := r.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	return r, bus, out
}

func deliver(t *testing.T, bus *fakeBus, msg Message) {
	t.Helper()
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}
	if err := bus.handler(context.Background(), chatbus.SubjectInbound, data); err != nil {
		t.Fatal(err)
	}
}

func TestRouterIgnoresNonCommands(t *testing.T) {
	_, bus, out := newTestRouter(t, newMiniStore())

	deliver(t, bus, Message{ID: "m1", AuthorID: "u1", Content: "hello everyone"})
	if len(out.sent) != 0 {
		t.Errorf("plain chatter should produce no reply, got %v", out.sent)
	}
}

func TestRouterUnknownCommandSilent(t *testing.T) {
	_, bus, out := newTestRouter(t, newMiniStore())

	deliver(t, bus, Message{ID: "m1", AuthorID: "u1", Content: "!definitelynotours"})
	if len(out.sent) != 0 {
		t.Errorf("unknown commands should stay silent, got %v", out.sent)
	}
}

func TestRouterDeduplicatesByMessageID(t *testing.T) {
	store := newMiniStore()
	store.tenants["u1"] = &tenant.Tenant{ID: "u1", Name: "Ariel"}
	_, bus, out := newTestRouter(t, store)

	msg := Message{ID: "m1", AuthorID: "u1", Content: "!work"}
	deliver(t, bus, msg)
	deliver(t, bus, msg)

	if len(out.sent) != 1 {
		t.Fatalf("redelivered message must be handled once, got %d replies", len(out.sent))
	}
}

func TestRouterWorkCommand(t *testing.T) {
	store := newMiniStore()
	store.tenants["u1"] = &tenant.Tenant{ID: "u1", Name: "Ariel"}
	_, bus, out := newTestRouter(t, store)

	deliver(t, bus, Message{ID: "m1", AuthorID: "u1", Content: "!work"})

	if len(out.sent) != 1 {
		t.Fatalf("expected 1 reply, got %d", len(out.sent))
	}
	if !strings.Contains(out.sent[0].Content, "earned") {
		t.Errorf("unexpected reply %q", out.sent[0].Content)
	}
	if !store.tenants["u1"].Worked {
		t.Error("work command did not reach the engine")
	}
}

func TestRouterGambleBadAmount(t *testing.T) {
	store := newMiniStore()
	store.tenants["u1"] = &tenant.Tenant{ID: "u1", Name: "Ariel", Balance: 100}
	_, bus, out := newTestRouter(t, store)

	deliver(t, bus, Message{ID: "m1", AuthorID: "u1", Content: "!gamble heads lots"})

	if len(out.sent) != 1 || !strings.Contains(out.sent[0].Content, "not a number") {
		t.Fatalf("expected not-a-number reply, got %v", out.sent)
	}
}

func TestRouterNonLandlordAdminTriggersCompliance(t *testing.T) {
	store := newMiniStore()
	_, bus, out := newTestRouter(t, store)

	deliver(t, bus, Message{ID: "m1", AuthorID: "u9", AuthorName: "Jesse",
		Content: "!evict <@123>"})

	if len(out.sent) != 1 {
		t.Fatalf("expected 1 reply, got %d", len(out.sent))
	}
	if !strings.Contains(out.sent[0].Content, "Dylan") {
		t.Errorf("compliance reply should name the landlord, got %q", out.sent[0].Content)
	}

	got, ok := store.tenants["u9"]
	if !ok {
		t.Fatal("offender should have been moved in")
	}
	if got.FloorSpace != 0.5 { // default 1.0 minus fixed 0.5 penalty
		t.Errorf("expected 0.5 ft² after penalty, got %v", got.FloorSpace)
	}
}

func TestRouterLandlordEvict(t *testing.T) {
	store := newMiniStore()
	store.tenants["123"] = &tenant.Tenant{ID: "123", Name: "Ariel"}
	_, bus, out := newTestRouter(t, store)

	deliver(t, bus, Message{ID: "m1", AuthorID: "landlord", Content: "!evict <@123>"})

	if len(out.sent) != 1 || !strings.Contains(out.sent[0].Content, "evicted") {
		t.Fatalf("expected eviction reply, got %v", out.sent)
	}
	if _, ok := store.tenants["123"]; ok {
		t.Error("tenant record should be gone")
	}
}

func TestRouterManualReset(t *testing.T) {
	store := newMiniStore()
	store.tenants["u1"] = &tenant.Tenant{ID: "u1", Name: "Ariel", Worked: true}
	_, bus, out := newTestRouter(t, store)

	deliver(t, bus, Message{ID: "m1", AuthorID: "landlord", Content: "!reset"})

	if len(out.sent) != 1 || !strings.Contains(out.sent[0].Content, "1 tenants") {
		t.Fatalf("expected reset reply for 1 tenant, got %v", out.sent)
	}
	if store.tenants["u1"].Worked {
		t.Error("manual reset did not clear the worked flag")
	}
}

func TestRouterRosterEmbed(t *testing.T) {
	store := newMiniStore()
	store.tenants["u1"] = &tenant.Tenant{ID: "u1", Name: "Ariel", FloorSpace: 2}
	_, bus, out := newTestRouter(t, store)

	deliver(t, bus, Message{ID: "m1", AuthorID: "u1", Content: "!roster"})

	if len(out.sent) != 1 {
		t.Fatalf("expected 1 reply, got %d", len(out.sent))
	}
	msg := out.sent[0]
	if msg.Title == "" || len(msg.Fields) != 1 {
		t.Errorf("expected a roster embed with 1 field, got %+v", msg)
	}
}

func TestRouterBareBuyRoleShowsMenu(t *testing.T) {
	_, bus, out := newTestRouter(t, newMiniStore())

	deliver(t, bus, Message{ID: "m1", AuthorID: "u1", Content: "!buyrole"})

	if len(out.sent) != 1 {
		t.Fatalf("expected 1 reply, got %d", len(out.sent))
	}
	msg := out.sent[0]
	if msg.Title == "" || len(msg.Fields) != 2 {
		t.Fatalf("expected a catalog embed with 2 fields, got %+v", msg)
	}
	if msg.Fields[0].Name != "Duke" || msg.Fields[0].Value != "$50" {
		t.Errorf("expected Duke priced at $50, got %+v", msg.Fields[0])
	}
}

func TestRouterStudy(t *testing.T) {
	store := newMiniStore()
	store.tenants["u1"] = &tenant.Tenant{ID: "u1", Name: "Ariel"}
	_, bus, out := newTestRouter(t, store)

	deliver(t, bus, Message{ID: "m1", AuthorID: "u1", AuthorName: "handle",
		Content: "!study <@42> noise <@!43>"})

	if len(out.sent) != 1 {
		t.Fatalf("expected 1 reply, got %d", len(out.sent))
	}
	reply := out.sent[0].Content
	if !strings.Contains(reply, "Ariel") {
		t.Errorf("reply should carry the ledger name, got %q", reply)
	}
	if !strings.Contains(reply, "<@42>") || !strings.Contains(reply, "<@!43>") {
		t.Errorf("reply should ping both mentions, got %q", reply)
	}
	if !strings.Contains(reply, "you all") {
		t.Errorf("two mentions should use the plural form, got %q", reply)
	}

	// No mentions: the caller is told to go study instead.
	deliver(t, bus, Message{ID: "m2", AuthorID: "u1", Content: "!study"})
	if len(out.sent) != 2 || !strings.Contains(out.sent[1].Content, "Maybe you should go study") {
		t.Fatalf("expected self-callout reply, got %v", out.sent)
	}
}

func TestRouterDropsUndecodableMessage(t *testing.T) {
	_, bus, out := newTestRouter(t, newMiniStore())

	if err := bus.handler(context.Background(), chatbus.SubjectInbound, []byte("{not json")); err != nil {
		t.Fatalf("poison messages must be dropped, not redelivered: %v", err)
	}
	if len(out.sent) != 0 {
		t.Errorf("poison message should produce no reply")
	}
}
