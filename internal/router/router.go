// Package router maps inbound chat messages to economy engine operations
// and renders the outcomes back to the chat platform.
package router

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	llotel "github.com/closetware/landlord/internal/adapter/otel"
	"github.com/closetware/landlord/internal/config"
	"github.com/closetware/landlord/internal/domain/economy"
	"github.com/closetware/landlord/internal/port/cache"
	"github.com/closetware/landlord/internal/port/chatbus"
	"github.com/closetware/landlord/internal/port/notifier"
	"github.com/closetware/landlord/internal/service"
)

const commandPrefix = "!"

// Message is the inbound chat message envelope published by the gateway.
type Message struct {
	ID         string `json:"id"`
	ChannelID  string `json:"channel_id"`
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"author_name"`
	Content    string `json:"content"`
}

// Router subscribes to the inbound chat subject, dispatches commands to
// the economy engine, and sends rendered results through the notifier.
type Router struct {
	engine  *service.EconomyService
	sched   *service.ResetScheduler
	out     notifier.Notifier
	bus     chatbus.Queue
	dedupe  cache.Cache
	ttl     time.Duration
	cfg     config.Economy
	metrics *llotel.Metrics

	cancel func()
}

// New creates a Router. metrics may be nil.
func New(
	engine *service.EconomyService,
	sched *service.ResetScheduler,
	out notifier.Notifier,
	bus chatbus.Queue,
	dedupe cache.Cache,
	ttl time.Duration,
	cfg config.Economy,
	metrics *llotel.Metrics,
) *Router {
	return &Router{
		engine:  engine,
		sched:   sched,
		out:     out,
		bus:     bus,
		dedupe:  dedupe,
		ttl:     ttl,
		cfg:     cfg,
		metrics: metrics,
	}
}

// Start subscribes to the inbound chat subject.
func (r *Router) Start(ctx context.Context) error {
	cancel, err := r.bus.Subscribe(ctx, chatbus.SubjectInbound, r.handle)
	if err != nil {
		return err
	}
	r.cancel = cancel
	slog.Info("command router started", "subject", chatbus.SubjectInbound)
	return nil
}

// Stop cancels the bus subscription.
func (r *Router) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
}

func (r *Router) handle(ctx context.Context, _ string, data []byte) error {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		slog.Warn("drop undecodable inbound message", "error", err)
		return nil // poison message, don't redeliver
	}

	if !strings.HasPrefix(msg.Content, commandPrefix) {
		return nil
	}

	// JetStream may redeliver; remember handled message IDs.
	if msg.ID != "" {
		key := "msg:" + msg.ID
		if _, seen, err := r.dedupe.Get(ctx, key); err == nil && seen {
			slog.Debug("skip duplicate message", "message_id", msg.ID)
			return nil
		}
		if err := r.dedupe.Set(ctx, key, nil, r.ttl); err != nil {
			slog.Warn("dedupe set failed", "error", err)
		}
	}

	cmd, args := SplitArgs(msg.Content)
	if cmd == "" {
		return nil
	}

	corrID := uuid.NewString()
	log := slog.With("correlation_id", corrID, "command", cmd, "author", msg.AuthorID)

	start := time.Now()
	reply := r.dispatch(ctx, log, cmd, args, msg)
	if r.metrics != nil {
		r.metrics.CommandsProcessed.Add(ctx, 1,
			metric.WithAttributes(attribute.String("op", cmd)))
		r.metrics.CommandDuration.Record(ctx, time.Since(start).Seconds(),
			metric.WithAttributes(attribute.String("op", cmd)))
	}

	if reply == nil {
		return nil
	}
	if err := r.out.Send(ctx, *reply); err != nil {
		log.Error("send reply failed", "error", err)
	}
	return nil
}

// landlordCommands are reserved for the configured landlord identity.
var landlordCommands = map[string]bool{
	"movein":      true,
	"evict":       true,
	"adjust":      true,
	"setft":       true,
	"setbal":      true,
	"reset":       true,
	"rolesetup":   true,
	"rolecleanup": true,
}

func (r *Router) dispatch(ctx context.Context, log *slog.Logger, cmd string, args []string, msg Message) *notifier.Message {
	if landlordCommands[cmd] && msg.AuthorID != r.cfg.LandlordID {
		res, err := r.engine.ForcedCompliance(ctx, msg.AuthorID, msg.AuthorName)
		if err != nil {
			log.Error("forced compliance failed", "error", err)
			return genericFailure()
		}
		return renderCompliance(res, r.cfg.LandlordName)
	}

	switch cmd {
	case "work":
		res, err := r.engine.Work(ctx, msg.AuthorID)
		if err != nil {
			log.Error("work failed", "error", err)
			return genericFailure()
		}
		return renderWork(res)

	case "gamble":
		if len(args) < 2 {
			return usage("!gamble <heads|tails> <amount>")
		}
		amount, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return plain("%q is not a number", args[1])
		}
		res, err := r.engine.Gamble(ctx, msg.AuthorID, args[0], amount)
		if err != nil {
			log.Error("gamble failed", "error", err)
			return genericFailure()
		}
		return renderGamble(res)

	case "slots":
		amount := int64(1)
		if len(args) > 0 {
			var err error
			amount, err = strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return plain("%q is not a number", args[0])
			}
		}
		res, err := r.engine.Slots(ctx, msg.AuthorID, amount)
		if err != nil {
			log.Error("slots failed", "error", err)
			return genericFailure()
		}
		return renderSlots(res)

	case "buyft":
		if len(args) < 1 {
			return usage("!buyft <ft²> or !buyft $<amount>")
		}
		spec, ok := parsePurchase(args[0])
		if !ok {
			return plain("%q is not a number", args[0])
		}
		res, err := r.engine.BuyFloorSpace(ctx, msg.AuthorID, spec)
		if err != nil {
			log.Error("buy floorspace failed", "error", err)
			return genericFailure()
		}
		return renderPurchase(res)

	case "buyrole":
		if len(args) < 1 {
			return renderRoleMenu(r.cfg.Roles)
		}
		res, err := r.engine.BuyRole(ctx, msg.AuthorID, strings.Join(args, " "))
		if err != nil {
			log.Error("buy role failed", "error", err)
			return genericFailure()
		}
		return renderRole(res)

	case "study":
		var mentions []string
		for _, a := range args {
			if _, ok := ParseMention(a); ok {
				mentions = append(mentions, a) // keep the raw token so the platform pings
			}
		}
		res, err := r.engine.Study(ctx, msg.AuthorID, msg.AuthorName, mentions)
		if err != nil {
			log.Error("study failed", "error", err)
			return genericFailure()
		}
		return renderStudy(res)

	case "roster", "closet":
		res, err := r.engine.Roster(ctx)
		if err != nil {
			log.Error("roster failed", "error", err)
			return genericFailure()
		}
		return renderRoster(res)

	case "movein":
		if len(args) < 2 {
			return usage("!movein <@user> <name>")
		}
		target, ok := ParseMention(args[0])
		if !ok {
			return plain("%q is not a user mention", args[0])
		}
		res, err := r.engine.AdminMoveIn(ctx, target, strings.Join(args[1:], " "))
		if err != nil {
			log.Error("move-in failed", "error", err)
			return genericFailure()
		}
		return renderMoveIn(res)

	case "evict":
		if len(args) < 1 {
			return usage("!evict <@user>")
		}
		target, ok := ParseMention(args[0])
		if !ok {
			return plain("%q is not a user mention", args[0])
		}
		res, err := r.engine.AdminEvict(ctx, target)
		if err != nil {
			log.Error("evict failed", "error", err)
			return genericFailure()
		}
		return renderEvict(res)

	case "adjust":
		if len(args) < 2 {
			return usage("!adjust <@user> <+++ or --->")
		}
		target, ok := ParseMention(args[0])
		if !ok {
			return plain("%q is not a user mention", args[0])
		}
		dir, repeat, ok := ParseAdjustToken(args[1])
		if !ok {
			return plain("%q is not a run of + or -", args[1])
		}
		res, err := r.engine.AdminAdjustFloorSpace(ctx, target, dir, repeat)
		if err != nil {
			log.Error("adjust failed", "error", err)
			return genericFailure()
		}
		return renderAdjust(res)

	case "setft":
		if len(args) < 2 {
			return usage("!setft <@user> <value>")
		}
		target, ok := ParseMention(args[0])
		if !ok {
			return plain("%q is not a user mention", args[0])
		}
		value, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return plain("%q is not a number", args[1])
		}
		res, err := r.engine.AdminSetFloorSpace(ctx, target, value)
		if err != nil {
			log.Error("set floorspace failed", "error", err)
			return genericFailure()
		}
		return renderSetFloor(res)

	case "setbal":
		if len(args) < 2 {
			return usage("!setbal <@user> <value>")
		}
		target, ok := ParseMention(args[0])
		if !ok {
			return plain("%q is not a user mention", args[0])
		}
		value, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return plain("%q is not a number", args[1])
		}
		res, err := r.engine.AdminSetBalance(ctx, target, value)
		if err != nil {
			log.Error("set balance failed", "error", err)
			return genericFailure()
		}
		return renderSetBalance(res)

	case "reset":
		n, err := r.sched.ResetNow(ctx)
		if err != nil {
			log.Error("manual reset failed", "error", err)
			return genericFailure()
		}
		return plain("Quotas re-armed for %d tenants.", n)

	case "rolesetup":
		res, err := r.engine.RoleSetup(ctx)
		if err != nil {
			log.Error("role setup failed", "error", err)
			return genericFailure()
		}
		if len(res.Created) == 0 {
			return plain("All catalog roles already exist.")
		}
		return plain("Created roles: %s", strings.Join(res.Created, ", "))

	case "rolecleanup":
		deleted, err := r.engine.RoleCleanup(ctx)
		if err != nil {
			log.Error("role cleanup failed", "error", err)
			return genericFailure()
		}
		if len(deleted) == 0 {
			return plain("No catalog roles to delete.")
		}
		return plain("Deleted roles: %s", strings.Join(deleted, ", "))
	}

	// Unknown commands are not ours to answer.
	return nil
}

// parsePurchase reads a buyft argument: a leading $ selects the
// money-conversion path, a bare number buys whole square feet.
func parsePurchase(arg string) (economy.PurchaseSpec, bool) {
	if money, found := strings.CutPrefix(arg, "$"); found {
		v, err := strconv.ParseInt(money, 10, 64)
		if err != nil {
			return economy.PurchaseSpec{}, false
		}
		return economy.PurchaseSpec{Money: v}, true
	}
	v, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return economy.PurchaseSpec{}, false
	}
	return economy.PurchaseSpec{Units: v}, true
}
