package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/closetware/landlord/internal/adapter/discord"
	llnats "github.com/closetware/landlord/internal/adapter/nats"
	llotel "github.com/closetware/landlord/internal/adapter/otel"
	"github.com/closetware/landlord/internal/adapter/postgres"
	"github.com/closetware/landlord/internal/adapter/ristretto"
	"github.com/closetware/landlord/internal/adapter/ws"
	"github.com/closetware/landlord/internal/config"
	"github.com/closetware/landlord/internal/domain/economy"
	"github.com/closetware/landlord/internal/logger"
	"github.com/closetware/landlord/internal/router"
	"github.com/closetware/landlord/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	slog.SetDefault(logger.New(cfg.Logging))
	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"reset_interval", cfg.Economy.ResetInterval,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---

	// PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()
	slog.Info("postgres connected")

	if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	slog.Info("migrations applied")

	// NATS
	queue, err := llnats.Connect(ctx, cfg.NATS.URL)
	if err != nil {
		return fmt.Errorf("nats: %w", err)
	}
	defer func() { _ = queue.Close() }()

	// Message dedupe cache
	dedupe, err := ristretto.New(cfg.Cache.MaxSizeMB * 1024 * 1024)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer dedupe.Close()

	// Telemetry
	shutdownMetrics, err := llotel.Setup(ctx, cfg.Telemetry, cfg.Logging.Service)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownMetrics(flushCtx); err != nil {
			slog.Error("telemetry shutdown failed", "error", err)
		}
	}()

	metrics, err := llotel.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	// --- Services ---

	seed, err := economy.NewSeed()
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	dice := economy.NewRoller(seed)

	hub := ws.NewHub()
	store := postgres.NewStore(pool)
	if n, err := store.Count(ctx); err == nil {
		slog.Info("ledger loaded", "tenants", n)
	}
	out := discord.NewNotifier(cfg.Discord.WebhookURL)
	roleSvc := discord.NewRoleService(cfg.Discord.BotToken, cfg.Discord.GuildID)

	engine := service.NewEconomyService(store, roleSvc, dice, cfg.Economy, hub, metrics)

	if cfg.Discord.BotToken != "" && cfg.Discord.GuildID != "" {
		setup, err := engine.RoleSetup(ctx)
		if err != nil {
			slog.Warn("role setup failed, purchasable roles may be missing", "error", err)
		} else if len(setup.Created) > 0 {
			slog.Info("created catalog roles", "roles", setup.Created)
		}
	}

	sched := service.NewResetScheduler(store, cfg.Economy.ResetInterval, hub, metrics)
	sched.Start(ctx)
	defer sched.Stop()

	cmdRouter := router.New(engine, sched, out, queue, dedupe, cfg.Cache.MessageTTL, cfg.Economy, metrics)
	if err := cmdRouter.Start(ctx); err != nil {
		return fmt.Errorf("command router: %w", err)
	}
	defer cmdRouter.Stop()

	// --- HTTP ---

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/health", healthHandler(pool, hub))
	r.Get("/ws", hub.HandleWS)

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// healthHandler reports the liveness of the bot and its backing services.
func healthHandler(pool interface{ Ping(context.Context) error }, hub *ws.Hub) http.HandlerFunc {
	type healthStatus struct {
		Status      string `json:"status"`
		Postgres    string `json:"postgres"`
		Connections int    `json:"ws_connections"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		status := healthStatus{
			Status:      "ok",
			Postgres:    "ok",
			Connections: hub.ConnectionCount(),
		}
		code := http.StatusOK
		if err := pool.Ping(r.Context()); err != nil {
			status.Status = "degraded"
			status.Postgres = err.Error()
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(status)
	}
}
