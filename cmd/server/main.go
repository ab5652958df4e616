package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"bureau/internal/authz"
	authzhandler "bureau/internal/authz/handler"
	authzmetrics "bureau/internal/authz/metrics"
	"bureau/internal/events"
	"bureau/internal/ledger"
	ledgerhandler "bureau/internal/ledger/handler"
	ledgermetrics "bureau/internal/ledger/metrics"
	"bureau/internal/ledger/store"
	"bureau/internal/ledger/tracer"
	"bureau/internal/platform/config"
	"bureau/internal/platform/health"
	"bureau/internal/platform/httpserver"
	"bureau/internal/platform/logger"
	"bureau/internal/token"
	httptransport "bureau/internal/transport/http"
	"bureau/pkg/platform/middleware/admin"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
func main() {
	cfg, err := config.Load()
	log := logger.New()
	if err != nil {
		log.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.Admin().IsZero() || cfg.JWTSigningKey == "" || (cfg.AdminToken == "" && cfg.AdminTokenBcrypt == "") {
		log.Error("admin principal, admin token and jwt signing key are required")
		os.Exit(1)
	}

	log.Info("initializing bureau",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"profile_store", storeKind(cfg),
	)

	ctx := context.Background()
	healthHandler := health.New(cfg.Environment)

	eventStore, closeEvents, err := newEventStore(cfg, healthHandler)
	if err != nil {
		log.Error("failed to open event store", "error", err)
		os.Exit(1)
	}
	defer closeEvents()

	publisherOpts := []events.PublisherOption{events.WithPublisherLogger(log)}
	if cfg.EventBuffer > 0 {
		publisherOpts = append(publisherOpts, events.WithAsyncBuffer(cfg.EventBuffer))
	}
	publisher := events.NewPublisher(eventStore, publisherOpts...)
	defer publisher.Close()

	registry, err := authz.New(cfg.Admin(), authz.NewInMemoryStore(),
		authz.WithLogger(log),
		authz.WithMetrics(authzmetrics.New()),
		authz.WithEventPublisher(publisher),
	)
	if err != nil {
		log.Error("failed to construct authorization registry", "error", err)
		os.Exit(1)
	}

	profileStore, err := newProfileStore(ctx, cfg, healthHandler)
	if err != nil {
		log.Error("failed to open profile store", "error", err)
		os.Exit(1)
	}

	service := ledger.NewService(profileStore, registry,
		ledger.WithLogger(log),
		ledger.WithMetrics(ledgermetrics.New()),
		ledger.WithEventPublisher(publisher),
		ledger.WithTracer(tracer.NewOTel()),
	)

	tokenService := token.NewService(cfg.JWTSigningKey, cfg.TokenTTL)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Ledger:         ledgerhandler.New(service, publisher, log),
		Registry:       authzhandler.New(registry, tokenService, log),
		Health:         healthHandler,
		TokenValidator: token.NewAdapter(tokenService),
		AdminToken:     admin.TokenConfig{Plain: cfg.AdminToken, BcryptHash: cfg.AdminTokenBcrypt},
		AdminPrincipal: cfg.Admin(),
		Logger:         log,
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info("shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}

func storeKind(cfg config.Server) string {
	if cfg.DatabaseURL != "" {
		return "postgres"
	}
	return "memory"
}

// newProfileStore selects the profile backend: postgres when a database URL
// is configured, in-memory otherwise.
func newProfileStore(ctx context.Context, cfg config.Server, h *health.Handler) (ledger.ProfileStore, error) {
	if cfg.DatabaseURL == "" {
		return store.NewInMemory(), nil
	}

	pool, err := store.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	pg := store.NewPostgres(pool)
	if err := pg.Migrate(ctx); err != nil {
		return nil, err
	}
	h.RegisterCheck("postgres", func() error {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return pg.Ping(pingCtx)
	})
	return pg, nil
}

// newEventStore selects the event backend: sqlite when a path is configured,
// in-memory otherwise.
func newEventStore(cfg config.Server, h *health.Handler) (events.Store, func(), error) {
	if cfg.EventsDBPath == "" {
		return events.NewInMemoryStore(), func() {}, nil
	}

	sqlite, err := events.OpenSQLite(cfg.EventsDBPath)
	if err != nil {
		return nil, nil, err
	}
	h.RegisterCheck("sqlite", sqlite.Ping)
	return sqlite, func() { _ = sqlite.Close() }, nil
}
