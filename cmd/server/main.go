package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"hustings/internal/audit"
	"hustings/internal/catalog"
	"hustings/internal/platform/config"
	"hustings/internal/platform/httpserver"
	"hustings/internal/platform/logger"
	"hustings/internal/platform/metrics"
	"hustings/internal/platform/middleware"
	platformredis "hustings/internal/platform/redis"
	"hustings/internal/platform/token"
	"hustings/internal/profile"
	"hustings/internal/profile/cache"
	"hustings/internal/profile/handler"
	"hustings/internal/profile/service"
	"hustings/internal/profile/store"
	"hustings/internal/profile/store/claim"
	profilestore "hustings/internal/profile/store/profile"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal packages.
func main() {
	log := logger.New()
	if err := run(log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := catalog.Load()
	if err != nil {
		return err
	}
	m := metrics.New()

	var (
		profiles service.ProfileStore
		claims   service.ClaimStore
	)
	if cfg.PostgresDSN != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := store.Migrate(ctx, pool); err != nil {
			return err
		}
		profiles = profilestore.NewPostgres(pool)
		claims = claim.NewPostgres(pool)
		log.Info("using postgres stores")
	} else {
		profiles = profilestore.NewInMemory()
		claims = claim.NewInMemory()
		log.Info("using in-memory stores")
	}

	var mirror cache.ProfileCache = cache.NewMemory()
	if cfg.RedisURL != "" {
		rc, err := platformredis.New(cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rc.Close()
		mirror = cache.NewRedis(rc.Client, cfg.ProfileCacheTTL)
		log.Info("using redis profile cache")
	}

	// Audit events flow through a worker so emission never blocks a save.
	var auditSink audit.Store = audit.NewInMemoryStore()
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.AuditTopic, auditSink, log)
		if err != nil {
			return err
		}
		defer kafkaSink.Close(context.Background())
		auditSink = kafkaSink
		log.Info("audit events streaming to kafka", "topic", cfg.AuditTopic)
	}
	inbox := make(chan audit.Event, 256)
	worker := audit.NewWorker(auditSink, inbox)
	publisher := audit.NewPublisher(audit.NewChannelStore(inbox, auditSink))

	svc := profile.NewService(profiles, claims, cat,
		service.WithLogger(log),
		service.WithAuditPublisher(publisher),
		service.WithMetrics(m),
		service.WithMaxBioEntries(cfg.MaxBioEntries),
	)
	h := profile.NewHandler(svc, cat, log, handler.WithCache(mirror))
	validator := token.NewJWTValidator(cfg.JWTSigningKey)

	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.LatencyMiddleware(m))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.RequireAuth(validator, log))
		h.Register(r)
	})

	srv := httpserver.New(cfg.Addr, r)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info("starting hustings profile server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
