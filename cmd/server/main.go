package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"crossverify/internal/audit"
	"crossverify/internal/auth"
	authhandler "crossverify/internal/auth/handler"
	authstore "crossverify/internal/auth/store"
	"crossverify/internal/platform/config"
	"crossverify/internal/platform/httpserver"
	"crossverify/internal/platform/kafka"
	"crossverify/internal/platform/logger"
	"crossverify/internal/platform/middleware"
	"crossverify/internal/platform/postgres"
	platformredis "crossverify/internal/platform/redis"
	"crossverify/internal/verification"
	verifyhandler "crossverify/internal/verification/handler"
	"crossverify/internal/verification/metrics"
	"crossverify/internal/verification/ports"
	verifystore "crossverify/internal/verification/store"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal service packages. Postgres, Redis and Kafka are
// all optional: without them the process runs fully in-memory, which is the
// dev and test configuration.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var (
		baselines ports.BaselineProvider
		sink      ports.VerdictSink
	)
	if cfg.Postgres.DSN != "" {
		db, err := postgres.Open(ctx, cfg.Postgres.DSN)
		if err != nil {
			log.Error("postgres unavailable", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		pg := verifystore.NewPostgresStore(db)
		baselines, sink = pg, pg
		log.Info("using postgres stores")
	} else {
		mem := verifystore.NewMemoryStore()
		baselines, sink = mem, mem
		log.Warn("POSTGRES_DSN not set, using in-memory stores")
	}

	var codes authstore.CodeStore = authstore.NewMemoryCodeStore()
	if cfg.Redis.URL != "" {
		rc, err := platformredis.New(cfg.Redis)
		if err != nil {
			log.Error("redis unavailable", "error", err)
			os.Exit(1)
		}
		defer rc.Close()
		codes = authstore.NewRedisCodeStore(rc.Client)
		log.Info("using redis code store")
	} else {
		log.Warn("REDIS_URL not set, using in-memory code store")
	}

	var auditStore audit.Store = audit.NewMemoryStore()
	kc, err := kafka.New(cfg.Kafka)
	if err != nil {
		log.Error("kafka unavailable", "error", err)
		os.Exit(1)
	}
	if kc != nil {
		defer kc.Close()
		if err := kc.EnsureTopic(ctx, cfg.Kafka.AuditTopic, 3); err != nil {
			log.Error("audit topic setup failed", "error", err)
			os.Exit(1)
		}
		auditStore = audit.NewKafkaStore(kc.Client, cfg.Kafka.AuditTopic)
		log.Info("publishing audit events to kafka", "topic", cfg.Kafka.AuditTopic)
	} else {
		log.Warn("KAFKA_BROKERS not set, audit events stay in-memory")
	}
	auditor := audit.NewPublisher(auditStore)

	m := metrics.New()

	tokens := auth.NewTokenService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	authService := auth.NewService(codes, auth.LogSender{Logger: log}, tokens, cfg.Auth.CodeTTL, auditor, log)
	verifyService := verification.NewService(baselines, sink, auditor, verificationConfig(cfg.Verification, log), log, m)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.ClientMetadata)
	router.Use(middleware.RequestMetrics)
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())
	authhandler.New(authService, log).Register(router)
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens, log))
		verifyhandler.New(verifyService, log).Register(r)
	})

	srv := httpserver.New(cfg.Server.Addr, router)

	go func() {
		log.Info("starting crossverify", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// verificationConfig translates the env-level knobs into engine thresholds.
// Malformed decimal overrides fall back to the defaults with a warning rather
// than refusing to start.
func verificationConfig(vc config.VerificationConfig, log *slog.Logger) verification.Config {
	out := verification.DefaultConfig()
	out.ElectricityMismatchThreshold = vc.ElectricityMismatchThreshold
	out.LPGTolerances.MaxRefillDiff = vc.LPGMaxRefillDiff
	if d, err := decimal.NewFromString(vc.LPGMaxCostDiff); err == nil {
		out.LPGTolerances.MaxCostDiff = d
	} else {
		log.Warn("invalid LPG_MAX_COST_DIFF, keeping default", "value", vc.LPGMaxCostDiff)
	}
	if d, err := decimal.NewFromString(vc.LPGMaxIntervalDiff); err == nil {
		out.LPGTolerances.MaxIntervalDiff = d
	} else {
		log.Warn("invalid LPG_MAX_INTERVAL_DIFF, keeping default", "value", vc.LPGMaxIntervalDiff)
	}
	return out
}
