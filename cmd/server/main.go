package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"vouch/internal/audit"
	"vouch/internal/events"
	"vouch/internal/platform/config"
	"vouch/internal/platform/httpserver"
	"vouch/internal/platform/logger"
	platformredis "vouch/internal/platform/redis"
	"vouch/internal/token"
	"vouch/internal/verification/cache"
	"vouch/internal/verification/handler"
	"vouch/internal/verification/metrics"
	"vouch/internal/verification/rules"
	"vouch/internal/verification/service"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	store := rules.NewStore()
	if cfg.RulesFile != "" {
		fileCfg, err := rules.LoadFile(cfg.RulesFile)
		if err != nil {
			log.Error("rules file unreadable", "path", cfg.RulesFile, "error", err)
			os.Exit(1)
		}
		if err := fileCfg.Apply(store); err != nil {
			log.Error("rules file rejected", "path", cfg.RulesFile, "error", err)
			os.Exit(1)
		}
		log.Info("rules loaded from file", "path", cfg.RulesFile)
	}

	issuer, err := token.NewIssuer([]byte(cfg.TokenSigningKey), cfg.TokenTTL)
	if err != nil {
		log.Error("token issuer init failed", "error", err)
		os.Exit(1)
	}

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(metrics.New()),
		service.WithTracer(otel.Tracer("vouch/verification")),
		service.WithTokenIssuer(issuer),
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis init failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		opts = append(opts, service.WithCache(cache.NewRedis(redisClient.Client, cfg.CacheTTL)))
		log.Info("decision cache backed by redis")
	} else {
		opts = append(opts, service.WithCache(cache.NewMemory(cfg.CacheTTL)))
	}

	var auditStore audit.Store = audit.NewMemoryStore()
	if cfg.PostgresDSN != "" {
		pool, err := pgxpool.New(context.Background(), cfg.PostgresDSN)
		if err != nil {
			log.Error("postgres init failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		pgStore := audit.NewPostgresStore(pool)
		if err := pgStore.EnsureSchema(context.Background()); err != nil {
			log.Error("audit schema init failed", "error", err)
			os.Exit(1)
		}
		auditStore = pgStore
		log.Info("audit store backed by postgres")
	}
	opts = append(opts, service.WithAuditRecorder(audit.NewRecorder(auditStore)))

	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		if err != nil {
			log.Error("kafka init failed", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		opts = append(opts, service.WithPublisher(publisher))
		log.Info("decision events enabled", "topic", cfg.Kafka.Topic)
	}

	svc, err := service.New(store, opts...)
	if err != nil {
		log.Error("service init failed", "error", err)
		os.Exit(1)
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.Recoverer)
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())
	router.Route("/v1", func(r chi.Router) {
		handler.New(svc, log).Register(r)
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting vouch", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
