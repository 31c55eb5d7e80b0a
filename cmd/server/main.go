package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/lib/pq"

	"lexdiff/internal/diff"
	diffhandler "lexdiff/internal/diff/handler"
	diffmetrics "lexdiff/internal/diff/metrics"
	diffstore "lexdiff/internal/diff/store"
	"lexdiff/internal/forensic"
	forensichandler "lexdiff/internal/forensic/handler"
	httpapi "lexdiff/internal/http"
	"lexdiff/internal/jwtauth"
	"lexdiff/internal/optimize"
	"lexdiff/internal/platform/config"
	"lexdiff/internal/platform/httpserver"
	"lexdiff/internal/platform/logger"
	platformredis "lexdiff/internal/platform/redis"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal feature packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	storage, err := forensic.Open(cfg.AuditLogPath,
		forensic.WithMaxFileSize(cfg.AuditLogMaxBytes),
		forensic.WithLogger(log),
	)
	if err != nil {
		log.Error("open audit log failed", "path", cfg.AuditLogPath, "error", err)
		os.Exit(1)
	}
	defer func() { _ = storage.Close() }()

	publisherOpts := []forensic.PublisherOption{forensic.WithPublisherLogger(log)}
	if len(cfg.KafkaBrokers) > 0 {
		sink, err := forensic.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Error("kafka sink setup failed", "error", err)
			os.Exit(1)
		}
		defer sink.Close()
		publisherOpts = append(publisherOpts, forensic.WithSink(sink))
	}
	auditor := forensic.NewPublisher(storage, publisherOpts...)

	differ := diff.NewDiffer(diff.WithAdaptiveSelection())
	serviceOpts := []diff.ServiceOption{diff.WithMetrics(diffmetrics.New())}

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis setup failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
		serviceOpts = append(serviceOpts, diff.WithCache(
			optimize.NewRedisCache(redisClient.Client, cfg.DiffCacheTTL),
			optimize.CacheKey,
		))
	} else {
		serviceOpts = append(serviceOpts, diff.WithCache(
			optimize.NewMemoryCache(cfg.DiffCacheSize),
			optimize.CacheKey,
		))
	}

	if cfg.PostgresDSN != "" {
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			log.Error("postgres setup failed", "error", err)
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()
		serviceOpts = append(serviceOpts, diff.WithArchive(diffstore.NewPostgresStore(db)))
	} else {
		serviceOpts = append(serviceOpts, diff.WithArchive(diffstore.NewMemoryStore()))
	}

	diffService := diff.NewService(differ, log, serviceOpts...)
	jwtService := jwtauth.NewService(cfg.JWTSigningKey, "lexdiff")

	router := httpapi.NewRouter(
		log,
		jwtService,
		diffhandler.New(diffService, auditor, log),
		forensichandler.New(storage, log),
	)

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting lexdiff", "addr", cfg.Addr, "audit_log", cfg.AuditLogPath)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
