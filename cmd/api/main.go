// Package main is the entry point for the Wayfarer API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/pkordes/wayfarer/internal/config"
	"github.com/pkordes/wayfarer/internal/geo"
	"github.com/pkordes/wayfarer/internal/handler"
	"github.com/pkordes/wayfarer/internal/metrics"
	"github.com/pkordes/wayfarer/internal/middleware"
	"github.com/pkordes/wayfarer/internal/plan"
	"github.com/pkordes/wayfarer/internal/repo"
	"github.com/pkordes/wayfarer/internal/service"
	"github.com/pkordes/wayfarer/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use the default logger before the configured one exists.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if cfg.MigrateOnStart {
		sqlDB := stdlib.OpenDBFromPool(pool)
		applied, err := migrations.Up(context.Background(), sqlDB)
		_ = sqlDB.Close()
		if err != nil {
			slog.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("migrations applied", "count", applied)
	}

	// --- Repos, cache and services ------------------------------------------
	places := repo.NewPlaceRepo(pool)
	if cfg.CacheEnabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		// A cache that cannot be reached is not fatal; the repo falls
		// through to Postgres on every error.
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			slog.Warn("redis unreachable, serving without cache", "addr", cfg.RedisAddr, "error", err)
		} else {
			slog.Info("redis cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL.String())
		}
		places = repo.NewCachedPlaceRepo(places, repo.NewRedisStore(rdb, logger), cfg.CacheTTL, logger)
	}
	visits := repo.NewVisitRepo(pool)
	plans := repo.NewPlanRepo(pool)

	m := metrics.New()
	server := handler.NewServer(handler.Services{
		Places: service.NewPlaceService(places, m, nil),
		Visits: service.NewVisitService(visits, nil),
		Plans: service.NewPlanService(places, visits, plans, service.PlanServiceConfig{
			Engine:       plan.New(geo.Calculator{}),
			RecentWindow: cfg.RecentVisitWindow,
			Recorder:     m,
		}),
		Tags:   service.NewTagService(repo.NewTagRepo(pool)),
		Export: service.NewExportService(plans, places),
	}, logger)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Metrics
	// → Recoverer → CORS → MaxBodySize.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(m.Middleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Handle("/metrics", m.Handler())
	server.Register(r)

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
