package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/serpcat/serp-backend/api/routes"
	"github.com/serpcat/serp-backend/internal/alerts"
	"github.com/serpcat/serp-backend/internal/assignments"
	authsvc "github.com/serpcat/serp-backend/internal/auth"
	"github.com/serpcat/serp-backend/internal/resources"
	"github.com/serpcat/serp-backend/internal/stats"
	"github.com/serpcat/serp-backend/internal/users"
	"github.com/serpcat/serp-backend/pkg/auth/session"
	"github.com/serpcat/serp-backend/pkg/config"
	"github.com/serpcat/serp-backend/pkg/db"
	"github.com/serpcat/serp-backend/pkg/logger"
	"github.com/serpcat/serp-backend/pkg/metrics"
	"github.com/serpcat/serp-backend/pkg/migrate"
	"github.com/serpcat/serp-backend/pkg/redis"
	"github.com/serpcat/serp-backend/pkg/security"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager := session.NewManager(redisClient, cfg.JWT.RefreshTokenTTL())
	hasher := security.NewHasher(cfg.Password)

	usersRepo := users.NewRepository(dbClient.DB())
	alertsRepo := alerts.NewRepository(dbClient.DB())
	resourcesRepo := resources.NewRepository(dbClient.DB())
	assignmentsRepo := assignments.NewRepository(dbClient.DB())

	userService, err := users.NewService(usersRepo, hasher, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	authService, err := authsvc.NewService(usersRepo, hasher, sessionManager, cfg.JWT, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	alertService, err := alerts.NewService(alertsRepo, assignmentsRepo, resourcesRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create alert service", err)
		os.Exit(1)
	}

	resourceService, err := resources.NewService(resourcesRepo, assignmentsRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create resource service", err)
		os.Exit(1)
	}

	statsService, err := stats.NewService(alertsRepo, resourcesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create stats service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Redis:       redisClient,
			Sessions:    sessionManager,
			Auth:        authService,
			Alerts:      alertService,
			Resources:   resourceService,
			Stats:       statsService,
			Users:       userService,
			HTTPMetrics: httpMetrics,
			Registry:    registry,
		}),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
			os.Exit(1)
		}
	}

	logg.Info(ctx, "api server shut down gracefully")
}
