package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/serpcat/serp-backend/internal/alerts"
	"github.com/serpcat/serp-backend/internal/resources"
	"github.com/serpcat/serp-backend/internal/sweeper"
	"github.com/serpcat/serp-backend/pkg/config"
	"github.com/serpcat/serp-backend/pkg/db"
	"github.com/serpcat/serp-backend/pkg/logger"
	"github.com/serpcat/serp-backend/pkg/metrics"
	"github.com/serpcat/serp-backend/pkg/migrate"
	"github.com/serpcat/serp-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "sweeper"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "sweeper",
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

	jobMetrics := metrics.NewSweepJobMetrics(prometheus.DefaultRegisterer)

	lock, err := sweeper.NewRedisLock(redisClient, redis.LockKey("sweeper:"+envName(cfg)), 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create sweeper lock", err)
		os.Exit(1)
	}

	archiveJob, err := sweeper.NewArchiveSolvedJob(sweeper.ArchiveSolvedJobParams{
		Logger:    logg,
		Alerts:    alerts.NewRepository(dbClient.DB()),
		Metrics:   jobMetrics,
		OlderThan: cfg.Sweeper.ArchiveSolvedAfter,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create archive job", err)
		os.Exit(1)
	}

	staleJob, err := sweeper.NewStaleResourcesJob(sweeper.StaleResourcesJobParams{
		Logger:     logg,
		Resources:  resources.NewRepository(dbClient.DB()),
		Metrics:    jobMetrics,
		StaleAfter: cfg.Sweeper.ResourceStaleAfter,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create stale resources job", err)
		os.Exit(1)
	}

	service, err := sweeper.NewService(sweeper.ServiceParams{
		Logger:   logg,
		Registry: sweeper.NewRegistry(archiveJob, staleJob),
		Lock:     lock,
		Metrics:  jobMetrics,
		Interval: cfg.Sweeper.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create sweeper service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env})
	logg.Info(ctx, "starting sweeper")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "sweeper stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "sweeper shutting down gracefully")
}

func envName(cfg *config.Config) string {
	if cfg.App.Env == "" {
		return "local"
	}
	return cfg.App.Env
}
