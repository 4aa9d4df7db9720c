package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/atharva12306/ai-ayurvedic-diet/config"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/api"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/database"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/engine"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/middleware"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/platform/logger"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/router"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/server"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer log.Sync()

	gin.SetMode(cfg.Env.GinMode())

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	applied, err := database.RunMigrations(ctx, db, cfg.MigrationsDir)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("Migrations complete", "applied", applied)

	patients := service.NewPatientService(db)
	opts := []service.DietPlanOption{
		service.WithLogger(log.With("component", "diet_plans")),
		service.WithDefaultCalories(cfg.DefaultCalories),
	}

	var redisClient *redis.Client
	var limiter *middleware.RateLimiter
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Warn("Redis unavailable, drafts and rate limiting disabled", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			opts = append(opts, service.WithDrafts(service.NewRedisDraftCache(redisClient, cfg.DraftTTL)))
			limiter = middleware.NewGenerationRateLimiter(redisClient, cfg.RateLimitRequests, cfg.RateLimitWindow, log)
		}
	}

	s3cfg, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		log.Warn("S3 unavailable, plan archive disabled", "error", err)
	} else if s3cfg != nil {
		opts = append(opts, service.WithArchive(service.NewS3PlanArchiveFromClient(s3cfg.Client, s3cfg.BucketName)))
		log.Info("Plan archive enabled", "bucket", s3cfg.BucketName)
	}

	catalog := engine.DefaultCatalog()
	plans := service.NewDietPlanService(db, engine.NewPlanner(catalog), patients, opts...)

	r := router.SetupRouter(cfg, log, service.NewJWTValidator(cfg.JWTSecret), limiter, router.Handlers{
		Plans:    api.NewDietPlanHandler(plans),
		Patients: api.NewPatientHandler(patients),
		Catalog:  api.NewCatalogHandler(catalog),
		Health:   api.NewHealthHandler(db, redisClient),
	})
	srv := server.New(cfg, r, log)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			return err
		}
	case sig := <-quit:
		log.Info("Received signal", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
