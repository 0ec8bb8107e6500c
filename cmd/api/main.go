// Mohamedbadhey | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Mohamedbadhey/rtailed-core/internal/admin"
	"github.com/Mohamedbadhey/rtailed-core/internal/auth"
	"github.com/Mohamedbadhey/rtailed-core/internal/billing"
	"github.com/Mohamedbadhey/rtailed-core/internal/business"
	"github.com/Mohamedbadhey/rtailed-core/internal/catalog"
	"github.com/Mohamedbadhey/rtailed-core/internal/config"
	"github.com/Mohamedbadhey/rtailed-core/internal/core"
	"github.com/Mohamedbadhey/rtailed-core/internal/customer"
	"github.com/Mohamedbadhey/rtailed-core/internal/health"
	"github.com/Mohamedbadhey/rtailed-core/internal/middleware"
	"github.com/Mohamedbadhey/rtailed-core/internal/sales"
	"github.com/Mohamedbadhey/rtailed-core/internal/server"
	"github.com/Mohamedbadhey/rtailed-core/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	authRepo := auth.NewRepository(db.DB)
	authSvc := auth.NewService(authRepo, jwtManager, userSvc, redis.Client)
	authHandler := auth.NewHandler(authSvc)

	businessRepo := business.NewRepository(db.DB)
	businessSvc := business.NewService(businessRepo)
	businessHandler := business.NewHandler(businessSvc)

	catalogRepo := catalog.NewRepository(db.DB)
	catalogSvc := catalog.NewService(catalogRepo, logger)
	catalogHandler := catalog.NewHandler(catalogSvc)

	customerRepo := customer.NewRepository(db.DB)
	customerSvc := customer.NewService(customerRepo)
	customerHandler := customer.NewHandler(customerSvc)

	salesRepo := sales.NewRepository(db.DB)
	salesSvc := sales.NewService(
		db.DB, salesRepo, catalogRepo, customerRepo, logger)
	salesHandler := sales.NewHandler(salesSvc)

	billingRepo := billing.NewRepository(db.DB)
	billingSvc := billing.NewService(db.DB, billingRepo, logger)
	billingHandler := billing.NewHandler(billingSvc)

	adminRepo := admin.NewRepository(db.DB)
	adminSvc := admin.NewService(db.DB, adminRepo, logger)
	adminHandler := admin.NewHandler(admin.HandlerConfig{
		Service:    adminSvc,
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
	})

	healthHandler := health.NewHandler(db, redis)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(jwtManager)
	adminOnly := middleware.RequireAdmin
	superadminOnly := middleware.RequireSuperadmin
	scoped := middleware.RequireScope("")
	scopedByID := middleware.RequireScope("businessID")
	roleLimited := middleware.RoleRateLimiter(
		redis.Client, middleware.DefaultRoleLimits)

	router.Route("/v1", func(r chi.Router) {
		r.Use(roleLimited)

		authHandler.RegisterRoutes(r, authenticator)

		userHandler.RegisterRoutes(r, authenticator, adminOnly, scoped)
		catalogHandler.RegisterRoutes(r, authenticator, adminOnly, scoped)
		customerHandler.RegisterRoutes(r, authenticator, scoped)
		salesHandler.RegisterRoutes(r, authenticator, scoped)
		billingHandler.RegisterRoutes(
			r, authenticator, adminOnly, superadminOnly, scoped)

		businessHandler.RegisterRoutes(r, authenticator, superadminOnly, scoped)
		businessHandler.RegisterAdminRoutes(
			r, authenticator, superadminOnly, scopedByID)

		adminHandler.RegisterRoutes(r, authenticator, superadminOnly, scoped)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
