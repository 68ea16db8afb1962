// @title           Storefront API
// @version         1.0
// @description     Products, categories, session-aware carts and authentication.
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/storefront/internal/auth"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/config"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/database"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/logging"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/ratelimit"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/repository"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/routes"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	logging.Setup(cfg.IsDevelopment())

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" && !cfg.IsDevelopment() {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(db)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.NewJSONHandler(os.Stdout, cfg.IsDevelopment()),
		pgLogHandler,
	)))

	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cfg.LogRetentionDays, cleanupDone)

	// Login throttle
	throttle := ratelimit.NewThrottle(newThrottleStore(cfg), cfg.LoginMaxAttempts)

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTExpiry)
	if err != nil {
		slog.Error("token service init failed", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)

	// Services
	cartService := services.NewCartService(cartRepo, productRepo)
	authService := services.NewAuthService(userRepo, auth.NewBcryptHasher(cfg.BcryptCost), tokens, throttle, cartService)
	productService := services.NewProductService(productRepo, cfg.InstallmentTimes)
	categoryService := services.NewCategoryService(productRepo, productService)

	// Handlers
	h := routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService),
		Product:  handlers.NewProductHandler(productService),
		Category: handlers.NewCategoryHandler(categoryService),
		Cart:     handlers.NewCartHandler(cartService),
		Health:   handlers.NewHealthHandler(database.NewPinger(db), cfg.APIPrefix),
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler(cfg.IsDevelopment()),
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	routes.Setup(app, cfg, tokens, authService, h)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv, "prefix", cfg.APIPrefix)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if err := database.Close(db); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}

// newThrottleStore falls back to process memory when Redis is unreachable.
func newThrottleStore(cfg *config.Config) ratelimit.Store {
	if cfg.RateLimitStore != "redis" {
		return ratelimit.NewMemoryStore(cfg.LoginWindow)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	client, err := ratelimit.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Warn("redis unavailable, using in-memory login throttle", "error", err)
		return ratelimit.NewMemoryStore(cfg.LoginWindow)
	}
	slog.Info("login throttle backed by redis")
	return ratelimit.NewRedisStore(client, cfg.LoginWindow)
}
