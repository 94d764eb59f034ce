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

	"github.com/SscSPs/expense_tracker/internal/adapters/events"
	"github.com/SscSPs/expense_tracker/internal/adapters/shopify"
	"github.com/SscSPs/expense_tracker/internal/adapters/storage"
	"github.com/SscSPs/expense_tracker/internal/adapters/veryfi"
	"github.com/SscSPs/expense_tracker/internal/core/ports/clients"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/expense_tracker/internal/core/services"
	"github.com/SscSPs/expense_tracker/internal/handlers"
	"github.com/SscSPs/expense_tracker/internal/middleware"
	"github.com/SscSPs/expense_tracker/internal/platform/config"
	"github.com/SscSPs/expense_tracker/internal/platform/metrics"
	"github.com/SscSPs/expense_tracker/internal/repositories/database/pgsql"
	"github.com/SscSPs/expense_tracker/internal/repositories/database/sqlite"
	"github.com/SscSPs/expense_tracker/internal/utils"
	"github.com/SscSPs/expense_tracker/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

// @title Expense Tracker API
// @version 1.0
// @description Backend for the expense tracker: expenses, vendors, receipt OCR, store analytics and app settings.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := openDocumentStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open document store", slog.String("backend", cfg.DataBackend), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	appMetrics := metrics.New()

	objectStorage, err := storage.New(ctx, cfg)
	if err != nil {
		// uploads are optional; run without them
		logger.Error("Failed to initialize object storage, uploads disabled", slog.String("error", err.Error()))
		objectStorage = storage.Disabled{}
	}

	publisher := newEventPublisher(cfg, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Error closing event publisher", slog.String("error", err.Error()))
		}
	}()

	ocr := veryfi.NewClient(veryfi.Config{
		ClientID:     cfg.VeryfiClientID,
		Username:     cfg.VeryfiUsername,
		APIKey:       cfg.VeryfiAPIKey,
		DocumentsURL: cfg.VeryfiURL,
		Timeout:      cfg.HTTPClientTimeout,
	}, veryfi.WithMetrics(appMetrics))
	shop := shopify.NewClient(cfg.ShopifyStoreURL, cfg.ShopifyAccessToken, cfg.HTTPClientTimeout, shopify.WithMetrics(appMetrics))

	serviceContainer, err := services.NewServiceContainer(cfg, repos, services.Integrations{
		OCR:            ocr,
		Shopify:        shop,
		ShopifyEnabled: cfg.ShopifyConfigured(),
		Storage:        objectStorage,
	}, services.WithEventPublisher(publisher), services.WithMetrics(appMetrics))
	if err != nil {
		logger.Error("Failed to create service container", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer serviceContainer.Auth.Close()

	if _, err := serviceContainer.Settings.Load(ctx); err != nil {
		// cached or default settings are still served
		logger.Warn("App settings not reconciled with the document store", slog.String("error", err.Error()))
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	routeOpts := handlers.RouteOptions{Metrics: appMetrics, Posthog: posthogClient}
	redisClient := newRedisClient(cfg, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}
	if routeOpts.SignInLimiter, err = middleware.NewLimiter("5-M", "signin", redisClient); err != nil {
		logger.Error("Failed to create sign-in rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if routeOpts.ReceiptLimiter, err = middleware.NewLimiter("30-M", "receipt", redisClient); err != nil {
		logger.Error("Failed to create receipt rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.MetricsMiddleware(appMetrics),
		middleware.PosthogMiddleware(posthogClient),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, routeOpts)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
	// write any pending settings change before the store closes
	if err := serviceContainer.Settings.Close(shutdownCtx); err != nil {
		logger.Error("Failed to flush app settings", slog.String("error", err.Error()))
	}
}

// openDocumentStore runs the migrations of the configured backend and returns its repositories.
func openDocumentStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.DataBackend {
	case config.BackendSQLite:
		changed, err := database.RunSQLiteMigrations(cfg.SQLiteDBPath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logMigrations(logger, changed)

		db, err := database.NewSQLiteDB(ctx, cfg.SQLiteDBPath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("SQLite document store opened", slog.String("path", cfg.SQLiteDBPath))
		return sqlite.NewRepositoryProvider(db), func() { db.Close() }, nil
	default:
		logger.Info("Running database migrations...")
		changed, err := database.RunPostgresMigrations(cfg.DatabaseURL)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logMigrations(logger, changed)

		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Database connection pool established.")
		return pgsql.NewRepositoryProvider(pool), func() { database.ClosePgxPool(pool) }, nil
	}
}

func logMigrations(logger *slog.Logger, changed bool) {
	if changed {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}
}

// newEventPublisher connects to the broker when AMQP_URL is set. Events are dropped otherwise.
func newEventPublisher(cfg *config.Config, logger *slog.Logger) clients.EventPublisher {
	if cfg.AMQPURL == "" {
		return events.Noop{}
	}
	publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		logger.Error("Failed to connect to the event broker, events disabled", slog.String("error", err.Error()))
		return events.Noop{}
	}
	logger.Info("Event publisher connected", slog.String("exchange", cfg.AMQPExchange))
	return publisher
}

// newRedisClient returns nil when REDIS_URL is unset, leaving rate limit counters in memory.
func newRedisClient(cfg *config.Config, logger *slog.Logger) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Error("Invalid REDIS_URL, rate limits kept in memory", slog.String("error", err.Error()))
		return nil
	}
	return redis.NewClient(opts)
}
