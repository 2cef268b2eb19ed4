package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "dhara-backend/internal/api/http"
	"dhara-backend/internal/cache"
	"dhara-backend/internal/config"
	"dhara-backend/internal/logger"
	"dhara-backend/internal/metrics"
	"dhara-backend/internal/queue"
	"dhara-backend/internal/repository/postgres"
	"dhara-backend/internal/security"
	"dhara-backend/internal/service"
	"dhara-backend/internal/utils"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Dhara Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(context.Background(), db); err != nil {
			log.Fatalf("Failed to apply schema: %v", err)
		}
		logger.Info("Database schema applied")
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security and Metrics
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenTTL())
	m := metrics.New()

	// Optional infrastructure. Interfaces stay nil when the backing service is off.
	var locker service.SlotLocker
	if rdb := cache.NewRedisClient(cfg.Redis); rdb != nil {
		defer rdb.Close()
		locker = cache.NewSlotLocker(rdb)
	}

	var publisher service.EventPublisher
	if cfg.RabbitMQ.Enabled {
		p := queue.NewPublisher(cfg.RabbitMQ.URL)
		defer p.Close()
		publisher = p
		logger.Info("Publishing booking events", "queue", queue.BookingCreatedQueue)
	}

	// Initialize Services
	clock := utils.SystemClock{}
	engine := utils.NewPricingEngine(utils.DefaultPricingTable(), clock)
	noteSvc := service.NewNotificationService(store.NotificationRepository)
	userSvc := service.NewUserService(store.UserRepository)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	bookingSvc := service.NewBookingService(
		store.BookingRepository,
		store.AssetRepository,
		store.UserRepository,
		noteSvc,
		publisher,
		locker,
		clock,
		m,
	)
	assetSvc := service.NewAssetService(
		store.AssetRepository,
		store.MaintenanceLogRepository,
		engine,
		bookingSvc,
		clock,
		m,
	)

	router := httpapi.NewRouter(httpapi.Services{
		Auth:         authSvc,
		User:         userSvc,
		Asset:        assetSvc,
		Booking:      bookingSvc,
		Notification: noteSvc,
	}, tokenManager, m)

	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("HTTP server stopped. Goodbye!")
}
