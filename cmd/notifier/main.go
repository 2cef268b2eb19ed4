package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"dhara-backend/internal/config"
	"dhara-backend/internal/logger"
	"dhara-backend/internal/queue"
	"dhara-backend/internal/repository"
	"dhara-backend/internal/repository/postgres"
	"dhara-backend/internal/service"
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
	logger.Info("Starting Dhara Booking Notifier...", "log_level", cfg.Log.Level)

	if !cfg.RabbitMQ.Enabled {
		log.Fatalf("rabbitmq must be enabled for the notifier")
	}

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	consumer := queue.NewConsumer(cfg.RabbitMQ.URL, cfg.RabbitMQ.Prefetch, emailOperator(store.UserRepository, emailSvc))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Notifier stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("Notifier stopped. Goodbye!")
}

// emailOperator emails the asset's operator about a new booking.
func emailOperator(users repository.UserRepository, email service.EmailService) queue.Handler {
	return func(ctx context.Context, ev queue.BookingCreatedEvent) error {
		operator, err := users.GetByID(ctx, ev.OperatorID)
		if err != nil {
			return err
		}
		return email.SendBookingNotification(ctx, service.BookingEmail{
			OperatorEmail: operator.Email,
			OperatorName:  operator.Name,
			FarmerName:    ev.FarmerName,
			AssetName:     ev.AssetName,
			Date:          ev.BookingDate,
			Time:          ev.BookingTime,
		})
	}
}
