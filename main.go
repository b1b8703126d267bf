package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"booking-service/internal/config"
	"booking-service/internal/database"
	"booking-service/internal/logging"
	"booking-service/internal/mailer"
	"booking-service/internal/publisher"
	"booking-service/internal/repository"
	"booking-service/internal/server"
	"booking-service/internal/service"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn("Could not load .env file.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Could not load configuration")
	}
	logger := logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(cfg.DB); err != nil {
		logger.WithError(err).Fatal("Database migration failed")
	}

	db, err := database.Open(ctx, cfg.DB)
	if err != nil {
		logger.WithError(err).Fatal("Could not connect to the database")
	}
	defer db.Close()

	// Create repositories
	eventRepository := repository.NewPostgresEventRepository(db)
	bookingRepository := repository.NewPostgresBookingRepository(db)
	historyRepository := repository.NewPostgresHistoryRepository(db)

	var auditPublisher service.AuditPublisher
	if cfg.Kafka.Enabled() {
		p, err := publisher.NewAuditPublisher(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic)
		if err != nil {
			logger.WithError(err).Fatal("Could not create audit publisher")
		}
		defer p.Close()
		auditPublisher = p
	} else {
		logger.Info("KAFKA_BROKERS not set, audit entries are stored in the database only")
	}

	var mail service.Mailer
	if cfg.Mail.Enabled() {
		m, err := mailer.NewSMTPMailer(cfg.Mail)
		if err != nil {
			logger.WithError(err).Fatal("Could not create SMTP mailer")
		}
		mail = m
	} else {
		logger.Warn("EMAIL_USER or EMAIL_PASS not set, booking emails will only be logged")
		mail = mailer.NewLogMailer(logger)
	}

	// Create services
	historyWriter := service.NewHistoryWriter(historyRepository, auditPublisher, cfg.Audit.SystemActorID, logger)
	notifier := service.NewStatusNotifier(bookingRepository, mail, cfg.Mail.User)
	eventService := service.NewEventService(eventRepository, historyWriter, logger)
	bookingService := service.NewBookingService(bookingRepository, historyWriter, notifier, logger)

	// Create server
	srv := server.NewServer(eventService, bookingService, historyWriter, db, cfg.Audit.SystemActorID, logger)

	e := echo.New()
	e.HideBanner = true
	srv.Register(e)

	go func() {
		logger.WithField("port", cfg.HTTP.Port).Info("Booking service is starting with Echo")
		if err := e.Start(":" + cfg.HTTP.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Echo server failed to start")
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down booking service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Graceful shutdown failed")
	}
}
