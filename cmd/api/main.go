// @title Event Booking API
// @version 1.0
// @description Events, bookings and organizer access for the event-booking service.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the organizer token.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventbooking/config"
	_ "eventbooking/docs"
	"eventbooking/internal/adapters/auth"
	"eventbooking/internal/adapters/email"
	httpdelivery "eventbooking/internal/delivery/http"
	"eventbooking/internal/delivery/http/controllers"
	"eventbooking/internal/domain"
	"eventbooking/internal/repository/mongodb"
	"eventbooking/internal/repository/postgres"
	"eventbooking/internal/services"
)

const (
	startupTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger()
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

// stores holds the repositories for the configured driver and how to release them.
type stores struct {
	events   domain.EventRepository
	bookings domain.BookingRepository
	close    func(context.Context) error
}

func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err := sql.Open("postgres", cfg.DBUrl)
		if err != nil {
			return nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, &domain.ConnectionError{Err: err}
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info("using postgres store")
		return &stores{
			events:   postgres.NewEventRepository(db),
			bookings: postgres.NewBookingRepository(db),
			close:    func(context.Context) error { return db.Close() },
		}, nil
	default:
		cache := mongodb.NewConnectionCache(cfg.MongoURI, cfg.MongoDatabase)
		if err := mongodb.EnsureIndexes(ctx, cache); err != nil {
			return nil, err
		}
		logger.Info("using mongo store", "database", cfg.MongoDatabase)
		return &stores{
			events:   mongodb.NewEventRepository(cache),
			bookings: mongodb.NewBookingRepository(cache),
			close:    cache.Close,
		}, nil
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	startCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	st, err := openStores(startCtx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := st.close(ctx); err != nil {
			logger.Error("failed to close store", "err", err)
		}
	}()

	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return err
	}
	mailer := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	}, logger)
	emailService := services.NewEmailService(mailer, renderer, logger)

	eventService := services.NewEventService(st.events, cfg.RequestTimeout)
	bookingService := services.NewBookingService(st.events, st.bookings, emailService, logger, cfg.RequestTimeout)

	router := httpdelivery.NewRouter(httpdelivery.RouterDeps{
		Logger:             logger,
		Events:             controllers.NewEventController(logger, eventService),
		Bookings:           controllers.NewBookingController(logger, bookingService),
		Verifier:           auth.NewJWT(cfg.JWTSecret),
		CORSAllowedOrigins: cfg.CORSOrigins,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", server.Addr, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-sigCtx.Done():
	}

	logger.Info("shutdown signal received, shutting down gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return err
	}
	logger.Info("server stopped cleanly")
	return nil
}
