// Package main is the entry point for the conference central API server.
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"conferencecentral/config"
	authadapter "conferencecentral/internal/adapters/auth"
	cacheadapter "conferencecentral/internal/adapters/cache"
	emailadapter "conferencecentral/internal/adapters/email"
	delivery "conferencecentral/internal/delivery/http"
	"conferencecentral/internal/delivery/http/controllers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
	"conferencecentral/internal/repository/postgres"
	"conferencecentral/internal/services"
	"conferencecentral/internal/tasks"
)

// @title Conference Central API
// @version 1.0
// @description Conference, session, and speaker management backend.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelPing()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	if err := runMigrations(cfg.DBUrl); err != nil {
		logger.Error("failed to run migrations", "err", err)
		os.Exit(1)
	}

	profileRepo := postgres.NewProfileRepository(db)
	conferenceRepo := postgres.NewConferenceRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	speakerRepo := postgres.NewSpeakerRepository(db)
	transactor := postgres.NewTransactor(db)

	announcementCache := cacheadapter.NewMemory(cfg.AnnouncementTTL)

	mailer, err := emailadapter.NewMailer(logger, emailadapter.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: emailadapter.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	renderer := emailadapter.NewTemplateRenderer()
	emailService := services.NewEmailService(mailer, renderer)

	dispatcher := tasks.NewDispatcher(logger, 64)

	profileService := services.NewProfileService(profileRepo)
	conferenceService := services.NewConferenceService(
		profileRepo, conferenceRepo, transactor, announcementCache, dispatcher, logger)
	sessionService := services.NewSessionService(
		profileRepo, conferenceRepo, sessionRepo, speakerRepo,
		transactor, announcementCache, dispatcher, logger)
	speakerService := services.NewSpeakerService(speakerRepo, sessionRepo, dispatcher, logger)

	dispatcher.Handle(domain.JobConfirmationEmail, tasks.NewConfirmationEmailHandler(emailService))
	dispatcher.Handle(domain.JobFeaturedSpeaker, tasks.NewFeaturedSpeakerHandler(sessionService))
	dispatcher.Start(cfg.TaskWorkers)

	verifier := authadapter.NewJWTVerifier(cfg.JWTSecret)

	routerCfg := delivery.RouterConfig{
		Logger:     logger,
		Verifier:   verifier,
		Profile:    controllers.NewProfileController(logger, profileService),
		Conference: controllers.NewConferenceController(logger, conferenceService),
		Session:    controllers.NewSessionController(logger, sessionService),
		Speaker:    controllers.NewSpeakerController(logger, speakerService),
		Internal:   controllers.NewInternalController(logger, conferenceService),
	}
	if cfg.Environment != "production" {
		routerCfg.Auth = controllers.NewAuthController(logger, authadapter.NewJWTIssuer(cfg.JWTSecret))
	}

	var handler http.Handler = delivery.NewRouter(routerCfg)
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "err", err)
		}
	}

	// Drain accepted jobs before exiting.
	dispatcher.Stop()
	logger.Info("server stopped")
}

// runMigrations applies pending schema migrations from the migrations
// directory. An up-to-date schema is not an error.
func runMigrations(dbURL string) error {
	m, err := migrate.New("file://migrations", dbURL)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
