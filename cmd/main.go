package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/athlos-fc/academy-system/config"
	"github.com/athlos-fc/academy-system/db"
	"github.com/athlos-fc/academy-system/handlers"
	"github.com/athlos-fc/academy-system/realtime"
	"github.com/athlos-fc/academy-system/repositories"
	api "github.com/athlos-fc/academy-system/routes"
	"github.com/athlos-fc/academy-system/services"
	"github.com/athlos-fc/academy-system/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	presigner, err := storage.NewS3Presigner(storage.S3PresignerConfig{
		Region:          cfg.AWSRegion,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
		BucketName:      cfg.S3BucketName,
		UploadExpiry:    cfg.UploadURLExpiry,
		DownloadExpiry:  cfg.DownloadURLExpiry,
	})
	if err != nil {
		logger.Error("failed to initialize S3 presigner", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("S3 presigner initialized")

	hub := realtime.NewHub(logger)
	go hub.Run()
	logger.Info("dashboard event hub started")

	// Repositories
	txManager := repositories.NewSQLTxManager(dbConn, logger)
	registrationRepo := repositories.NewPostgresRegistrationRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	sessionRepo := repositories.NewPostgresSessionRepository(dbConn)

	// Services
	authService := services.NewAuthService(cfg.CoachEmails, cfg.CoachAccessCodeHash, []byte(cfg.JWTSecretKey))
	registrationService := services.NewRegistrationService(registrationRepo, hub)
	approvalService := services.NewApprovalService(txManager, registrationRepo, playerRepo, hub, logger)
	playerService := services.NewPlayerService(playerRepo)
	sessionService := services.NewSessionService(sessionRepo, playerRepo, txManager)
	logger.Info("services initialized")

	// HTTP handlers
	authHandler := handlers.NewAuthHandler(authService, logger)
	registrationHandler := handlers.NewRegistrationHandler(registrationService, approvalService, logger)
	playerHandler := handlers.NewPlayerHandler(playerService, logger)
	sessionHandler := handlers.NewSessionHandler(sessionService, logger)
	uploadHandler := handlers.NewUploadHandler(presigner, logger)
	wsHandler := handlers.NewWebSocketHandler(hub, logger)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		[]byte(cfg.JWTSecretKey),
		cfg.CoachEmails,
		cfg.CORSAllowedOrigins,
		authHandler,
		registrationHandler,
		playerHandler,
		sessionHandler,
		uploadHandler,
		wsHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
