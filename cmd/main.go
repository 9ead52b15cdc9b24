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

	"github.com/go-chi/chi/v5"
	"github.com/pitchside/matchday/config"
	"github.com/pitchside/matchday/db"
	"github.com/pitchside/matchday/handlers"
	"github.com/pitchside/matchday/repositories"
	api "github.com/pitchside/matchday/routes"
	"github.com/pitchside/matchday/services"
	"github.com/pitchside/matchday/storage"
	"github.com/pitchside/matchday/tournament"
)

const activationInterval = 30 * time.Second

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

	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("Cloudflare R2 is not configured, cover uploads disabled")
	}

	wsHub := tournament.NewHub(logger)
	go wsHub.Run()
	logger.Info("WebSocket hub started")

	gameRepo := repositories.NewPostgresGameRepository()
	matchRepo := repositories.NewPostgresMatchRepository()
	bookingRepo := repositories.NewPostgresBookingRepository()
	profileRepo := repositories.NewPostgresProfileRepository()
	userRepo := repositories.NewPostgresUserRepository()
	logger.Info("repositories initialized")

	authService := services.NewAuthService(dbConn, userRepo)
	gameService := services.NewGameService(dbConn, gameRepo, matchRepo, bookingRepo, uploader, logger)
	scheduleService := services.NewScheduleService(dbConn, gameRepo, matchRepo, logger)
	matchService := services.NewMatchService(dbConn, gameRepo, matchRepo, logger)
	tournamentService := services.NewTournamentService(
		dbConn,
		gameRepo,
		matchRepo,
		bookingRepo,
		profileRepo,
		wsHub,
		logger,
	)
	logger.Info("services initialized")

	// Flip scheduled games to active once their start time passes.
	go func() {
		ticker := time.NewTicker(activationInterval)
		defer ticker.Stop()
		logger.Info("game activation scheduler started", slog.Duration("interval", activationInterval))

		for {
			if n, err := gameService.ActivateDueGames(context.Background()); err != nil {
				logger.Error("game activation run failed", slog.Any("error", err))
			} else if n > 0 {
				logger.Info("games activated", slog.Int64("count", n))
			}
			<-ticker.C
		}
	}()

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	gameHandler := handlers.NewGameHandler(gameService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	matchHandler := handlers.NewMatchHandler(matchService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, logger)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		gameHandler,
		scheduleHandler,
		tournamentHandler,
		matchHandler,
		webSocketHandler,
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
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if err := server.Close(); err != nil {
				logger.Error("forced server close failed", slog.Any("error", err))
			}
		}
	}

	logger.Info("server stopped")
}
