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

	_ "github.com/lib/pq"

	"github.com/copapymes/league-system/config"
	"github.com/copapymes/league-system/db"
	"github.com/copapymes/league-system/handlers"
	"github.com/copapymes/league-system/live"
	"github.com/copapymes/league-system/repositories"
	"github.com/copapymes/league-system/routes"
	"github.com/copapymes/league-system/services"
	"github.com/copapymes/league-system/storage"
)

const (
	schedulerInterval  = 1 * time.Minute
	connectMaxAttempts = 5
	shutdownTimeout    = 15 * time.Second
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.ConnectWithRetry(cfg.DatabaseURL, 5*time.Second, connectMaxAttempts, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	var uploader storage.FileUploader
	if cfg.MediaEnabled() {
		uploader, err = storage.NewR2Uploader(storage.R2UploaderConfig{
			AccountID:       cfg.MediaAccountID,
			AccessKeyID:     cfg.MediaAccessKeyID,
			SecretAccessKey: cfg.MediaSecretAccessKey,
			BucketName:      cfg.MediaBucketName,
			PublicBaseURL:   cfg.MediaPublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize media storage", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("media storage initialized", slog.String("bucket", cfg.MediaBucketName))
	} else {
		logger.Info("media storage disabled: credentials not configured")
	}

	hub := live.NewHub(logger)
	go hub.Run()

	txManager := repositories.NewTxManager(dbConn)
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	venueRepo := repositories.NewPostgresVenueRepository(dbConn)
	divisionRepo := repositories.NewPostgresDivisionRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	registrationRepo := repositories.NewPostgresRegistrationRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	prizeRepo := repositories.NewPostgresPrizeRepository(dbConn)

	authService := services.NewAuthService(userRepo, logger)
	userService := services.NewUserService(userRepo)
	teamService := services.NewTeamService(teamRepo, uploader, logger)
	venueService := services.NewVenueService(venueRepo, uploader, logger)
	divisionService := services.NewDivisionService(divisionRepo)
	prizeService := services.NewPrizeService(prizeRepo, tournamentRepo)
	fixtureService := services.NewFixtureService(registrationRepo, matchRepo, logger)
	tournamentService := services.NewTournamentService(txManager, tournamentRepo, fixtureService, hub, logger)
	registrationService := services.NewRegistrationService(registrationRepo, tournamentRepo, teamRepo, logger)
	matchService := services.NewMatchService(matchRepo, teamRepo, venueRepo, userRepo, hub, logger)

	// Scheduler: finish active tournaments whose end date has passed.
	go func() {
		ticker := time.NewTicker(schedulerInterval)
		defer ticker.Stop()
		logger.Info("tournament scheduler started", slog.Duration("interval", schedulerInterval))

		if err := tournamentService.FinishDueTournaments(context.Background()); err != nil {
			logger.Error("scheduler: initial run failed", slog.Any("error", err))
		}
		for range ticker.C {
			if err := tournamentService.FinishDueTournaments(context.Background()); err != nil {
				logger.Error("scheduler: periodic run failed", slog.Any("error", err))
			}
		}
	}()

	router := routes.InitRoutes(routes.Config{
		JWTSecret:           []byte(cfg.JWTSecretKey),
		CORSOrigins:         cfg.CORSOrigins,
		HealthHandler:       handlers.NewHealthHandler(dbConn),
		AuthHandler:         handlers.NewAuthHandler(authService, []byte(cfg.JWTSecretKey)),
		UserHandler:         handlers.NewUserHandler(userService),
		TeamHandler:         handlers.NewTeamHandler(teamService),
		VenueHandler:        handlers.NewVenueHandler(venueService),
		DivisionHandler:     handlers.NewDivisionHandler(divisionService),
		TournamentHandler:   handlers.NewTournamentHandler(tournamentService),
		RegistrationHandler: handlers.NewRegistrationHandler(registrationService),
		MatchHandler:        handlers.NewMatchHandler(matchService),
		PrizeHandler:        handlers.NewPrizeHandler(prizeService),
		WebSocketHandler:    handlers.NewWebSocketHandler(hub, tournamentService, logger),
	})

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
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
}
