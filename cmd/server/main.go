package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alcyxob/fitness-coach/internal/api"
	"alcyxob/fitness-coach/internal/auth"
	"alcyxob/fitness-coach/internal/config"
	"alcyxob/fitness-coach/internal/logging"
	"alcyxob/fitness-coach/internal/repository"
	"alcyxob/fitness-coach/internal/service"
	"alcyxob/fitness-coach/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// @title Fitness Coach API
// @version 1.0
// @description Read API for the exercise library, workouts and training programs.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	// A .env file is optional; the environment may already carry everything.
	_ = godotenv.Load()

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		// The logger is not configured yet.
		bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Msg("could not load config")
	}
	log := logging.New(cfg.Log)
	log.Info().Str("driver", cfg.Store.Driver).Msg("configuration loaded")

	// --- Store ---
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	client, closeStore, err := openStore(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("could not open store")
	}
	defer closeStore()

	// --- Media signing ---
	var media storage.MediaSigner
	if cfg.S3.Enabled() {
		media, err = storage.NewS3Signer(context.Background(), cfg.S3, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize media signer")
		}
	} else {
		log.Warn().Msg("s3 bucket not configured; media references are returned as stored")
	}

	verifier, err := auth.NewVerifier(cfg.JWT.Secret, cfg.JWT.PremiumClaim)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid jwt configuration")
	}

	// --- Repositories and services ---
	repos := repository.New(client)
	libraryService := service.NewLibraryService(repos.Exercises, repos.Blocks, media, log)
	trainingService := service.NewTrainingService(repos.Workouts, repos.Blocks, repos.Programs, repos.Users, log)
	profileService := service.NewProfileService(repos.Users, log)

	// --- Routes ---
	if !cfg.Log.Pretty {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, verifier, log, libraryService, trainingService, profileService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("address", cfg.Server.Address).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen failed")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exiting")
}
