package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"simrs-backend/internal/config"
	"simrs-backend/internal/events"
	"simrs-backend/internal/handlers"
	"simrs-backend/internal/middleware"
	"simrs-backend/internal/reminder"
	"simrs-backend/internal/repository"
	"simrs-backend/internal/routes"
	"simrs-backend/pkg/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Load Env
	cfg := config.Load()
	logger := config.NewLogger(cfg)

	// 2. Connect DB + migrate
	db, err := config.ConnectDB(cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("database tidak bisa dibuka")
	}
	if err := config.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("migrasi gagal")
	}

	patients := repository.NewPatientRepository(db)
	users := repository.NewUserRepository(db)

	if created, err := config.EnsureAdmin(ctx, users, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		logger.Fatal().Err(err).Msg("gagal membuat akun admin")
	} else if created {
		logger.Info().Str("username", cfg.AdminUsername).Msg("akun admin dibuat")
	}

	// 3. Event publisher (Kafka kalau KAFKA_BROKERS diisi)
	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	defer publisher.Close()

	// Init Firebase (opsional)
	var notifier reminder.Notifier
	if cfg.FCMCredentials != "" {
		fcm, err := utils.NewFCMClient(ctx, cfg.FCMCredentials)
		if err != nil {
			logger.Warn().Err(err).Msg("FCM tidak aktif")
		} else {
			notifier = fcm
		}
	}
	reminders := reminder.NewService(patients, users, notifier, logger)

	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	if cfg.JWTSecret == "" {
		logger.Warn().Msg("JWT_SECRET kosong, memakai secret default")
	}

	h := handlers.New(patients, users, publisher, reminders, tokens, logger, cfg.ExpiryWindowDays)

	// 4. Init Router
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())

	limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	defer limiter.Stop()

	// 5. Setup Routes
	routes.SetupRoutes(r, h, limiter, cfg.CORSOrigins, logger)

	// 6. Run Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info().Str("port", cfg.Port).Msg("Server berjalan")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server berhenti")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown tidak bersih")
	}
}
