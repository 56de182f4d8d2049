package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodcart360/internal/config"
	"foodcart360/internal/infra"
	"foodcart360/internal/repository"
	"foodcart360/internal/router"
	"foodcart360/internal/service"
	"foodcart360/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	if err := infra.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Circuit breaker in front of the cloud-drive sidecar — shared between
	// the upload worker, the retry cron and the drive-backed HTTP endpoints.
	driveCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())

	// Start goroutine worker pool for async tasks (drive uploads, report
	// emails). Worker handlers are wired here (composition root) so that the
	// pool has full access to all infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	driveClient := infra.NewDriveClient(cfg.DriveBaseURL, cfg.DriveFolder)
	billingClient := infra.NewBillingClient(cfg.BillingBaseURL, cfg.BillingAPIKey)
	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	backupRepo := repository.NewBackupRepository(db)
	settingsRepo := repository.NewSettingsRepository(db, cfg.TaxRate())

	handlers := worker.Handlers{
		BackupUpload: worker.NewBackupUploadWorker(backupRepo, driveClient, driveCB, rdb, cfg.BackupDir),
		Email:        worker.NewEmailWorker(mailer),
	}
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, handlers)
	worker.StartRetryCron(ctx, worker.RetryCronConfig{
		BackupRepo: backupRepo,
		CB:         driveCB,
		Dispatcher: dispatcher,
	})
	worker.StartEntitlementCron(ctx, service.NewSubscriptionService(settingsRepo, billingClient, cfg.TrialDays))

	r := router.New(cfg, db, rdb, driveCB)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("FoodCart360 backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
