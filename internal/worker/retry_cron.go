package worker

// retry_cron.go
// Background goroutine that periodically re-enqueues cloud-drive uploads for
// backups stuck in status='local' with a next_retry_at in the past.
// Uses the Circuit Breaker to avoid hammering a downed drive sidecar.

import (
	"context"
	"time"

	"foodcart360/internal/infra"
	"foodcart360/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	BackupRepo repository.BackupRepository
	CB         *infra.CircuitBreaker
	Dispatcher *Dispatcher
}

// StartRetryCron launches a background goroutine that ticks every 30s,
// queries due backup records, and re-enqueues their uploads.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	// If CB is open, skip entirely — don't hammer a downed sidecar
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return
	}

	records, err := cfg.BackupRepo.FindPendingRetries(ctx, time.Now(), retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending retries")
		return
	}
	if len(records) == 0 {
		return
	}

	log.Info().Int("count", len(records)).Msg("retry_cron: re-enqueueing pending uploads")

	for i := range records {
		record := &records[i]
		payload := BackupUploadPayload{RecordID: record.ID.String()}
		if err := cfg.Dispatcher.EnqueueBackupUpload(ctx, payload); err != nil {
			log.Error().Err(err).Str("record_id", record.ID.String()).Msg("retry_cron: enqueue failed")
			continue
		}
		// Push next_retry_at forward so the next tick doesn't double-enqueue
		// while the job is still in the queue.
		next := time.Now().Add(retryTickInterval * 2)
		record.NextRetryAt = &next
		_ = cfg.BackupRepo.UpdateRecord(ctx, record)
	}
}
