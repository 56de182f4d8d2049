package worker

// backup_worker.go
// Processes cloud-drive upload jobs from QueueBackupUpload.
// Reads the exported file from disk and pushes it to the drive sidecar
// through the circuit breaker, with exponential backoff on failure.

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"foodcart360/internal/infra"
	"foodcart360/internal/model"
	"foodcart360/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// MaxUploadRetries is the point at which a backup stops being retried and
// lands in the DLQ.
const MaxUploadRetries = 5

// BackupUploadWorker uploads exported backup files to the cloud drive.
type BackupUploadWorker struct {
	repo      repository.BackupRepository
	drive     *infra.DriveClient
	cb        *infra.CircuitBreaker
	rdb       *redis.Client
	backupDir string
}

func NewBackupUploadWorker(repo repository.BackupRepository, drive *infra.DriveClient, cb *infra.CircuitBreaker, rdb *redis.Client, backupDir string) *BackupUploadWorker {
	return &BackupUploadWorker{repo: repo, drive: drive, cb: cb, rdb: rdb, backupDir: backupDir}
}

// Process handles a single upload job:
//  1. Parse BackupUploadPayload and load the record
//  2. Read the file from the local backup dir
//  3. Upload through the circuit breaker
//  4. On success mark uploaded; on failure schedule the next retry
func (w *BackupUploadWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload BackupUploadPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("backup_worker: invalid payload")
		return
	}

	recordID, err := uuid.Parse(payload.RecordID)
	if err != nil {
		log.Error().Str("record_id", payload.RecordID).Msg("backup_worker: invalid record_id")
		return
	}

	record, err := w.repo.FindRecordByID(ctx, recordID)
	if err != nil {
		log.Error().Err(err).Str("record_id", payload.RecordID).Msg("backup_worker: record not found")
		return
	}
	if record.Status == model.BackupStatusUploaded {
		return
	}

	data, err := os.ReadFile(filepath.Join(w.backupDir, record.FileName))
	if err != nil {
		log.Error().Err(err).Str("file", record.FileName).Msg("backup_worker: backup file missing")
		errMsg := err.Error()
		record.Status = model.BackupStatusFailed
		record.LastError = &errMsg
		record.NextRetryAt = nil
		_ = w.repo.UpdateRecord(ctx, record)
		return
	}

	var remoteID string
	cbErr := w.cb.Execute(func() error {
		id, err := w.drive.UploadBackup(ctx, record.FileName, data)
		if err != nil {
			return err
		}
		remoteID = id
		return nil
	})
	if cbErr != nil {
		w.scheduleRetry(ctx, record, cbErr)
		return
	}

	record.Status = model.BackupStatusUploaded
	record.RemoteID = &remoteID
	record.NextRetryAt = nil
	record.LastError = nil
	if err := w.repo.UpdateRecord(ctx, record); err != nil {
		log.Error().Err(err).Str("record_id", record.ID.String()).Msg("backup_worker: failed to persist upload result")
		return
	}
	log.Info().
		Str("record_id", record.ID.String()).
		Str("remote_id", remoteID).
		Int64("size_bytes", record.SizeBytes).
		Msg("backup_worker: backup uploaded")
}

func (w *BackupUploadWorker) scheduleRetry(ctx context.Context, record *model.BackupRecord, cause error) {
	record.RetryCount++
	errMsg := cause.Error()
	record.LastError = &errMsg

	if record.RetryCount >= MaxUploadRetries {
		record.Status = model.BackupStatusFailed
		record.NextRetryAt = nil
		log.Error().
			Str("record_id", record.ID.String()).
			Int("retries", record.RetryCount).
			Msg("backup_worker: max retries exceeded, moving to DLQ")

		payload, _ := json.Marshal(BackupUploadPayload{RecordID: record.ID.String()})
		SendToDLQ(ctx, w.rdb, QueueBackupUpload, "backup_upload", payload, errMsg, record.RetryCount)
	} else {
		next := time.Now().Add(computeRetryBackoff(record.RetryCount))
		record.NextRetryAt = &next
		log.Warn().
			Str("record_id", record.ID.String()).
			Int("retry_count", record.RetryCount).
			Time("next_retry_at", next).
			Msg("backup_worker: upload failed, scheduled next attempt")
	}

	_ = w.repo.UpdateRecord(ctx, record)
}

// computeRetryBackoff doubles the wait per attempt: 1m, 2m, 4m… capped at 30m.
func computeRetryBackoff(retryCount int) time.Duration {
	backoff := time.Minute * time.Duration(1<<uint(retryCount-1))
	if backoff > 30*time.Minute {
		backoff = 30 * time.Minute
	}
	return backoff
}
