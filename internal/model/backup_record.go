package model

import (
	"time"

	"github.com/google/uuid"
)

// Backup upload statuses.
const (
	BackupStatusLocal    = "local"    // written to disk, not yet uploaded
	BackupStatusUploaded = "uploaded" // confirmed on the cloud drive
	BackupStatusFailed   = "failed"   // upload exhausted retries
)

// BackupRecord tracks one exported backup document and its cloud-drive upload
// lifecycle. The retry cron re-attempts rows with Status="local" whose
// NextRetryAt has passed.
type BackupRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FileName  string    `gorm:"not null"`
	SizeBytes int64     `gorm:"not null"`
	// Encoding: "raw" | "gzip" — matches the envelope tag inside the file.
	Encoding string `gorm:"type:varchar(10);not null;default:'raw'"`
	Status   string `gorm:"type:varchar(10);not null;default:'local';index"`
	// RemoteID is the drive file id once uploaded.
	RemoteID    *string
	RetryCount  int `gorm:"not null;default:0"`
	NextRetryAt *time.Time `gorm:"index"`
	LastError   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
