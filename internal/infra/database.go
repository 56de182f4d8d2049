package infra

import (
	"fmt"

	"foodcart360/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx. Callers run
// RunMigrations separately so tests can control when the schema is built.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return db, nil
}

// RunMigrations applies AutoMigrate plus the idempotent SQL patches GORM
// cannot express (the token-number sequence, the retry partial index).
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.MenuItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.InventoryItem{},
		&model.Expense{},
		&model.User{},
		&model.AttendanceRecord{},
		&model.Settings{},
		&model.BusinessProfile{},
		&model.Subscription{},
		&model.BackupRecord{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot handle.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Order token numbers come from a sequence for race-free allocation.
		`CREATE SEQUENCE IF NOT EXISTS orders_token_number_seq START 1`,
		// Retry cron query: local backups with a due retry timestamp.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_backup_records_pending_retry') THEN
		    CREATE INDEX idx_backup_records_pending_retry
		        ON backup_records (next_retry_at)
		        WHERE status = 'local' AND next_retry_at IS NOT NULL;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
