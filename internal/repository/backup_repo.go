package repository

import (
	"context"
	"time"

	"foodcart360/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BackupRepository tracks backup records and provides the bulk replace
// primitives the restore path needs. Replace*Tx methods run inside the
// caller's transaction so restore stays all-or-nothing.
type BackupRepository interface {
	CreateRecord(ctx context.Context, b *model.BackupRecord) error
	UpdateRecord(ctx context.Context, b *model.BackupRecord) error
	FindRecordByID(ctx context.Context, id uuid.UUID) (*model.BackupRecord, error)
	ListRecords(ctx context.Context) ([]model.BackupRecord, error)
	// FindPendingRetries returns local records whose next retry is due.
	FindPendingRetries(ctx context.Context, now time.Time, limit int) ([]model.BackupRecord, error)

	ReplaceOrdersTx(tx *gorm.DB, orders []model.Order) error
	ReplaceMenuItemsTx(tx *gorm.DB, items []model.MenuItem) error
	ReplaceInventoryTx(tx *gorm.DB, items []model.InventoryItem) error
	ReplaceExpensesTx(tx *gorm.DB, expenses []model.Expense) error
	ReplaceSettingsTx(tx *gorm.DB, s *model.Settings) error
	ReplaceProfileTx(tx *gorm.DB, p *model.BusinessProfile) error

	DB() *gorm.DB
}

type backupRepo struct{ db *gorm.DB }

func NewBackupRepository(db *gorm.DB) BackupRepository { return &backupRepo{db: db} }

func (r *backupRepo) DB() *gorm.DB { return r.db }

func (r *backupRepo) CreateRecord(ctx context.Context, b *model.BackupRecord) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *backupRepo) UpdateRecord(ctx context.Context, b *model.BackupRecord) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *backupRepo) FindRecordByID(ctx context.Context, id uuid.UUID) (*model.BackupRecord, error) {
	var b model.BackupRecord
	err := r.db.WithContext(ctx).First(&b, id).Error
	return &b, err
}

func (r *backupRepo) ListRecords(ctx context.Context) ([]model.BackupRecord, error) {
	var records []model.BackupRecord
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error
	return records, err
}

func (r *backupRepo) FindPendingRetries(ctx context.Context, now time.Time, limit int) ([]model.BackupRecord, error) {
	var records []model.BackupRecord
	err := r.db.WithContext(ctx).
		Where("status = ? AND next_retry_at IS NOT NULL AND next_retry_at <= ?", model.BackupStatusLocal, now).
		Order("next_retry_at ASC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// Bulk replace: delete-then-insert inside the restore transaction. Order items
// go first so the FK to orders never dangles mid-restore.

func (r *backupRepo) ReplaceOrdersTx(tx *gorm.DB, orders []model.Order) error {
	if err := tx.Where("1 = 1").Delete(&model.OrderItem{}).Error; err != nil {
		return err
	}
	if err := tx.Where("1 = 1").Delete(&model.Order{}).Error; err != nil {
		return err
	}
	if len(orders) == 0 {
		return nil
	}
	return tx.Create(&orders).Error
}

func (r *backupRepo) ReplaceMenuItemsTx(tx *gorm.DB, items []model.MenuItem) error {
	if err := tx.Where("1 = 1").Delete(&model.MenuItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

func (r *backupRepo) ReplaceInventoryTx(tx *gorm.DB, items []model.InventoryItem) error {
	if err := tx.Where("1 = 1").Delete(&model.InventoryItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

func (r *backupRepo) ReplaceExpensesTx(tx *gorm.DB, expenses []model.Expense) error {
	if err := tx.Where("1 = 1").Delete(&model.Expense{}).Error; err != nil {
		return err
	}
	if len(expenses) == 0 {
		return nil
	}
	return tx.Create(&expenses).Error
}

func (r *backupRepo) ReplaceSettingsTx(tx *gorm.DB, s *model.Settings) error {
	if err := tx.Where("1 = 1").Delete(&model.Settings{}).Error; err != nil {
		return err
	}
	return tx.Create(s).Error
}

func (r *backupRepo) ReplaceProfileTx(tx *gorm.DB, p *model.BusinessProfile) error {
	if err := tx.Where("1 = 1").Delete(&model.BusinessProfile{}).Error; err != nil {
		return err
	}
	return tx.Create(p).Error
}
