package repository

import (
	"context"

	"foodcart360/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceRepository interface {
	Create(ctx context.Context, a *model.AttendanceRecord) error
	Update(ctx context.Context, a *model.AttendanceRecord) error
	FindByUserAndDate(ctx context.Context, userID uuid.UUID, date string) (*model.AttendanceRecord, error)
	ListByDate(ctx context.Context, date string) ([]model.AttendanceRecord, error)
}

type attendanceRepo struct{ db *gorm.DB }

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository { return &attendanceRepo{db: db} }

func (r *attendanceRepo) Create(ctx context.Context, a *model.AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *attendanceRepo) Update(ctx context.Context, a *model.AttendanceRecord) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *attendanceRepo) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date string) (*model.AttendanceRecord, error) {
	var a model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND business_date = ?", userID, date).
		First(&a).Error
	return &a, err
}

func (r *attendanceRepo) ListByDate(ctx context.Context, date string) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := r.db.WithContext(ctx).Preload("User").
		Where("business_date = ?", date).
		Order("check_in ASC").
		Find(&records).Error
	return records, err
}
