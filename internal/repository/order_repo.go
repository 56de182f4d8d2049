package repository

import (
	"context"

	"foodcart360/internal/dto"
	"foodcart360/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, o *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	NextTokenNumber(ctx context.Context, tx *gorm.DB) (int, error)
	List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error)
	// ListByDate returns every order of one business date, unpaginated — the
	// analytics service folds the whole day in memory.
	ListByDate(ctx context.Context, date string) ([]model.Order, error)
	ListByDateRange(ctx context.Context, start, end string) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) DB() *gorm.DB { return r.db }

func (r *orderRepo) Create(ctx context.Context, tx *gorm.DB, o *model.Order) error {
	return tx.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, id).Error
	return &o, err
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).Update("status", status).Error
}

func (r *orderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Items").Delete(&model.Order{ID: id}).Error
}

func (r *orderRepo) NextTokenNumber(ctx context.Context, tx *gorm.DB) (int, error) {
	// Postgres sequence keeps token numbers gapless enough and race-free
	var num int
	err := tx.WithContext(ctx).Raw("SELECT nextval('orders_token_number_seq')").Scan(&num).Error
	return num, err
}

func (r *orderRepo) List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Order{})

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		q = q.Where("order_type = ?", filter.Type)
	}
	if filter.Date != "" {
		q = q.Where("business_date = ?", filter.Date)
	} else {
		// Default: today
		q = q.Where("business_date = to_char(CURRENT_DATE, 'YYYY-MM-DD')")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepo) ListByDate(ctx context.Context, date string) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("business_date = ?", date).
		Order("created_at ASC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) ListByDateRange(ctx context.Context, start, end string) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("business_date BETWEEN ? AND ?", start, end).
		Order("created_at ASC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) ListAll(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).Preload("Items").Order("created_at ASC").Find(&orders).Error
	return orders, err
}
