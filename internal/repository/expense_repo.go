package repository

import (
	"context"

	"foodcart360/internal/dto"
	"foodcart360/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpenseRepository interface {
	Create(ctx context.Context, e *model.Expense) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Expense, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter dto.ExpenseFilter) ([]model.Expense, int64, error)
	ListByDate(ctx context.Context, date string) ([]model.Expense, error)
	ListByDateRange(ctx context.Context, start, end string) ([]model.Expense, error)
	ListAll(ctx context.Context) ([]model.Expense, error)
}

type expenseRepo struct{ db *gorm.DB }

func NewExpenseRepository(db *gorm.DB) ExpenseRepository { return &expenseRepo{db: db} }

func (r *expenseRepo) Create(ctx context.Context, e *model.Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *expenseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Expense, error) {
	var e model.Expense
	err := r.db.WithContext(ctx).First(&e, id).Error
	return &e, err
}

func (r *expenseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Expense{}, id).Error
}

func (r *expenseRepo) List(ctx context.Context, filter dto.ExpenseFilter) ([]model.Expense, int64, error) {
	var expenses []model.Expense
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Expense{})

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Date != "" {
		q = q.Where("business_date = ?", filter.Date)
	} else {
		q = q.Where("business_date = to_char(CURRENT_DATE, 'YYYY-MM-DD')")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&expenses).Error
	return expenses, total, err
}

func (r *expenseRepo) ListByDate(ctx context.Context, date string) ([]model.Expense, error) {
	var expenses []model.Expense
	err := r.db.WithContext(ctx).Where("business_date = ?", date).Order("created_at ASC").Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepo) ListByDateRange(ctx context.Context, start, end string) ([]model.Expense, error) {
	var expenses []model.Expense
	err := r.db.WithContext(ctx).
		Where("business_date BETWEEN ? AND ?", start, end).
		Order("created_at ASC").
		Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepo) ListAll(ctx context.Context) ([]model.Expense, error) {
	var expenses []model.Expense
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&expenses).Error
	return expenses, err
}
