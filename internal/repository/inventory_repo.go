package repository

import (
	"context"

	"foodcart360/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InventoryRepository interface {
	Create(ctx context.Context, i *model.InventoryItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
	Update(ctx context.Context, i *model.InventoryItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]model.InventoryItem, error)
	// ListLowStock returns items with stock <= min_stock (boundary inclusive).
	ListLowStock(ctx context.Context) ([]model.InventoryItem, error)
	AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryRepository(db *gorm.DB) InventoryRepository { return &inventoryRepo{db: db} }

func (r *inventoryRepo) Create(ctx context.Context, i *model.InventoryItem) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *inventoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	var i model.InventoryItem
	err := r.db.WithContext(ctx).First(&i, id).Error
	return &i, err
}

func (r *inventoryRepo) Update(ctx context.Context, i *model.InventoryItem) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *inventoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.InventoryItem{}, id).Error
}

func (r *inventoryRepo) List(ctx context.Context) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.WithContext(ctx).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *inventoryRepo) ListLowStock(ctx context.Context) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.WithContext(ctx).
		Where("stock <= min_stock").
		Order("stock - min_stock ASC").
		Find(&items).Error
	return items, err
}

func (r *inventoryRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.InventoryItem{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}
