package repository

import (
	"context"

	"foodcart360/internal/dto"
	"foodcart360/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuRepository defines the data access contract for menu items.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type MenuRepository interface {
	Create(ctx context.Context, m *model.MenuItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error)
	List(ctx context.Context, filter dto.MenuFilter) ([]model.MenuItem, int64, error)
	Update(ctx context.Context, m *model.MenuItem) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error

	// Used inside checkout transactions — callers must pass the tx instance
	UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error
}

type menuRepo struct{ db *gorm.DB }

func NewMenuRepository(db *gorm.DB) MenuRepository { return &menuRepo{db: db} }

func (r *menuRepo) Create(ctx context.Context, m *model.MenuItem) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *menuRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error) {
	var m model.MenuItem
	err := r.db.WithContext(ctx).First(&m, id).Error
	return &m, err
}

func (r *menuRepo) List(ctx context.Context, filter dto.MenuFilter) ([]model.MenuItem, int64, error) {
	var items []model.MenuItem
	var total int64

	q := r.db.WithContext(ctx).Model(&model.MenuItem{})

	// Active filter: "false" = inactive, "all" = everything, default = active
	switch filter.Active {
	case "false":
		q = q.Where("active = false")
	case "all":
		// no filter
	default:
		q = q.Where("active = true")
	}

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("category ASC, name ASC").Limit(filter.Limit).Offset(offset).Find(&items).Error
	return items, total, err
}

func (r *menuRepo) Update(ctx context.Context, m *model.MenuItem) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *menuRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.MenuItem{}).Where("id = ?", id).Update("active", false).Error
}

func (r *menuRepo) Reactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.MenuItem{}).Where("id = ?", id).Update("active", true).Error
}

func (r *menuRepo) UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.MenuItem{}).Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}
