package repository

import (
	"context"
	"errors"

	"foodcart360/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SettingsRepository manages the three single-row tables: settings, business
// profile, and subscription state. Get* creates the row on first access so
// callers never see gorm.ErrRecordNotFound.
type SettingsRepository interface {
	GetSettings(ctx context.Context) (*model.Settings, error)
	SaveSettings(ctx context.Context, s *model.Settings) error
	GetProfile(ctx context.Context) (*model.BusinessProfile, error)
	SaveProfile(ctx context.Context, p *model.BusinessProfile) error
	GetSubscription(ctx context.Context) (*model.Subscription, error)
	SaveSubscription(ctx context.Context, s *model.Subscription) error
}

type settingsRepo struct {
	db *gorm.DB
	// defaultTaxRate seeds TaxRatePct on the first-boot row (TAX_RATE_PCT
	// env). Once the row exists the stored value wins.
	defaultTaxRate decimal.Decimal
}

func NewSettingsRepository(db *gorm.DB, defaultTaxRate decimal.Decimal) SettingsRepository {
	return &settingsRepo{db: db, defaultTaxRate: defaultTaxRate}
}

func (r *settingsRepo) GetSettings(ctx context.Context) (*model.Settings, error) {
	var s model.Settings
	err := r.db.WithContext(ctx).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s = model.Settings{Currency: "INR", TaxRatePct: r.defaultTaxRate, LowStockAlerts: true}
		if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
			return nil, err
		}
		return &s, nil
	}
	return &s, err
}

func (r *settingsRepo) SaveSettings(ctx context.Context, s *model.Settings) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *settingsRepo) GetProfile(ctx context.Context) (*model.BusinessProfile, error) {
	var p model.BusinessProfile
	err := r.db.WithContext(ctx).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = model.BusinessProfile{CartName: "FoodCart360"}
		if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
			return nil, err
		}
		return &p, nil
	}
	return &p, err
}

func (r *settingsRepo) SaveProfile(ctx context.Context, p *model.BusinessProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *settingsRepo) GetSubscription(ctx context.Context) (*model.Subscription, error) {
	var s model.Subscription
	err := r.db.WithContext(ctx).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s = model.Subscription{}
		if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
			return nil, err
		}
		return &s, nil
	}
	return &s, err
}

func (r *settingsRepo) SaveSubscription(ctx context.Context, s *model.Subscription) error {
	return r.db.WithContext(ctx).Save(s).Error
}
