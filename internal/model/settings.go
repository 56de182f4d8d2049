package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Settings is a single-row table of cart-level preferences. The config env
// TAX_RATE_PCT seeds TaxRatePct on first boot; after that the stored value
// wins so owners can change it from the settings screen.
type Settings struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Currency   string          `gorm:"type:varchar(10);not null;default:'INR'"`
	TaxRatePct decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	// LowStockAlerts toggles the low-stock banner on the dashboard.
	LowStockAlerts bool `gorm:"not null;default:true"`
	UpdatedAt      time.Time
}

// BusinessProfile is the cart identity shown on receipts and reports.
// Single row, created on first run.
type BusinessProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CartName  string    `gorm:"not null;default:'FoodCart360'"`
	OwnerName string
	Phone     string
	Address   string
	Email     *string
	UpdatedAt time.Time
}

// TableName overrides GORM's default pluralization (settings → settings).
func (Settings) TableName() string { return "settings" }
