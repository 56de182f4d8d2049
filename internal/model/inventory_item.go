package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItem is a raw-material stock entry (flour, oil, cups…).
// Stock is decimal because units may be fractional (kg, litres).
type InventoryItem struct {
	ID    uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name  string          `gorm:"not null;index"`
	Stock decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	Unit  string          `gorm:"not null;default:'unit'"`
	// MinStock is the low-stock alert threshold. An item is low when
	// Stock <= MinStock (boundary inclusive).
	MinStock  decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	CostPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLowStock reports whether the item is at or below its alert threshold.
func (i *InventoryItem) IsLowStock() bool {
	return i.Stock.LessThanOrEqual(i.MinStock)
}
