package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuItem is a sellable dish or drink. Active=false hides it from the POS
// without losing the sales history that references it.
type MenuItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string          `gorm:"not null;index"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Category    string          `gorm:"not null;index"`
	Description *string
	Stock       int  `gorm:"not null;default:0"`
	Active      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
