package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense categories.
const (
	ExpenseRawMaterial   = "Raw Material"
	ExpenseWages         = "Wages"
	ExpenseUtilities     = "Utilities"
	ExpenseTransport     = "Transport"
	ExpenseMiscellaneous = "Miscellaneous"
)

// Expense is a single outgoing cost entry. Deletable with confirmation on the
// client; orders by contrast are cancelled, not deleted.
type Expense struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Category    string          `gorm:"type:varchar(30);not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Description *string
	// BusinessDate is the calendar day the expense belongs to (YYYY-MM-DD).
	BusinessDate string `gorm:"type:varchar(10);not null;index"`
	CreatedAt    time.Time
}
