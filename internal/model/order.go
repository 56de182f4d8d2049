package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses. Transitions: pending → preparing → completed; any
// non-completed order may move to cancelled.
const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order types.
const (
	OrderTypeDineIn   = "dine_in"
	OrderTypeDelivery = "delivery"
	OrderTypeTakeaway = "takeaway"
)

// Payment methods.
const (
	PaymentCash = "cash"
	PaymentUPI  = "upi"
	PaymentCard = "card"
)

// Order is a sale transaction created at checkout.
// Total = Subtotal + TaxAmount, fixed at creation; the tax rate is a runtime
// config value and stored totals are never re-derived from it on read.
type Order struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// TokenNumber is the human-readable display number called out to the
	// customer, allocated from a Postgres sequence.
	TokenNumber   int    `gorm:"not null;uniqueIndex"`
	Status        string `gorm:"type:varchar(20);not null;default:'pending'"`
	OrderType     string `gorm:"type:varchar(20);not null;default:'takeaway'"`
	PaymentMethod string `gorm:"type:varchar(10);not null"`
	CustomerName  *string
	Note          *string
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// BusinessDate is the calendar day the order belongs to (YYYY-MM-DD),
	// fixed at checkout in the cart's local timezone.
	BusinessDate string `gorm:"type:varchar(10);not null;index"`
	// PrepMinutes is the estimated preparation time given to the customer.
	PrepMinutes *int
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []OrderItem `gorm:"foreignKey:OrderID"`
}

// OrderItem is one line of an order. Name and UnitPrice are snapshotted from
// the menu item at checkout so later menu edits don't rewrite history.
type OrderItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;not null"`
	Name       string          `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity   int             `gorm:"not null"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID"`
}
