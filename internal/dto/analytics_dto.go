package dto

import "github.com/shopspring/decimal"

// ItemAggregate is one menu item's totals across the filtered orders.
type ItemAggregate struct {
	MenuItemID string          `json:"menu_item_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// DailySummaryResponse is the read-only aggregate for one calendar day.
// Never persisted — always recomputed from orders/expenses/inventory.
type DailySummaryResponse struct {
	Date              string                  `json:"date"`
	Revenue           decimal.Decimal         `json:"revenue"`
	ExpenseTotal      decimal.Decimal         `json:"expense_total"`
	Profit            decimal.Decimal         `json:"profit"` // may be negative
	OrderCount        int                     `json:"order_count"`
	AverageOrderValue decimal.Decimal         `json:"average_order_value"`
	TopItems          []ItemAggregate         `json:"top_items"`
	LowStock          []LowStockAlertResponse `json:"low_stock"`
	PaymentBreakdown  map[string]decimal.Decimal `json:"payment_breakdown"`
}

// PeakHourBucket is one hour of the day with its order count and revenue.
type PeakHourBucket struct {
	Hour       int             `json:"hour"` // 0-23, cart-local clock
	OrderCount int             `json:"order_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// RangeSummaryResponse aggregates a span of days for the analytics dashboard.
type RangeSummaryResponse struct {
	StartDate    string                 `json:"start_date"`
	EndDate      string                 `json:"end_date"`
	Revenue      decimal.Decimal        `json:"revenue"`
	ExpenseTotal decimal.Decimal        `json:"expense_total"`
	Profit       decimal.Decimal        `json:"profit"`
	OrderCount   int                    `json:"order_count"`
	Days         []DailySummaryResponse `json:"days"`
	PeakHours    []PeakHourBucket       `json:"peak_hours"`
}
