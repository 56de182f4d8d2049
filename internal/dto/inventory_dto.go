package dto

import "github.com/shopspring/decimal"

type CreateInventoryItemRequest struct {
	Name      string          `json:"name"       validate:"required,max=120"`
	Stock     decimal.Decimal `json:"stock"      validate:"min=0"`
	Unit      string          `json:"unit"       validate:"required,max=20"`
	MinStock  decimal.Decimal `json:"min_stock"  validate:"min=0"`
	CostPrice decimal.Decimal `json:"cost_price" validate:"min=0"`
}

// UpdateInventoryItemRequest mirrors the edit dialog: any present field is
// applied, absent fields keep their current value.
type UpdateInventoryItemRequest struct {
	Name      *string          `json:"name"       validate:"omitempty,max=120"`
	Stock     *decimal.Decimal `json:"stock"      validate:"omitempty,min=0"`
	Unit      *string          `json:"unit"       validate:"omitempty,max=20"`
	MinStock  *decimal.Decimal `json:"min_stock"  validate:"omitempty,min=0"`
	CostPrice *decimal.Decimal `json:"cost_price" validate:"omitempty,min=0"`
}

type AdjustStockRequest struct {
	// Delta is the signed quantity to add (restock) or remove (usage).
	Delta  decimal.Decimal `json:"delta"  validate:"required"`
	Reason string          `json:"reason" validate:"omitempty,max=200"`
}

type InventoryItemResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Stock     decimal.Decimal `json:"stock"`
	Unit      string          `json:"unit"`
	MinStock  decimal.Decimal `json:"min_stock"`
	CostPrice decimal.Decimal `json:"cost_price"`
	LowStock  bool            `json:"low_stock"`
	CreatedAt string          `json:"created_at"`
}

// LowStockAlertResponse is one row of GET /v1/inventory/alerts, ordered by
// how far below threshold the item is.
type LowStockAlertResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Stock    decimal.Decimal `json:"stock"`
	MinStock decimal.Decimal `json:"min_stock"`
	Unit     string          `json:"unit"`
	Deficit  decimal.Decimal `json:"deficit"` // MinStock - Stock, >= 0
}
