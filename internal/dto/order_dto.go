package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// OrderFilter is bound from query string of GET /v1/orders.
type OrderFilter struct {
	Date   string `form:"date"`                 // YYYY-MM-DD; empty = today
	Status string `form:"status,default=all"`   // pending | preparing | completed | cancelled | all
	Type   string `form:"type"`                 // dine_in | delivery | takeaway; empty = all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OrderItemRequest struct {
	MenuItemID string `json:"menu_item_id" validate:"required,uuid"`
	Quantity   int    `json:"quantity"     validate:"required,min=1"`
}

type CreateOrderRequest struct {
	Items         []OrderItemRequest `json:"items"          validate:"required,min=1,dive"`
	PaymentMethod string             `json:"payment_method" validate:"required,oneof=cash upi card"`
	OrderType     string             `json:"order_type"     validate:"required,oneof=dine_in delivery takeaway"`
	CustomerName  *string            `json:"customer_name"  validate:"omitempty,max=120"`
	Note          *string            `json:"note"           validate:"omitempty,max=500"`
	PrepMinutes   *int               `json:"prep_minutes"   validate:"omitempty,min=0,max=240"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending preparing completed cancelled"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrderItemResponse struct {
	MenuItemID string          `json:"menu_item_id"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

type OrderResponse struct {
	ID            string              `json:"id"`
	TokenNumber   int                 `json:"token_number"`
	Status        string              `json:"status"`
	OrderType     string              `json:"order_type"`
	PaymentMethod string              `json:"payment_method"`
	CustomerName  *string             `json:"customer_name,omitempty"`
	Note          *string             `json:"note,omitempty"`
	Items         []OrderItemResponse `json:"items"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	TaxAmount     decimal.Decimal     `json:"tax_amount"`
	Total         decimal.Decimal     `json:"total"`
	BusinessDate  string              `json:"business_date"`
	PrepMinutes   *int                `json:"prep_minutes,omitempty"`
	CreatedAt     string              `json:"created_at"`
}
