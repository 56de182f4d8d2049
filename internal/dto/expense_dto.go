package dto

import "github.com/shopspring/decimal"

// ExpenseFilter is bound from query string of GET /v1/expenses.
type ExpenseFilter struct {
	Date     string `form:"date"` // YYYY-MM-DD; empty = today
	Category string `form:"category"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CreateExpenseRequest struct {
	Category    string          `json:"category"    validate:"required,oneof='Raw Material' Wages Utilities Transport Miscellaneous"`
	Amount      decimal.Decimal `json:"amount"      validate:"required,gt=0"`
	Description *string         `json:"description" validate:"omitempty,max=500"`
	// Date defaults to today when empty.
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type ExpenseResponse struct {
	ID           string          `json:"id"`
	Category     string          `json:"category"`
	Amount       decimal.Decimal `json:"amount"`
	Description  *string         `json:"description,omitempty"`
	BusinessDate string          `json:"business_date"`
	CreatedAt    string          `json:"created_at"`
}

type ExpenseListResponse struct {
	Data  []ExpenseResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
