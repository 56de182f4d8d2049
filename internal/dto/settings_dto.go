package dto

import "github.com/shopspring/decimal"

type UpdateSettingsRequest struct {
	Currency       *string          `json:"currency"         validate:"omitempty,max=10"`
	TaxRatePct     *decimal.Decimal `json:"tax_rate_pct"     validate:"omitempty,min=0,max=100"`
	LowStockAlerts *bool            `json:"low_stock_alerts"`
}

type SettingsResponse struct {
	Currency       string          `json:"currency"`
	TaxRatePct     decimal.Decimal `json:"tax_rate_pct"`
	LowStockAlerts bool            `json:"low_stock_alerts"`
}

type UpdateProfileRequest struct {
	CartName  *string `json:"cart_name"  validate:"omitempty,max=120"`
	OwnerName *string `json:"owner_name" validate:"omitempty,max=120"`
	Phone     *string `json:"phone"      validate:"omitempty,max=20"`
	Address   *string `json:"address"    validate:"omitempty,max=300"`
	Email     *string `json:"email"      validate:"omitempty,email"`
}

type ProfileResponse struct {
	CartName  string  `json:"cart_name"`
	OwnerName string  `json:"owner_name"`
	Phone     string  `json:"phone"`
	Address   string  `json:"address"`
	Email     *string `json:"email,omitempty"`
}
