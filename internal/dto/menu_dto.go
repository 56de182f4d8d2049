package dto

import "github.com/shopspring/decimal"

// MenuFilter is bound from query string of GET /v1/menu.
type MenuFilter struct {
	Category string `form:"category"`
	// Active filter: "false" = inactive, "all" = everything, default = active only
	Active string `form:"active"`
	Name   string `form:"name"`
	Page   int    `form:"page,default=1"    validate:"min=1"`
	Limit  int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type CreateMenuItemRequest struct {
	Name        string          `json:"name"        validate:"required,max=120"`
	Price       decimal.Decimal `json:"price"       validate:"required,gt=0"`
	Category    string          `json:"category"    validate:"required,max=60"`
	Description *string         `json:"description" validate:"omitempty,max=500"`
	Stock       int             `json:"stock"       validate:"min=0"`
}

type UpdateMenuItemRequest struct {
	Name        *string          `json:"name"        validate:"omitempty,max=120"`
	Price       *decimal.Decimal `json:"price"       validate:"omitempty,gt=0"`
	Category    *string          `json:"category"    validate:"omitempty,max=60"`
	Description *string          `json:"description" validate:"omitempty,max=500"`
	Stock       *int             `json:"stock"       validate:"omitempty,min=0"`
}

type MenuItemResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Description *string         `json:"description,omitempty"`
	Stock       int             `json:"stock"`
	Active      bool            `json:"active"`
	CreatedAt   string          `json:"created_at"`
}

type MenuListResponse struct {
	Data  []MenuItemResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
