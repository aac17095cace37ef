package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto.
type CreateProductRequest struct {
	CategoryID    string          `json:"category_id" validate:"omitempty,uuid"`
	SKU           string          `json:"sku" validate:"max=100"`
	Name          string          `json:"name" validate:"required,max=255"`
	Description   string          `json:"description"`
	UnitPrice     decimal.Decimal `json:"unit_price" swaggertype:"string"`
	InitialStock  decimal.Decimal `json:"initial_stock" swaggertype:"string"`
	MinStockLevel decimal.Decimal `json:"min_stock_level" swaggertype:"string"`
}

// ProductResponse producto con stock actual.
type ProductResponse struct {
	ID            string          `json:"id"`
	CategoryID    string          `json:"category_id,omitempty"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Description   string          `json:"description,omitempty"`
	Stock         decimal.Decimal `json:"stock" swaggertype:"string"`
	Price         decimal.Decimal `json:"price" swaggertype:"string"`
	MinStockLevel decimal.Decimal `json:"min_stock_level" swaggertype:"string"`
	LowStock      bool            `json:"low_stock"`
}

// StockUpdateRequest delta de stock sobre un producto de la empresa.
type StockUpdateRequest struct {
	ProductID    string          `json:"product_id" validate:"required,uuid"`
	ChangeAmount decimal.Decimal `json:"change_amount" swaggertype:"string"`
	Reason       string          `json:"reason"`
}

// StockUpdateResponse salida de POST /inventory/stock/update.
type StockUpdateResponse struct {
	Message    string          `json:"message"`
	NewStock   decimal.Decimal `json:"new_stock" swaggertype:"string"`
	MovementID string          `json:"movement_id"`
}

// StockMovementResponse movimiento de auditoría.
type StockMovementResponse struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id,omitempty"`
	ChangeAmount decimal.Decimal `json:"change_amount" swaggertype:"string"`
	Reason       string          `json:"reason"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CreateCategoryRequest alta de categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
}

// CategoryResponse categoría.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
