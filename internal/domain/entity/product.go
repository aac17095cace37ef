package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// CurrentStock solo cambia junto a un StockMovement; InitialStock es el valor de alta.
type Product struct {
	ID            string
	CompanyID     string
	CategoryID    string // vacío si no tiene categoría
	SKU           string // único por empresa (opcional)
	Name          string
	Description   string
	UnitPrice     decimal.Decimal
	InitialStock  decimal.Decimal
	CurrentStock  decimal.Decimal
	MinStockLevel decimal.Decimal
	IsActive      bool
	CreatedAt     time.Time
}

// BelowMinimum informa si el stock actual está por debajo del mínimo configurado.
func (p *Product) BelowMinimum() bool {
	return p.MinStockLevel.IsPositive() && p.CurrentStock.LessThan(p.MinStockLevel)
}
