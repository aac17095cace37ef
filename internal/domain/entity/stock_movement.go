package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMovementReason motivo cuando el cliente no envía uno.
const DefaultMovementReason = "Manual Update"

// StockMovement registro inmutable de auditoría de un cambio de stock.
type StockMovement struct {
	ID           string
	CompanyID    string
	ProductID    string
	UserID       string // staff que hizo el cambio
	ChangeAmount decimal.Decimal // positivo o negativo
	Reason       string          // venta, reposición, daño, corrección
	CreatedAt    time.Time
}
