package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItemRequest línea de factura.
type InvoiceItemRequest struct {
	Description string          `json:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" swaggertype:"string"`
	UnitPrice   decimal.Decimal `json:"unit_price" swaggertype:"string"`
}

// CreateInvoiceRequest alta de factura. El número lo asigna el sistema.
type CreateInvoiceRequest struct {
	ClientID string               `json:"client_id" validate:"omitempty,uuid"`
	DueDate  *time.Time           `json:"due_date"`
	TaxRate  decimal.Decimal      `json:"tax_rate" swaggertype:"string"` // porcentaje, p.ej. "19"
	Notes    string               `json:"notes"`
	Items    []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

// InvoiceItemResponse línea de factura.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity" swaggertype:"string"`
	UnitPrice   decimal.Decimal `json:"unit_price" swaggertype:"string"`
	TotalPrice  decimal.Decimal `json:"total_price" swaggertype:"string"`
}

// InvoiceResponse factura. Items solo se incluye en el detalle.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	InvoiceNumber string                `json:"invoice_number"`
	ClientID      string                `json:"client_id,omitempty"`
	Status        string                `json:"status"`
	DueDate       *time.Time            `json:"due_date,omitempty"`
	TotalAmount   decimal.Decimal       `json:"total_amount" swaggertype:"string"`
	TaxAmount     decimal.Decimal       `json:"tax_amount" swaggertype:"string"`
	Notes         string                `json:"notes,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	Items         []InvoiceItemResponse `json:"items,omitempty"`
}

// ReceiptResponse recibo escaneado.
type ReceiptResponse struct {
	ID          string           `json:"id"`
	VendorName  string           `json:"vendor_name"`
	Date        *time.Time       `json:"date,omitempty"`
	TotalAmount *decimal.Decimal `json:"total_amount,omitempty" swaggertype:"string"`
	Currency    string           `json:"currency"`
	OCRStatus   string           `json:"ocr_status"`
	CreatedAt   time.Time        `json:"created_at"`
}

// ScanReceiptResponse salida de POST /invoicing/receipts/scan.
type ScanReceiptResponse struct {
	Message string          `json:"message"`
	Receipt ReceiptResponse `json:"receipt"`
	Data    json.RawMessage `json:"data,omitempty" swaggertype:"object"`
}
