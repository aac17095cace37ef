package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Invoice.
const (
	InvoiceDraft     = "draft"
	InvoiceSent      = "sent"
	InvoicePaid      = "paid"
	InvoiceOverdue   = "overdue"
	InvoiceCancelled = "cancelled"
)

// ValidInvoiceStatus informa si s es un estado de factura conocido.
func ValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceOverdue, InvoiceCancelled:
		return true
	}
	return false
}

// Invoice cabecera de factura; es dueña de sus InvoiceItems (borrado en cascada).
type Invoice struct {
	ID            string
	CompanyID     string
	ClientID      string // vacío si no está asociada a un cliente del portal
	InvoiceNumber string
	Status        string
	DueDate       *time.Time
	TotalAmount   decimal.Decimal
	TaxAmount     decimal.Decimal
	Notes         string
	CreatedAt     time.Time
	Items         []InvoiceItem
}

// InvoiceItem línea de factura.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}

// Estados OCR de Receipt.
const (
	OCRPending    = "pending"
	OCRProcessing = "processing"
	OCRCompleted  = "completed"
	OCRFailed     = "failed"
)

// Receipt recibo escaneado con el estado de extracción OCR y el payload crudo.
type Receipt struct {
	ID          string
	CompanyID   string
	UserID      string
	FilePath    string
	VendorName  string
	Date        *time.Time
	TotalAmount *decimal.Decimal
	Currency    string
	OCRStatus   string
	RawOCRData  json.RawMessage
	CreatedAt   time.Time
}
