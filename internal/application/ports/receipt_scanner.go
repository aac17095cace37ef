package ports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptFields campos extraídos de la imagen de un recibo. Los opcionales quedan nil
// cuando el extractor no los encuentra.
type ReceiptFields struct {
	VendorName  string
	Date        *time.Time
	TotalAmount *decimal.Decimal
	Currency    string
	Raw         json.RawMessage // payload completo del extractor, se persiste tal cual
}

// ReceiptScanner puerto de salida hacia el servicio OCR/IA.
// Cualquier adaptador (Anthropic, mock, OCR local) debe implementar esta interfaz.
// El contexto debe llevar un timeout: la llamada es externa y puede demorar.
type ReceiptScanner interface {
	ScanReceipt(ctx context.Context, image []byte, mimeType string) (*ReceiptFields, error)
}
