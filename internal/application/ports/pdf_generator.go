package ports

import (
	"context"

	"github.com/jhoicas/bizos-api/internal/domain/entity"
)

// InvoicePDFGenerator genera la representación gráfica de una factura.
// client puede ser nil si la factura no está asociada a un cliente del portal.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, company *entity.Company, client *entity.Client) ([]byte, error)
}
