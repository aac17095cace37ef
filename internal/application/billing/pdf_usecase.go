package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/bizos-api/internal/application/ports"
	"github.com/jhoicas/bizos-api/internal/domain"
	"github.com/jhoicas/bizos-api/internal/domain/authz"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
	"github.com/jhoicas/bizos-api/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) de una factura.
type PDFUseCase struct {
	repos     repository.Repositories
	generator ports.InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(repos repository.Repositories, generator ports.InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{repos: repos, generator: generator}
}

// DownloadInvoicePDF carga factura, empresa y cliente (si lo hay) y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe o es de otra empresa.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, ac authz.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	if !isUUID(invoiceID) {
		return nil, "", domain.ErrNotFound
	}
	inv, err := uc.repos.Invoices.GetByCompanyAndID(ctx, ac.CompanyID(), invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}

	company, err := uc.repos.Companies.GetByID(ctx, ac.CompanyID())
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}

	var client *entity.Client
	if inv.ClientID != "" {
		client, err = uc.repos.Clients.GetByCompanyAndID(ctx, ac.CompanyID(), inv.ClientID)
		if err != nil {
			return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
		}
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, inv, company, client)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("invoice_%s.pdf", inv.InvoiceNumber), nil
}
