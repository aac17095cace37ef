// Package analytics contiene los casos de uso de resumen para el dashboard.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/bizos-api/internal/application/dto"
	"github.com/jhoicas/bizos-api/internal/domain/authz"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
	"github.com/jhoicas/bizos-api/internal/domain/repository"
)

// StatusOnline valor fijo del campo status.
const StatusOnline = "online"

// DashboardUseCase contadores de la empresa del token.
//
// Solo lectura; cada contador se delega en su repositorio.
type DashboardUseCase struct {
	clients  repository.ClientRepository
	bookings repository.BookingRepository
	invoices repository.InvoiceRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repos repository.Repositories) *DashboardUseCase {
	return &DashboardUseCase{clients: repos.Clients, bookings: repos.Bookings, invoices: repos.Invoices}
}

// Stats tres conteos en paralelo:
//  1. clientes de la empresa
//  2. reservas en estado pending
//  3. facturas no pagadas ni canceladas
func (uc *DashboardUseCase) Stats(ctx context.Context, ac authz.Context) (*dto.DashboardStatsResponse, error) {
	companyID := ac.CompanyID()

	type countResult struct {
		n   int
		err error
	}
	clientsCh := make(chan countResult, 1)
	bookingsCh := make(chan countResult, 1)
	invoicesCh := make(chan countResult, 1)

	go func() {
		n, err := uc.clients.CountByCompany(ctx, companyID)
		clientsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.bookings.CountByStatus(ctx, companyID, entity.BookingPending)
		bookingsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.invoices.CountUnpaid(ctx, companyID)
		invoicesCh <- countResult{n, err}
	}()

	clients := <-clientsCh
	bookings := <-bookingsCh
	invoices := <-invoicesCh

	if clients.err != nil {
		return nil, fmt.Errorf("dashboard: clientes: %w", clients.err)
	}
	if bookings.err != nil {
		return nil, fmt.Errorf("dashboard: reservas pendientes: %w", bookings.err)
	}
	if invoices.err != nil {
		return nil, fmt.Errorf("dashboard: facturas sin pagar: %w", invoices.err)
	}

	return &dto.DashboardStatsResponse{
		Clients:         clients.n,
		PendingBookings: bookings.n,
		UnpaidInvoices:  invoices.n,
		Status:          StatusOnline,
	}, nil
}
