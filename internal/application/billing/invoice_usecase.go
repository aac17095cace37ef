package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bizos-api/internal/application/dto"
	"github.com/jhoicas/bizos-api/internal/application/ports"
	"github.com/jhoicas/bizos-api/internal/domain"
	"github.com/jhoicas/bizos-api/internal/domain/authz"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
	"github.com/jhoicas/bizos-api/internal/domain/repository"
	"github.com/jhoicas/bizos-api/pkg/logger"
)

// numberAttempts reintentos ante choque del consecutivo con otra transacción concurrente.
const numberAttempts = 3

var hundred = decimal.NewFromInt(100)

// InvoiceUseCase facturas de la empresa: alta con líneas, consulta, estado y borrado.
type InvoiceUseCase struct {
	repos     repository.Repositories
	tx        repository.TxRunner
	publisher ports.EventPublisher
	log       *logger.Logger
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(repos repository.Repositories, tx repository.TxRunner, publisher ports.EventPublisher, log *logger.Logger) *InvoiceUseCase {
	return &InvoiceUseCase{repos: repos, tx: tx, publisher: publisher, log: log}
}

// Create calcula totales, asigna el siguiente consecutivo INV-000001 de la empresa y guarda
// cabecera y líneas en una sola transacción.
func (uc *InvoiceUseCase) Create(ctx context.Context, ac authz.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.Invalid("la factura necesita al menos una línea")
	}
	if in.TaxRate.IsNegative() || in.TaxRate.GreaterThan(hundred) {
		return nil, domain.Invalid("tax_rate debe estar entre 0 y 100")
	}
	items := make([]entity.InvoiceItem, 0, len(in.Items))
	subtotal := decimal.Zero
	for i, it := range in.Items {
		desc := strings.TrimSpace(it.Description)
		if desc == "" {
			return nil, domain.Invalid("items[%d].description es obligatorio", i)
		}
		if !it.Quantity.IsPositive() {
			return nil, domain.Invalid("items[%d].quantity debe ser mayor que cero", i)
		}
		if it.UnitPrice.IsNegative() {
			return nil, domain.Invalid("items[%d].unit_price no puede ser negativo", i)
		}
		line := it.Quantity.Mul(it.UnitPrice).Round(2)
		subtotal = subtotal.Add(line)
		items = append(items, entity.InvoiceItem{
			ID:          uuid.New().String(),
			Description: desc,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  line,
		})
	}
	tax := subtotal.Mul(in.TaxRate).Div(hundred).Round(2)

	if in.ClientID != "" {
		if !isUUID(in.ClientID) {
			return nil, fmt.Errorf("%w: cliente", domain.ErrNotFound)
		}
		client, err := uc.repos.Clients.GetByCompanyAndID(ctx, ac.CompanyID(), in.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, fmt.Errorf("%w: cliente", domain.ErrNotFound)
		}
	}

	inv := &entity.Invoice{
		ID:          uuid.New().String(),
		CompanyID:   ac.CompanyID(),
		ClientID:    in.ClientID,
		Status:      entity.InvoiceDraft,
		DueDate:     in.DueDate,
		TotalAmount: subtotal.Add(tax),
		TaxAmount:   tax,
		Notes:       in.Notes,
		CreatedAt:   time.Now().UTC(),
		Items:       items,
	}

	var err error
	for attempt := 0; attempt < numberAttempts; attempt++ {
		err = uc.tx.Run(ctx, func(r repository.Repositories) error {
			n, err := r.Invoices.LastSequence(ctx, inv.CompanyID)
			if err != nil {
				return err
			}
			inv.InvoiceNumber = fmt.Sprintf("INV-%06d", n+1)
			return r.Invoices.Create(ctx, inv)
		})
		if !errors.Is(err, domain.ErrDuplicate) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	ports.Notify(ctx, uc.publisher, uc.log, ports.Event{
		Type:      ports.EventInvoiceCreated,
		CompanyID: inv.CompanyID,
		EntityID:  inv.ID,
		Data:      map[string]any{"invoice_number": inv.InvoiceNumber, "total_amount": inv.TotalAmount.String()},
	})
	return ToInvoiceResponse(inv), nil
}

// Get factura con líneas. Un id de otra empresa se ve como inexistente.
func (uc *InvoiceUseCase) Get(ctx context.Context, ac authz.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.load(ctx, ac, id)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

// List facturas de la empresa (sin líneas).
func (uc *InvoiceUseCase) List(ctx context.Context, ac authz.Context, page dto.PageRequest) ([]dto.InvoiceResponse, error) {
	page.DefaultPage()
	list, err := uc.repos.Invoices.ListByCompany(ctx, ac.CompanyID(), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, *ToInvoiceResponse(inv))
	}
	return out, nil
}

// UpdateStatus cambia el estado. Una factura pagada o anulada ya no cambia.
func (uc *InvoiceUseCase) UpdateStatus(ctx context.Context, ac authz.Context, id, status string) (*dto.InvoiceResponse, error) {
	if !entity.ValidInvoiceStatus(status) {
		return nil, domain.Invalid("status inválido %q", status)
	}
	inv, err := uc.load(ctx, ac, id)
	if err != nil {
		return nil, err
	}
	if inv.Status == entity.InvoicePaid || inv.Status == entity.InvoiceCancelled {
		if inv.Status != status {
			return nil, fmt.Errorf("%w: factura en estado %s", domain.ErrConflict, inv.Status)
		}
		return ToInvoiceResponse(inv), nil
	}
	if err := uc.repos.Invoices.UpdateStatus(ctx, ac.CompanyID(), inv.ID, inv.Status, status); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: la factura cambió de estado", domain.ErrConflict)
		}
		return nil, err
	}
	inv.Status = status
	return ToInvoiceResponse(inv), nil
}

// Delete elimina la factura y sus líneas. Solo borradores.
func (uc *InvoiceUseCase) Delete(ctx context.Context, ac authz.Context, id string) error {
	inv, err := uc.load(ctx, ac, id)
	if err != nil {
		return err
	}
	if inv.Status != entity.InvoiceDraft {
		return fmt.Errorf("%w: solo se eliminan borradores", domain.ErrConflict)
	}
	if err := uc.repos.Invoices.Delete(ctx, ac.CompanyID(), inv.ID, entity.InvoiceDraft); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return fmt.Errorf("%w: solo se eliminan borradores", domain.ErrConflict)
		}
		return err
	}
	return nil
}

func (uc *InvoiceUseCase) load(ctx context.Context, ac authz.Context, id string) (*entity.Invoice, error) {
	if !isUUID(id) {
		return nil, domain.ErrNotFound
	}
	inv, err := uc.repos.Invoices.GetByCompanyAndID(ctx, ac.CompanyID(), id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// ToInvoiceResponse convierte la entidad; las líneas solo si vienen cargadas.
func ToInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	out := &dto.InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		ClientID:      inv.ClientID,
		Status:        inv.Status,
		DueDate:       inv.DueDate,
		TotalAmount:   inv.TotalAmount,
		TaxAmount:     inv.TaxAmount,
		Notes:         inv.Notes,
		CreatedAt:     inv.CreatedAt,
	}
	for _, it := range inv.Items {
		out.Items = append(out.Items, dto.InvoiceItemResponse{
			ID: it.ID, Description: it.Description, Quantity: it.Quantity,
			UnitPrice: it.UnitPrice, TotalPrice: it.TotalPrice,
		})
	}
	return out
}
