package billing_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bizos-api/internal/application/billing"
	"github.com/jhoicas/bizos-api/internal/application/dto"
	"github.com/jhoicas/bizos-api/internal/domain"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
	"github.com/jhoicas/bizos-api/internal/domain/repository"
	"github.com/jhoicas/bizos-api/pkg/logger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func invoiceRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		TaxRate: d("19"),
		Items: []dto.InvoiceItemRequest{
			{Description: "Masaje", Quantity: d("2"), UnitPrice: d("45.555")},
			{Description: "Aceite", Quantity: d("1"), UnitPrice: d("10")},
		},
	}
}

func TestInvoice_TotalesYConsecutivo(t *testing.T) {
	f := newFixture(t)
	uc := billing.NewInvoiceUseCase(f.repos, f.store, f.events, logger.Nop())
	ctx := context.Background()

	inv, err := uc.Create(ctx, f.acme, invoiceRequest())
	require.NoError(t, err)
	assert.Equal(t, "INV-000001", inv.InvoiceNumber)
	assert.Equal(t, entity.InvoiceDraft, inv.Status)
	require.Len(t, inv.Items, 2)
	// 2 × 45.555 = 91.11; + 10 = 101.11; IVA 19% = 19.2109 → 19.21
	assert.True(t, inv.Items[0].TotalPrice.Equal(d("91.11")), inv.Items[0].TotalPrice.String())
	assert.True(t, inv.TaxAmount.Equal(d("19.21")), inv.TaxAmount.String())
	assert.True(t, inv.TotalAmount.Equal(d("120.32")), inv.TotalAmount.String())

	second, err := uc.Create(ctx, f.acme, invoiceRequest())
	require.NoError(t, err)
	assert.Equal(t, "INV-000002", second.InvoiceNumber)

	other, err := uc.Create(ctx, f.globex, invoiceRequest())
	require.NoError(t, err)
	assert.Equal(t, "INV-000001", other.InvoiceNumber, "el consecutivo es por empresa")

	assert.Equal(t, 3, f.events.count())
}

func TestInvoice_Validaciones(t *testing.T) {
	f := newFixture(t)
	uc := billing.NewInvoiceUseCase(f.repos, f.store, f.events, logger.Nop())
	ctx := context.Background()

	_, err := uc.Create(ctx, f.acme, dto.CreateInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	req := invoiceRequest()
	req.TaxRate = d("101")
	_, err = uc.Create(ctx, f.acme, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = invoiceRequest()
	req.Items[0].Quantity = decimal.Zero
	_, err = uc.Create(ctx, f.acme, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = invoiceRequest()
	req.ClientID = f.client(t, f.globex.CompanyID(), "ajeno@x.com")
	_, err = uc.Create(ctx, f.acme, req)
	assert.ErrorIs(t, err, domain.ErrNotFound, "cliente de otra empresa")

	assert.Zero(t, f.events.count())
}

func TestInvoice_EstadoYBorrado(t *testing.T) {
	f := newFixture(t)
	uc := billing.NewInvoiceUseCase(f.repos, f.store, f.events, logger.Nop())
	ctx := context.Background()
	inv, err := uc.Create(ctx, f.acme, invoiceRequest())
	require.NoError(t, err)

	_, err = uc.Get(ctx, f.globex, inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Get(ctx, f.acme, "no-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, f.globex, inv.ID), domain.ErrNotFound)

	_, err = uc.UpdateStatus(ctx, f.acme, inv.ID, "pagadita")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.UpdateStatus(ctx, f.acme, inv.ID, entity.InvoicePaid)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoicePaid, got.Status)

	_, err = uc.UpdateStatus(ctx, f.acme, inv.ID, entity.InvoiceDraft)
	assert.ErrorIs(t, err, domain.ErrConflict, "pagada es terminal")
	assert.ErrorIs(t, uc.Delete(ctx, f.acme, inv.ID), domain.ErrConflict)

	draft, err := uc.Create(ctx, f.acme, invoiceRequest())
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, f.acme, draft.ID))
	_, err = uc.Get(ctx, f.acme, draft.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	next, err := uc.Create(ctx, f.acme, invoiceRequest())
	require.NoError(t, err)
	assert.Equal(t, "INV-000002", next.InvoiceNumber, "se continúa desde el mayor número vigente")

	list, err := uc.List(ctx, f.acme, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Empty(t, list[0].Items)
}

func TestInvoice_ConsecutivoConcurrente(t *testing.T) {
	f := newFixture(t)
	uc := billing.NewInvoiceUseCase(f.repos, f.store, f.events, logger.Nop())
	ctx := context.Background()

	const n = 20
	numbers := make([]string, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			inv, err := uc.Create(ctx, f.acme, invoiceRequest())
			if assert.NoError(t, err) {
				numbers[i] = inv.InvoiceNumber
			}
		}(i)
	}
	wg.Wait()

	sort.Strings(numbers)
	for i, num := range numbers {
		assert.Equal(t, fmt.Sprintf("INV-%06d", i+1), num)
	}
}

// paidMeanwhile marca la factura como pagada justo después de cada lectura,
// como otra petición que confirma el pago entre la lectura y la escritura.
type paidMeanwhile struct {
	repository.InvoiceRepository
}

func (r paidMeanwhile) GetByCompanyAndID(ctx context.Context, companyID, id string) (*entity.Invoice, error) {
	inv, err := r.InvoiceRepository.GetByCompanyAndID(ctx, companyID, id)
	if err != nil || inv == nil {
		return inv, err
	}
	if err := r.InvoiceRepository.UpdateStatus(ctx, companyID, id, inv.Status, entity.InvoicePaid); err != nil {
		return nil, err
	}
	return inv, nil
}

func TestInvoice_PagoConcurrenteNoSeSobrescribe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := billing.NewInvoiceUseCase(f.repos, f.store, f.events, logger.Nop()).Create(ctx, f.acme, invoiceRequest())
	require.NoError(t, err)
	other, err := billing.NewInvoiceUseCase(f.repos, f.store, f.events, logger.Nop()).Create(ctx, f.acme, invoiceRequest())
	require.NoError(t, err)

	repos := f.repos
	repos.Invoices = paidMeanwhile{f.repos.Invoices}
	uc := billing.NewInvoiceUseCase(repos, f.store, f.events, logger.Nop())

	_, err = uc.UpdateStatus(ctx, f.acme, created.ID, entity.InvoiceCancelled)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorIs(t, uc.Delete(ctx, f.acme, other.ID), domain.ErrConflict)

	for _, id := range []string{created.ID, other.ID} {
		inv, err := f.repos.Invoices.GetByCompanyAndID(ctx, f.acme.CompanyID(), id)
		require.NoError(t, err)
		require.NotNil(t, inv, "la factura pagada no se borra")
		assert.Equal(t, entity.InvoicePaid, inv.Status)
	}
}
