package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bizos-api/internal/application/dto"
	"github.com/jhoicas/bizos-api/internal/application/inventory"
	"github.com/jhoicas/bizos-api/internal/application/ports"
	"github.com/jhoicas/bizos-api/internal/domain"
	"github.com/jhoicas/bizos-api/internal/domain/authz"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
	"github.com/jhoicas/bizos-api/internal/domain/repository"
	"github.com/jhoicas/bizos-api/internal/infrastructure/memory"
	"github.com/jhoicas/bizos-api/pkg/logger"
)

const (
	companyA = "6f1c2b9e-0000-4000-8000-00000000000a"
	companyB = "6f1c2b9e-0000-4000-8000-00000000000b"
)

type recorder struct {
	mu     sync.Mutex
	events []ports.Event
}

func (r *recorder) Publish(_ context.Context, ev ports.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func setup(t *testing.T) (*inventory.UseCase, repository.Repositories, *recorder) {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repositories()
	now := time.Now().UTC()
	for _, id := range []string{companyA, companyB} {
		require.NoError(t, repos.Companies.Create(context.Background(), &entity.Company{
			ID: id, Name: id, Slug: id, Status: entity.StatusActive,
			Modules: entity.DefaultModules(), CreatedAt: now, UpdatedAt: now,
		}))
	}
	rec := &recorder{}
	return inventory.NewUseCase(repos, store, rec, logger.Nop()), repos, rec
}

func staff(companyID string) authz.Context {
	return authz.NewContext("6f1c2b9e-0000-4000-8000-0000000000f1", authz.KindStaff, companyID, entity.RoleOwner)
}

func product(t *testing.T, uc *inventory.UseCase, companyID, sku string, stock int64) *dto.ProductResponse {
	t.Helper()
	p, err := uc.CreateProduct(context.Background(), staff(companyID), dto.CreateProductRequest{
		SKU: sku, Name: "Aceite " + sku, UnitPrice: decimal.NewFromFloat(12.5),
		InitialStock: decimal.NewFromInt(stock), MinStockLevel: decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	return p
}

func TestCreateProduct_StockInicialYSKU(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()

	p := product(t, uc, companyA, "OIL-1", 10)
	assert.True(t, p.Stock.Equal(decimal.NewFromInt(10)))
	assert.False(t, p.LowStock)

	_, err := uc.CreateProduct(ctx, staff(companyA), dto.CreateProductRequest{SKU: "OIL-1", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// el SKU es único por empresa, no global
	_, err = uc.CreateProduct(ctx, staff(companyB), dto.CreateProductRequest{SKU: "OIL-1", Name: "Otro"})
	assert.NoError(t, err)

	_, err = uc.CreateProduct(ctx, staff(companyA), dto.CreateProductRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateProduct(ctx, staff(companyA), dto.CreateProductRequest{Name: "x", UnitPrice: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateProduct_CategoriaDeOtraEmpresa(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()

	cat, err := uc.CreateCategory(ctx, staff(companyB), dto.CreateCategoryRequest{Name: "Aceites"})
	require.NoError(t, err)

	_, err = uc.CreateProduct(ctx, staff(companyA), dto.CreateProductRequest{Name: "x", CategoryID: cat.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.CreateProduct(ctx, staff(companyB), dto.CreateProductRequest{Name: "x", CategoryID: cat.ID})
	assert.NoError(t, err)

	cats, err := uc.ListCategories(ctx, staff(companyA))
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestUpdateStock_RegistraMovimiento(t *testing.T) {
	uc, _, rec := setup(t)
	ctx := context.Background()
	p := product(t, uc, companyA, "OIL-1", 10)

	res, err := uc.UpdateStock(ctx, staff(companyA), dto.StockUpdateRequest{
		ProductID: p.ID, ChangeAmount: decimal.NewFromInt(-7),
	})
	require.NoError(t, err)
	assert.Equal(t, "Stock updated successfully", res.Message)
	assert.True(t, res.NewStock.Equal(decimal.NewFromInt(3)))
	assert.NotEmpty(t, res.MovementID)

	moves, err := uc.ListMovements(ctx, staff(companyA), p.ID)
	require.NoError(t, err)
	require.Len(t, moves, 1)
	assert.Equal(t, entity.DefaultMovementReason, moves[0].Reason)
	assert.True(t, moves[0].ChangeAmount.Equal(decimal.NewFromInt(-7)))

	list, err := uc.ListProducts(ctx, staff(companyA), dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].LowStock)

	require.Len(t, rec.events, 1)
	assert.Equal(t, ports.EventStockUpdated, rec.events[0].Type)
	assert.Equal(t, companyA, rec.events[0].CompanyID)
}

func TestUpdateStock_NoQuedaNegativo(t *testing.T) {
	uc, _, rec := setup(t)
	ctx := context.Background()
	p := product(t, uc, companyA, "OIL-1", 2)

	_, err := uc.UpdateStock(ctx, staff(companyA), dto.StockUpdateRequest{
		ProductID: p.ID, ChangeAmount: decimal.NewFromInt(-3), Reason: "venta",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	moves, err := uc.ListMovements(ctx, staff(companyA), p.ID)
	require.NoError(t, err)
	assert.Empty(t, moves)
	assert.Empty(t, rec.events)
}

func TestUpdateStock_Validaciones(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()
	p := product(t, uc, companyA, "OIL-1", 2)

	_, err := uc.UpdateStock(ctx, staff(companyA), dto.StockUpdateRequest{ProductID: p.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cambio cero")

	_, err = uc.UpdateStock(ctx, staff(companyA), dto.StockUpdateRequest{ChangeAmount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin producto")

	_, err = uc.UpdateStock(ctx, staff(companyA), dto.StockUpdateRequest{ProductID: "no-uuid", ChangeAmount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.UpdateStock(ctx, staff(companyB), dto.StockUpdateRequest{ProductID: p.ID, ChangeAmount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto de otra empresa")

	_, err = uc.ListMovements(ctx, staff(companyB), p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStock_Concurrente(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()
	p := product(t, uc, companyA, "OIL-1", 100)

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		delta := int64(3)
		if i%2 == 0 {
			delta = -1
		}
		go func(d int64) {
			defer wg.Done()
			_, err := uc.UpdateStock(ctx, staff(companyA), dto.StockUpdateRequest{
				ProductID: p.ID, ChangeAmount: decimal.NewFromInt(d),
			})
			assert.NoError(t, err)
		}(delta)
	}
	wg.Wait()

	// 25 × (-1) + 25 × 3
	list, err := uc.ListProducts(ctx, staff(companyA), dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Stock.Equal(decimal.NewFromInt(150)), list[0].Stock.String())

	moves, err := uc.ListMovements(ctx, staff(companyA), p.ID)
	require.NoError(t, err)
	assert.Len(t, moves, n)

	sum := decimal.Zero
	for _, m := range moves {
		sum = sum.Add(m.ChangeAmount)
	}
	assert.True(t, sum.Equal(decimal.NewFromInt(50)))
}
