package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bizos-api/internal/domain"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
	"github.com/jhoicas/bizos-api/internal/domain/repository"
	"github.com/jhoicas/bizos-api/internal/infrastructure/memory"
)

func seedCompany(t *testing.T, repos repository.Repositories, id, slug string) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, repos.Companies.Create(context.Background(), &entity.Company{
		ID: id, Name: slug, Slug: slug, Status: entity.StatusActive,
		Modules: entity.DefaultModules(), CreatedAt: now, UpdatedAt: now,
	}))
}

func TestStore_RunRestauraEstadoEnError(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.Run(ctx, func(r repository.Repositories) error {
		seedCompany(t, r, "c1", "acme")
		return boom
	})
	require.ErrorIs(t, err, boom)

	c, err := store.Repositories().Companies.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestStore_RunConfirmaEnExito(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, store.Run(ctx, func(r repository.Repositories) error {
		seedCompany(t, r, "c1", "acme")
		return nil
	}))

	c, err := store.Repositories().Companies.GetBySlug(ctx, "acme")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "c1", c.ID)
}

func TestStore_SlugYEmailUnicos(t *testing.T) {
	store := memory.NewStore()
	repos := store.Repositories()
	ctx := context.Background()
	seedCompany(t, repos, "c1", "acme")

	err := repos.Companies.Create(ctx, &entity.Company{ID: "c2", Slug: "acme"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	require.NoError(t, repos.Users.Create(ctx, &entity.User{ID: "u1", CompanyID: "c1", Email: "a@x.com"}))
	err = repos.Users.Create(ctx, &entity.User{ID: "u2", CompanyID: "c1", Email: "A@x.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestStore_FiltroPorTenant(t *testing.T) {
	store := memory.NewStore()
	repos := store.Repositories()
	ctx := context.Background()
	seedCompany(t, repos, "c1", "acme")
	seedCompany(t, repos, "c2", "globex")

	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", CompanyID: "c1", Name: "Jabón"}))

	p, err := repos.Products.GetByCompanyAndID(ctx, "c2", "p1")
	require.NoError(t, err)
	assert.Nil(t, p, "un producto de otra empresa debe verse como inexistente")

	err = repos.Invoices.Delete(ctx, "c2", "p1", entity.InvoiceDraft)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_SKUUnicoPorEmpresa(t *testing.T) {
	store := memory.NewStore()
	repos := store.Repositories()
	ctx := context.Background()

	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", CompanyID: "c1", SKU: "SKU-1"}))
	assert.ErrorIs(t, repos.Products.Create(ctx, &entity.Product{ID: "p2", CompanyID: "c1", SKU: "SKU-1"}), domain.ErrDuplicate)
	assert.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p3", CompanyID: "c2", SKU: "SKU-1"}))
}

func TestStore_RunSerializaTransacciones(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Repositories().Products.Create(ctx, &entity.Product{
		ID: "p1", CompanyID: "c1", CurrentStock: decimal.Zero,
	}))

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Run(ctx, func(r repository.Repositories) error {
				p, err := r.Products.GetForUpdate(ctx, "c1", "p1")
				if err != nil {
					return err
				}
				return r.Products.UpdateStock(ctx, p.ID, p.CurrentStock.Add(decimal.NewFromInt(1)))
			})
		}()
	}
	wg.Wait()

	p, err := store.Repositories().Products.GetByCompanyAndID(ctx, "c1", "p1")
	require.NoError(t, err)
	assert.True(t, p.CurrentStock.Equal(decimal.NewFromInt(n)), "stock = %s", p.CurrentStock)
}

func TestRevocationStore_SoloUnaRevocacionGana(t *testing.T) {
	s := memory.NewRevocationStore()
	ctx := context.Background()
	until := time.Now().Add(time.Hour)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.Revoke(ctx, "jti-1", until)
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)

	revoked, err := s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}
