package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bizos-api/internal/application/auth"
	"github.com/jhoicas/bizos-api/internal/application/dto"
	"github.com/jhoicas/bizos-api/internal/application/usecase"
	"github.com/jhoicas/bizos-api/internal/domain"
	"github.com/jhoicas/bizos-api/internal/domain/authz"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
)

func TestPortal_AltaDeCliente(t *testing.T) {
	f := newFixture(t)
	uc := usecase.NewPortalUseCase(f.repos, f.creds)
	ctx := context.Background()

	res, err := uc.CreateClient(ctx, f.acme.owner(), dto.CreateClientRequest{
		Email: " Maria@Cliente.com ", Name: "María", Password: "clave-segura",
	})
	require.NoError(t, err)
	assert.Equal(t, "Client created successfully", res.Message)

	_, err = uc.CreateClient(ctx, f.globex.owner(), dto.CreateClientRequest{
		Email: "maria@cliente.com", Name: "Otra", Password: "clave-segura",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists, "email único global")

	_, err = uc.CreateClient(ctx, f.acme.owner(), dto.CreateClientRequest{
		Email: "corta@cliente.com", Name: "Corta", Password: "123",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.ListClients(ctx, f.acme.owner(), dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "maria@cliente.com", list[0].Email)

	list, err = uc.ListClients(ctx, f.globex.owner(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list)

	stored, err := f.repos.Clients.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.True(t, f.creds.VerifyCredential(ctx, auth.Principal{ID: stored.ID, Kind: authz.KindClient}, "clave-segura"))
}

func TestPortal_AvancesYFacturasDelCliente(t *testing.T) {
	f := newFixture(t)
	uc := usecase.NewPortalUseCase(f.repos, f.creds)
	ctx := context.Background()
	maria := f.client(t, f.acme.companyID, "maria@cliente.com")
	pedro := f.client(t, f.acme.companyID, "pedro@cliente.com")
	ajeno := f.client(t, f.globex.companyID, "ajeno@cliente.com")

	res, err := uc.PostUpdate(ctx, f.acme.owner(), dto.CreateProjectUpdateRequest{
		ClientID: maria, Title: "Diseño", Content: "Primer borrador listo",
	})
	require.NoError(t, err)
	assert.Equal(t, "Project update posted", res.Message)

	_, err = uc.PostUpdate(ctx, f.acme.owner(), dto.CreateProjectUpdateRequest{
		ClientID: ajeno, Title: "x", Content: "y",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "cliente de otra empresa")

	_, err = uc.PostUpdate(ctx, f.acme.owner(), dto.CreateProjectUpdateRequest{
		ClientID: maria, Title: "x", Content: "y", Status: "Archivado",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	now := time.Now().UTC()
	for i, owner := range []string{maria, pedro} {
		require.NoError(t, f.repos.Invoices.Create(ctx, &entity.Invoice{
			ID: uuid.New().String(), CompanyID: f.acme.companyID, ClientID: owner,
			InvoiceNumber: []string{"INV-000001", "INV-000002"}[i], Status: entity.InvoiceSent, CreatedAt: now,
		}))
	}

	mariaCtx := authz.NewContext(maria, authz.KindClient, f.acme.companyID, "")
	updates, err := uc.ListUpdates(ctx, mariaCtx)
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, entity.UpdateInProgress, updates[0].Status)

	invoices, err := uc.ListInvoices(ctx, mariaCtx)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, "INV-000001", invoices[0].InvoiceNumber)

	pedroCtx := authz.NewContext(pedro, authz.KindClient, f.acme.companyID, "")
	updates, err = uc.ListUpdates(ctx, pedroCtx)
	require.NoError(t, err)
	assert.Empty(t, updates)
}
