package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bizos-api/internal/application/dto"
	"github.com/jhoicas/bizos-api/internal/application/usecase"
	"github.com/jhoicas/bizos-api/internal/domain"
	"github.com/jhoicas/bizos-api/internal/domain/authz"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
)

func TestUser_AltaDeStaff(t *testing.T) {
	f := newFixture(t)
	uc := usecase.NewUserUseCase(f.repos.Users, f.creds, authz.DefaultPolicy())
	ctx := context.Background()

	_, err := uc.Create(ctx, f.acme.owner(), dto.CreateUserRequest{
		Email: "otro@acme.com", Password: "clave-segura", FirstName: "Otro", Role: entity.RoleOwner,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "owner solo por registro")

	_, err = uc.Create(ctx, f.acme.owner(), dto.CreateUserRequest{
		Email: "owner@globex.com", Password: "clave-segura", FirstName: "X", Role: entity.RoleStaff,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	u, err := uc.Create(ctx, f.acme.owner(), dto.CreateUserRequest{
		Email: "Rita@Acme.com", Password: "clave-segura", FirstName: "Rita", Role: entity.RoleReceptionist,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, u.Status)
	assert.Equal(t, "rita@acme.com", u.Email)
	assert.Nil(t, u.ActivatedAt)

	active, err := uc.Create(ctx, f.acme.owner(), dto.CreateUserRequest{
		Email: "leo@acme.com", Password: "clave-segura", FirstName: "Leo", Role: entity.RoleStaff, Activate: true,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, active.Status)
	assert.NotNil(t, active.ActivatedAt)

	list, err := uc.List(ctx, f.acme.owner(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestUser_CambioDeEstado(t *testing.T) {
	f := newFixture(t)
	uc := usecase.NewUserUseCase(f.repos.Users, f.creds, authz.DefaultPolicy())
	ctx := context.Background()
	u, err := uc.Create(ctx, f.acme.owner(), dto.CreateUserRequest{
		Email: "rita@acme.com", Password: "clave-segura", FirstName: "Rita", Role: entity.RoleReceptionist,
	})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(ctx, f.acme.owner(), f.acme.ownerID, dto.UpdateUserStatusRequest{Status: entity.StatusSuspended})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.UpdateStatus(ctx, f.globex.owner(), u.ID, dto.UpdateUserStatusRequest{Status: entity.StatusActive})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.UpdateStatus(ctx, f.acme.owner(), u.ID, dto.UpdateUserStatusRequest{Status: "jubilado"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.UpdateStatus(ctx, f.acme.owner(), u.ID, dto.UpdateUserStatusRequest{Status: entity.StatusActive})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, got.Status)
	require.NotNil(t, got.ActivatedAt)
}

func TestUser_ManagerNoEscalaPrivilegios(t *testing.T) {
	f := newFixture(t)
	policy := authz.DefaultPolicy()
	require.NoError(t, policy.ParseGrants("manager:team.manage"))
	uc := usecase.NewUserUseCase(f.repos.Users, f.creds, policy)
	ctx := context.Background()

	admin, err := uc.Create(ctx, f.acme.owner(), dto.CreateUserRequest{
		Email: "admin@acme.com", Password: "clave-segura", FirstName: "Ada", Role: entity.RoleAdmin, Activate: true,
	})
	require.NoError(t, err, "el owner sí crea administradores")
	mgr, err := uc.Create(ctx, f.acme.owner(), dto.CreateUserRequest{
		Email: "mario@acme.com", Password: "clave-segura", FirstName: "Mario", Role: entity.RoleManager, Activate: true,
	})
	require.NoError(t, err)
	manager := authz.NewContext(mgr.ID, authz.KindStaff, f.acme.companyID, entity.RoleManager)

	_, err = uc.Create(ctx, manager, dto.CreateUserRequest{
		Email: "nuevo-admin@acme.com", Password: "clave-segura", FirstName: "Eve", Role: entity.RoleAdmin, Activate: true,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	created, err := f.repos.Users.GetByEmail(ctx, "nuevo-admin@acme.com")
	require.NoError(t, err)
	assert.Nil(t, created, "nada se persiste")

	_, err = uc.UpdateStatus(ctx, manager, f.acme.ownerID, dto.UpdateUserStatusRequest{Status: entity.StatusSuspended})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.UpdateStatus(ctx, manager, admin.ID, dto.UpdateUserStatusRequest{Status: entity.StatusSuspended})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	staff, err := uc.Create(ctx, manager, dto.CreateUserRequest{
		Email: "sol@acme.com", Password: "clave-segura", FirstName: "Sol", Role: entity.RoleStaff,
	})
	require.NoError(t, err, "roles sin comodín siguen disponibles")
	_, err = uc.UpdateStatus(ctx, manager, staff.ID, dto.UpdateUserStatusRequest{Status: entity.StatusActive})
	assert.NoError(t, err)
}
