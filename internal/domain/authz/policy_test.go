package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bizos-api/internal/domain/authz"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
)

func TestDefaultPolicy_OwnerYAdminPasanTodo(t *testing.T) {
	p := authz.DefaultPolicy()
	for _, perm := range authz.Known {
		assert.True(t, p.Allowed(entity.RoleOwner, perm), "owner debe tener %s", perm)
		assert.True(t, p.Allowed(entity.RoleAdmin, perm), "admin debe tener %s", perm)
	}
}

func TestDefaultPolicy_RestoDeRolesDenegado(t *testing.T) {
	p := authz.DefaultPolicy()
	roles := []string{
		entity.RoleManager, entity.RoleStaff, entity.RoleFieldWorker,
		entity.RoleReceptionist, entity.RoleAccountant, entity.RoleViewer,
	}
	for _, role := range roles {
		for _, perm := range authz.Known {
			assert.False(t, p.Allowed(role, perm), "%s no debe tener %s por defecto", role, perm)
		}
	}
}

func TestPolicy_RolDesconocidoDenegado(t *testing.T) {
	assert.False(t, authz.DefaultPolicy().Allowed("root", authz.BookingsManage))
}

func TestParseGrants(t *testing.T) {
	p := authz.DefaultPolicy()
	require.NoError(t, p.ParseGrants("manager:bookings.manage, accountant:invoicing.scan"))

	assert.True(t, p.Allowed(entity.RoleManager, authz.BookingsManage))
	assert.False(t, p.Allowed(entity.RoleManager, authz.InventoryManage))
	assert.True(t, p.Allowed(entity.RoleAccountant, authz.InvoicingScan))
	assert.Equal(t, []authz.Permission{authz.BookingsManage}, p.Grants(entity.RoleManager))
}

func TestParseGrants_Errores(t *testing.T) {
	p := authz.DefaultPolicy()
	assert.Error(t, p.ParseGrants("manager"))
	assert.Error(t, p.ParseGrants("root:bookings.manage"))
	assert.Error(t, p.ParseGrants("manager:nuke.all"))
	assert.NoError(t, p.ParseGrants(""))
}

func TestContext_Valid(t *testing.T) {
	assert.False(t, authz.Context{}.Valid())
	c := authz.NewContext("u1", authz.KindStaff, "c1", entity.RoleOwner)
	assert.True(t, c.Valid())
	assert.True(t, c.IsStaff())
	assert.Equal(t, "c1", c.CompanyID())
}

func TestPolicy_CanManageRole(t *testing.T) {
	p := authz.DefaultPolicy()
	require.NoError(t, p.ParseGrants("manager:team.manage"))

	assert.True(t, p.CanManageRole(entity.RoleOwner, entity.RoleAdmin))
	assert.True(t, p.CanManageRole(entity.RoleAdmin, entity.RoleOwner))
	assert.False(t, p.CanManageRole(entity.RoleManager, entity.RoleAdmin))
	assert.False(t, p.CanManageRole(entity.RoleManager, entity.RoleOwner))
	assert.True(t, p.CanManageRole(entity.RoleManager, entity.RoleStaff))
}
