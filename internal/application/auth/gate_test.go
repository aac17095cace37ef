package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bizos-api/internal/application/auth"
	"github.com/jhoicas/bizos-api/internal/domain"
	"github.com/jhoicas/bizos-api/internal/domain/authz"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
	"github.com/jhoicas/bizos-api/pkg/jwt"
)

func TestGate_RechazaTokensInvalidos(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	for name, token := range map[string]string{
		"vacío":      "",
		"malformado": "no.es.jwt",
		"basura":     "Bearer abc",
	} {
		_, err := f.gate.Authenticate(ctx, token, authz.KindStaff)
		assert.ErrorIs(t, err, domain.ErrUnauthorized, name)
	}

	expired, err := jwt.NewIssuer(jwt.Config{
		Secret: "test-secret", Issuer: "bizos-test",
		AccessTTL: time.Nanosecond, RefreshTTL: time.Nanosecond,
	})
	require.NoError(t, err)
	pair, err := expired.Issue("u1", jwt.KindStaff)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = f.gate.Authenticate(ctx, pair.AccessToken, authz.KindStaff)
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "expirado")

	other, err := jwt.NewIssuer(jwt.Config{
		Secret: "otra-clave", Issuer: "bizos-test",
		AccessTTL: time.Minute, RefreshTTL: time.Minute,
	})
	require.NoError(t, err)
	pair, err = other.Issue("u1", jwt.KindStaff)
	require.NoError(t, err)
	_, err = f.gate.Authenticate(ctx, pair.AccessToken, authz.KindStaff)
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "firma ajena")
}

func TestGate_PrincipalInexistenteEsNoAutenticado(t *testing.T) {
	f := newFixture(t, nil)
	pair, err := f.issuer.Issue("fantasma", jwt.KindStaff)
	require.NoError(t, err)

	_, err = f.gate.Authenticate(context.Background(), pair.AccessToken, authz.KindStaff)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestGate_EstadoYPermisos(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	reg, err := f.uc.Register(ctx, acme())
	require.NoError(t, err)

	now := time.Now().UTC()
	hash, err := f.creds.Hash("recepcion1")
	require.NoError(t, err)
	require.NoError(t, f.repos.Users.Create(ctx, &entity.User{
		ID: "rec", CompanyID: reg.Company.ID, Email: "rec@acme.com", PasswordHash: hash,
		FirstName: "Rita", Role: entity.RoleReceptionist, Status: entity.StatusPending,
		CreatedAt: now, UpdatedAt: now,
	}))
	pair, err := f.issuer.Issue("rec", jwt.KindStaff)
	require.NoError(t, err)

	_, err = f.gate.Authenticate(ctx, pair.AccessToken, authz.KindStaff)
	assert.ErrorIs(t, err, domain.ErrInactive, "pending no es activo")

	require.NoError(t, f.repos.Users.UpdateStatus(ctx, reg.Company.ID, "rec", entity.StatusActive, &now))
	ac, err := f.gate.Authenticate(ctx, pair.AccessToken, authz.KindStaff)
	require.NoError(t, err)
	assert.Equal(t, reg.Company.ID, ac.CompanyID())
	assert.Equal(t, entity.RoleReceptionist, ac.Role())

	assert.ErrorIs(t, f.gate.Authorize(ac, authz.InventoryManage), domain.ErrForbidden, "denegado por defecto")

	owner := authz.NewContext(reg.User.ID, authz.KindStaff, reg.Company.ID, entity.RoleOwner)
	assert.NoError(t, f.gate.Authorize(owner, authz.InventoryManage))

	client := authz.NewContext("cl1", authz.KindClient, reg.Company.ID, "")
	assert.ErrorIs(t, f.gate.Authorize(client, authz.PortalView), domain.ErrForbidden)
}

func TestGate_PoliticaConfigurable(t *testing.T) {
	f := newFixture(t, nil)
	policy := authz.DefaultPolicy()
	require.NoError(t, policy.ParseGrants("receptionist:bookings.manage"))
	gate := auth.NewGate(f.issuer, f.repos, policy)

	ac := authz.NewContext("u", authz.KindStaff, "c", entity.RoleReceptionist)
	assert.NoError(t, gate.Authorize(ac, authz.BookingsManage))
	assert.ErrorIs(t, gate.Authorize(ac, authz.InvoicingScan), domain.ErrForbidden)
}
