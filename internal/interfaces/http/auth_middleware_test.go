package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bizos-api/internal/application/auth"
	"github.com/jhoicas/bizos-api/internal/domain/authz"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
	"github.com/jhoicas/bizos-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/bizos-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/bizos-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testOwnerID   = "00000000-0000-0000-0000-000000000001"
	testRecepID   = "00000000-0000-0000-0000-000000000003"
	testClientID  = "00000000-0000-0000-0000-000000000004"
)

type fakeChecker struct {
	active bool
	err    error
}

func (f fakeChecker) HasActiveModule(context.Context, string, string) (bool, error) {
	return f.active, f.err
}

type middlewareEnv struct {
	issuer *pkgjwt.Issuer
	gate   *auth.Gate
}

// newMiddlewareEnv siembra una empresa activa con owner, recepcionista y un cliente.
func newMiddlewareEnv(t *testing.T) *middlewareEnv {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repositories()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repos.Companies.Create(ctx, &entity.Company{
		ID: testCompanyID, Name: "Acme Spa", Slug: "acme-spa", Status: entity.StatusActive,
		Modules: entity.DefaultModules(), CreatedAt: now, UpdatedAt: now,
	}))
	for id, role := range map[string]string{testOwnerID: entity.RoleOwner, testRecepID: entity.RoleReceptionist} {
		require.NoError(t, repos.Users.Create(ctx, &entity.User{
			ID: id, CompanyID: testCompanyID, Email: role + "@acme.com", PasswordHash: "x",
			FirstName: role, Role: role, Status: entity.StatusActive, CreatedAt: now, UpdatedAt: now,
		}))
	}
	require.NoError(t, repos.Clients.Create(ctx, &entity.Client{
		ID: testClientID, CompanyID: testCompanyID, Email: "cliente@correo.com", Name: "Carla",
		PasswordHash: "x", Status: entity.StatusActive, CreatedAt: now,
	}))

	issuer, err := pkgjwt.NewIssuer(pkgjwt.Config{
		Secret: "test-secret-key-for-unit-tests", Issuer: "bizos-test",
		AccessTTL: time.Hour, RefreshTTL: time.Hour,
	})
	require.NoError(t, err)
	return &middlewareEnv{issuer: issuer, gate: auth.NewGate(issuer, repos, authz.DefaultPolicy())}
}

// buildTestApp construye una app mínima con:
//   - Authenticate para validar el token y cargar el authz.Context
//   - los middlewares extra indicados
//   - un handler dummy que devuelve el contexto si pasa la cadena
func (e *middlewareEnv) buildTestApp(kind string, extra ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := append([]fiber.Handler{apphttp.Authenticate(e.gate, kind)}, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		ac := apphttp.GetAuthz(c)
		return c.JSON(fiber.Map{"principal": ac.PrincipalID(), "company": ac.CompanyID(), "role": ac.Role()})
	})
	app.Get("/protected", handlers...)
	return app
}

func (e *middlewareEnv) token(t *testing.T, id, kind string) string {
	t.Helper()
	pair, err := e.issuer.Issue(id, kind)
	require.NoError(t, err)
	return "Bearer " + pair.AccessToken
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return resp.StatusCode, body
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthenticate_CargaContexto(t *testing.T) {
	env := newMiddlewareEnv(t)
	app := env.buildTestApp(authz.KindStaff)

	status, body := doRequest(t, app, env.token(t, testOwnerID, authz.KindStaff))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, testOwnerID, body["principal"])
	assert.Equal(t, testCompanyID, body["company"], "la empresa sale del principal, no del token")
	assert.Equal(t, entity.RoleOwner, body["role"])
}

func TestAuthenticate_Rechazos(t *testing.T) {
	env := newMiddlewareEnv(t)
	app := env.buildTestApp(authz.KindStaff)

	cases := map[string]string{
		"sin header":       "",
		"sin Bearer":       "Token abc",
		"token vacío":      "Bearer ",
		"malformado":       "Bearer no.es.jwt",
		"cliente en staff": env.token(t, testClientID, authz.KindClient),
		"principal ajeno":  env.token(t, "00000000-0000-0000-0000-00000000ffff", authz.KindStaff),
	}
	for name, header := range cases {
		status, body := doRequest(t, app, header)
		assert.Equal(t, http.StatusUnauthorized, status, name)
		assert.Equal(t, "UNAUTHORIZED", body["code"], name)
	}
}

func TestRequirePermission(t *testing.T) {
	env := newMiddlewareEnv(t)
	app := env.buildTestApp(authz.KindStaff, apphttp.RequirePermission(env.gate, authz.InventoryManage))

	status, _ := doRequest(t, app, env.token(t, testOwnerID, authz.KindStaff))
	assert.Equal(t, http.StatusOK, status, "owner tiene *")

	status, body := doRequest(t, app, env.token(t, testRecepID, authz.KindStaff))
	assert.Equal(t, http.StatusForbidden, status, "denegado por defecto")
	assert.Equal(t, "FORBIDDEN", body["code"])
}

func TestRequireModule(t *testing.T) {
	env := newMiddlewareEnv(t)
	owner := env.token(t, testOwnerID, authz.KindStaff)

	off := env.buildTestApp(authz.KindStaff, apphttp.RequireModule(entity.ModuleInventory, fakeChecker{}))
	status, body := doRequest(t, off, owner)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "MODULE_DISABLED", body["code"])

	broken := env.buildTestApp(authz.KindStaff, apphttp.RequireModule(entity.ModuleInventory, fakeChecker{err: errors.New("db caída")}))
	status, body = doRequest(t, broken, owner)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "MODULE_CHECK_FAILED", body["code"])

	on := env.buildTestApp(authz.KindStaff, apphttp.RequireModule(entity.ModuleInventory, fakeChecker{active: true}))
	status, _ = doRequest(t, on, owner)
	assert.Equal(t, http.StatusOK, status)
}

func TestOptionalClient(t *testing.T) {
	env := newMiddlewareEnv(t)
	app := fiber.New()
	app.Get("/protected", apphttp.OptionalClient(env.gate), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"authenticated": apphttp.GetAuthz(c).Valid()})
	})

	status, body := doRequest(t, app, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["authenticated"])

	status, body = doRequest(t, app, env.token(t, testClientID, authz.KindClient))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["authenticated"])

	status, _ = doRequest(t, app, env.token(t, testOwnerID, authz.KindStaff))
	assert.Equal(t, http.StatusUnauthorized, status, "un token presente debe ser de cliente")
}
