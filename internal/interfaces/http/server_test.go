package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/bizos-api/internal/application/analytics"
	"github.com/jhoicas/bizos-api/internal/application/auth"
	"github.com/jhoicas/bizos-api/internal/application/billing"
	"github.com/jhoicas/bizos-api/internal/application/inventory"
	"github.com/jhoicas/bizos-api/internal/application/ports"
	"github.com/jhoicas/bizos-api/internal/application/usecase"
	"github.com/jhoicas/bizos-api/internal/domain/authz"
	"github.com/jhoicas/bizos-api/internal/domain/repository"
	"github.com/jhoicas/bizos-api/internal/infrastructure/kafka"
	"github.com/jhoicas/bizos-api/internal/infrastructure/memory"
	"github.com/jhoicas/bizos-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/bizos-api/internal/interfaces/http"
	"github.com/jhoicas/bizos-api/pkg/jwt"
	"github.com/jhoicas/bizos-api/pkg/logger"
	"github.com/jhoicas/bizos-api/pkg/password"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type stubScanner struct{}

func (stubScanner) ScanReceipt(context.Context, []byte, string) (*ports.ReceiptFields, error) {
	total := decimal.RequireFromString("42.50")
	return &ports.ReceiptFields{VendorName: "Papelería Sol", TotalAmount: &total, Currency: "USD", Raw: json.RawMessage(`{}`)}, nil
}

type server struct {
	app    *fiber.App
	repos  repository.Repositories
	issuer *jwt.Issuer
}

// newServer arma la app completa sobre el store en memoria, igual que serve con STORE_DRIVER=memory.
func newServer(t *testing.T) *server {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repositories()
	issuer, err := jwt.NewIssuer(jwt.Config{
		Secret: "test-secret", Issuer: "bizos-test",
		AccessTTL: 15 * time.Minute, RefreshTTL: 7 * 24 * time.Hour,
	})
	require.NoError(t, err)

	log := logger.Nop()
	pub := kafka.NopPublisher{}
	creds := auth.NewCredentialStore(repos.Users, repos.Clients, password.NewHasher(4))
	deps := apphttp.RouterDeps{
		Gate:      auth.NewGate(issuer, repos, authz.DefaultPolicy()),
		Modules:   usecase.NewModuleService(repos.Companies),
		AuthUC:    auth.NewAuthUseCase(repos, store, creds, issuer, memory.NewRevocationStore(), pub, log),
		UserUC:    usecase.NewUserUseCase(repos.Users, creds, authz.DefaultPolicy()),
		CompanyUC: usecase.NewCompanyUseCase(repos.Companies),
		PortalUC:  usecase.NewPortalUseCase(repos, creds),
		BookingUC: usecase.NewBookingUseCase(repos, pub, log),
		ReportUC:  usecase.NewReportUseCase(repos, store),
		SocialUC:  usecase.NewSocialUseCase(repos, pub, log),
		Invoices:  billing.NewInvoiceUseCase(repos, store, pub, log),
		Receipts:  billing.NewReceiptUseCase(repos, stubScanner{}, pub, log),
		PDF:       billing.NewPDFUseCase(repos, pdf.NewMarotoPDFGenerator()),
		Inventory: inventory.NewUseCase(repos, store, pub, log),
		Dashboard: appanalytics.NewDashboardUseCase(repos),
	}
	app := apphttp.NewApp(apphttp.AppOptions{Name: "bizos-test", CORSOrigins: "*"}, log, deps)
	return &server{app: app, repos: repos, issuer: issuer}
}

// do ejecuta la petición con app.Test; body nil envía cuerpo vacío.
func (s *server) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

type tenant struct {
	companyID string
	token     string
}

// register da de alta empresa + owner y devuelve su access token.
func (s *server) register(t *testing.T, company, email string) tenant {
	t.Helper()
	status, raw := s.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"company_name": company, "email": email, "password": "supersecret",
		"first_name": "Ana", "last_name": "Pérez",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	reg := decode[map[string]any](t, raw)
	companyID := reg["company"].(map[string]any)["id"].(string)

	status, raw = s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": email, "password": "supersecret",
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	login := decode[map[string]any](t, raw)
	return tenant{companyID: companyID, token: login["tokens"].(map[string]any)["access_token"].(string)}
}

func (s *server) enable(t *testing.T, tn tenant, module string) {
	t.Helper()
	status, raw := s.do(t, http.MethodPatch, "/api/v1/company/modules", tn.token, map[string]any{
		"modules": map[string]bool{module: true},
	})
	require.Equal(t, http.StatusOK, status, string(raw))
}
