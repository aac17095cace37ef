package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bizos-api/internal/application/auth"
	"github.com/jhoicas/bizos-api/internal/application/ports"
	"github.com/jhoicas/bizos-api/internal/domain/authz"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
	"github.com/jhoicas/bizos-api/internal/domain/repository"
	"github.com/jhoicas/bizos-api/internal/infrastructure/memory"
	"github.com/jhoicas/bizos-api/pkg/password"
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

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

// tenant empresa sembrada con su owner.
type tenant struct {
	companyID string
	ownerID   string
}

func (tn tenant) owner() authz.Context {
	return authz.NewContext(tn.ownerID, authz.KindStaff, tn.companyID, entity.RoleOwner)
}

type fixture struct {
	store  *memory.Store
	repos  repository.Repositories
	creds  *auth.CredentialStore
	events *recorder
	acme   tenant
	globex tenant
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repositories()
	f := &fixture{
		store:  store,
		repos:  repos,
		creds:  auth.NewCredentialStore(repos.Users, repos.Clients, password.NewHasher(4)),
		events: &recorder{},
	}
	f.acme = f.seedTenant(t, "acme-spa")
	f.globex = f.seedTenant(t, "globex")
	return f
}

func (f *fixture) seedTenant(t *testing.T, slug string) tenant {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	tn := tenant{companyID: uuid.New().String(), ownerID: uuid.New().String()}
	require.NoError(t, f.repos.Companies.Create(ctx, &entity.Company{
		ID: tn.companyID, Name: slug, Slug: slug, Status: entity.StatusActive,
		Modules: entity.DefaultModules(), CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, f.repos.Users.Create(ctx, &entity.User{
		ID: tn.ownerID, CompanyID: tn.companyID, Email: "owner@" + slug + ".com",
		FirstName: "Owner", Role: entity.RoleOwner, Status: entity.StatusActive,
		CreatedAt: now, UpdatedAt: now, ActivatedAt: &now,
	}))
	return tn
}

// enable activa un módulo de la empresa.
func (f *fixture) enable(t *testing.T, companyID, module string) {
	t.Helper()
	ctx := context.Background()
	c, err := f.repos.Companies.GetByID(ctx, companyID)
	require.NoError(t, err)
	m := c.Modules
	require.True(t, m.Set(module, true))
	require.NoError(t, f.repos.Companies.UpdateModules(ctx, companyID, m))
}

func (f *fixture) client(t *testing.T, companyID, email string) string {
	t.Helper()
	id := uuid.New().String()
	require.NoError(t, f.repos.Clients.Create(context.Background(), &entity.Client{
		ID: id, CompanyID: companyID, Email: email, Name: "Cliente", Status: entity.StatusActive,
		CreatedAt: time.Now().UTC(),
	}))
	return id
}
