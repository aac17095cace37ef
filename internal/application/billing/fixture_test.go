package billing_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bizos-api/internal/application/ports"
	"github.com/jhoicas/bizos-api/internal/domain/authz"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
	"github.com/jhoicas/bizos-api/internal/domain/repository"
	"github.com/jhoicas/bizos-api/internal/infrastructure/memory"
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

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

type fixture struct {
	store  *memory.Store
	repos  repository.Repositories
	events *recorder
	acme   authz.Context
	globex authz.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{store: store, repos: store.Repositories(), events: &recorder{}}
	f.acme = f.seed(t, "acme-spa")
	f.globex = f.seed(t, "globex")
	return f
}

func (f *fixture) seed(t *testing.T, slug string) authz.Context {
	t.Helper()
	now := time.Now().UTC()
	id := uuid.New().String()
	require.NoError(t, f.repos.Companies.Create(context.Background(), &entity.Company{
		ID: id, Name: slug, Slug: slug, Status: entity.StatusActive,
		Modules: entity.DefaultModules(), CreatedAt: now, UpdatedAt: now,
	}))
	return authz.NewContext(uuid.New().String(), authz.KindStaff, id, entity.RoleOwner)
}

func (f *fixture) client(t *testing.T, companyID, email string) string {
	t.Helper()
	id := uuid.New().String()
	require.NoError(t, f.repos.Clients.Create(context.Background(), &entity.Client{
		ID: id, CompanyID: companyID, Email: email, Name: "Cliente " + email,
		Status: entity.StatusActive, CreatedAt: time.Now().UTC(),
	}))
	return id
}
