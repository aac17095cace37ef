package memory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/bizos-api/internal/domain"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
)

type companyRepo struct{ base }

func (r *companyRepo) Create(_ context.Context, c *entity.Company) error {
	defer r.lock()()
	for _, existing := range r.db().companies {
		if existing.Slug == c.Slug {
			return domain.ErrDuplicate
		}
	}
	r.db().companies[c.ID] = *c
	return nil
}

func (r *companyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	defer r.lock()()
	c, ok := r.db().companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *companyRepo) GetBySlug(_ context.Context, slug string) (*entity.Company, error) {
	defer r.lock()()
	for _, c := range r.db().companies {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *companyRepo) UpdateModules(_ context.Context, id string, modules entity.Modules) error {
	defer r.lock()()
	c, ok := r.db().companies[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Modules = modules
	c.UpdatedAt = time.Now().UTC()
	r.db().companies[id] = c
	return nil
}

type userRepo struct{ base }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	defer r.lock()()
	for _, existing := range r.db().users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	if _, ok := r.db().companies[u.CompanyID]; !ok {
		return domain.ErrNotFound
	}
	r.db().users[u.ID] = *u
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	defer r.lock()()
	u, ok := r.db().users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	defer r.lock()()
	for _, u := range r.db().users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *userRepo) GetByCompanyAndID(_ context.Context, companyID, id string) (*entity.User, error) {
	defer r.lock()()
	u, ok := r.db().users[id]
	if !ok || u.CompanyID != companyID {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	defer r.lock()()
	list := collect(r.db().users,
		func(u *entity.User) bool { return u.CompanyID == companyID },
		func(a, b *entity.User) bool { return a.CreatedAt.After(b.CreatedAt) })
	return paginate(list, limit, offset), nil
}

func (r *userRepo) UpdateStatus(_ context.Context, companyID, id, status string, activatedAt *time.Time) error {
	defer r.lock()()
	u, ok := r.db().users[id]
	if !ok || u.CompanyID != companyID {
		return domain.ErrNotFound
	}
	u.Status = status
	if activatedAt != nil {
		u.ActivatedAt = activatedAt
	}
	u.UpdatedAt = time.Now().UTC()
	r.db().users[id] = u
	return nil
}

func (r *userRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	defer r.lock()()
	u, ok := r.db().users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now().UTC()
	r.db().users[id] = u
	return nil
}

type clientRepo struct{ base }

func (r *clientRepo) Create(_ context.Context, c *entity.Client) error {
	defer r.lock()()
	for _, existing := range r.db().clients {
		if strings.EqualFold(existing.Email, c.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.db().clients[c.ID] = *c
	return nil
}

func (r *clientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	defer r.lock()()
	c, ok := r.db().clients[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *clientRepo) GetByEmail(_ context.Context, email string) (*entity.Client, error) {
	defer r.lock()()
	for _, c := range r.db().clients {
		if strings.EqualFold(c.Email, email) {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *clientRepo) GetByCompanyAndID(_ context.Context, companyID, id string) (*entity.Client, error) {
	defer r.lock()()
	c, ok := r.db().clients[id]
	if !ok || c.CompanyID != companyID {
		return nil, nil
	}
	return &c, nil
}

func (r *clientRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Client, error) {
	defer r.lock()()
	list := collect(r.db().clients,
		func(c *entity.Client) bool { return c.CompanyID == companyID },
		func(a, b *entity.Client) bool { return a.CreatedAt.After(b.CreatedAt) })
	return paginate(list, limit, offset), nil
}

func (r *clientRepo) CountByCompany(_ context.Context, companyID string) (int, error) {
	defer r.lock()()
	n := 0
	for _, c := range r.db().clients {
		if c.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

func (r *clientRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	defer r.lock()()
	c, ok := r.db().clients[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.PasswordHash = hash
	r.db().clients[id] = c
	return nil
}

type projectUpdateRepo struct{ base }

func (r *projectUpdateRepo) Create(_ context.Context, u *entity.ProjectUpdate) error {
	defer r.lock()()
	r.db().projectUpdates[u.ID] = *u
	return nil
}

func (r *projectUpdateRepo) ListByClient(_ context.Context, companyID, clientID string) ([]*entity.ProjectUpdate, error) {
	defer r.lock()()
	return collect(r.db().projectUpdates,
		func(u *entity.ProjectUpdate) bool { return u.CompanyID == companyID && u.ClientID == clientID },
		func(a, b *entity.ProjectUpdate) bool { return a.CreatedAt.After(b.CreatedAt) }), nil
}
