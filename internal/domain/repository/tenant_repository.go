package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bizos-api/internal/domain/entity"
)

// Convención de los puertos: los Get* devuelven (nil, nil) cuando la fila no existe.
// Los métodos que reciben companyID filtran por tenant: una fila de otra empresa
// es indistinguible de una inexistente.

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	// Create devuelve domain.ErrDuplicate si el slug ya existe.
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Company, error)
	UpdateModules(ctx context.Context, id string, modules entity.Modules) error
}

// UserRepository define el puerto de persistencia para User (staff).
type UserRepository interface {
	// Create devuelve domain.ErrEmailAlreadyExists si el email ya existe (único global).
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByCompanyAndID(ctx context.Context, companyID, id string) (*entity.User, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.User, error)
	UpdateStatus(ctx context.Context, companyID, id, status string, activatedAt *time.Time) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error
}

// ClientRepository define el puerto de persistencia para Client (portal).
type ClientRepository interface {
	// Create devuelve domain.ErrEmailAlreadyExists si el email ya existe (único global).
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	GetByEmail(ctx context.Context, email string) (*entity.Client, error)
	GetByCompanyAndID(ctx context.Context, companyID, id string) (*entity.Client, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Client, error)
	CountByCompany(ctx context.Context, companyID string) (int, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
}

// ProjectUpdateRepository avances de proyecto del portal.
type ProjectUpdateRepository interface {
	Create(ctx context.Context, update *entity.ProjectUpdate) error
	// ListByClient ordena por created_at descendente.
	ListByClient(ctx context.Context, companyID, clientID string) ([]*entity.ProjectUpdate, error)
}
