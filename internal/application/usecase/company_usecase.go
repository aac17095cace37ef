package usecase

import (
	"context"
	"sort"

	"github.com/jhoicas/bizos-api/internal/application/dto"
	"github.com/jhoicas/bizos-api/internal/domain"
	"github.com/jhoicas/bizos-api/internal/domain/authz"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
	"github.com/jhoicas/bizos-api/internal/domain/repository"
)

// CompanyUseCase lectura de la empresa del token y activación de módulos.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Get devuelve la empresa del contexto autorizado.
func (uc *CompanyUseCase) Get(ctx context.Context, ac authz.Context) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, ac.CompanyID())
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return entityToCompanyResponse(company), nil
}

// UpdateModules aplica los cambios pedidos. Un nombre de módulo desconocido invalida todo el request.
func (uc *CompanyUseCase) UpdateModules(ctx context.Context, ac authz.Context, in dto.UpdateModulesRequest) (*dto.CompanyResponse, error) {
	if len(in.Modules) == 0 {
		return nil, domain.Invalid("modules es obligatorio")
	}
	company, err := uc.repo.GetByID(ctx, ac.CompanyID())
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	names := make([]string, 0, len(in.Modules))
	for name := range in.Modules {
		names = append(names, name)
	}
	sort.Strings(names)
	modules := company.Modules
	for _, name := range names {
		if !modules.Set(name, in.Modules[name]) {
			return nil, domain.Invalid("módulo desconocido %q", name)
		}
	}
	if err := uc.repo.UpdateModules(ctx, company.ID, modules); err != nil {
		return nil, err
	}
	company.Modules = modules
	return entityToCompanyResponse(company), nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		Status:    c.Status,
		Modules:   c.Modules,
		CreatedAt: c.CreatedAt,
	}
}
