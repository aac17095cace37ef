package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/bizos-api/internal/domain"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
	"github.com/jhoicas/bizos-api/internal/domain/repository"
)

// IsID informa si s es un UUID; un id mal formado nunca llega a la base.
func IsID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// publicCompany resuelve la empresa de un endpoint público por su id (solo clave de búsqueda).
// Empresa inexistente o no activa: ErrNotFound. Módulo apagado: ErrModuleDisabled.
func publicCompany(ctx context.Context, companies repository.CompanyRepository, companyID, module string) (*entity.Company, error) {
	companyID = strings.TrimSpace(companyID)
	if companyID == "" {
		return nil, domain.Invalid("company_id es obligatorio")
	}
	if !IsID(companyID) {
		return nil, domain.ErrNotFound
	}
	company, err := companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil || company.Status != entity.StatusActive {
		return nil, domain.ErrNotFound
	}
	if !company.Modules.Enabled(module) {
		return nil, fmt.Errorf("%w: %s", domain.ErrModuleDisabled, module)
	}
	return company, nil
}
