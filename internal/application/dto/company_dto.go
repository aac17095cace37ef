package dto

import (
	"time"

	"github.com/jhoicas/bizos-api/internal/domain/entity"
)

// CompanySummary datos mínimos de empresa en respuestas de auth.
type CompanySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CompanyResponse salida de GET /company.
type CompanyResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Slug      string         `json:"slug"`
	Status    string         `json:"status"`
	Modules   entity.Modules `json:"modules"`
	CreatedAt time.Time      `json:"created_at"`
}

// UpdateModulesRequest activa o desactiva módulos por nombre: {"inventory": true}.
type UpdateModulesRequest struct {
	Modules map[string]bool `json:"modules" validate:"required"`
}
