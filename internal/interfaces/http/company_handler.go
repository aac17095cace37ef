package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bizos-api/internal/application/dto"
	"github.com/jhoicas/bizos-api/internal/application/usecase"
)

// CompanyHandler empresa del token y sus módulos.
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler inyectando el caso de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Get godoc
// @Summary      Empresa del usuario autenticado
// @Tags         company
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  dto.CompanyResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/v1/company [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetAuthz(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateModules godoc
// @Summary      Activar o desactivar módulos
// @Tags         company
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.UpdateModulesRequest  true  "Módulos"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/v1/company/modules [patch]
func (h *CompanyHandler) UpdateModules(c *fiber.Ctx) error {
	var in dto.UpdateModulesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateModules(c.UserContext(), GetAuthz(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
