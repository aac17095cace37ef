package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bizos-api/internal/application/dto"
	"github.com/jhoicas/bizos-api/internal/domain"
)

// moduleChecker contrato mínimo del middleware; lo implementa *usecase.ModuleService.
type moduleChecker interface {
	HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error)
}

// RequireModule verifica que la empresa del principal tenga el módulo activo.
// Va después de Authenticate.
//   - 403 MODULE_DISABLED → módulo apagado.
//   - 503 → fallo al consultar el store.
func RequireModule(moduleName string, checker moduleChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ac := GetAuthz(c)
		if !ac.Valid() {
			return respondError(c, domain.ErrUnauthorized)
		}

		active, err := checker.HasActiveModule(c.UserContext(), ac.CompanyID(), moduleName)
		if err != nil {
			requestLog(c).Error().Err(err).Str("module", moduleName).Msg("verificación de módulo")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "MODULE_CHECK_FAILED",
				Message: "no se pudo verificar el módulo, intente más tarde",
			})
		}
		if !active {
			return respondError(c, fmt.Errorf("%w: %s", domain.ErrModuleDisabled, moduleName))
		}
		return c.Next()
	}
}
