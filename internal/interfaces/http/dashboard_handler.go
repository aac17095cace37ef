package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/bizos-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats godoc
// @Summary      Contadores del dashboard
// @Description  Clientes, reservas pendientes y facturas sin pagar de la empresa del token.
// @Tags         dashboard
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  dto.DashboardStatsResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/v1/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.Stats(c.UserContext(), GetAuthz(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
