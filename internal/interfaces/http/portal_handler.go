package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bizos-api/internal/application/auth"
	"github.com/jhoicas/bizos-api/internal/application/dto"
	"github.com/jhoicas/bizos-api/internal/application/usecase"
)

// PortalHandler portal de clientes: login y vistas del cliente, y gestión por el staff.
type PortalHandler struct {
	auth *auth.AuthUseCase
	uc   *usecase.PortalUseCase
}

// NewPortalHandler construye el handler.
func NewPortalHandler(authUC *auth.AuthUseCase, uc *usecase.PortalUseCase) *PortalHandler {
	return &PortalHandler{auth: authUC, uc: uc}
}

// Login godoc
// @Summary      Login de cliente del portal
// @Tags         portal
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.PortalLoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/v1/portal/login [post]
func (h *PortalHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.auth.PortalLogin(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Perfil del cliente autenticado
// @Tags         portal
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  dto.PortalMeResponse
// @Router       /api/v1/portal/me [get]
func (h *PortalHandler) Me(c *fiber.Ctx) error {
	out, err := h.auth.PortalMe(c.UserContext(), GetAuthz(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Updates godoc
// @Summary      Novedades de proyecto del cliente
// @Tags         portal
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  dto.ProjectUpdateResponse
// @Router       /api/v1/portal/updates [get]
func (h *PortalHandler) Updates(c *fiber.Ctx) error {
	out, err := h.uc.ListUpdates(c.UserContext(), GetAuthz(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Invoices godoc
// @Summary      Facturas del cliente
// @Tags         portal
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  dto.InvoiceResponse
// @Router       /api/v1/portal/invoices [get]
func (h *PortalHandler) Invoices(c *fiber.Ctx) error {
	out, err := h.uc.ListInvoices(c.UserContext(), GetAuthz(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListClients godoc
// @Summary      Clientes del portal de la empresa
// @Tags         portal
// @Produce      json
// @Security     Bearer
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.ClientResponse
// @Router       /api/v1/portal/staff/clients [get]
func (h *PortalHandler) ListClients(c *fiber.Ctx) error {
	out, err := h.uc.ListClients(c.UserContext(), GetAuthz(c), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateClient godoc
// @Summary      Alta de cliente del portal
// @Tags         portal
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateClientRequest  true  "Cliente"
// @Success      201   {object}  dto.CreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/portal/staff/clients [post]
func (h *PortalHandler) CreateClient(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateClient(c.UserContext(), GetAuthz(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PostUpdate godoc
// @Summary      Publicar novedad para un cliente
// @Tags         portal
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateProjectUpdateRequest  true  "Novedad"
// @Success      201   {object}  dto.CreatedResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/portal/staff/updates [post]
func (h *PortalHandler) PostUpdate(c *fiber.Ctx) error {
	var in dto.CreateProjectUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.PostUpdate(c.UserContext(), GetAuthz(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
