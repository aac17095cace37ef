package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bizos-api/internal/application/dto"
	"github.com/jhoicas/bizos-api/internal/application/usecase"
)

// SocialHandler plataformas conectadas y publicaciones programadas.
type SocialHandler struct {
	uc *usecase.SocialUseCase
}

// NewSocialHandler construye el handler.
func NewSocialHandler(uc *usecase.SocialUseCase) *SocialHandler {
	return &SocialHandler{uc: uc}
}

// ListPlatforms godoc
// @Summary      Plataformas conectadas
// @Tags         social
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  dto.PlatformResponse
// @Router       /api/v1/social/platforms [get]
func (h *SocialHandler) ListPlatforms(c *fiber.Ctx) error {
	out, err := h.uc.ListPlatforms(c.UserContext(), GetAuthz(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ConnectPlatform godoc
// @Summary      Conectar plataforma
// @Tags         social
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.ConnectPlatformRequest  true  "Plataforma"
// @Success      201   {object}  dto.PlatformResponse
// @Router       /api/v1/social/platforms [post]
func (h *SocialHandler) ConnectPlatform(c *fiber.Ctx) error {
	var in dto.ConnectPlatformRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ConnectPlatform(c.UserContext(), GetAuthz(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPosts godoc
// @Summary      Publicaciones programadas
// @Tags         social
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  dto.PostResponse
// @Router       /api/v1/social/posts [get]
func (h *SocialHandler) ListPosts(c *fiber.Ctx) error {
	out, err := h.uc.ListPosts(c.UserContext(), GetAuthz(c), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SchedulePost godoc
// @Summary      Programar publicación
// @Tags         social
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.SchedulePostRequest  true  "Publicación"
// @Success      201   {object}  dto.CreatedResponse
// @Router       /api/v1/social/posts [post]
func (h *SocialHandler) SchedulePost(c *fiber.Ctx) error {
	var in dto.SchedulePostRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SchedulePost(c.UserContext(), GetAuthz(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
