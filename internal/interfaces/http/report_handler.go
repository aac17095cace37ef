package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bizos-api/internal/application/dto"
	"github.com/jhoicas/bizos-api/internal/application/usecase"
	"github.com/jhoicas/bizos-api/internal/domain/authz"
)

// ReportHandler reportes de campo y encuestas.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// CreateFieldReport godoc
// @Summary      Registrar reporte de campo
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateFieldReportRequest  true  "Reporte"
// @Success      201   {object}  dto.CreatedResponse
// @Router       /api/v1/reports/field-reports [post]
func (h *ReportHandler) CreateFieldReport(c *fiber.Ctx) error {
	var in dto.CreateFieldReportRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateFieldReport(c.UserContext(), GetAuthz(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListFieldReports godoc
// @Summary      Reportes de campo de la empresa
// @Tags         reports
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  dto.FieldReportResponse
// @Router       /api/v1/reports/field-reports [get]
func (h *ReportHandler) ListFieldReports(c *fiber.Ctx) error {
	out, err := h.uc.ListFieldReports(c.UserContext(), GetAuthz(c), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListSurveys godoc
// @Summary      Encuestas activas de una empresa
// @Tags         reports
// @Produce      json
// @Param        company_id  query  string  true  "ID de la empresa"
// @Success      200  {array}   dto.SurveyResponseDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/reports/surveys [get]
func (h *ReportHandler) ListSurveys(c *fiber.Ctx) error {
	out, err := h.uc.ListSurveys(c.UserContext(), c.Query("company_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateSurvey godoc
// @Summary      Crear encuesta con preguntas ordenadas
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateSurveyRequest  true  "Encuesta"
// @Success      201   {object}  dto.SurveyResponseDTO
// @Router       /api/v1/reports/surveys [post]
func (h *ReportHandler) CreateSurvey(c *fiber.Ctx) error {
	var in dto.CreateSurveyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateSurvey(c.UserContext(), GetAuthz(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Respond godoc
// @Summary      Responder encuesta
// @Description  Invitado o cliente del portal; con token de cliente el client_id sale del token.
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la encuesta"
// @Param        body  body  dto.SubmitSurveyRequest  true  "Respuestas"
// @Success      201   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/reports/surveys/{id}/respond [post]
func (h *ReportHandler) Respond(c *fiber.Ctx) error {
	var in dto.SubmitSurveyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	var client *authz.Context
	if ac := GetAuthz(c); ac.Valid() {
		client = &ac
	}
	out, err := h.uc.Respond(c.UserContext(), c.Params("id"), in, client)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListResponses godoc
// @Summary      Respuestas de una encuesta
// @Tags         reports
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID de la encuesta"
// @Success      200  {array}   dto.SurveyAnswerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/reports/surveys/{id}/responses [get]
func (h *ReportHandler) ListResponses(c *fiber.Ctx) error {
	out, err := h.uc.ListResponses(c.UserContext(), GetAuthz(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
