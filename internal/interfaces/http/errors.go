package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bizos-api/internal/application/dto"
	"github.com/jhoicas/bizos-api/internal/domain"
)

// respondError traduce errores de dominio a HTTP. Es el único sitio que conoce el mapeo;
// lo que no es un error de dominio se registra con el request id y sale como 500 genérico.
func respondError(c *fiber.Ctx, err error) error {
	var (
		status int
		body   dto.ErrorResponse
	)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, body = fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: domain.ValidationDetail(err)}
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		status, body = fiber.StatusBadRequest, dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: domain.ErrEmailAlreadyExists.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		status, body = fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales o token inválidos"}
	case errors.Is(err, domain.ErrInactive):
		status, body = fiber.StatusForbidden, dto.ErrorResponse{Code: "INACTIVE", Message: "la cuenta no está activa"}
	case errors.Is(err, domain.ErrModuleDisabled):
		status, body = fiber.StatusForbidden, dto.ErrorResponse{Code: "MODULE_DISABLED", Message: err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		status, body = fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: "permiso insuficiente"}
	case errors.Is(err, domain.ErrNotFound):
		status, body = fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrDuplicate):
		status, body = fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()}
	case errors.Is(err, domain.ErrInsufficientStock):
		status, body = fiber.StatusConflict, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		status, body = fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, domain.ErrScanFailed):
		requestLog(c).Warn().Err(err).Msg("escaneo de recibo fallido")
		status, body = fiber.StatusBadGateway, dto.ErrorResponse{Code: "SCAN_FAILED", Message: domain.ErrScanFailed.Error()}
	default:
		requestLog(c).Error().Err(err).Str("path", c.Path()).Msg("error interno")
		status, body = fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"}
	}
	return c.Status(status).JSON(body)
}

// badBody respuesta para cuerpos que no se pueden decodificar.
func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// errorHandler ErrorHandler de la app: errores de Fiber (404 de ruta, 413, 405) con el mismo
// cuerpo {code,message}; el resto pasa por respondError.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "HTTP_ERROR"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "ROUTE_NOT_FOUND"
		case fiber.StatusRequestEntityTooLarge:
			code = "PAYLOAD_TOO_LARGE"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return respondError(c, err)
}

// pageFromQuery lee limit/offset; los use cases aplican los topes.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{Limit: c.QueryInt("limit", 0), Offset: c.QueryInt("offset", 0)}
}
