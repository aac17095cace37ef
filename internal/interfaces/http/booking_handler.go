package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bizos-api/internal/application/dto"
	"github.com/jhoicas/bizos-api/internal/application/usecase"
)

// BookingHandler endpoints públicos de reserva y la agenda del staff.
type BookingHandler struct {
	uc *usecase.BookingUseCase
}

// NewBookingHandler construye el handler.
func NewBookingHandler(uc *usecase.BookingUseCase) *BookingHandler {
	return &BookingHandler{uc: uc}
}

// ListServices godoc
// @Summary      Servicios reservables de una empresa
// @Tags         bookings
// @Produce      json
// @Param        company_id  query  string  true  "ID de la empresa"
// @Success      200  {array}   dto.ServiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/bookings/services [get]
func (h *BookingHandler) ListServices(c *fiber.Ctx) error {
	out, err := h.uc.ListServices(c.UserContext(), c.Query("company_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListAvailability godoc
// @Summary      Franjas de disponibilidad de una empresa
// @Tags         bookings
// @Produce      json
// @Param        company_id  query  string  true  "ID de la empresa"
// @Success      200  {array}   dto.AvailabilityResponse
// @Router       /api/v1/bookings/availability [get]
func (h *BookingHandler) ListAvailability(c *fiber.Ctx) error {
	out, err := h.uc.ListAvailability(c.UserContext(), c.Query("company_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Book godoc
// @Summary      Reserva de invitado
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBookingRequest  true  "Reserva"
// @Success      201   {object}  dto.CreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/bookings/book [post]
func (h *BookingHandler) Book(c *fiber.Ctx) error {
	var in dto.CreateBookingRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Book(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateService godoc
// @Summary      Alta de servicio
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateServiceRequest  true  "Servicio"
// @Success      201   {object}  dto.CreatedResponse
// @Router       /api/v1/bookings/staff/services [post]
func (h *BookingHandler) CreateService(c *fiber.Ctx) error {
	var in dto.CreateServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateService(c.UserContext(), GetAuthz(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateAvailability godoc
// @Summary      Publicar franja semanal
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateAvailabilityRequest  true  "Franja"
// @Success      201   {object}  dto.AvailabilityResponse
// @Router       /api/v1/bookings/staff/availability [post]
func (h *BookingHandler) CreateAvailability(c *fiber.Ctx) error {
	var in dto.CreateAvailabilityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateAvailability(c.UserContext(), GetAuthz(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListBookings godoc
// @Summary      Reservas de la empresa
// @Tags         bookings
// @Produce      json
// @Security     Bearer
// @Param        status  query  string  false  "pending, confirmed, cancelled, completed"
// @Param        limit   query  int     false  "Límite"  default(50)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.BookingResponse
// @Router       /api/v1/bookings/staff/bookings [get]
func (h *BookingHandler) ListBookings(c *fiber.Ctx) error {
	out, err := h.uc.ListBookings(c.UserContext(), GetAuthz(c), c.Query("status"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateBookingStatus godoc
// @Summary      Cambiar estado de una reserva
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                   true  "ID de la reserva"
// @Param        body  body  dto.UpdateStatusRequest  true  "Estado"
// @Success      200   {object}  dto.BookingResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/bookings/staff/bookings/{id}/status [patch]
func (h *BookingHandler) UpdateBookingStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateBookingStatus(c.UserContext(), GetAuthz(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
