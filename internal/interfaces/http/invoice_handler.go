package http

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bizos-api/internal/application/billing"
	"github.com/jhoicas/bizos-api/internal/application/dto"
	"github.com/jhoicas/bizos-api/internal/domain"
)

// InvoiceHandler facturas, PDF y escaneo de recibos.
type InvoiceHandler struct {
	invoices *billing.InvoiceUseCase
	receipts *billing.ReceiptUseCase
	pdf      *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(invoices *billing.InvoiceUseCase, receipts *billing.ReceiptUseCase, pdf *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, receipts: receipts, pdf: pdf}
}

// List godoc
// @Summary      Facturas de la empresa
// @Tags         invoicing
// @Produce      json
// @Security     Bearer
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.InvoiceResponse
// @Router       /api/v1/invoicing/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	out, err := h.invoices.List(c.UserContext(), GetAuthz(c), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear factura con sus ítems
// @Tags         invoicing
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateInvoiceRequest  true  "Factura"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/invoicing/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.invoices.Create(c.UserContext(), GetAuthz(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura
// @Tags         invoicing
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/invoicing/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.invoices.Get(c.UserContext(), GetAuthz(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de factura
// @Tags         invoicing
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                   true  "ID de la factura"
// @Param        body  body  dto.UpdateStatusRequest  true  "Estado"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/invoicing/invoices/{id}/status [patch]
func (h *InvoiceHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.invoices.UpdateStatus(c.UserContext(), GetAuthz(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar factura y sus ítems
// @Tags         invoicing
// @Security     Bearer
// @Param        id   path  string  true  "ID de la factura"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/invoicing/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.invoices.Delete(c.UserContext(), GetAuthz(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadPDF godoc
// @Summary      Descargar la factura en PDF
// @Tags         invoicing
// @Produce      application/pdf
// @Security     Bearer
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/invoicing/invoices/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	body, filename, err := h.pdf.DownloadInvoicePDF(c.UserContext(), GetAuthz(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(body)
}

// ScanReceipt godoc
// @Summary      Escanear recibo (OCR)
// @Description  Acepta multipart con el campo "image" o la imagen como cuerpo binario.
// @Tags         invoicing
// @Accept       multipart/form-data
// @Produce      json
// @Security     Bearer
// @Param        image  formData  file  false  "Imagen del recibo"
// @Success      201  {object}  dto.ScanReceiptResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/v1/invoicing/receipts/scan [post]
func (h *InvoiceHandler) ScanReceipt(c *fiber.Ctx) error {
	image, mimeType, err := receiptImage(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.receipts.Scan(c.UserContext(), GetAuthz(c), image, mimeType)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListReceipts godoc
// @Summary      Recibos escaneados de la empresa
// @Tags         invoicing
// @Produce      json
// @Security     Bearer
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.ReceiptResponse
// @Router       /api/v1/invoicing/receipts [get]
func (h *InvoiceHandler) ListReceipts(c *fiber.Ctx) error {
	out, err := h.receipts.List(c.UserContext(), GetAuthz(c), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// receiptImage extrae la imagen del campo multipart "image" o, si no es multipart, del cuerpo.
func receiptImage(c *fiber.Ctx) ([]byte, string, error) {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		fh, err := c.FormFile("image")
		if err != nil {
			return nil, "", domain.Invalid("falta el campo multipart image")
		}
		f, err := fh.Open()
		if err != nil {
			return nil, "", err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, "", err
		}
		return data, fh.Header.Get(fiber.HeaderContentType), nil
	}
	// El buffer de fasthttp se reutiliza entre peticiones.
	data := append([]byte(nil), c.Body()...)
	return data, c.Get(fiber.HeaderContentType), nil
}
