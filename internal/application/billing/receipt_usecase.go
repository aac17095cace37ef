package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bizos-api/internal/application/dto"
	"github.com/jhoicas/bizos-api/internal/application/ports"
	"github.com/jhoicas/bizos-api/internal/domain"
	"github.com/jhoicas/bizos-api/internal/domain/authz"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
	"github.com/jhoicas/bizos-api/internal/domain/repository"
	"github.com/jhoicas/bizos-api/pkg/logger"
)

const (
	// MaxReceiptBytes tamaño máximo de la imagen aceptada.
	MaxReceiptBytes = 10 << 20
	defaultCurrency = "USD"
	scanTimeout     = 30 * time.Second
	// markTimeout para dejar el recibo en failed aunque la petición ya se haya cancelado.
	markTimeout     = 5 * time.Second
)

// ReceiptUseCase escaneo de recibos con el extractor OCR/IA inyectado.
// Aplica un timeout a cada llamada externa para no bloquear los goroutines del servidor.
type ReceiptUseCase struct {
	repos     repository.Repositories
	scanner   ports.ReceiptScanner
	publisher ports.EventPublisher
	log       *logger.Logger
}

// NewReceiptUseCase construye el caso de uso inyectando el puerto ReceiptScanner.
func NewReceiptUseCase(repos repository.Repositories, scanner ports.ReceiptScanner, publisher ports.EventPublisher, log *logger.Logger) *ReceiptUseCase {
	return &ReceiptUseCase{repos: repos, scanner: scanner, publisher: publisher, log: log}
}

// Scan persiste el recibo en processing, llama al extractor y guarda el resultado
// (completed con los campos, o failed). Si el extractor falla devuelve ErrScanFailed
// después de dejar el recibo en failed.
func (uc *ReceiptUseCase) Scan(ctx context.Context, ac authz.Context, image []byte, mimeType string) (*dto.ScanReceiptResponse, error) {
	if len(image) == 0 {
		return nil, domain.Invalid("la imagen del recibo es obligatoria")
	}
	if len(image) > MaxReceiptBytes {
		return nil, domain.Invalid("la imagen supera %d MB", MaxReceiptBytes>>20)
	}
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(image)
	}
	mimeType = strings.TrimSpace(strings.SplitN(mimeType, ";", 2)[0])
	if !strings.HasPrefix(mimeType, "image/") && mimeType != "application/pdf" {
		return nil, domain.Invalid("tipo de archivo no soportado %q", mimeType)
	}

	rc := &entity.Receipt{
		ID:        uuid.New().String(),
		CompanyID: ac.CompanyID(),
		UserID:    ac.PrincipalID(),
		Currency:  defaultCurrency,
		OCRStatus: entity.OCRProcessing,
		CreatedAt: time.Now().UTC(),
	}
	rc.FilePath = fmt.Sprintf("receipts/%s/%s", rc.CompanyID, rc.ID)
	if err := uc.repos.Receipts.Create(ctx, rc); err != nil {
		return nil, err
	}

	scanCtx, cancel := context.WithTimeout(ctx, scanTimeout)
	defer cancel()
	fields, scanErr := uc.scanner.ScanReceipt(scanCtx, image, mimeType)
	if scanErr != nil {
		rc.OCRStatus = entity.OCRFailed
		rc.RawOCRData, _ = json.Marshal(map[string]string{"error": scanErr.Error()})
		markCtx, cancelMark := context.WithTimeout(context.WithoutCancel(ctx), markTimeout)
		defer cancelMark()
		if err := uc.repos.Receipts.Update(markCtx, rc); err != nil {
			uc.log.Error().Err(err).Str("receipt_id", rc.ID).Msg("no se pudo marcar el recibo como fallido")
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrScanFailed, scanErr)
	}

	rc.VendorName = fields.VendorName
	rc.Date = fields.Date
	rc.TotalAmount = fields.TotalAmount
	if fields.Currency != "" {
		rc.Currency = strings.ToUpper(fields.Currency)
	}
	rc.RawOCRData = fields.Raw
	rc.OCRStatus = entity.OCRCompleted
	if err := uc.repos.Receipts.Update(ctx, rc); err != nil {
		return nil, err
	}

	ports.Notify(ctx, uc.publisher, uc.log, ports.Event{
		Type:      ports.EventReceiptScanned,
		CompanyID: rc.CompanyID,
		EntityID:  rc.ID,
		Data:      map[string]any{"vendor_name": rc.VendorName, "currency": rc.Currency},
	})
	return &dto.ScanReceiptResponse{
		Message: "Receipt scanned successfully",
		Receipt: toReceiptResponse(rc),
		Data:    rc.RawOCRData,
	}, nil
}

// List recibos de la empresa.
func (uc *ReceiptUseCase) List(ctx context.Context, ac authz.Context, page dto.PageRequest) ([]dto.ReceiptResponse, error) {
	page.DefaultPage()
	list, err := uc.repos.Receipts.ListByCompany(ctx, ac.CompanyID(), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReceiptResponse, 0, len(list))
	for _, rc := range list {
		out = append(out, toReceiptResponse(rc))
	}
	return out, nil
}

func toReceiptResponse(rc *entity.Receipt) dto.ReceiptResponse {
	return dto.ReceiptResponse{
		ID:          rc.ID,
		VendorName:  rc.VendorName,
		Date:        rc.Date,
		TotalAmount: rc.TotalAmount,
		Currency:    rc.Currency,
		OCRStatus:   rc.OCRStatus,
		CreatedAt:   rc.CreatedAt,
	}
}
