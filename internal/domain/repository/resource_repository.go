package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bizos-api/internal/domain/entity"
)

// ServiceRepository servicios reservables.
type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	GetByCompanyAndID(ctx context.Context, companyID, id string) (*entity.Service, error)
	ListActiveByCompany(ctx context.Context, companyID string) ([]*entity.Service, error)
}

// AvailabilityRepository franjas de disponibilidad.
type AvailabilityRepository interface {
	Create(ctx context.Context, a *entity.Availability) error
	ListActiveByCompany(ctx context.Context, companyID string) ([]*entity.Availability, error)
}

// BookingRepository reservas.
type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	GetByCompanyAndID(ctx context.Context, companyID, id string) (*entity.Booking, error)
	// ListByCompany filtra por estado si status no está vacío.
	ListByCompany(ctx context.Context, companyID, status string, limit, offset int) ([]*entity.Booking, error)
	UpdateStatus(ctx context.Context, companyID, id, status string) error
	CountByStatus(ctx context.Context, companyID, status string) (int, error)
}

// CategoryRepository categorías de productos.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByCompanyAndID(ctx context.Context, companyID, id string) (*entity.Category, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Category, error)
}

// ProductRepository productos.
type ProductRepository interface {
	// Create devuelve domain.ErrDuplicate si el SKU ya existe en la empresa.
	Create(ctx context.Context, product *entity.Product) error
	GetByCompanyAndID(ctx context.Context, companyID, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, companyID, id string) (*entity.Product, error)
	UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error)
}

// StockMovementRepository auditoría de stock (solo inserción).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByProduct(ctx context.Context, companyID, productID string) ([]*entity.StockMovement, error)
}

// InvoiceRepository facturas e ítems.
type InvoiceRepository interface {
	// Create inserta cabecera e ítems. domain.ErrDuplicate si el número ya existe en la empresa.
	Create(ctx context.Context, invoice *entity.Invoice) error
	// GetByCompanyAndID incluye los ítems.
	GetByCompanyAndID(ctx context.Context, companyID, id string) (*entity.Invoice, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Invoice, error)
	ListByClient(ctx context.Context, companyID, clientID string) ([]*entity.Invoice, error)
	// UpdateStatus pasa de from a to solo si la factura sigue en from; si cambió entre
	// la lectura y la escritura devuelve domain.ErrConflict.
	UpdateStatus(ctx context.Context, companyID, id, from, to string) error
	// Delete borra la factura y sus ítems si sigue en status; si no, domain.ErrConflict.
	Delete(ctx context.Context, companyID, id, status string) error
	// LastSequence mayor consecutivo INV-NNNNNN usado por la empresa (0 si no hay).
	LastSequence(ctx context.Context, companyID string) (int, error)
	CountUnpaid(ctx context.Context, companyID string) (int, error)
}

// ReceiptRepository recibos escaneados.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	Update(ctx context.Context, receipt *entity.Receipt) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Receipt, error)
}

// FieldReportRepository reportes de campo.
type FieldReportRepository interface {
	Create(ctx context.Context, report *entity.FieldReport) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.FieldReport, error)
}

// SurveyRepository encuestas con sus preguntas.
type SurveyRepository interface {
	Create(ctx context.Context, survey *entity.Survey) error
	GetByCompanyAndID(ctx context.Context, companyID, id string) (*entity.Survey, error)
	ListActiveByCompany(ctx context.Context, companyID string) ([]*entity.Survey, error)
}

// SurveyResponseRepository respuestas de encuestas.
type SurveyResponseRepository interface {
	Create(ctx context.Context, response *entity.SurveyResponse) error
	ListBySurvey(ctx context.Context, companyID, surveyID string) ([]*entity.SurveyResponse, error)
}

// SocialPlatformRepository cuentas conectadas.
type SocialPlatformRepository interface {
	Create(ctx context.Context, platform *entity.SocialPlatform) error
	ListByCompany(ctx context.Context, companyID string) ([]*entity.SocialPlatform, error)
	// CountByCompanyAndIDs cuenta cuántos de los ids pertenecen a la empresa.
	CountByCompanyAndIDs(ctx context.Context, companyID string, ids []string) (int, error)
}

// SocialPostRepository publicaciones programadas.
type SocialPostRepository interface {
	Create(ctx context.Context, post *entity.SocialPost) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.SocialPost, error)
}
