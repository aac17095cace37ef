package ports

import (
	"context"
	"time"

	"github.com/jhoicas/bizos-api/pkg/logger"
)

// Tipos de evento de dominio publicados tras el commit.
const (
	EventCompanyRegistered   = "company.registered"
	EventBookingCreated      = "booking.created"
	EventStockUpdated        = "stock.updated"
	EventInvoiceCreated      = "invoice.created"
	EventReceiptScanned      = "receipt.scanned"
	EventSocialPostScheduled = "social.post_scheduled"
)

// Event evento de dominio. CompanyID se usa como clave de partición.
type Event struct {
	Type       string         `json:"type"`
	CompanyID  string         `json:"company_id"`
	EntityID   string         `json:"entity_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data,omitempty"`
}

// EventPublisher puerto de salida para eventos. La publicación es best-effort:
// un fallo no revierte la operación ya confirmada.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// Notify publica ev y registra el fallo sin propagarlo: la operación ya fue confirmada.
func Notify(ctx context.Context, pub EventPublisher, log *logger.Logger, ev Event) {
	if pub == nil {
		return
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	if err := pub.Publish(ctx, ev); err != nil && log != nil {
		log.Warn().Err(err).Str("event", ev.Type).Str("company_id", ev.CompanyID).
			Str("entity_id", ev.EntityID).Msg("no se pudo publicar el evento")
	}
}
