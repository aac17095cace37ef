package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bizos-api/internal/application/dto"
	"github.com/jhoicas/bizos-api/internal/application/ports"
	"github.com/jhoicas/bizos-api/internal/domain"
	"github.com/jhoicas/bizos-api/internal/domain/authz"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
	"github.com/jhoicas/bizos-api/internal/domain/repository"
)

// UpdateStock aplica un delta al stock dentro de una transacción: bloquea la fila del
// producto (SELECT FOR UPDATE), escribe el nuevo stock e inserta el movimiento. Un
// producto de otra empresa se ve como inexistente; el stock nunca queda negativo.
func (uc *UseCase) UpdateStock(ctx context.Context, ac authz.Context, in dto.StockUpdateRequest) (*dto.StockUpdateResponse, error) {
	if in.ProductID == "" {
		return nil, domain.Invalid("product_id es obligatorio")
	}
	if in.ChangeAmount.IsZero() {
		return nil, domain.Invalid("change_amount no puede ser cero")
	}
	if !isUUID(in.ProductID) {
		return nil, domain.ErrNotFound
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		reason = entity.DefaultMovementReason
	}

	var (
		newStock decimal.Decimal
		product  *entity.Product
	)
	movement := &entity.StockMovement{
		ID:           uuid.New().String(),
		CompanyID:    ac.CompanyID(),
		ProductID:    in.ProductID,
		UserID:       ac.PrincipalID(),
		ChangeAmount: in.ChangeAmount,
		Reason:       reason,
	}
	err := uc.tx.Run(ctx, func(r repository.Repositories) error {
		p, err := r.Products.GetForUpdate(ctx, ac.CompanyID(), in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		newStock = p.CurrentStock.Add(in.ChangeAmount)
		if newStock.IsNegative() {
			return fmt.Errorf("%w: stock actual %s, cambio %s", domain.ErrInsufficientStock, p.CurrentStock, in.ChangeAmount)
		}
		if err := r.Products.UpdateStock(ctx, p.ID, newStock); err != nil {
			return err
		}
		movement.CreatedAt = time.Now().UTC()
		if err := r.StockMovements.Create(ctx, movement); err != nil {
			return err
		}
		p.CurrentStock = newStock
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	ports.Notify(ctx, uc.publisher, uc.log, ports.Event{
		Type:      ports.EventStockUpdated,
		CompanyID: ac.CompanyID(),
		EntityID:  product.ID,
		Data: map[string]any{
			"change_amount": in.ChangeAmount.String(),
			"new_stock":     newStock.String(),
			"low_stock":     product.BelowMinimum(),
		},
	})
	return &dto.StockUpdateResponse{
		Message:    "Stock updated successfully",
		NewStock:   newStock,
		MovementID: movement.ID,
	}, nil
}
