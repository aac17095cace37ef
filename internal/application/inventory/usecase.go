package inventory

import (
	"context"
	"fmt"
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

// UseCase catálogo de productos y categorías, y cambios de stock auditados.
type UseCase struct {
	repos     repository.Repositories
	tx        repository.TxRunner
	publisher ports.EventPublisher
	log       *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(repos repository.Repositories, tx repository.TxRunner, publisher ports.EventPublisher, log *logger.Logger) *UseCase {
	return &UseCase{repos: repos, tx: tx, publisher: publisher, log: log}
}

// CreateProduct alta de producto. El stock inicial queda como stock actual sin movimiento.
func (uc *UseCase) CreateProduct(ctx context.Context, ac authz.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name es obligatorio")
	}
	if in.UnitPrice.IsNegative() || in.InitialStock.IsNegative() || in.MinStockLevel.IsNegative() {
		return nil, domain.Invalid("unit_price, initial_stock y min_stock_level no pueden ser negativos")
	}
	if in.CategoryID != "" {
		if !isUUID(in.CategoryID) {
			return nil, fmt.Errorf("%w: categoría", domain.ErrNotFound)
		}
		cat, err := uc.repos.Categories.GetByCompanyAndID(ctx, ac.CompanyID(), in.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, fmt.Errorf("%w: categoría", domain.ErrNotFound)
		}
	}
	p := &entity.Product{
		ID:            uuid.New().String(),
		CompanyID:     ac.CompanyID(),
		CategoryID:    in.CategoryID,
		SKU:           strings.TrimSpace(in.SKU),
		Name:          name,
		Description:   in.Description,
		UnitPrice:     in.UnitPrice.Round(2),
		InitialStock:  in.InitialStock,
		CurrentStock:  in.InitialStock,
		MinStockLevel: in.MinStockLevel,
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
	}
	if err := uc.repos.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// ListProducts productos de la empresa.
func (uc *UseCase) ListProducts(ctx context.Context, ac authz.Context, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	list, err := uc.repos.Products.ListByCompany(ctx, ac.CompanyID(), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// CreateCategory alta de categoría.
func (uc *UseCase) CreateCategory(ctx context.Context, ac authz.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name es obligatorio")
	}
	c := &entity.Category{
		ID:          uuid.New().String(),
		CompanyID:   ac.CompanyID(),
		Name:        name,
		Description: in.Description,
	}
	if err := uc.repos.Categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}, nil
}

// ListCategories categorías de la empresa.
func (uc *UseCase) ListCategories(ctx context.Context, ac authz.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repos.Categories.ListByCompany(ctx, ac.CompanyID())
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description})
	}
	return out, nil
}

// ListMovements historial de movimientos de un producto de la empresa.
func (uc *UseCase) ListMovements(ctx context.Context, ac authz.Context, productID string) ([]dto.StockMovementResponse, error) {
	if !isUUID(productID) {
		return nil, domain.ErrNotFound
	}
	p, err := uc.repos.Products.GetByCompanyAndID(ctx, ac.CompanyID(), productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repos.StockMovements.ListByProduct(ctx, ac.CompanyID(), p.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.StockMovementResponse{
			ID: m.ID, UserID: m.UserID, ChangeAmount: m.ChangeAmount, Reason: m.Reason, CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		CategoryID:    p.CategoryID,
		Name:          p.Name,
		SKU:           p.SKU,
		Description:   p.Description,
		Stock:         p.CurrentStock,
		Price:         p.UnitPrice,
		MinStockLevel: p.MinStockLevel,
		LowStock:      p.BelowMinimum(),
	}
}
