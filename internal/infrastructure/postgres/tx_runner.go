package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/bizos-api/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepositories construye todos los adaptadores sobre el mismo Querier (pool o tx).
func NewRepositories(q Querier) repository.Repositories {
	return repository.Repositories{
		Companies:       NewCompanyRepository(q),
		Users:           NewUserRepository(q),
		Clients:         NewClientRepository(q),
		ProjectUpdates:  NewProjectUpdateRepository(q),
		Services:        NewServiceRepository(q),
		Availability:    NewAvailabilityRepository(q),
		Bookings:        NewBookingRepository(q),
		Categories:      NewCategoryRepository(q),
		Products:        NewProductRepository(q),
		StockMovements:  NewStockMovementRepository(q),
		Invoices:        NewInvoiceRepository(q),
		Receipts:        NewReceiptRepository(q),
		FieldReports:    NewFieldReportRepository(q),
		Surveys:         NewSurveyRepository(q),
		SurveyResponses: NewSurveyResponseRepository(q),
		Platforms:       NewSocialPlatformRepository(q),
		Posts:           NewSocialPostRepository(q),
	}
}
