package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bizos-api/internal/domain"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
	"github.com/jhoicas/bizos-api/internal/domain/repository"
)

var (
	_ repository.InvoiceRepository = (*InvoiceRepo)(nil)
	_ repository.ReceiptRepository = (*ReceiptRepo)(nil)
)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, company_id, client_id, invoice_number, status, due_date,
	total_amount, tax_amount, notes, created_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var clientID *string
	if err := row.Scan(&inv.ID, &inv.CompanyID, &clientID, &inv.InvoiceNumber, &inv.Status, &inv.DueDate,
		&inv.TotalAmount, &inv.TaxAmount, &inv.Notes, &inv.CreatedAt); err != nil {
		return nil, err
	}
	inv.ClientID = fromNull(clientID)
	return &inv, nil
}

// Create persiste la cabecera y sus líneas. Debe ejecutarse dentro de una tx.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO invoices (id, company_id, client_id, invoice_number, status, due_date,
			total_amount, tax_amount, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		inv.ID, inv.CompanyID, nullIfEmpty(inv.ClientID), inv.InvoiceNumber, inv.Status, inv.DueDate,
		inv.TotalAmount, inv.TaxAmount, inv.Notes, inv.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	for i := range inv.Items {
		item := &inv.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.InvoiceID = inv.ID
		_, err := r.q.Exec(ctx, `
			INSERT INTO invoice_items (id, invoice_id, position, description, quantity, unit_price, total_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			item.ID, item.InvoiceID, i, item.Description, item.Quantity, item.UnitPrice, item.TotalPrice,
		)
		if err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
	}
	return nil
}

// GetByCompanyAndID obtiene la factura con sus líneas.
func (r *InvoiceRepo) GetByCompanyAndID(ctx context.Context, companyID, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, invoice_id, description, quantity, unit_price, total_price
		FROM invoice_items WHERE invoice_id = $1 ORDER BY position`, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Description, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		inv.Items = append(inv.Items, it)
	}
	return inv, rows.Err()
}

func (r *InvoiceRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// ListByCompany facturas de la empresa (sin líneas), más recientes primero.
func (r *InvoiceRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Invoice, error) {
	limit, offset = page(limit, offset)
	return r.list(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, companyID, limit, offset)
}

// ListByClient facturas de un cliente del portal.
func (r *InvoiceRepo) ListByClient(ctx context.Context, companyID, clientID string) ([]*entity.Invoice, error) {
	return r.list(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE company_id = $1 AND client_id = $2
		ORDER BY created_at DESC`, companyID, clientID)
}

// UpdateStatus cambia el estado con la condición status = from en el mismo UPDATE.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, companyID, id, from, to string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE invoices SET status = $4 WHERE company_id = $1 AND id = $2 AND status = $3`,
		companyID, id, from, to)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return r.missingOrConflict(ctx, companyID, id)
	}
	return nil
}

// Delete elimina la factura si sigue en status; las líneas caen por ON DELETE CASCADE.
func (r *InvoiceRepo) Delete(ctx context.Context, companyID, id, status string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE company_id = $1 AND id = $2 AND status = $3`,
		companyID, id, status)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return r.missingOrConflict(ctx, companyID, id)
	}
	return nil
}

// missingOrConflict distingue una factura inexistente de una que cambió de estado.
func (r *InvoiceRepo) missingOrConflict(ctx context.Context, companyID, id string) error {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM invoices WHERE company_id = $1 AND id = $2)`,
		companyID, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check invoice: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrConflict
}

// LastSequence mayor consecutivo vigente de la empresa; nunca choca con un número existente.
func (r *InvoiceRepo) LastSequence(ctx context.Context, companyID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(MAX(CAST(SUBSTRING(invoice_number FROM 5) AS INTEGER)), 0)
		FROM invoices
		WHERE company_id = $1 AND invoice_number ~ '^INV-[0-9]+$'`, companyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("last invoice sequence: %w", err)
	}
	return n, nil
}

// CountUnpaid facturas no pagadas (excluye paid y cancelled).
func (r *InvoiceRepo) CountUnpaid(ctx context.Context, companyID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM invoices WHERE company_id = $1 AND status NOT IN ('paid', 'cancelled')`,
		companyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count unpaid invoices: %w", err)
	}
	return n, nil
}

// ReceiptRepo recibos escaneados.
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador.
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

// Create persiste el recibo.
func (r *ReceiptRepo) Create(ctx context.Context, rc *entity.Receipt) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO receipts (id, company_id, user_id, file_path, vendor_name, receipt_date, total_amount,
			currency, ocr_status, raw_ocr_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		rc.ID, rc.CompanyID, rc.UserID, rc.FilePath, rc.VendorName, rc.Date, rc.TotalAmount,
		rc.Currency, rc.OCRStatus, rawJSON(rc.RawOCRData), rc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert receipt: %w", err)
	}
	return nil
}

// Update guarda el resultado de la extracción.
func (r *ReceiptRepo) Update(ctx context.Context, rc *entity.Receipt) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE receipts SET vendor_name = $3, receipt_date = $4, total_amount = $5, currency = $6,
			ocr_status = $7, raw_ocr_data = $8
		WHERE company_id = $1 AND id = $2`,
		rc.CompanyID, rc.ID, rc.VendorName, rc.Date, rc.TotalAmount, rc.Currency, rc.OCRStatus, rawJSON(rc.RawOCRData),
	)
	if err != nil {
		return fmt.Errorf("update receipt: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany recibos de la empresa, más recientes primero.
func (r *ReceiptRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Receipt, error) {
	limit, offset = page(limit, offset)
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, user_id, file_path, vendor_name, receipt_date, total_amount,
			currency, ocr_status, raw_ocr_data, created_at
		FROM receipts WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Receipt
	for rows.Next() {
		var rc entity.Receipt
		var raw []byte
		if err := rows.Scan(&rc.ID, &rc.CompanyID, &rc.UserID, &rc.FilePath, &rc.VendorName, &rc.Date,
			&rc.TotalAmount, &rc.Currency, &rc.OCRStatus, &raw, &rc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		rc.RawOCRData = raw
		list = append(list, &rc)
	}
	return list, rows.Err()
}

// rawJSON devuelve NULL para payloads vacíos.
func rawJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
