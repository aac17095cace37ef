package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bizos-api/internal/domain"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
	"github.com/jhoicas/bizos-api/internal/domain/repository"
)

var (
	_ repository.ClientRepository        = (*ClientRepo)(nil)
	_ repository.ProjectUpdateRepository = (*ProjectUpdateRepo)(nil)
)

// ClientRepo clientes del portal sobre PostgreSQL.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, company_id, email, password_hash, name, status, created_at`

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	if err := row.Scan(&c.ID, &c.CompanyID, &c.Email, &c.PasswordHash, &c.Name, &c.Status, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un cliente.
func (r *ClientRepo) Create(ctx context.Context, client *entity.Client) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO clients (id, company_id, email, password_hash, name, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		client.ID, client.CompanyID, client.Email, client.PasswordHash, client.Name, client.Status, client.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *ClientRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	return r.getOne(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
}

// GetByEmail obtiene un cliente por email.
func (r *ClientRepo) GetByEmail(ctx context.Context, email string) (*entity.Client, error) {
	return r.getOne(ctx, `SELECT `+clientColumns+` FROM clients WHERE email = $1`, email)
}

// GetByCompanyAndID obtiene un cliente de la empresa indicada.
func (r *ClientRepo) GetByCompanyAndID(ctx context.Context, companyID, id string) (*entity.Client, error) {
	return r.getOne(ctx, `SELECT `+clientColumns+` FROM clients WHERE company_id = $1 AND id = $2`, companyID, id)
}

// ListByCompany lista clientes de la empresa.
func (r *ClientRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Client, error) {
	limit, offset = page(limit, offset)
	rows, err := r.q.Query(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// CountByCompany número de clientes de la empresa.
func (r *ClientRepo) CountByCompany(ctx context.Context, companyID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM clients WHERE company_id = $1`, companyID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return n, nil
}

// UpdatePasswordHash reemplaza el hash de contraseña.
func (r *ClientRepo) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE clients SET password_hash = $2 WHERE id = $1`, id, hash)
	if err != nil {
		return fmt.Errorf("update client password: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ProjectUpdateRepo avances de proyecto sobre PostgreSQL.
type ProjectUpdateRepo struct {
	q Querier
}

// NewProjectUpdateRepository construye el adaptador.
func NewProjectUpdateRepository(q Querier) *ProjectUpdateRepo {
	return &ProjectUpdateRepo{q: q}
}

// Create persiste un avance.
func (r *ProjectUpdateRepo) Create(ctx context.Context, u *entity.ProjectUpdate) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO project_updates (id, company_id, client_id, title, content, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.CompanyID, u.ClientID, u.Title, u.Content, u.Status, u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert project update: %w", err)
	}
	return nil
}

// ListByClient avances de un cliente, más recientes primero.
func (r *ProjectUpdateRepo) ListByClient(ctx context.Context, companyID, clientID string) ([]*entity.ProjectUpdate, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, client_id, title, content, status, created_at
		FROM project_updates WHERE company_id = $1 AND client_id = $2 ORDER BY created_at DESC`,
		companyID, clientID)
	if err != nil {
		return nil, fmt.Errorf("list project updates: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProjectUpdate
	for rows.Next() {
		var u entity.ProjectUpdate
		if err := rows.Scan(&u.ID, &u.CompanyID, &u.ClientID, &u.Title, &u.Content, &u.Status, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan project update: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}
