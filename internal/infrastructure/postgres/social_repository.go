package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/bizos-api/internal/domain/entity"
	"github.com/jhoicas/bizos-api/internal/domain/repository"
)

var (
	_ repository.SocialPlatformRepository = (*SocialPlatformRepo)(nil)
	_ repository.SocialPostRepository     = (*SocialPostRepo)(nil)
)

// SocialPlatformRepo cuentas conectadas.
type SocialPlatformRepo struct {
	q Querier
}

// NewSocialPlatformRepository construye el adaptador.
func NewSocialPlatformRepository(q Querier) *SocialPlatformRepo {
	return &SocialPlatformRepo{q: q}
}

// Create persiste la conexión.
func (r *SocialPlatformRepo) Create(ctx context.Context, p *entity.SocialPlatform) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO social_platforms (id, company_id, platform_name, account_name, access_token, is_connected, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.CompanyID, p.PlatformName, p.AccountName, p.AccessToken, p.IsConnected, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert social platform: %w", err)
	}
	return nil
}

// ListByCompany conexiones de la empresa.
func (r *SocialPlatformRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.SocialPlatform, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, platform_name, account_name, access_token, is_connected, created_at
		FROM social_platforms WHERE company_id = $1 ORDER BY platform_name, account_name`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list social platforms: %w", err)
	}
	defer rows.Close()
	var list []*entity.SocialPlatform
	for rows.Next() {
		var p entity.SocialPlatform
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.PlatformName, &p.AccountName, &p.AccessToken,
			&p.IsConnected, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan social platform: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// CountByCompanyAndIDs cuenta cuántos de los ids pertenecen a la empresa.
func (r *SocialPlatformRepo) CountByCompanyAndIDs(ctx context.Context, companyID string, ids []string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM social_platforms WHERE company_id = $1 AND id::text = ANY($2)`, companyID, ids).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count social platforms: %w", err)
	}
	return n, nil
}

// SocialPostRepo publicaciones.
type SocialPostRepo struct {
	q Querier
}

// NewSocialPostRepository construye el adaptador.
func NewSocialPostRepository(q Querier) *SocialPostRepo {
	return &SocialPostRepo{q: q}
}

// Create persiste la publicación.
func (r *SocialPostRepo) Create(ctx context.Context, p *entity.SocialPost) error {
	media := p.MediaURLs
	if media == nil {
		media = []string{}
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO social_posts (id, company_id, user_id, content, media_urls, scheduled_for, status, platform_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.CompanyID, p.UserID, p.Content, media, p.ScheduledFor, p.Status, p.PlatformIDs, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert social post: %w", err)
	}
	return nil
}

// ListByCompany publicaciones de la empresa por fecha programada.
func (r *SocialPostRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.SocialPost, error) {
	limit, offset = page(limit, offset)
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, user_id, content, media_urls, scheduled_for, status, platform_ids, created_at
		FROM social_posts WHERE company_id = $1 ORDER BY scheduled_for LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list social posts: %w", err)
	}
	defer rows.Close()
	var list []*entity.SocialPost
	for rows.Next() {
		var p entity.SocialPost
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.UserID, &p.Content, &p.MediaURLs, &p.ScheduledFor,
			&p.Status, &p.PlatformIDs, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan social post: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
