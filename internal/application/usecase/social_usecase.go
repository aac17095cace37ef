package usecase

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

// SocialUseCase cuentas sociales conectadas y publicaciones programadas.
type SocialUseCase struct {
	repos     repository.Repositories
	publisher ports.EventPublisher
	log       *logger.Logger
}

// NewSocialUseCase construye el caso de uso.
func NewSocialUseCase(repos repository.Repositories, publisher ports.EventPublisher, log *logger.Logger) *SocialUseCase {
	return &SocialUseCase{repos: repos, publisher: publisher, log: log}
}

// ConnectPlatform registra una cuenta. La credencial se guarda pero nunca se devuelve.
func (uc *SocialUseCase) ConnectPlatform(ctx context.Context, ac authz.Context, in dto.ConnectPlatformRequest) (*dto.PlatformResponse, error) {
	name := strings.ToLower(strings.TrimSpace(in.PlatformName))
	account := strings.TrimSpace(in.AccountName)
	if !entity.ValidPlatform(name) {
		return nil, domain.Invalid("platform_name inválido %q", in.PlatformName)
	}
	if account == "" || in.AccessToken == "" {
		return nil, domain.Invalid("account_name y access_token son obligatorios")
	}
	p := &entity.SocialPlatform{
		ID:           uuid.New().String(),
		CompanyID:    ac.CompanyID(),
		PlatformName: name,
		AccountName:  account,
		AccessToken:  in.AccessToken,
		IsConnected:  true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.repos.Platforms.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPlatformResponse(p), nil
}

// ListPlatforms cuentas conectadas de la empresa.
func (uc *SocialUseCase) ListPlatforms(ctx context.Context, ac authz.Context) ([]dto.PlatformResponse, error) {
	list, err := uc.repos.Platforms.ListByCompany(ctx, ac.CompanyID())
	if err != nil {
		return nil, err
	}
	out := make([]dto.PlatformResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPlatformResponse(p))
	}
	return out, nil
}

// SchedulePost programa una publicación. Todas las plataformas deben ser de la empresa del token.
func (uc *SocialUseCase) SchedulePost(ctx context.Context, ac authz.Context, in dto.SchedulePostRequest) (*dto.CreatedResponse, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, domain.Invalid("content es obligatorio")
	}
	if in.ScheduledFor.IsZero() {
		return nil, domain.Invalid("scheduled_for es obligatorio")
	}
	ids := make([]string, 0, len(in.PlatformIDs))
	seen := make(map[string]bool, len(in.PlatformIDs))
	for _, id := range in.PlatformIDs {
		if seen[id] {
			continue
		}
		if !IsID(id) {
			return nil, fmt.Errorf("%w: plataforma %q", domain.ErrNotFound, id)
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, domain.Invalid("platform_ids es obligatorio")
	}
	n, err := uc.repos.Platforms.CountByCompanyAndIDs(ctx, ac.CompanyID(), ids)
	if err != nil {
		return nil, err
	}
	if n != len(ids) {
		return nil, fmt.Errorf("%w: plataforma", domain.ErrNotFound)
	}
	status := entity.PostScheduled
	if in.Draft {
		status = entity.PostDraft
	}
	post := &entity.SocialPost{
		ID:           uuid.New().String(),
		CompanyID:    ac.CompanyID(),
		UserID:       ac.PrincipalID(),
		Content:      in.Content,
		MediaURLs:    in.MediaURLs,
		ScheduledFor: in.ScheduledFor.UTC(),
		Status:       status,
		PlatformIDs:  ids,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.repos.Posts.Create(ctx, post); err != nil {
		return nil, err
	}
	if status == entity.PostScheduled {
		ports.Notify(ctx, uc.publisher, uc.log, ports.Event{
			Type:      ports.EventSocialPostScheduled,
			CompanyID: post.CompanyID,
			EntityID:  post.ID,
			Data:      map[string]any{"scheduled_for": post.ScheduledFor, "platform_ids": ids},
		})
	}
	return &dto.CreatedResponse{Message: "Post scheduled successfully", ID: post.ID}, nil
}

// ListPosts publicaciones de la empresa ordenadas por fecha programada.
func (uc *SocialUseCase) ListPosts(ctx context.Context, ac authz.Context, page dto.PageRequest) ([]dto.PostResponse, error) {
	page.DefaultPage()
	list, err := uc.repos.Posts.ListByCompany(ctx, ac.CompanyID(), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PostResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.PostResponse{
			ID: p.ID, Content: p.Content, MediaURLs: p.MediaURLs, ScheduledFor: p.ScheduledFor,
			Status: p.Status, PlatformIDs: p.PlatformIDs, CreatedAt: p.CreatedAt,
		})
	}
	return out, nil
}

func toPlatformResponse(p *entity.SocialPlatform) *dto.PlatformResponse {
	return &dto.PlatformResponse{
		ID: p.ID, PlatformName: p.PlatformName, AccountName: p.AccountName, IsConnected: p.IsConnected,
	}
}
