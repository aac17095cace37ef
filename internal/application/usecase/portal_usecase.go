package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bizos-api/internal/application/auth"
	"github.com/jhoicas/bizos-api/internal/application/billing"
	"github.com/jhoicas/bizos-api/internal/application/dto"
	"github.com/jhoicas/bizos-api/internal/domain"
	"github.com/jhoicas/bizos-api/internal/domain/authz"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
	"github.com/jhoicas/bizos-api/internal/domain/repository"
)

// PortalUseCase clientes del portal y avances de proyecto.
type PortalUseCase struct {
	repos repository.Repositories
	creds *auth.CredentialStore
}

// NewPortalUseCase construye el caso de uso.
func NewPortalUseCase(repos repository.Repositories, creds *auth.CredentialStore) *PortalUseCase {
	return &PortalUseCase{repos: repos, creds: creds}
}

// ListClients clientes de la empresa del staff.
func (uc *PortalUseCase) ListClients(ctx context.Context, ac authz.Context, page dto.PageRequest) ([]dto.ClientResponse, error) {
	page.DefaultPage()
	list, err := uc.repos.Clients.ListByCompany(ctx, ac.CompanyID(), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.ClientResponse{ID: c.ID, Email: c.Email, Name: c.Name, Status: c.Status})
	}
	return out, nil
}

// CreateClient alta de cliente del portal en la empresa del staff.
func (uc *PortalUseCase) CreateClient(ctx context.Context, ac authz.Context, in dto.CreateClientRequest) (*dto.CreatedResponse, error) {
	email := auth.NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || name == "" || in.Password == "" {
		return nil, domain.Invalid("email, name y password son obligatorios")
	}
	if !auth.ValidEmail(email) {
		return nil, domain.Invalid("email inválido")
	}
	existing, err := uc.repos.Clients.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := uc.creds.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	client := &entity.Client{
		ID:           uuid.New().String(),
		CompanyID:    ac.CompanyID(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Status:       entity.StatusActive,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.repos.Clients.Create(ctx, client); err != nil {
		return nil, err
	}
	return &dto.CreatedResponse{Message: "Client created successfully", ID: client.ID}, nil
}

// PostUpdate publica un avance para un cliente de la misma empresa.
func (uc *PortalUseCase) PostUpdate(ctx context.Context, ac authz.Context, in dto.CreateProjectUpdateRequest) (*dto.CreatedResponse, error) {
	title := strings.TrimSpace(in.Title)
	if in.ClientID == "" || title == "" || strings.TrimSpace(in.Content) == "" {
		return nil, domain.Invalid("client_id, title y content son obligatorios")
	}
	status := in.Status
	if status == "" {
		status = entity.UpdateInProgress
	}
	switch status {
	case entity.UpdateInProgress, entity.UpdateReview, entity.UpdateCompleted:
	default:
		return nil, domain.Invalid("status inválido %q", status)
	}
	if !IsID(in.ClientID) {
		return nil, fmt.Errorf("%w: cliente", domain.ErrNotFound)
	}
	client, err := uc.repos.Clients.GetByCompanyAndID(ctx, ac.CompanyID(), in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: cliente", domain.ErrNotFound)
	}
	update := &entity.ProjectUpdate{
		ID:        uuid.New().String(),
		CompanyID: ac.CompanyID(),
		ClientID:  client.ID,
		Title:     title,
		Content:   in.Content,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repos.ProjectUpdates.Create(ctx, update); err != nil {
		return nil, err
	}
	return &dto.CreatedResponse{Message: "Project update posted", ID: update.ID}, nil
}

// ListUpdates avances del cliente autenticado.
func (uc *PortalUseCase) ListUpdates(ctx context.Context, ac authz.Context) ([]dto.ProjectUpdateResponse, error) {
	list, err := uc.repos.ProjectUpdates.ListByClient(ctx, ac.CompanyID(), ac.PrincipalID())
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProjectUpdateResponse, 0, len(list))
	for _, u := range list {
		out = append(out, dto.ProjectUpdateResponse{
			ID: u.ID, Title: u.Title, Content: u.Content, Status: u.Status, CreatedAt: u.CreatedAt,
		})
	}
	return out, nil
}

// ListInvoices facturas del cliente autenticado (nunca las de otro cliente).
func (uc *PortalUseCase) ListInvoices(ctx context.Context, ac authz.Context) ([]dto.InvoiceResponse, error) {
	list, err := uc.repos.Invoices.ListByClient(ctx, ac.CompanyID(), ac.PrincipalID())
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, *billing.ToInvoiceResponse(inv))
	}
	return out, nil
}
